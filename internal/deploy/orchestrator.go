/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package deploy drives infrastructure change operations against the
// asynchronous CloudFormation control plane: submission, polling to a
// terminal state, and progress reporting.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/stackpilot/stackpilot/internal/aws"
	"github.com/stackpilot/stackpilot/internal/model"
)

// OperationKind identifies the change being requested
type OperationKind string

const (
	OperationCreate OperationKind = "CREATE"
	OperationUpdate OperationKind = "UPDATE"
	OperationDelete OperationKind = "DELETE"
)

// Status is the orchestrator's view of an operation
type Status string

const (
	StatusSubmitted  Status = "SUBMITTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusComplete   Status = "COMPLETE"
	StatusFailed     Status = "FAILED"
	StatusRolledBack Status = "ROLLED_BACK"
	// StatusTimedOut is terminal from the orchestrator's point of view
	// only; the remote operation may still be running.
	StatusTimedOut Status = "TIMED_OUT"
)

// IsTerminal reports whether the orchestrator stops observing
func (s Status) IsTerminal() bool {
	switch s {
	case StatusComplete, StatusFailed, StatusRolledBack, StatusTimedOut:
		return true
	}
	return false
}

// ErrDeleteNotConfirmed indicates a DELETE was submitted without the
// destructive-action gate having been passed
var ErrDeleteNotConfirmed = errors.New("delete requires prior operator confirmation")

// Transition records one observed status change
type Transition struct {
	Status Status
	At     time.Time
}

// Operation tracks one in-flight change. It is mutated only by the
// orchestrator's polling loop and discarded once its terminal state has
// been observed; the control plane remains the durable state of record.
type Operation struct {
	Name     string
	Kind     OperationKind
	Template string

	mu          sync.Mutex
	status      Status
	transitions []Transition
	reason      string
	submitted   time.Time
}

// Status returns the current status
func (op *Operation) Status() Status {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.status
}

// Reason returns the terminal reason, empty unless failed or rolled back
func (op *Operation) Reason() string {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.reason
}

// Transitions returns the ordered status-change history
func (op *Operation) Transitions() []Transition {
	op.mu.Lock()
	defer op.mu.Unlock()
	history := make([]Transition, len(op.transitions))
	copy(history, op.transitions)
	return history
}

// setStatus records a transition when the status actually changes
func (op *Operation) setStatus(status Status) bool {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.status == status {
		return false
	}
	op.status = status
	op.transitions = append(op.transitions, Transition{Status: status, At: time.Now()})
	return true
}

// setTerminal records the final status and reason
func (op *Operation) setTerminal(status Status, reason string) {
	op.setStatus(status)
	op.mu.Lock()
	op.reason = reason
	op.mu.Unlock()
}

// TerminalResult is what Await hands back once observation stops
type TerminalResult struct {
	Status  Status
	Reason  string
	Elapsed time.Duration
}

// SubmitInput describes one change request
type SubmitInput struct {
	Kind      OperationKind
	StackName string
	Schema    *model.TemplateSchema
	Params    *model.ParameterSet

	// TemplateBody overrides Schema.Body when the body has been processed;
	// ignored for DELETE
	TemplateBody string
	Capabilities []string

	// DeleteConfirmed must be set for DELETE: the operator has explicitly
	// acknowledged the destructive action
	DeleteConfirmed bool
}

// Options are the tunable constants of the polling loop
type Options struct {
	// PollInterval is the fixed wait between status polls
	PollInterval time.Duration
	// BackoffBase seeds the exponential backoff applied to transient
	// transport failures
	BackoffBase time.Duration
	// BackoffCeiling caps the computed backoff
	BackoffCeiling time.Duration
	// MaxTransportRetries bounds consecutive transport retries before the
	// operation degrades to TIMED_OUT
	MaxTransportRetries int
}

// DefaultOptions returns the documented defaults: 5s polls, 500ms backoff
// base, 30s backoff ceiling, 5 retries.
func DefaultOptions() Options {
	return Options{
		PollInterval:        5 * time.Second,
		BackoffBase:         500 * time.Millisecond,
		BackoffCeiling:      30 * time.Second,
		MaxTransportRetries: 5,
	}
}

func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.PollInterval <= 0 {
		o.PollInterval = defaults.PollInterval
	}
	if o.BackoffBase <= 0 {
		o.BackoffBase = defaults.BackoffBase
	}
	if o.BackoffCeiling <= 0 {
		o.BackoffCeiling = defaults.BackoffCeiling
	}
	if o.MaxTransportRetries <= 0 {
		o.MaxTransportRetries = defaults.MaxTransportRetries
	}
	return o
}

// Orchestrator submits change operations and drives them to a terminal
// state by polling. One Await occupies one goroutine per operation;
// concurrent operations for distinct stack names are independent.
type Orchestrator struct {
	controlPlane aws.ControlPlaneOperations
	registry     *Registry
	logger       *zap.Logger
	opts         Options
}

// NewOrchestrator creates an orchestrator sharing the given registry
func NewOrchestrator(controlPlane aws.ControlPlaneOperations, registry *Registry, logger *zap.Logger, opts Options) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		controlPlane: controlPlane,
		registry:     registry,
		logger:       logger,
		opts:         opts.withDefaults(),
	}
}

// Submit validates preconditions, acquires the per-name lock and issues the
// change request. The lock is held until Await observes a terminal state or
// the operation is abandoned.
func (o *Orchestrator) Submit(ctx context.Context, input SubmitInput) (*Operation, error) {
	if input.StackName == "" {
		return nil, fmt.Errorf("stack name is required")
	}

	// Duplicate CREATE for a name this process already created: reject
	// before any remote call.
	if input.Kind == OperationCreate && o.registry.CreateCompleted(input.StackName) {
		return nil, &StackAlreadyExistsError{Name: input.StackName}
	}

	// Destructive-action gate.
	if input.Kind == OperationDelete && !input.DeleteConfirmed {
		return nil, ErrDeleteNotConfirmed
	}

	if err := o.registry.Acquire(input.StackName, input.Kind); err != nil {
		return nil, err
	}

	op := &Operation{
		Name:      input.StackName,
		Kind:      input.Kind,
		status:    StatusSubmitted,
		submitted: time.Now(),
	}
	op.transitions = append(op.transitions, Transition{Status: StatusSubmitted, At: op.submitted})
	if input.Schema != nil {
		op.Template = input.Schema.Name
	}

	submitted := false
	defer func() {
		if !submitted {
			o.registry.Release(input.StackName)
		}
	}()

	if input.Kind == OperationCreate {
		exists, err := o.stackExists(ctx, input.StackName)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &StackAlreadyExistsError{Name: input.StackName}
		}
	}

	if err := o.submitChange(ctx, &input); err != nil {
		return nil, err
	}

	// Request acknowledged by the control plane.
	op.setStatus(StatusInProgress)
	submitted = true

	o.logger.Info("operation submitted",
		zap.String("stack", input.StackName),
		zap.String("kind", string(input.Kind)))

	return op, nil
}

// Await polls the operation to a terminal state, emitting one progress
// event per successful poll. The per-name lock is released on every exit
// path, including abandonment via ctx; no cancellation request is ever sent
// to the control plane.
func (o *Orchestrator) Await(ctx context.Context, op *Operation, timeout time.Duration, sink ProgressSink) (*TerminalResult, error) {
	defer o.registry.Release(op.Name)

	if current := op.Status(); current.IsTerminal() {
		return &TerminalResult{Status: current, Reason: op.Reason(), Elapsed: time.Since(op.submitted)}, nil
	}

	var (
		lastRemote string
		retries    int
		wait       = o.opts.PollInterval
	)

	for {
		select {
		case <-ctx.Done():
			// Abandonment: stop observing. The remote operation keeps its
			// fate and stays re-queryable by name.
			o.logger.Info("await abandoned", zap.String("stack", op.Name))
			return nil, ctx.Err()
		case <-time.After(wait):
		}

		elapsed := time.Since(op.submitted)
		stack, err := o.controlPlane.GetStack(ctx, op.Name)

		if err != nil {
			// A deleted stack stops being describable; for DELETE that is
			// the success signal.
			if op.Kind == OperationDelete && aws.IsStackNotFound(err) {
				op.setTerminal(StatusComplete, "")
				emit(sink, ProgressEvent{Kind: EventStateChange, Status: StatusComplete, RemoteStatus: string(aws.StackStatusDeleteComplete), Elapsed: elapsed, Message: "stack deleted"})
				return o.result(op), nil
			}

			if !aws.IsTransient(err) {
				return nil, fmt.Errorf("failed to poll stack %s: %w", op.Name, err)
			}

			retries++
			if retries > o.opts.MaxTransportRetries {
				op.setTerminal(StatusTimedOut, fmt.Sprintf("transport retry ceiling reached: %v", err))
				o.logger.Warn("transport retry ceiling reached",
					zap.String("stack", op.Name),
					zap.Error(err))
				return o.result(op), nil
			}
			wait = backoff(o.opts.BackoffBase, retries, o.opts.BackoffCeiling)
			o.logger.Debug("transient poll failure, backing off",
				zap.String("stack", op.Name),
				zap.Int("attempt", retries),
				zap.Duration("backoff", wait),
				zap.Error(err))
			continue
		}

		retries = 0
		wait = o.opts.PollInterval

		status, terminal := mapRemoteStatus(stack.Status)
		op.setStatus(status)

		kind := EventHeartbeat
		if string(stack.Status) != lastRemote {
			kind = EventStateChange
		}
		lastRemote = string(stack.Status)
		emit(sink, ProgressEvent{
			Kind:         kind,
			Status:       status,
			RemoteStatus: string(stack.Status),
			Elapsed:      elapsed,
			Message:      progressMessage(stack),
		})

		if terminal {
			reason := ""
			if status == StatusFailed || status == StatusRolledBack {
				reason = o.failureReason(ctx, op.Name, stack)
			}
			op.setTerminal(status, reason)
			if status == StatusComplete && op.Kind == OperationCreate {
				o.registry.RecordCreateComplete(op.Name)
			}
			return o.result(op), nil
		}

		if elapsed >= timeout {
			// Stop observing without cancelling the remote operation.
			op.setTerminal(StatusTimedOut, fmt.Sprintf("no terminal state after %s; the remote operation may still be running", timeout))
			o.logger.Warn("operation timed out locally",
				zap.String("stack", op.Name),
				zap.Duration("timeout", timeout))
			return o.result(op), nil
		}
	}
}

// StackStatus re-queries a stack by name, independent of any tracked
// operation. Used to re-observe an abandoned operation.
func (o *Orchestrator) StackStatus(ctx context.Context, name string) (*aws.Stack, error) {
	return o.controlPlane.GetStack(ctx, name)
}

func (o *Orchestrator) result(op *Operation) *TerminalResult {
	return &TerminalResult{
		Status:  op.Status(),
		Reason:  op.Reason(),
		Elapsed: time.Since(op.submitted),
	}
}

// stackExists wraps the existence probe with transient retries
func (o *Orchestrator) stackExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := o.withRetry(ctx, func() error {
		var probeErr error
		exists, probeErr = o.controlPlane.StackExists(ctx, name)
		return probeErr
	})
	if err != nil {
		return false, fmt.Errorf("failed to check stack %s: %w", name, err)
	}
	return exists, nil
}

// submitChange issues the remote request for the operation kind
func (o *Orchestrator) submitChange(ctx context.Context, input *SubmitInput) error {
	return o.withRetry(ctx, func() error {
		switch input.Kind {
		case OperationCreate:
			return o.controlPlane.CreateStack(ctx, o.changeInput(input))
		case OperationUpdate:
			return o.controlPlane.UpdateStack(ctx, o.changeInput(input))
		case OperationDelete:
			return o.controlPlane.DeleteStack(ctx, input.StackName)
		default:
			return fmt.Errorf("unknown operation kind %q", input.Kind)
		}
	})
}

func (o *Orchestrator) changeInput(input *SubmitInput) aws.StackChangeInput {
	body := input.TemplateBody
	if body == "" && input.Schema != nil {
		body = input.Schema.Body
	}
	capabilities := input.Capabilities
	if len(capabilities) == 0 {
		capabilities = []string{"CAPABILITY_IAM"}
	}
	var params map[string]string
	if input.Params != nil {
		params = input.Params.StringMap()
	}
	return aws.StackChangeInput{
		StackName:    input.StackName,
		TemplateBody: body,
		Parameters:   params,
		Capabilities: capabilities,
	}
}

// withRetry retries fn on transient transport failures with bounded
// exponential backoff. Business outcomes reported by the control plane are
// never retried here; only the communication layer is.
func (o *Orchestrator) withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = fn(); err == nil || !aws.IsTransient(err) {
			return err
		}
		if attempt >= o.opts.MaxTransportRetries {
			return fmt.Errorf("transport retry ceiling reached: %w", err)
		}
		delay := backoff(o.opts.BackoffBase, attempt+1, o.opts.BackoffCeiling)
		o.logger.Debug("transient failure, retrying",
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", delay),
			zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// failureReason surfaces the first failing resource's reason verbatim,
// falling back to the stack-level status reason
func (o *Orchestrator) failureReason(ctx context.Context, name string, stack *aws.Stack) string {
	events, err := o.controlPlane.DescribeStackEvents(ctx, name)
	if err != nil {
		o.logger.Debug("failed to fetch stack events for reason extraction",
			zap.String("stack", name),
			zap.Error(err))
		return stack.StatusReason
	}

	// Events arrive most recent first; the root cause is the earliest
	// failing resource.
	for i := len(events) - 1; i >= 0; i-- {
		event := events[i]
		if strings.HasSuffix(event.ResourceStatus, "_FAILED") && event.ResourceStatusReason != "" {
			return event.ResourceStatusReason
		}
	}
	return stack.StatusReason
}

// mapRemoteStatus folds the control plane's status vocabulary onto the
// orchestrator's state machine
func mapRemoteStatus(remote aws.StackStatus) (Status, bool) {
	if !remote.IsTerminal() {
		return StatusInProgress, false
	}
	switch {
	case remote == aws.StackStatusRollbackComplete || remote == aws.StackStatusUpdateRollbackComplete:
		return StatusRolledBack, true
	case strings.HasSuffix(string(remote), "_COMPLETE"):
		return StatusComplete, true
	default:
		return StatusFailed, true
	}
}

func progressMessage(stack *aws.Stack) string {
	if stack.StatusReason != "" {
		return stack.StatusReason
	}
	return string(stack.Status)
}

func emit(sink ProgressSink, event ProgressEvent) {
	if sink != nil {
		sink.Emit(event)
	}
}

func backoff(base time.Duration, attempt int, ceiling time.Duration) time.Duration {
	delay := base
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= ceiling {
			return ceiling
		}
	}
	if delay > ceiling {
		return ceiling
	}
	return delay
}
