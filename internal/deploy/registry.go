/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package deploy

import (
	"fmt"
	"sync"
)

// OperationInFlightError indicates a second operation was submitted for a
// stack name that already has an active operation in this process
type OperationInFlightError struct {
	Name string
}

func (e *OperationInFlightError) Error() string {
	return fmt.Sprintf("an operation for stack %q is already in flight", e.Name)
}

// StackAlreadyExistsError indicates a CREATE was submitted for a name that
// already denotes a stack
type StackAlreadyExistsError struct {
	Name string
}

func (e *StackAlreadyExistsError) Error() string {
	return fmt.Sprintf("stack %q already exists", e.Name)
}

// Registry enforces per-stack-name exclusivity for in-flight operations.
// It is an explicit mutex-guarded map passed by reference to whoever needs
// it, never package-level state. It also remembers names whose CREATE
// completed successfully in this process, so a duplicate CREATE can be
// rejected without a remote round trip.
type Registry struct {
	mu      sync.Mutex
	active  map[string]OperationKind
	created map[string]bool
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		active:  make(map[string]OperationKind),
		created: make(map[string]bool),
	}
}

// Acquire takes the advisory lock for a stack name. It fails fast when
// another operation holds the lock; there is no queueing.
func (r *Registry) Acquire(name string, kind OperationKind) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, held := r.active[name]; held {
		return &OperationInFlightError{Name: name}
	}
	r.active[name] = kind
	return nil
}

// Release returns the lock for a stack name. Safe to call more than once.
func (r *Registry) Release(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, name)
}

// RecordCreateComplete marks a name as created by this process
func (r *Registry) RecordCreateComplete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created[name] = true
}

// CreateCompleted reports whether this process already created the name
func (r *Registry) CreateCompleted(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created[name]
}

// ActiveCount returns the number of in-flight operations
func (r *Registry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}
