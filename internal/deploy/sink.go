/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package deploy

import (
	"sync"
	"time"
)

// EventKind distinguishes state transitions from elapsed-time heartbeats
type EventKind int

const (
	// EventStateChange is emitted when the observed remote status changes
	EventStateChange EventKind = iota
	// EventHeartbeat is emitted when a poll observes no change
	EventHeartbeat
)

// ProgressEvent is one entry in the ordered progress stream for an operation
type ProgressEvent struct {
	Kind         EventKind
	Status       Status
	RemoteStatus string
	Elapsed      time.Duration
	Message      string
}

// ProgressSink consumes progress events. Implementations must not block the
// polling loop; wrap slow consumers in a BufferedSink.
type ProgressSink interface {
	Emit(event ProgressEvent)
}

// SinkFunc adapts a function to the ProgressSink interface
type SinkFunc func(event ProgressEvent)

// Emit calls the function
func (f SinkFunc) Emit(event ProgressEvent) {
	f(event)
}

// BufferedSink decouples a slow consumer from the polling loop. Events are
// buffered up to the configured capacity and dropped beyond it; the poller
// is never awaited.
type BufferedSink struct {
	events  chan ProgressEvent
	done    chan struct{}
	once    sync.Once
	dropped int64
	mu      sync.Mutex
}

// NewBufferedSink starts a consumer goroutine draining buffered events
func NewBufferedSink(consumer func(ProgressEvent), buffer int) *BufferedSink {
	if buffer <= 0 {
		buffer = 64
	}
	s := &BufferedSink{
		events: make(chan ProgressEvent, buffer),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		for event := range s.events {
			consumer(event)
		}
	}()
	return s
}

// Emit enqueues an event, dropping it if the buffer is full
func (s *BufferedSink) Emit(event ProgressEvent) {
	select {
	case s.events <- event:
	default:
		s.mu.Lock()
		s.dropped++
		s.mu.Unlock()
	}
}

// Dropped returns how many events were discarded because the consumer was
// too slow
func (s *BufferedSink) Dropped() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Close drains remaining events and stops the consumer goroutine
func (s *BufferedSink) Close() {
	s.once.Do(func() {
		close(s.events)
	})
	<-s.done
}
