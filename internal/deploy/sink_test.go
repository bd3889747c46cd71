/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package deploy

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSinkFuncEmit(t *testing.T) {
	var got ProgressEvent
	sink := SinkFunc(func(event ProgressEvent) {
		got = event
	})

	sink.Emit(ProgressEvent{Kind: EventStateChange, Status: StatusInProgress})

	assert.Equal(t, EventStateChange, got.Kind)
	assert.Equal(t, StatusInProgress, got.Status)
}

func TestBufferedSinkDeliversInOrder(t *testing.T) {
	var mu sync.Mutex
	var received []string

	sink := NewBufferedSink(func(event ProgressEvent) {
		mu.Lock()
		received = append(received, event.RemoteStatus)
		mu.Unlock()
	}, 8)

	sink.Emit(ProgressEvent{RemoteStatus: "CREATE_IN_PROGRESS"})
	sink.Emit(ProgressEvent{RemoteStatus: "CREATE_COMPLETE"})
	sink.Close()

	assert.Equal(t, []string{"CREATE_IN_PROGRESS", "CREATE_COMPLETE"}, received)
	assert.Zero(t, sink.Dropped())
}

func TestBufferedSinkDropsWhenConsumerStalls(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once

	sink := NewBufferedSink(func(ProgressEvent) {
		once.Do(func() { close(started) })
		<-release
	}, 1)

	// First event occupies the consumer, second fills the buffer, the rest
	// must be dropped without blocking.
	sink.Emit(ProgressEvent{RemoteStatus: "1"})
	<-started
	sink.Emit(ProgressEvent{RemoteStatus: "2"})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5; i++ {
			sink.Emit(ProgressEvent{RemoteStatus: "overflow"})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a stalled consumer")
	}

	close(release)
	sink.Close()

	assert.Equal(t, int64(5), sink.Dropped())
}
