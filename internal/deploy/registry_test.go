/*
Copyright © 2025 Stackpilot Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package deploy

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAcquireRelease(t *testing.T) {
	registry := NewRegistry()

	err := registry.Acquire("demo-stack", OperationCreate)
	require.NoError(t, err)
	assert.Equal(t, 1, registry.ActiveCount())

	registry.Release("demo-stack")
	assert.Equal(t, 0, registry.ActiveCount())
}

func TestRegistryAcquireFailsFastWhenHeld(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Acquire("demo-stack", OperationCreate))

	err := registry.Acquire("demo-stack", OperationUpdate)
	require.Error(t, err)

	var inFlight *OperationInFlightError
	require.ErrorAs(t, err, &inFlight)
	assert.Equal(t, "demo-stack", inFlight.Name)
}

func TestRegistryDistinctNamesAreIndependent(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Acquire("stack-a", OperationCreate))
	require.NoError(t, registry.Acquire("stack-b", OperationDelete))
	assert.Equal(t, 2, registry.ActiveCount())
}

func TestRegistryReleaseIsIdempotent(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Acquire("demo-stack", OperationCreate))
	registry.Release("demo-stack")
	registry.Release("demo-stack")
	assert.Equal(t, 0, registry.ActiveCount())
}

func TestRegistryRecordsCompletedCreates(t *testing.T) {
	registry := NewRegistry()

	assert.False(t, registry.CreateCompleted("demo-stack"))
	registry.RecordCreateComplete("demo-stack")
	assert.True(t, registry.CreateCompleted("demo-stack"))
}

func TestRegistryConcurrentAcquireSingleWinner(t *testing.T) {
	registry := NewRegistry()

	const attempts = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := registry.Acquire("contended-stack", OperationCreate); err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, registry.ActiveCount())
}
