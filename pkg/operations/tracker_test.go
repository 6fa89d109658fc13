// Copyright 2025 Scott Friedman
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operations

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	compute "google.golang.org/api/compute/v1"
)

func op(name string) *compute.Operation {
	return &compute.Operation{Name: name}
}

func TestTracker_Wait_DrainsEveryOperation(t *testing.T) {
	poller := newFakePoller()
	scope := ZoneScope("proj", "us-central1-a")

	// Operations 1 and 3 fail; 2, 4, and 5 succeed. Every one of the
	// five must still be waited on, and every successful one must run
	// its callback.
	poller.script("op-1", opDoneError("op-1", "QUOTA_EXCEEDED", "over quota"))
	poller.script("op-2", opWithStatus("op-2", "RUNNING"), opDone("op-2"))
	poller.script("op-3", opDoneError("op-3", "RESOURCE_NOT_FOUND", "gone"))
	poller.script("op-4", opDone("op-4"))
	poller.script("op-5", opDone("op-5"))

	var ran []string
	callback := func(name string) func() error {
		return func() error {
			ran = append(ran, name)
			return nil
		}
	}

	tracker := NewTracker(testWaiter(poller))
	for i := 1; i <= 5; i++ {
		name := fmt.Sprintf("op-%d", i)
		tracker.Add(scope, op(name), callback(name))
	}

	err := tracker.Wait(context.Background())

	var agg *AggregateError
	require.ErrorAs(t, err, &agg)
	require.Len(t, agg.Errs, 2)

	// Failures come back in submission order.
	var first, second *OperationError
	require.ErrorAs(t, agg.Errs[0], &first)
	require.ErrorAs(t, agg.Errs[1], &second)
	assert.Equal(t, "op-1", first.Op)
	assert.Equal(t, "op-3", second.Op)

	assert.Equal(t, []string{"op-2", "op-4", "op-5"}, ran)
	assert.Empty(t, poller.steps["op-5"], "last operation was waited on")
}

func TestTracker_Wait_NoFailures(t *testing.T) {
	poller := newFakePoller()
	scope := GlobalScope("proj")
	poller.script("op-1", opDone("op-1"))
	poller.script("op-2", opDone("op-2"))

	tracker := NewTracker(testWaiter(poller))
	tracker.Add(scope, op("op-1"), nil)
	tracker.Add(scope, op("op-2"), nil)

	require.NoError(t, tracker.Wait(context.Background()))
}

func TestTracker_Wait_SingleFailurePropagatesVerbatim(t *testing.T) {
	poller := newFakePoller()
	scope := GlobalScope("proj")
	poller.script("op-1", opDone("op-1"))
	poller.script("op-2", opDoneError("op-2", "RESOURCE_IN_USE", "disk attached"))

	tracker := NewTracker(testWaiter(poller))
	tracker.Add(scope, op("op-1"), nil)
	tracker.Add(scope, op("op-2"), nil)

	err := tracker.Wait(context.Background())

	// One failure is raised as itself, not wrapped in an aggregate.
	var agg *AggregateError
	assert.False(t, errors.As(err, &agg))

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "RESOURCE_IN_USE", opErr.Code)
}

func TestTracker_Wait_CallbackFailureCollected(t *testing.T) {
	poller := newFakePoller()
	scope := GlobalScope("proj")
	poller.script("op-1", opDone("op-1"))

	cbErr := errors.New("re-fetch failed")
	tracker := NewTracker(testWaiter(poller))
	tracker.Add(scope, op("op-1"), func() error { return cbErr })

	err := tracker.Wait(context.Background())
	require.ErrorIs(t, err, cbErr)
}

func TestTracker_Wait_SecondDrainIsNoop(t *testing.T) {
	poller := newFakePoller()
	scope := GlobalScope("proj")
	poller.script("op-1", opDoneError("op-1", "QUOTA_EXCEEDED", "over quota"))

	tracker := NewTracker(testWaiter(poller))
	tracker.Add(scope, op("op-1"), nil)

	require.Error(t, tracker.Wait(context.Background()))
	polled := poller.calls()

	// Draining again reports nothing and re-waits nothing.
	require.NoError(t, tracker.Wait(context.Background()))
	assert.Equal(t, polled, poller.calls())
	assert.Zero(t, tracker.Pending())
}

func TestTracker_Wait_CancellationAbandonsRemaining(t *testing.T) {
	poller := newFakePoller()
	scope := GlobalScope("proj")
	poller.script("op-1", opDone("op-1"))
	poller.script("op-2", opDone("op-2"))

	ctx, cancel := context.WithCancel(context.Background())

	var ran []string
	tracker := NewTracker(testWaiter(poller))
	tracker.Add(scope, op("op-1"), func() error {
		ran = append(ran, "op-1")
		// Interrupt arrives while the first operation is being handled.
		cancel()
		return nil
	})
	tracker.Add(scope, op("op-2"), func() error {
		ran = append(ran, "op-2")
		return nil
	})

	// Abandonment is not failure: nothing is raised for op-2 and its
	// callback never runs.
	require.NoError(t, tracker.Wait(ctx))
	assert.Equal(t, []string{"op-1"}, ran)
	assert.Len(t, poller.steps["op-2"], 1, "abandoned operation was not polled")
}

func TestTracker_Wait_Progress(t *testing.T) {
	poller := newFakePoller()
	scope := GlobalScope("proj")
	poller.script("op-1", opDone("op-1"))
	poller.script("op-2", opDoneError("op-2", "QUOTA_EXCEEDED", "over quota"))
	poller.script("op-3", opDone("op-3"))

	var ticks [][2]int
	tracker := NewTracker(testWaiter(poller))
	tracker.Notify = func(done, total int) {
		ticks = append(ticks, [2]int{done, total})
	}
	tracker.Add(scope, op("op-1"), nil)
	tracker.Add(scope, op("op-2"), nil)
	tracker.Add(scope, op("op-3"), nil)

	require.Error(t, tracker.Wait(context.Background()))
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, ticks)
}

// Mirrors a batched delete of instances "a", "b", and "c" where only
// "b" fails server-side.
func TestTracker_Wait_BatchedDeleteScenario(t *testing.T) {
	poller := newFakePoller()
	scope := ZoneScope("proj", "us-central1-a")
	poller.script("delete-a", opDone("delete-a"))
	poller.script("delete-b", opDoneError("delete-b", "RESOURCE_NOT_FOUND", "instance b not found"))
	poller.script("delete-c", opDone("delete-c"))

	var confirmed []string
	confirm := func(name string) func() error {
		return func() error {
			confirmed = append(confirmed, name)
			return nil
		}
	}

	tracker := NewTracker(testWaiter(poller))
	tracker.Add(scope, op("delete-a"), confirm("a"))
	tracker.Add(scope, op("delete-b"), confirm("b"))
	tracker.Add(scope, op("delete-c"), confirm("c"))

	err := tracker.Wait(context.Background())

	assert.Equal(t, []string{"a", "c"}, confirmed)

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "RESOURCE_NOT_FOUND", opErr.Code)

	var agg *AggregateError
	assert.False(t, errors.As(err, &agg), "single failure must not be aggregated")
}
