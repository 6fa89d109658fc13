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

	compute "google.golang.org/api/compute/v1"
)

// handle is one in-flight server-side mutation owned by a tracker.
type handle struct {
	scope  Scope
	op     *compute.Operation
	onDone func() error
}

// Tracker accumulates the operations issued while a command processes
// its inputs and waits on all of them at the end of the invocation, so
// the command does not block after every single item.
//
// A tracker belongs to one command invocation and is not safe for
// concurrent use.
type Tracker struct {
	waiter  *Waiter
	pending []handle

	// Notify, when set, is called after each operation resolves with the
	// count resolved so far and the total being drained. The command
	// layer hangs a progress bar off it.
	Notify func(done, total int)
}

// NewTracker creates an empty tracker draining through w.
func NewTracker(w *Waiter) *Tracker {
	return &Tracker{waiter: w}
}

// Add records an operation to be waited on by Wait. The optional onDone
// callback runs exactly once, only if the operation completes
// successfully; a failure it returns is collected like an operation
// failure. Add never fails and never blocks.
func (t *Tracker) Add(scope Scope, op *compute.Operation, onDone func() error) {
	t.pending = append(t.pending, handle{scope: scope, op: op, onDone: onDone})
}

// Pending returns the number of operations not yet drained.
func (t *Tracker) Pending() int { return len(t.pending) }

// Wait drains every recorded operation in submission order, one at a
// time. A failed operation never stops the drain: the remaining
// operations are still waited on and their callbacks still run, so a
// batch of ten deletes reports every failure rather than just the
// first. Cancelling ctx abandons the in-flight wait and everything
// after it without recording failures or running callbacks.
//
// Zero collected failures return nil, exactly one is returned verbatim,
// and two or more come back wrapped in an *AggregateError. The pending
// list is emptied either way, so a second Wait is a no-op.
func (t *Tracker) Wait(ctx context.Context) error {
	pending := t.pending
	t.pending = nil

	var failures []error
	for i, h := range pending {
		if ctx.Err() != nil {
			break
		}

		err := t.waiter.Wait(ctx, h.scope, h.op)
		switch {
		case err == nil:
			if h.onDone != nil {
				if cbErr := h.onDone(); cbErr != nil {
					failures = append(failures, cbErr)
				}
			}
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			// Abandoned, neither success nor failure.
		default:
			failures = append(failures, err)
		}

		if t.Notify != nil {
			t.Notify(i+1, len(pending))
		}
	}

	return collapse(failures)
}
