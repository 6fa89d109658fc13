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
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
	compute "google.golang.org/api/compute/v1"
	"google.golang.org/api/googleapi"
)

// StatusDone is the terminal operation status. Operations report
// PENDING or RUNNING until the server resolves them.
const StatusDone = "DONE"

// DefaultPollInterval is the pause between status polls.
const DefaultPollInterval = 150 * time.Millisecond

// pollAttempts bounds the retries of a single status call that fails
// transiently (5xx, dropped connection) before the wait gives up.
const pollAttempts = 4

// Waiter polls one operation at a time until it reaches a terminal
// state on the server.
type Waiter struct {
	poller   Poller
	interval time.Duration
	log      *zap.Logger
}

// WaiterOption configures a Waiter.
type WaiterOption func(*Waiter)

// WithPollInterval overrides the pause between status polls.
func WithPollInterval(d time.Duration) WaiterOption {
	return func(w *Waiter) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithLogger attaches a logger for per-poll debug output.
func WithLogger(log *zap.Logger) WaiterOption {
	return func(w *Waiter) { w.log = log }
}

// NewWaiter creates a waiter that polls through p.
func NewWaiter(p Poller, opts ...WaiterOption) *Waiter {
	w := &Waiter{
		poller:   p,
		interval: DefaultPollInterval,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Wait blocks until op reaches DONE, returning nil on success and an
// *OperationError when the server resolved the operation with an error
// payload. A terminal error is final; the waiter reports it and never
// re-polls. Cancelling ctx makes Wait return ctx's error promptly, which
// the tracker treats as abandonment rather than failure.
func (w *Waiter) Wait(ctx context.Context, scope Scope, op *compute.Operation) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		cur, err := w.poll(ctx, scope, op.Name)
		if err != nil {
			return fmt.Errorf("polling operation %s: %w", op.Name, err)
		}

		if cur.Status == StatusDone {
			if cur.Error != nil && len(cur.Error.Errors) > 0 {
				return newOperationError(cur)
			}
			return nil
		}

		w.log.Debug("operation not terminal",
			zap.String("operation", cur.Name),
			zap.String("status", cur.Status),
			zap.String("scope", scope.String()),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.interval):
		}
	}
}

// WaitWithTimeout waits like Wait but gives up once d elapses, reporting
// the expiry instead of failing. It returns true when the timeout was
// reached before the operation turned terminal; callers typically warn
// and move on. Used for waits with no upper bound worth failing over,
// such as managed group stabilization.
func (w *Waiter) WaitWithTimeout(ctx context.Context, scope Scope, op *compute.Operation, d time.Duration) (timedOut bool, err error) {
	tctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	err = w.Wait(tctx, scope, op)
	if err != nil && errors.Is(tctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return true, nil
	}
	return false, err
}

func (w *Waiter) poll(ctx context.Context, scope Scope, name string) (*compute.Operation, error) {
	return retry.DoWithData(
		func() (*compute.Operation, error) {
			switch {
			case scope.IsZone():
				return w.poller.GetZoneOperation(ctx, scope.Project, scope.Location, name)
			case scope.IsRegion():
				return w.poller.GetRegionOperation(ctx, scope.Project, scope.Location, name)
			default:
				return w.poller.GetGlobalOperation(ctx, scope.Project, name)
			}
		},
		retry.Context(ctx),
		retry.Attempts(pollAttempts),
		retry.Delay(w.interval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
	)
}

// isTransient reports whether a failed status call is worth retrying.
// Server-side 5xx responses and plain transport errors are; anything the
// API rejected outright is not.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code >= http.StatusInternalServerError
	}
	return true
}
