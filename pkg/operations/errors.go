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
	"fmt"
	"strings"

	compute "google.golang.org/api/compute/v1"
)

// OperationError reports an operation that reached DONE with an error
// payload. The server resolves these per operation (quota exceeded,
// resource not found, precondition failed); they are final and never
// retried.
type OperationError struct {
	// Op is the server-side operation name.
	Op string
	// Code and Message come from the first error entry in the payload.
	Code    string
	Message string
	// Errors holds every entry from the payload.
	Errors []*compute.OperationErrorErrors
}

func newOperationError(op *compute.Operation) *OperationError {
	oe := &OperationError{Op: op.Name, Errors: op.Error.Errors}
	if len(op.Error.Errors) > 0 {
		oe.Code = op.Error.Errors[0].Code
		oe.Message = op.Error.Errors[0].Message
	}
	return oe
}

// Error implements error.
func (e *OperationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("operation %s failed: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("operation %s failed: %s: %s", e.Op, e.Code, e.Message)
}

// AggregateError wraps the failures collected while draining a tracker.
// It is only produced when more than one operation in a batch failed; a
// single failure propagates as itself.
type AggregateError struct {
	// Errs holds the underlying failures in submission order.
	Errs []error
}

// Error implements error.
func (e *AggregateError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d operations failed: %s", len(e.Errs), strings.Join(msgs, "; "))
}

// Unwrap exposes the wrapped failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Errs }

// collapse reduces collected failures to the error a drain reports:
// none means success, exactly one propagates verbatim so callers can
// still match its type, and two or more are wrapped together.
func collapse(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return &AggregateError{Errs: errs}
	}
}
