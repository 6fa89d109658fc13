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

	compute "google.golang.org/api/compute/v1"
)

// Poller fetches the current state of an operation. It is the only thing
// the waiter needs from the Compute Engine API; pkg/compute provides the
// production implementation.
type Poller interface {
	GetGlobalOperation(ctx context.Context, project, name string) (*compute.Operation, error)
	GetRegionOperation(ctx context.Context, project, region, name string) (*compute.Operation, error)
	GetZoneOperation(ctx context.Context, project, zone, name string) (*compute.Operation, error)
}
