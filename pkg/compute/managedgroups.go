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

package compute

import (
	"context"
	"time"

	"go.uber.org/zap"
	compute "google.golang.org/api/compute/v1"
)

// GetGroup returns a zonal managed instance group.
func (c *Client) GetGroup(ctx context.Context, zone, name string) (*compute.InstanceGroupManager, error) {
	return c.svc.InstanceGroupManagers.Get(c.project, zone, name).Context(ctx).Do()
}

// GetRegionGroup returns a regional managed instance group.
func (c *Client) GetRegionGroup(ctx context.Context, region, name string) (*compute.InstanceGroupManager, error) {
	return c.svc.RegionInstanceGroupManagers.Get(c.project, region, name).Context(ctx).Do()
}

// ResizeGroup starts resizing a zonal managed instance group and
// returns the operation. The operation completes when the resize is
// accepted, not when the group has converged on the new size; use
// WaitGroupStable for that.
func (c *Client) ResizeGroup(ctx context.Context, zone, name string, size int64) (*compute.Operation, error) {
	return c.svc.InstanceGroupManagers.Resize(c.project, zone, name, size).Context(ctx).Do()
}

// ResizeRegionGroup starts resizing a regional managed instance group
// and returns the operation.
func (c *Client) ResizeRegionGroup(ctx context.Context, region, name string, size int64) (*compute.Operation, error) {
	return c.svc.RegionInstanceGroupManagers.Resize(c.project, region, name, size).Context(ctx).Do()
}

// WaitGroupStable polls a zonal managed instance group until it reports
// stable or timeout elapses. Expiry is reported, not raised: the caller
// decides whether a still-converging group is worth a warning or a
// failure. Cancelling ctx returns its error.
func (c *Client) WaitGroupStable(ctx context.Context, zone, name string, interval, timeout time.Duration) (stable bool, err error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	expired := time.After(timeout)

	for {
		mgr, err := c.GetGroup(ctx, zone, name)
		if err != nil {
			return false, err
		}
		if mgr.Status != nil && mgr.Status.IsStable {
			return true, nil
		}

		c.log.Debug("managed group not stable",
			zap.String("group", name),
			zap.String("zone", zone),
			zap.Int64("targetSize", mgr.TargetSize),
		)

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-expired:
			return false, nil
		case <-ticker.C:
		}
	}
}
