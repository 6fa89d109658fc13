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
	"fmt"

	compute "google.golang.org/api/compute/v1"
)

// ListNetworks returns the project's networks.
func (c *Client) ListNetworks(ctx context.Context) ([]*compute.Network, error) {
	var results []*compute.Network
	call := c.svc.Networks.List(c.project)
	err := call.Pages(ctx, func(page *compute.NetworkList) error {
		results = append(results, page.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}
	return results, nil
}

// GetNetwork returns a single network.
func (c *Client) GetNetwork(ctx context.Context, name string) (*compute.Network, error) {
	return c.svc.Networks.Get(c.project, name).Context(ctx).Do()
}
