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
	"strings"

	compute "google.golang.org/api/compute/v1"
)

// FirewallSpec describes a firewall rule for InsertFirewall and
// UpdateFirewall.
type FirewallSpec struct {
	Name string
	// Network is the network short name; "default" when empty.
	Network string
	// Allowed lists "protocol" or "protocol:port" entries, e.g.
	// "tcp:22" or "icmp".
	Allowed []string
	// SourceRanges defaults to 0.0.0.0/0 when empty.
	SourceRanges []string
}

func (s FirewallSpec) resource() *compute.Firewall {
	network := s.Network
	if network == "" {
		network = "default"
	}
	ranges := s.SourceRanges
	if len(ranges) == 0 {
		ranges = []string{"0.0.0.0/0"}
	}

	var allowed []*compute.FirewallAllowed
	for _, entry := range s.Allowed {
		proto, port, hasPort := strings.Cut(entry, ":")
		rule := &compute.FirewallAllowed{IPProtocol: proto}
		if hasPort {
			rule.Ports = []string{port}
		}
		allowed = append(allowed, rule)
	}

	return &compute.Firewall{
		Name:         s.Name,
		Network:      fmt.Sprintf("global/networks/%s", network),
		Allowed:      allowed,
		SourceRanges: ranges,
	}
}

// ListFirewalls returns the project's firewall rules.
func (c *Client) ListFirewalls(ctx context.Context) ([]*compute.Firewall, error) {
	var results []*compute.Firewall
	call := c.svc.Firewalls.List(c.project)
	err := call.Pages(ctx, func(page *compute.FirewallList) error {
		results = append(results, page.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list firewalls: %w", err)
	}
	return results, nil
}

// GetFirewall returns a single firewall rule.
func (c *Client) GetFirewall(ctx context.Context, name string) (*compute.Firewall, error) {
	return c.svc.Firewalls.Get(c.project, name).Context(ctx).Do()
}

// InsertFirewall starts creation of a firewall rule and returns the
// operation. Firewall mutations are global scope.
func (c *Client) InsertFirewall(ctx context.Context, spec FirewallSpec) (*compute.Operation, error) {
	return c.svc.Firewalls.Insert(c.project, spec.resource()).Context(ctx).Do()
}

// UpdateFirewall starts replacing an existing rule and returns the
// operation.
func (c *Client) UpdateFirewall(ctx context.Context, spec FirewallSpec) (*compute.Operation, error) {
	return c.svc.Firewalls.Update(c.project, spec.Name, spec.resource()).Context(ctx).Do()
}

// DeleteFirewall starts deletion of a firewall rule and returns the
// operation.
func (c *Client) DeleteFirewall(ctx context.Context, name string) (*compute.Operation, error) {
	return c.svc.Firewalls.Delete(c.project, name).Context(ctx).Do()
}
