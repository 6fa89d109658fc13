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

	"github.com/google/uuid"
	compute "google.golang.org/api/compute/v1"
)

// InstanceSpec describes a new instance for InsertInstance.
type InstanceSpec struct {
	Name string
	// MachineType is the short name, e.g. "e2-medium".
	MachineType string
	// Image is a source image path, e.g.
	// "projects/debian-cloud/global/images/family/debian-12".
	Image string
	// BootDiskSizeGb of 0 takes the image default.
	BootDiskSizeGb int64
	// Network is the network short name; "default" when empty.
	Network string
}

// ListInstances returns the instances in a zone.
func (c *Client) ListInstances(ctx context.Context, zone string) ([]*compute.Instance, error) {
	var results []*compute.Instance
	call := c.svc.Instances.List(c.project, zone)
	err := call.Pages(ctx, func(page *compute.InstanceList) error {
		results = append(results, page.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list instances in %s: %w", zone, err)
	}
	return results, nil
}

// GetInstance returns a single instance.
func (c *Client) GetInstance(ctx context.Context, zone, name string) (*compute.Instance, error) {
	return c.svc.Instances.Get(c.project, zone, name).Context(ctx).Do()
}

// InsertInstance starts creation of an instance and returns the
// operation. A request id makes the insert idempotent if it has to be
// resent.
func (c *Client) InsertInstance(ctx context.Context, zone string, spec InstanceSpec) (*compute.Operation, error) {
	network := spec.Network
	if network == "" {
		network = "default"
	}

	inst := &compute.Instance{
		Name:        spec.Name,
		MachineType: fmt.Sprintf("zones/%s/machineTypes/%s", zone, spec.MachineType),
		Disks: []*compute.AttachedDisk{{
			Boot:       true,
			AutoDelete: true,
			InitializeParams: &compute.AttachedDiskInitializeParams{
				SourceImage: spec.Image,
				DiskSizeGb:  spec.BootDiskSizeGb,
			},
		}},
		NetworkInterfaces: []*compute.NetworkInterface{{
			Network: fmt.Sprintf("global/networks/%s", network),
			AccessConfigs: []*compute.AccessConfig{{
				Type: "ONE_TO_ONE_NAT",
				Name: "External NAT",
			}},
		}},
	}

	return c.svc.Instances.Insert(c.project, zone, inst).
		RequestId(uuid.New().String()).
		Context(ctx).Do()
}

// DeleteInstance starts deletion of an instance and returns the operation.
func (c *Client) DeleteInstance(ctx context.Context, zone, name string) (*compute.Operation, error) {
	return c.svc.Instances.Delete(c.project, zone, name).Context(ctx).Do()
}

// StartInstance starts a stopped instance and returns the operation.
func (c *Client) StartInstance(ctx context.Context, zone, name string) (*compute.Operation, error) {
	return c.svc.Instances.Start(c.project, zone, name).Context(ctx).Do()
}

// StopInstance stops a running instance and returns the operation.
func (c *Client) StopInstance(ctx context.Context, zone, name string) (*compute.Operation, error) {
	return c.svc.Instances.Stop(c.project, zone, name).Context(ctx).Do()
}
