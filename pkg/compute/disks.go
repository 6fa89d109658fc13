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

// DiskSpec describes a new disk for InsertDisk.
type DiskSpec struct {
	Name   string
	SizeGb int64
	// Type is the disk type short name; "pd-standard" when empty.
	Type string
	// SourceImage optionally seeds the disk from an image.
	SourceImage string
}

// ListDisks returns the disks in a zone.
func (c *Client) ListDisks(ctx context.Context, zone string) ([]*compute.Disk, error) {
	var results []*compute.Disk
	call := c.svc.Disks.List(c.project, zone)
	err := call.Pages(ctx, func(page *compute.DiskList) error {
		results = append(results, page.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list disks in %s: %w", zone, err)
	}
	return results, nil
}

// GetDisk returns a single disk.
func (c *Client) GetDisk(ctx context.Context, zone, name string) (*compute.Disk, error) {
	return c.svc.Disks.Get(c.project, zone, name).Context(ctx).Do()
}

// InsertDisk starts creation of a disk and returns the operation.
func (c *Client) InsertDisk(ctx context.Context, zone string, spec DiskSpec) (*compute.Operation, error) {
	diskType := spec.Type
	if diskType == "" {
		diskType = "pd-standard"
	}

	disk := &compute.Disk{
		Name:        spec.Name,
		SizeGb:      spec.SizeGb,
		Type:        fmt.Sprintf("zones/%s/diskTypes/%s", zone, diskType),
		SourceImage: spec.SourceImage,
	}

	return c.svc.Disks.Insert(c.project, zone, disk).
		RequestId(uuid.New().String()).
		Context(ctx).Do()
}

// DeleteDisk starts deletion of a disk and returns the operation.
func (c *Client) DeleteDisk(ctx context.Context, zone, name string) (*compute.Operation, error) {
	return c.svc.Disks.Delete(c.project, zone, name).Context(ctx).Do()
}

// ResizeDisk starts growing a disk to sizeGb and returns the operation.
// Compute Engine only grows disks; a smaller size fails server-side.
func (c *Client) ResizeDisk(ctx context.Context, zone, name string, sizeGb int64) (*compute.Operation, error) {
	req := &compute.DisksResizeRequest{SizeGb: sizeGb}
	return c.svc.Disks.Resize(c.project, zone, name, req).Context(ctx).Do()
}
