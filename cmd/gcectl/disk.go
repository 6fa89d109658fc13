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

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scttfrdmn/gcectl/pkg/compute"
	"github.com/scttfrdmn/gcectl/pkg/operations"
)

var (
	diskSizeGb      int64
	diskType        string
	diskSourceImage string
	diskDeleteForce bool
)

var diskCmd = &cobra.Command{
	Use:     "disk",
	Aliases: []string{"disks"},
	Short:   "Manage Compute Engine persistent disks",
}

var diskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List disks in a zone",
	RunE:  runDiskList,
}

var diskGetCmd = &cobra.Command{
	Use:   "get NAME...",
	Short: "Show one or more disks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDiskGet,
}

var diskCreateCmd = &cobra.Command{
	Use:   "create NAME...",
	Short: "Create one or more disks",
	Example: `  # Create a 100 GB disk
  gcectl disk create data-1 --size-gb 100

  # Create two disks seeded from an image
  gcectl disk create boot-1 boot-2 --size-gb 20 --image projects/debian-cloud/global/images/family/debian-12`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDiskCreate,
}

var diskDeleteCmd = &cobra.Command{
	Use:   "delete NAME...",
	Short: "Delete one or more disks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDiskDelete,
}

var diskResizeCmd = &cobra.Command{
	Use:   "resize NAME...",
	Short: "Grow one or more disks to a new size",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDiskResize,
}

func init() {
	diskCreateCmd.Flags().Int64Var(&diskSizeGb, "size-gb", 10, "disk size in GB")
	diskCreateCmd.Flags().StringVar(&diskType, "type", "", "disk type short name (default \"pd-standard\")")
	diskCreateCmd.Flags().StringVar(&diskSourceImage, "image", "", "optional source image to seed the disk from")
	diskResizeCmd.Flags().Int64Var(&diskSizeGb, "size-gb", 0, "new disk size in GB (required)")
	diskDeleteCmd.Flags().BoolVarP(&diskDeleteForce, "force", "f", false, "skip confirmation prompt")
	diskResizeCmd.MarkFlagRequired("size-gb")

	rootCmd.AddCommand(diskCmd)
	diskCmd.AddCommand(diskListCmd)
	diskCmd.AddCommand(diskGetCmd)
	diskCmd.AddCommand(diskCreateCmd)
	diskCmd.AddCommand(diskDeleteCmd)
	diskCmd.AddCommand(diskResizeCmd)
}

func runDiskList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}

	disks, err := inv.client.ListDisks(ctx, inv.zone())
	if err != nil {
		return err
	}

	if yamlOutput() {
		return printYAML(disks)
	}

	fmt.Printf("Disks in %s (%d):\n\n", inv.zone(), len(disks))
	for _, disk := range disks {
		fmt.Printf("  %-30s %-12s %4d GB  %s\n", disk.Name, disk.Status, disk.SizeGb, compute.NameFromLink(disk.Type))
	}
	return nil
}

func runDiskGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}

	for _, name := range args {
		disk, err := inv.client.GetDisk(ctx, inv.zone(), name)
		if err != nil {
			if compute.IsNotFound(err) {
				return fmt.Errorf("disk '%s' not found in zone %s", name, inv.zone())
			}
			return fmt.Errorf("failed to get disk %s: %w", name, err)
		}

		if yamlOutput() {
			if err := printYAML(disk); err != nil {
				return err
			}
			continue
		}
		fmt.Printf("%s\n", disk.Name)
		fmt.Printf("  Status: %s\n", disk.Status)
		fmt.Printf("  Size:   %d GB\n", disk.SizeGb)
		fmt.Printf("  Type:   %s\n", compute.NameFromLink(disk.Type))
	}
	return nil
}

func runDiskCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}
	zone := inv.zone()
	scope := operations.ZoneScope(inv.project(), zone)

	var requestErrs []error
	for _, name := range args {
		spec := compute.DiskSpec{
			Name:        name,
			SizeGb:      diskSizeGb,
			Type:        diskType,
			SourceImage: diskSourceImage,
		}

		op, err := inv.client.InsertDisk(ctx, zone, spec)
		if err != nil {
			requestErrs = append(requestErrs, fmt.Errorf("failed to create disk %s: %w", name, err))
			continue
		}

		name := name
		inv.tracker.Add(scope, op, func() error {
			disk, err := inv.client.GetDisk(ctx, zone, name)
			if err != nil {
				return fmt.Errorf("disk %s created but could not be fetched: %w", name, err)
			}
			if yamlOutput() {
				return printYAML(disk)
			}
			fmt.Printf("✅ Created disk %s (%d GB)\n", disk.Name, disk.SizeGb)
			return nil
		})
	}

	if err := inv.drain(ctx); err != nil {
		requestErrs = append(requestErrs, err)
	}
	return errors.Join(requestErrs...)
}

func runDiskDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}
	zone := inv.zone()
	scope := operations.ZoneScope(inv.project(), zone)

	ok, err := confirmDestructive(inv, diskDeleteForce, "permanently delete", args)
	if err != nil || !ok {
		return err
	}

	var requestErrs []error
	for _, name := range args {
		op, err := inv.client.DeleteDisk(ctx, zone, name)
		if err != nil {
			requestErrs = append(requestErrs, fmt.Errorf("failed to delete disk %s: %w", name, err))
			continue
		}

		name := name
		inv.tracker.Add(scope, op, func() error {
			fmt.Printf("🗑️  Deleted disk %s\n", name)
			return nil
		})
	}

	if err := inv.drain(ctx); err != nil {
		requestErrs = append(requestErrs, err)
	}
	return errors.Join(requestErrs...)
}

func runDiskResize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}
	zone := inv.zone()
	scope := operations.ZoneScope(inv.project(), zone)

	var requestErrs []error
	for _, name := range args {
		op, err := inv.client.ResizeDisk(ctx, zone, name, diskSizeGb)
		if err != nil {
			requestErrs = append(requestErrs, fmt.Errorf("failed to resize disk %s: %w", name, err))
			continue
		}

		name := name
		inv.tracker.Add(scope, op, func() error {
			fmt.Printf("✅ Resized disk %s to %d GB\n", name, diskSizeGb)
			return nil
		})
	}

	if err := inv.drain(ctx); err != nil {
		requestErrs = append(requestErrs, err)
	}
	return errors.Join(requestErrs...)
}
