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
	instanceMachineType    string
	instanceImage          string
	instanceBootDiskSizeGb int64
	instanceNetwork        string
	instanceDeleteForce    bool
)

var instanceCmd = &cobra.Command{
	Use:     "instance",
	Aliases: []string{"instances"},
	Short:   "Manage Compute Engine instances",
}

var instanceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List instances in a zone",
	Example: `  # List instances in the default zone
  gcectl instance list

  # List instances in a specific zone
  gcectl instance list --zone us-east1-b`,
	RunE: runInstanceList,
}

var instanceGetCmd = &cobra.Command{
	Use:   "get NAME...",
	Short: "Show one or more instances",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInstanceGet,
}

var instanceCreateCmd = &cobra.Command{
	Use:   "create NAME...",
	Short: "Create one or more instances",
	Long: `Create one or more instances in a zone.

All creation requests are issued before any waiting starts; the command
then waits for every resulting operation and reports every failure, not
just the first.`,
	Example: `  # Create a single instance
  gcectl instance create web-1 --machine-type e2-medium

  # Create three instances in one batch
  gcectl instance create web-1 web-2 web-3 --machine-type e2-small`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstanceCreate,
}

var instanceDeleteCmd = &cobra.Command{
	Use:   "delete NAME...",
	Short: "Delete one or more instances",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInstanceDelete,
}

var instanceStartCmd = &cobra.Command{
	Use:   "start NAME...",
	Short: "Start one or more stopped instances",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInstanceStart,
}

var instanceStopCmd = &cobra.Command{
	Use:   "stop NAME...",
	Short: "Stop one or more running instances",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInstanceStop,
}

func init() {
	instanceCreateCmd.Flags().StringVar(&instanceMachineType, "machine-type", "e2-medium", "machine type short name")
	instanceCreateCmd.Flags().StringVar(&instanceImage, "image", "projects/debian-cloud/global/images/family/debian-12", "source image for the boot disk")
	instanceCreateCmd.Flags().Int64Var(&instanceBootDiskSizeGb, "boot-disk-size-gb", 0, "boot disk size in GB (0 uses the image default)")
	instanceCreateCmd.Flags().StringVar(&instanceNetwork, "network", "", "network to attach (default \"default\")")

	instanceDeleteCmd.Flags().BoolVarP(&instanceDeleteForce, "force", "f", false, "skip confirmation prompt")

	rootCmd.AddCommand(instanceCmd)
	instanceCmd.AddCommand(instanceListCmd)
	instanceCmd.AddCommand(instanceGetCmd)
	instanceCmd.AddCommand(instanceCreateCmd)
	instanceCmd.AddCommand(instanceDeleteCmd)
	instanceCmd.AddCommand(instanceStartCmd)
	instanceCmd.AddCommand(instanceStopCmd)
}

func runInstanceList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}

	instances, err := inv.client.ListInstances(ctx, inv.zone())
	if err != nil {
		return err
	}

	if yamlOutput() {
		return printYAML(instances)
	}

	fmt.Printf("Instances in %s (%d):\n\n", inv.zone(), len(instances))
	for _, inst := range instances {
		fmt.Printf("  %-30s %-12s %s\n", inst.Name, inst.Status, compute.NameFromLink(inst.MachineType))
	}
	return nil
}

func runInstanceGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}

	// Reads fail fast per item; there is no batch to wait on.
	for _, name := range args {
		inst, err := inv.client.GetInstance(ctx, inv.zone(), name)
		if err != nil {
			if compute.IsNotFound(err) {
				return fmt.Errorf("instance '%s' not found in zone %s", name, inv.zone())
			}
			return fmt.Errorf("failed to get instance %s: %w", name, err)
		}

		if yamlOutput() {
			if err := printYAML(inst); err != nil {
				return err
			}
			continue
		}
		fmt.Printf("%s\n", inst.Name)
		fmt.Printf("  Status:       %s\n", inst.Status)
		fmt.Printf("  Zone:         %s\n", compute.NameFromLink(inst.Zone))
		fmt.Printf("  Machine type: %s\n", compute.NameFromLink(inst.MachineType))
		if len(inst.NetworkInterfaces) > 0 {
			fmt.Printf("  Internal IP:  %s\n", inst.NetworkInterfaces[0].NetworkIP)
		}
	}
	return nil
}

func runInstanceCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}
	zone := inv.zone()
	scope := operations.ZoneScope(inv.project(), zone)

	var requestErrs []error
	for _, name := range args {
		spec := compute.InstanceSpec{
			Name:           name,
			MachineType:    instanceMachineType,
			Image:          instanceImage,
			BootDiskSizeGb: instanceBootDiskSizeGb,
			Network:        instanceNetwork,
		}

		op, err := inv.client.InsertInstance(ctx, zone, spec)
		if err != nil {
			requestErrs = append(requestErrs, fmt.Errorf("failed to create instance %s: %w", name, err))
			continue
		}

		name := name
		inv.tracker.Add(scope, op, func() error {
			inst, err := inv.client.GetInstance(ctx, zone, name)
			if err != nil {
				return fmt.Errorf("instance %s created but could not be fetched: %w", name, err)
			}
			if yamlOutput() {
				return printYAML(inst)
			}
			fmt.Printf("✅ Created instance %s (%s)\n", inst.Name, inst.Status)
			return nil
		})
	}

	if err := inv.drain(ctx); err != nil {
		requestErrs = append(requestErrs, err)
	}
	return errors.Join(requestErrs...)
}

func runInstanceDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}
	zone := inv.zone()
	scope := operations.ZoneScope(inv.project(), zone)

	ok, err := confirmDestructive(inv, instanceDeleteForce, "permanently delete", args)
	if err != nil || !ok {
		return err
	}

	var requestErrs []error
	for _, name := range args {
		op, err := inv.client.DeleteInstance(ctx, zone, name)
		if err != nil {
			requestErrs = append(requestErrs, fmt.Errorf("failed to delete instance %s: %w", name, err))
			continue
		}

		name := name
		inv.tracker.Add(scope, op, func() error {
			fmt.Printf("🗑️  Deleted instance %s\n", name)
			return nil
		})
	}

	if err := inv.drain(ctx); err != nil {
		requestErrs = append(requestErrs, err)
	}
	return errors.Join(requestErrs...)
}

func runInstanceStart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}
	zone := inv.zone()
	scope := operations.ZoneScope(inv.project(), zone)

	var requestErrs []error
	for _, name := range args {
		op, err := inv.client.StartInstance(ctx, zone, name)
		if err != nil {
			requestErrs = append(requestErrs, fmt.Errorf("failed to start instance %s: %w", name, err))
			continue
		}

		name := name
		inv.tracker.Add(scope, op, func() error {
			fmt.Printf("▶️  Started instance %s\n", name)
			return nil
		})
	}

	if err := inv.drain(ctx); err != nil {
		requestErrs = append(requestErrs, err)
	}
	return errors.Join(requestErrs...)
}

func runInstanceStop(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}
	zone := inv.zone()
	scope := operations.ZoneScope(inv.project(), zone)

	var requestErrs []error
	for _, name := range args {
		op, err := inv.client.StopInstance(ctx, zone, name)
		if err != nil {
			requestErrs = append(requestErrs, fmt.Errorf("failed to stop instance %s: %w", name, err))
			continue
		}

		name := name
		inv.tracker.Add(scope, op, func() error {
			fmt.Printf("⏹️  Stopped instance %s\n", name)
			return nil
		})
	}

	if err := inv.drain(ctx); err != nil {
		requestErrs = append(requestErrs, err)
	}
	return errors.Join(requestErrs...)
}
