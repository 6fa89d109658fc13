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
	"time"

	"github.com/spf13/cobra"

	"github.com/scttfrdmn/gcectl/pkg/compute"
	"github.com/scttfrdmn/gcectl/pkg/operations"
)

var managedGroupCmd = &cobra.Command{
	Use:     "managed-group",
	Aliases: []string{"mig"},
	Short:   "Manage instance groups",
}

var managedGroupGetCmd = &cobra.Command{
	Use:   "get NAME...",
	Short: "Show one or more managed instance groups",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runManagedGroupGet,
}

var managedGroupResizeCmd = &cobra.Command{
	Use:   "resize NAME...",
	Short: "Resize one or more managed instance groups",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runManagedGroupResize,
}

var (
	groupRegional    bool
	groupTargetSize  int64
	groupWaitStable  bool
	groupWaitTimeout time.Duration
)

func init() {
	rootCmd.AddCommand(managedGroupCmd)
	managedGroupCmd.AddCommand(managedGroupGetCmd)
	managedGroupCmd.AddCommand(managedGroupResizeCmd)

	managedGroupGetCmd.Flags().BoolVar(&groupRegional, "regional", false, "Treat NAME as a regional group")

	managedGroupResizeCmd.Flags().BoolVar(&groupRegional, "regional", false, "Treat NAME as a regional group")
	managedGroupResizeCmd.Flags().Int64Var(&groupTargetSize, "size", 0, "Target number of instances (required)")
	managedGroupResizeCmd.Flags().BoolVar(&groupWaitStable, "wait", false, "After the resize completes, wait for the group to stabilize")
	managedGroupResizeCmd.Flags().DurationVar(&groupWaitTimeout, "timeout", 0, "Stabilization wait limit (defaults to operations.stabilize_timeout)")
	managedGroupResizeCmd.MarkFlagRequired("size")
}

func runManagedGroupGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}

	for _, name := range args {
		var group *groupSummary
		if groupRegional {
			mgr, err := inv.client.GetRegionGroup(ctx, inv.region(), name)
			if err != nil {
				return describeGroupError(name, err)
			}
			group = &groupSummary{
				Name: mgr.Name, TargetSize: mgr.TargetSize,
				Stable: mgr.Status != nil && mgr.Status.IsStable,
			}
		} else {
			mgr, err := inv.client.GetGroup(ctx, inv.zone(), name)
			if err != nil {
				return describeGroupError(name, err)
			}
			group = &groupSummary{
				Name: mgr.Name, TargetSize: mgr.TargetSize,
				Stable: mgr.Status != nil && mgr.Status.IsStable,
			}
		}

		if yamlOutput() {
			if err := printYAML(group); err != nil {
				return err
			}
			continue
		}
		state := "converging"
		if group.Stable {
			state = "stable"
		}
		fmt.Printf("%s\n", group.Name)
		fmt.Printf("  Target size: %d\n", group.TargetSize)
		fmt.Printf("  State:       %s\n", state)
	}
	return nil
}

type groupSummary struct {
	Name       string `yaml:"name"`
	TargetSize int64  `yaml:"targetSize"`
	Stable     bool   `yaml:"stable"`
}

func describeGroupError(name string, err error) error {
	if compute.IsNotFound(err) {
		return fmt.Errorf("managed instance group '%s' not found", name)
	}
	return fmt.Errorf("failed to get managed instance group %s: %w", name, err)
}

func runManagedGroupResize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}
	if groupTargetSize < 0 {
		return fmt.Errorf("--size must be zero or positive, got %d", groupTargetSize)
	}

	var requestErrs []error
	for _, name := range args {
		name := name
		if groupRegional {
			op, err := inv.client.ResizeRegionGroup(ctx, inv.region(), name, groupTargetSize)
			if err != nil {
				requestErrs = append(requestErrs, fmt.Errorf("failed to resize group %s: %w", name, err))
				continue
			}
			inv.tracker.Add(operations.RegionScope(inv.project(), inv.region()), op, func() error {
				fmt.Printf("📏 Group %s resized to %d\n", name, groupTargetSize)
				return nil
			})
		} else {
			op, err := inv.client.ResizeGroup(ctx, inv.zone(), name, groupTargetSize)
			if err != nil {
				requestErrs = append(requestErrs, fmt.Errorf("failed to resize group %s: %w", name, err))
				continue
			}
			inv.tracker.Add(operations.ZoneScope(inv.project(), inv.zone()), op, func() error {
				fmt.Printf("📏 Group %s resized to %d\n", name, groupTargetSize)
				return nil
			})
		}
	}

	if err := inv.drain(ctx); err != nil {
		requestErrs = append(requestErrs, err)
	}
	if err := errors.Join(requestErrs...); err != nil {
		return err
	}

	if !groupWaitStable || groupRegional {
		// Stabilization polling is zonal; regional groups report done at resize.
		return nil
	}

	timeout := groupWaitTimeout
	if timeout <= 0 {
		timeout = inv.cfg.Operations.StabilizeTimeout
	}
	for _, name := range args {
		stable, err := inv.client.WaitGroupStable(ctx, inv.zone(), name, inv.cfg.Operations.PollInterval, timeout)
		if err != nil {
			return fmt.Errorf("failed while waiting for group %s to stabilize: %w", name, err)
		}
		if !stable {
			fmt.Printf("⚠️  Group %s is still converging after %s\n", name, timeout)
			continue
		}
		fmt.Printf("✅ Group %s is stable\n", name)
	}
	return nil
}
