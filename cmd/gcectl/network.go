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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scttfrdmn/gcectl/pkg/compute"
)

var networkCmd = &cobra.Command{
	Use:     "network",
	Aliases: []string{"networks"},
	Short:   "Inspect networks",
}

var networkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List networks",
	RunE:  runNetworkList,
}

var networkGetCmd = &cobra.Command{
	Use:   "get NAME...",
	Short: "Show one or more networks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNetworkGet,
}

func init() {
	rootCmd.AddCommand(networkCmd)
	networkCmd.AddCommand(networkListCmd)
	networkCmd.AddCommand(networkGetCmd)
}

func runNetworkList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}

	networks, err := inv.client.ListNetworks(ctx)
	if err != nil {
		return err
	}

	if yamlOutput() {
		return printYAML(networks)
	}

	fmt.Printf("Networks in %s (%d):\n\n", inv.project(), len(networks))
	for _, network := range networks {
		mode := "custom"
		if network.AutoCreateSubnetworks {
			mode = "auto"
		}
		fmt.Printf("  %-30s subnets: %s\n", network.Name, mode)
	}
	return nil
}

func runNetworkGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}

	for _, name := range args {
		network, err := inv.client.GetNetwork(ctx, name)
		if err != nil {
			if compute.IsNotFound(err) {
				return fmt.Errorf("network '%s' not found", name)
			}
			return fmt.Errorf("failed to get network %s: %w", name, err)
		}

		if yamlOutput() {
			if err := printYAML(network); err != nil {
				return err
			}
			continue
		}
		fmt.Printf("%s\n", network.Name)
		fmt.Printf("  Auto subnets: %t\n", network.AutoCreateSubnetworks)
		fmt.Printf("  Subnetworks:  %d\n", len(network.Subnetworks))
	}
	return nil
}
