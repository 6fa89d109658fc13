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
	"strings"

	"github.com/spf13/cobra"

	"github.com/scttfrdmn/gcectl/pkg/compute"
	"github.com/scttfrdmn/gcectl/pkg/operations"
)

var (
	firewallAllowed      []string
	firewallSourceRanges []string
	firewallNetwork      string
	firewallDeleteForce  bool
)

var firewallCmd = &cobra.Command{
	Use:     "firewall",
	Aliases: []string{"firewalls"},
	Short:   "Manage firewall rules",
}

var firewallListCmd = &cobra.Command{
	Use:   "list",
	Short: "List firewall rules",
	RunE:  runFirewallList,
}

var firewallGetCmd = &cobra.Command{
	Use:   "get NAME...",
	Short: "Show one or more firewall rules",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFirewallGet,
}

var firewallCreateCmd = &cobra.Command{
	Use:   "create NAME...",
	Short: "Create one or more firewall rules",
	Example: `  # Allow SSH from anywhere
  gcectl firewall create allow-ssh --allow tcp:22

  # Allow HTTP and HTTPS from one range
  gcectl firewall create allow-web --allow tcp:80 --allow tcp:443 --source-range 10.0.0.0/8`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFirewallCreate,
}

var firewallUpdateCmd = &cobra.Command{
	Use:   "update NAME...",
	Short: "Replace one or more existing firewall rules",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFirewallUpdate,
}

var firewallDeleteCmd = &cobra.Command{
	Use:   "delete NAME...",
	Short: "Delete one or more firewall rules",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFirewallDelete,
}

func init() {
	for _, cmd := range []*cobra.Command{firewallCreateCmd, firewallUpdateCmd} {
		cmd.Flags().StringArrayVar(&firewallAllowed, "allow", nil, "allowed traffic as protocol or protocol:port (repeatable)")
		cmd.Flags().StringArrayVar(&firewallSourceRanges, "source-range", nil, "source CIDR range (repeatable, default 0.0.0.0/0)")
		cmd.Flags().StringVar(&firewallNetwork, "network", "", "network the rule applies to (default \"default\")")
		cmd.MarkFlagRequired("allow")
	}
	firewallDeleteCmd.Flags().BoolVarP(&firewallDeleteForce, "force", "f", false, "skip confirmation prompt")

	rootCmd.AddCommand(firewallCmd)
	firewallCmd.AddCommand(firewallListCmd)
	firewallCmd.AddCommand(firewallGetCmd)
	firewallCmd.AddCommand(firewallCreateCmd)
	firewallCmd.AddCommand(firewallUpdateCmd)
	firewallCmd.AddCommand(firewallDeleteCmd)
}

func runFirewallList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}

	firewalls, err := inv.client.ListFirewalls(ctx)
	if err != nil {
		return err
	}

	if yamlOutput() {
		return printYAML(firewalls)
	}

	fmt.Printf("Firewall rules in %s (%d):\n\n", inv.project(), len(firewalls))
	for _, fw := range firewalls {
		var allowed []string
		for _, rule := range fw.Allowed {
			entry := rule.IPProtocol
			if len(rule.Ports) > 0 {
				entry += ":" + strings.Join(rule.Ports, ",")
			}
			allowed = append(allowed, entry)
		}
		fmt.Printf("  %-30s %-20s %s\n", fw.Name, compute.NameFromLink(fw.Network), strings.Join(allowed, " "))
	}
	return nil
}

func runFirewallGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}

	for _, name := range args {
		fw, err := inv.client.GetFirewall(ctx, name)
		if err != nil {
			if compute.IsNotFound(err) {
				return fmt.Errorf("firewall rule '%s' not found", name)
			}
			return fmt.Errorf("failed to get firewall rule %s: %w", name, err)
		}

		if yamlOutput() {
			if err := printYAML(fw); err != nil {
				return err
			}
			continue
		}
		fmt.Printf("%s\n", fw.Name)
		fmt.Printf("  Network: %s\n", compute.NameFromLink(fw.Network))
		for _, rule := range fw.Allowed {
			fmt.Printf("  Allow:   %s %s\n", rule.IPProtocol, strings.Join(rule.Ports, ","))
		}
		fmt.Printf("  Sources: %s\n", strings.Join(fw.SourceRanges, ", "))
	}
	return nil
}

func firewallSpec(name string) compute.FirewallSpec {
	return compute.FirewallSpec{
		Name:         name,
		Network:      firewallNetwork,
		Allowed:      firewallAllowed,
		SourceRanges: firewallSourceRanges,
	}
}

func runFirewallCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}
	scope := operations.GlobalScope(inv.project())

	var requestErrs []error
	for _, name := range args {
		op, err := inv.client.InsertFirewall(ctx, firewallSpec(name))
		if err != nil {
			requestErrs = append(requestErrs, fmt.Errorf("failed to create firewall rule %s: %w", name, err))
			continue
		}

		name := name
		inv.tracker.Add(scope, op, func() error {
			fmt.Printf("✅ Created firewall rule %s\n", name)
			return nil
		})
	}

	if err := inv.drain(ctx); err != nil {
		requestErrs = append(requestErrs, err)
	}
	return errors.Join(requestErrs...)
}

func runFirewallUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}
	scope := operations.GlobalScope(inv.project())

	var requestErrs []error
	for _, name := range args {
		op, err := inv.client.UpdateFirewall(ctx, firewallSpec(name))
		if err != nil {
			requestErrs = append(requestErrs, fmt.Errorf("failed to update firewall rule %s: %w", name, err))
			continue
		}

		name := name
		inv.tracker.Add(scope, op, func() error {
			fmt.Printf("✅ Updated firewall rule %s\n", name)
			return nil
		})
	}

	if err := inv.drain(ctx); err != nil {
		requestErrs = append(requestErrs, err)
	}
	return errors.Join(requestErrs...)
}

func runFirewallDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	inv, err := newInvocation(ctx)
	if err != nil {
		return err
	}
	scope := operations.GlobalScope(inv.project())

	ok, err := confirmDestructive(inv, firewallDeleteForce, "permanently delete firewall rules", args)
	if err != nil || !ok {
		return err
	}

	var requestErrs []error
	for _, name := range args {
		op, err := inv.client.DeleteFirewall(ctx, name)
		if err != nil {
			requestErrs = append(requestErrs, fmt.Errorf("failed to delete firewall rule %s: %w", name, err))
			continue
		}

		name := name
		inv.tracker.Add(scope, op, func() error {
			fmt.Printf("🗑️  Deleted firewall rule %s\n", name)
			return nil
		})
	}

	if err := inv.drain(ctx); err != nil {
		requestErrs = append(requestErrs, err)
	}
	return errors.Join(requestErrs...)
}
