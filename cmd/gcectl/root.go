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
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	verbose      bool
	flagProject  string
	flagZone     string
	flagRegion   string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "gcectl",
	Short: "Manage Compute Engine resources from the command line",
	Long: `gcectl is a CLI tool for managing Google Compute Engine resources:
instances, disks, firewall rules, networks, and managed instance groups.

Mutating commands accept multiple resource names, issue all the requests
up front, and then wait for every resulting server-side operation to
finish, reporting every failure in the batch rather than stopping at the
first one.

For more information, visit: https://github.com/scttfrdmn/gcectl`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gcectl/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&flagProject, "project", "", "project ID (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagZone, "zone", "", "zone (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagRegion, "region", "", "region (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text or yaml")
}
