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
	"bufio"
	"fmt"
	"os"
	"strings"
)

// confirmDestructive prompts before a destructive batch unless --force was
// given or confirmation is disabled in config. Returns false when the user
// declines; the command should then exit without error.
func confirmDestructive(inv *invocation, force bool, action string, names []string) (bool, error) {
	if force || !inv.cfg.Preferences.ConfirmDestructive {
		return true, nil
	}

	fmt.Printf("⚠️  This will %s: %s\n", action, strings.Join(names, ", "))
	fmt.Printf("Continue? (y/N): ")

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer != "y" && answer != "yes" {
		fmt.Printf("❌ Cancelled.\n")
		return false, nil
	}
	return true, nil
}
