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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() failed: %v", err)
	}

	// Should be non-empty
	if dir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	// Should end with .gcectl
	if filepath.Base(dir) != ".gcectl" {
		t.Errorf("GetConfigDir() = %s, want directory ending with .gcectl", dir)
	}

	// Should be an absolute path
	if !filepath.IsAbs(dir) {
		t.Errorf("GetConfigDir() = %s, want absolute path", dir)
	}
}

func TestEnsureConfigDir(t *testing.T) {
	// Get original home
	originalHome := os.Getenv("HOME")
	defer func() {
		if originalHome != "" {
			os.Setenv("HOME", originalHome)
		}
	}()

	// Create temp directory for testing
	tempDir := t.TempDir()
	os.Setenv("HOME", tempDir)

	// Ensure config directory
	err := EnsureConfigDir()
	if err != nil {
		t.Fatalf("EnsureConfigDir() failed: %v", err)
	}

	// Check that directory was created
	configDir := filepath.Join(tempDir, ".gcectl")
	info, err := os.Stat(configDir)
	if err != nil {
		t.Fatalf("Config directory was not created: %v", err)
	}

	// Check it's a directory
	if !info.IsDir() {
		t.Error("Config path is not a directory")
	}

	// Check permissions
	if info.Mode().Perm() != 0755 {
		t.Errorf("Config directory has permissions %o, want 0755", info.Mode().Perm())
	}
}

func TestLoadDefaults(t *testing.T) {
	// Get original home
	originalHome := os.Getenv("HOME")
	defer func() {
		if originalHome != "" {
			os.Setenv("HOME", originalHome)
		}
	}()

	// Create temp directory for testing (no config file)
	tempDir := t.TempDir()
	os.Setenv("HOME", tempDir)
	os.Unsetenv("GOOGLE_CLOUD_PROJECT")
	os.Unsetenv("GOOGLE_APPLICATION_CREDENTIALS")

	// Load should succeed even without config file (use defaults)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Defaults.Zone != "us-central1-a" {
		t.Errorf("Default zone = %s, want us-central1-a", cfg.Defaults.Zone)
	}

	if cfg.Defaults.Region != "us-central1" {
		t.Errorf("Default region = %s, want us-central1", cfg.Defaults.Region)
	}

	if cfg.Operations.PollInterval != 150*time.Millisecond {
		t.Errorf("Default poll_interval = %v, want 150ms", cfg.Operations.PollInterval)
	}

	if cfg.Operations.StabilizeTimeout != 10*time.Minute {
		t.Errorf("Default stabilize_timeout = %v, want 10m", cfg.Operations.StabilizeTimeout)
	}

	if !cfg.Preferences.ConfirmDestructive {
		t.Error("Default confirm_destructive should be true")
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	// Get original home
	originalHome := os.Getenv("HOME")
	defer func() {
		if originalHome != "" {
			os.Setenv("HOME", originalHome)
		}
	}()

	// Create temp directory and config file
	tempDir := t.TempDir()
	os.Setenv("HOME", tempDir)
	os.Unsetenv("GOOGLE_CLOUD_PROJECT")
	os.Unsetenv("GOOGLE_APPLICATION_CREDENTIALS")

	configDir := filepath.Join(tempDir, ".gcectl")
	err := os.MkdirAll(configDir, 0755)
	if err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	// Write config file
	configContent := `defaults:
  project: my-project
  zone: europe-west1-b
  region: europe-west1

auth:
  credentials_file: /tmp/sa-key.json

operations:
  poll_interval: 500ms
  stabilize_timeout: 2m

preferences:
  confirm_destructive: false
`
	configFile := filepath.Join(configDir, "config.yaml")
	err = os.WriteFile(configFile, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	// Load config
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check loaded values
	if cfg.Defaults.Project != "my-project" {
		t.Errorf("Loaded project = %s, want my-project", cfg.Defaults.Project)
	}

	if cfg.Defaults.Zone != "europe-west1-b" {
		t.Errorf("Loaded zone = %s, want europe-west1-b", cfg.Defaults.Zone)
	}

	if cfg.Defaults.Region != "europe-west1" {
		t.Errorf("Loaded region = %s, want europe-west1", cfg.Defaults.Region)
	}

	if cfg.Auth.CredentialsFile != "/tmp/sa-key.json" {
		t.Errorf("Loaded credentials_file = %s, want /tmp/sa-key.json", cfg.Auth.CredentialsFile)
	}

	if cfg.Operations.PollInterval != 500*time.Millisecond {
		t.Errorf("Loaded poll_interval = %v, want 500ms", cfg.Operations.PollInterval)
	}

	if cfg.Operations.StabilizeTimeout != 2*time.Minute {
		t.Errorf("Loaded stabilize_timeout = %v, want 2m", cfg.Operations.StabilizeTimeout)
	}

	if cfg.Preferences.ConfirmDestructive {
		t.Error("Loaded confirm_destructive should be false")
	}
}

func TestLoadExplicitFile(t *testing.T) {
	tempDir := t.TempDir()

	configFile := filepath.Join(tempDir, "custom.yaml")
	err := os.WriteFile(configFile, []byte("defaults:\n  project: explicit-project\n"), 0644)
	if err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Defaults.Project != "explicit-project" {
		t.Errorf("Loaded project = %s, want explicit-project", cfg.Defaults.Project)
	}

	// An explicit file that does not exist is an error, unlike the
	// default search path.
	_, err = Load(filepath.Join(tempDir, "missing.yaml"))
	if err == nil {
		t.Error("Load() with missing explicit file should fail")
	}
}

func TestLoadProjectFromEnvironment(t *testing.T) {
	originalHome := os.Getenv("HOME")
	originalProject := os.Getenv("GOOGLE_CLOUD_PROJECT")
	defer func() {
		if originalHome != "" {
			os.Setenv("HOME", originalHome)
		}
		os.Setenv("GOOGLE_CLOUD_PROJECT", originalProject)
	}()

	tempDir := t.TempDir()
	os.Setenv("HOME", tempDir)
	os.Setenv("GOOGLE_CLOUD_PROJECT", "env-project")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Defaults.Project != "env-project" {
		t.Errorf("Project = %s, want env-project from environment", cfg.Defaults.Project)
	}
}
