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

// Package config provides configuration management for gcectl.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Defaults struct {
		Project string `mapstructure:"project"`
		Zone    string `mapstructure:"zone"`
		Region  string `mapstructure:"region"`
	} `mapstructure:"defaults"`

	Auth struct {
		// CredentialsFile is a service account key file. Empty means
		// application default credentials.
		CredentialsFile string `mapstructure:"credentials_file"`
	} `mapstructure:"auth"`

	Operations struct {
		// PollInterval is the pause between operation status polls.
		PollInterval time.Duration `mapstructure:"poll_interval"`
		// StabilizeTimeout bounds managed-group stabilization waits.
		StabilizeTimeout time.Duration `mapstructure:"stabilize_timeout"`
	} `mapstructure:"operations"`

	Preferences struct {
		ConfirmDestructive bool `mapstructure:"confirm_destructive"`
	} `mapstructure:"preferences"`
}

// Load loads the configuration. With an empty file it searches the
// default locations; an explicit file must exist and parse.
func Load(file string) (*Config, error) {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config directory: %w", err)
		}
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	// Set defaults
	v.SetDefault("defaults.zone", "us-central1-a")
	v.SetDefault("defaults.region", "us-central1")
	v.SetDefault("operations.poll_interval", "150ms")
	v.SetDefault("operations.stabilize_timeout", "10m")
	v.SetDefault("preferences.confirm_destructive", true)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// A missing file in the search path is fine; an explicit one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Environment fallbacks shared with the rest of the Google Cloud
	// tooling.
	if cfg.Defaults.Project == "" {
		cfg.Defaults.Project = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
	if cfg.Auth.CredentialsFile == "" {
		cfg.Auth.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}

	return &cfg, nil
}

// GetConfigDir returns the configuration directory for gcectl.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".gcectl"), nil
}

// EnsureConfigDir ensures the configuration directory exists.
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(configDir, 0755)
}
