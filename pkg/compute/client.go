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

// Package compute wraps the Compute Engine REST API with the narrow
// surface the gcectl commands need: per-resource mutations that return
// operations, the per-scope operation status calls, and list/get reads.
package compute

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	compute "google.golang.org/api/compute/v1"
	"google.golang.org/api/option"
)

// Client is a thin wrapper around the generated Compute Engine service,
// bound to a single project.
type Client struct {
	svc     *compute.Service
	project string
	log     *zap.Logger
}

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	credentialsFile string
	log             *zap.Logger
}

// WithCredentialsFile authenticates with a service account key file
// instead of application default credentials.
func WithCredentialsFile(path string) ClientOption {
	return func(c *clientConfig) { c.credentialsFile = path }
}

// WithLogger attaches a logger for API call debug output.
func WithLogger(log *zap.Logger) ClientOption {
	return func(c *clientConfig) { c.log = log }
}

// NewClient authenticates and opens a connection to the Compute Engine
// API for the given project. Without a credentials file it falls back to
// application default credentials.
func NewClient(ctx context.Context, project string, opts ...ClientOption) (*Client, error) {
	if project == "" {
		return nil, fmt.Errorf("project is required")
	}

	cfg := clientConfig{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}

	var svcOpts []option.ClientOption
	if cfg.credentialsFile != "" {
		svcOpts = append(svcOpts, option.WithCredentialsFile(cfg.credentialsFile))
	} else {
		ts, err := google.DefaultTokenSource(ctx, compute.ComputeScope)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve default credentials: %w", err)
		}
		svcOpts = append(svcOpts, option.WithTokenSource(ts))
	}

	svc, err := compute.NewService(ctx, svcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create compute service: %w", err)
	}

	return &Client{svc: svc, project: project, log: cfg.log}, nil
}

// Project returns the project the client is bound to.
func (c *Client) Project() string { return c.project }

// GetGlobalOperation returns the current state of a global operation.
func (c *Client) GetGlobalOperation(ctx context.Context, project, name string) (*compute.Operation, error) {
	c.log.Debug("get global operation", zap.String("operation", name))
	return c.svc.GlobalOperations.Get(project, name).Context(ctx).Do()
}

// GetRegionOperation returns the current state of a regional operation.
func (c *Client) GetRegionOperation(ctx context.Context, project, region, name string) (*compute.Operation, error) {
	c.log.Debug("get region operation", zap.String("region", region), zap.String("operation", name))
	return c.svc.RegionOperations.Get(project, region, name).Context(ctx).Do()
}

// GetZoneOperation returns the current state of a zonal operation.
func (c *Client) GetZoneOperation(ctx context.Context, project, zone, name string) (*compute.Operation, error) {
	c.log.Debug("get zone operation", zap.String("zone", zone), zap.String("operation", name))
	return c.svc.ZoneOperations.Get(project, zone, name).Context(ctx).Do()
}
