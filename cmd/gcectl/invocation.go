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
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/scttfrdmn/gcectl/internal/config"
	"github.com/scttfrdmn/gcectl/internal/logging"
	"github.com/scttfrdmn/gcectl/pkg/compute"
	"github.com/scttfrdmn/gcectl/pkg/operations"
)

// invocation bundles what one command run needs: resolved config, the
// API client, and a fresh operation tracker owned by this run alone.
type invocation struct {
	cfg     *config.Config
	client  *compute.Client
	waiter  *operations.Waiter
	tracker *operations.Tracker
	log     *zap.Logger
}

func newInvocation(ctx context.Context) (*invocation, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	project := cfg.Defaults.Project
	if flagProject != "" {
		project = flagProject
	}
	if project == "" {
		return nil, fmt.Errorf("no project configured: set --project, defaults.project in ~/.gcectl/config.yaml, or GOOGLE_CLOUD_PROJECT")
	}

	log, err := logging.New(verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	opts := []compute.ClientOption{compute.WithLogger(log)}
	if cfg.Auth.CredentialsFile != "" {
		opts = append(opts, compute.WithCredentialsFile(cfg.Auth.CredentialsFile))
	}

	client, err := compute.NewClient(ctx, project, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create compute client: %w", err)
	}

	waiter := operations.NewWaiter(client,
		operations.WithPollInterval(cfg.Operations.PollInterval),
		operations.WithLogger(log),
	)

	return &invocation{
		cfg:     cfg,
		client:  client,
		waiter:  waiter,
		tracker: operations.NewTracker(waiter),
		log:     log,
	}, nil
}

func (inv *invocation) project() string { return inv.client.Project() }

func (inv *invocation) zone() string {
	if flagZone != "" {
		return flagZone
	}
	return inv.cfg.Defaults.Zone
}

func (inv *invocation) region() string {
	if flagRegion != "" {
		return flagRegion
	}
	return inv.cfg.Defaults.Region
}

// drain waits out every operation submitted during this invocation,
// with a progress bar when there is more than one to watch.
func (inv *invocation) drain(ctx context.Context) error {
	total := inv.tracker.Pending()
	if total > 1 {
		bar := progressbar.NewOptions(total,
			progressbar.OptionSetDescription("⏳ Waiting for operations"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)
		inv.tracker.Notify = func(done, total int) {
			bar.Set(done)
		}
	}
	return inv.tracker.Wait(ctx)
}
