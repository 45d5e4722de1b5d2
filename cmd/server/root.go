// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseluisng17/producthunt-next-replic/internal/config"
	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
)

// app carries state shared by subcommands once the root has loaded config.
type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "producthunt",
		Short: "Product listing and submission site",
		Long: `Product listing and submission site.

Visitors browse the product list. Signed-in users submit new products with a
logo image. Accounts are managed with the users command.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.loadConfig,
	}
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		"Path to config.yaml (overrides "+config.ConfigPathEnvVar+")")
	_ = cmd.MarkPersistentFlagFilename("config", "yaml", "yml")

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newUsersCmd(a))
	return cmd
}

// loadConfig runs before every subcommand.
func (a *app) loadConfig(cmd *cobra.Command, _ []string) error {
	if a.configPath != "" {
		if err := os.Setenv(config.ConfigPathEnvVar, a.configPath); err != nil {
			return fmt.Errorf("set %s: %w", config.ConfigPathEnvVar, err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logging.Init(logCfg)

	a.cfg = cfg
	return nil
}
