// main.go
//
// Operator CLI for notesdb stores
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of notesdb.
// notesdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// notesdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with notesdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package main implements notesctl, the operator CLI for notesdb stores.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/localnerve/notesdb/internal/config"
	"github.com/localnerve/notesdb/internal/logging"
	"github.com/localnerve/notesdb/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// envFile is loaded before the configuration
	envFile string
	// version information
	version = "dev"
)

// openStore connects the configured store. Tests replace it.
var openStore = func(ctx context.Context) (store.Store, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.LogLevel, "console")
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", cfg.DBType, err)
	}
	return st, log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "notesctl",
	Short: "Operator commands for the notesdb store",
	Long: `notesctl works directly against the configured store. It grants roles,
approves notes, manages the department directory and prints moderation counts.

The store is selected with the same environment variables as the server.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile == "" {
			return nil
		}
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "f", "", "path to a .env file")
	rootCmd.AddCommand(roleCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(departmentsCmd)
	rootCmd.AddCommand(statsCmd)
}

// withStore opens the store for the duration of fn
func withStore(cmd *cobra.Command, fn func(ctx context.Context, st store.Store, log *zap.Logger) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, log, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(ctx, st, log)
}
