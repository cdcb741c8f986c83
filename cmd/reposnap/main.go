// Copyright 2025 Reposnap, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
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
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/reposnaphq/reposnap/internal/config"
	"github.com/reposnaphq/reposnap/internal/logging"
)

var version = "dev"

func main() {
	rootCmd := newRootCommand()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// rootFlags holds the flag values shared across the root command and
// its subcommands.
type rootFlags struct {
	configPath string
	outputFile string
	pageSize   int
	verbose    bool
}

func newRootCommand() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "reposnap [username...]",
		Short: "Fetch GitHub repository listings into a JSON report",
		Long: `Reposnap fetches the public repositories owned by one or more GitHub
users and writes a normalized JSON report. Pass usernames as arguments
for batch mode, or run without arguments for an interactive prompt.`,
		Version:       version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRunConfig(cmd, &flags)
			if err != nil {
				return err
			}

			ctx := contextWithLogger(cmd, flags.verbose)
			if len(args) == 0 {
				return runInteractive(ctx, cfg, cmd.OutOrStdout())
			}
			return runFetch(ctx, cfg, args, cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to config file (default: .reposnap.yaml, then ~/.reposnap/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().StringVarP(&flags.outputFile, "output", "o", "", `Output file path ("-" for stdout)`)
	cmd.Flags().IntVar(&flags.pageSize, "page-size", 0, "Repositories per API page (1-100)")

	cmd.AddCommand(newHistoryCommand(&flags))

	return cmd
}

// loadRunConfig resolves the effective configuration for one invocation.
// Flags set on the command line win over environment and file values.
func loadRunConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("output") {
		cfg.Defaults.OutputFile = flags.outputFile
	}
	if cmd.Flags().Changed("page-size") {
		cfg.Defaults.PageSize = flags.pageSize
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// contextWithLogger attaches a logger to the command context. Debug
// logging is off unless --verbose is set.
func contextWithLogger(cmd *cobra.Command, verbose bool) context.Context {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := logging.New(cmd.ErrOrStderr(), level)
	return logging.WithLogger(cmd.Context(), logger)
}
