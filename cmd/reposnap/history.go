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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/reposnaphq/reposnap/internal/config"
	"github.com/reposnaphq/reposnap/internal/history"
	"github.com/reposnaphq/reposnap/internal/ui"
)

// newHistoryCommand lists recent fetch runs from the history database.
func newHistoryCommand(flags *rootFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent fetch runs",
		Long: `List recent fetch runs recorded in the history database, newest first.

A run is recorded after every fetch, successful or not. Set
REPOSNAP_HISTORY_DB to an empty string to disable recording.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(flags.configPath)
			if err != nil {
				return err
			}
			return runHistory(cfg, limit, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")

	return cmd
}

func runHistory(cfg *config.Config, limit int, stdout io.Writer) error {
	if cfg.Defaults.HistoryDB == "" {
		ui.Info("history is disabled")
		return nil
	}

	store, err := history.Open(cfg.Defaults.HistoryDB)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		ui.Info("no runs recorded yet")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintln(stdout, formatRun(run))
	}
	return nil
}

// formatRun renders one history row as a single line.
func formatRun(run *history.Run) string {
	icon := ui.StyleSuccess.Render(ui.IconSuccess)
	detail := fmt.Sprintf("%d records, %d requests", run.Records, run.Requests)
	if run.Status != history.StatusOK {
		icon = ui.StyleError.Render(ui.IconError)
		detail = run.Error
		if run.Records > 0 {
			detail = fmt.Sprintf("%s (%d records kept)", run.Error, run.Records)
		}
	}

	return fmt.Sprintf("%s %s  %s  %s  %s",
		icon,
		ui.StyleDim.Render(run.StartedAt.Local().Format("2006-01-02 15:04:05")),
		ui.StyleValue.Render(fmt.Sprintf("%-16s", run.Username)),
		detail,
		ui.StyleDim.Render(run.OutputPath))
}
