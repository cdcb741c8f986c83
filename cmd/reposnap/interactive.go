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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/reposnaphq/reposnap/internal/config"
	"github.com/reposnaphq/reposnap/internal/github"
	"github.com/reposnaphq/reposnap/internal/ui"
)

// exitWord ends the interactive session.
const exitWord = "exit"

// runInteractive prompts for usernames until the user types "exit" or
// aborts the form. The document is rewritten after every fetch, so
// quitting mid-session never loses completed work.
func runInteractive(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	fetcher := github.NewFetcher(newClient(cfg))
	store := openHistory(ctx, cfg.Defaults.HistoryDB)
	if store != nil {
		defer store.Close()
	}

	fmt.Fprintln(os.Stderr, ui.StyleTitle.Render("reposnap")+" "+ui.StyleDim.Render(version))
	ui.Detail("type a GitHub username to fetch, or %q to quit", exitWord)
	ui.Newline()

	outputPath := cfg.Defaults.OutputFile
	writer := newDocumentWriter(outputPath, stdout)

	for {
		username, err := promptUsername()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if strings.EqualFold(username, exitWord) {
			return nil
		}

		path, err := promptOutputPath(outputPath)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if path != outputPath {
			// A new destination starts a fresh document.
			outputPath = path
			writer = newDocumentWriter(outputPath, stdout)
		}

		// Failures are reported inside fetchOne and the session keeps
		// prompting. Flushing on failure too means salvaged partial
		// results land even if the next action is quitting.
		_ = fetchOne(ctx, fetcher, writer, store, cfg.Defaults.PageSize, outputPath, username)

		if err := writer.Flush(); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if outputPath != stdoutPath {
			ui.File(outputPath)
		}
	}
}

// promptUsername shows the input form and returns the trimmed entry.
func promptUsername() (string, error) {
	var username string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("GitHub username").
				Description(`Fetch all public repositories owned by this user ("exit" to quit).`).
				Value(&username).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("username cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(username), nil
}

// promptOutputPath asks where to write the document. The previous answer
// is the default, so pressing enter keeps the current destination.
func promptOutputPath(current string) (string, error) {
	path := current

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output file").
				Description(`Where to write the JSON document ("-" for stdout).`).
				Value(&path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("output file cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(path), nil
}
