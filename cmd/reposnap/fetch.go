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
	"time"

	"github.com/reposnaphq/reposnap/internal/config"
	snaperrors "github.com/reposnaphq/reposnap/internal/errors"
	"github.com/reposnaphq/reposnap/internal/github"
	"github.com/reposnaphq/reposnap/internal/history"
	"github.com/reposnaphq/reposnap/internal/logging"
	"github.com/reposnaphq/reposnap/internal/output"
	"github.com/reposnaphq/reposnap/internal/ui"
)

// stdoutPath selects stdout as the output destination.
const stdoutPath = "-"

// newClient builds the client stack for the configured endpoint. Tests
// replace this to run the commands against a MockClient.
var newClient = func(cfg *config.Config) github.Client {
	rest := github.NewRESTClient(github.ClientConfig{
		BaseURL: cfg.GitHub.APIEndpoint,
		Timeout: cfg.HTTP.Timeout.Duration,
	})
	return github.NewRetryClient(rest, &github.RetryConfig{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay.Duration,
		MaxDelay:    cfg.Retry.MaxDelay.Duration,
	})
}

// runFetch fetches every username in order and writes the combined
// document once at the end. A failed username is reported and skipped;
// the first failure decides the exit code after the batch completes.
func runFetch(ctx context.Context, cfg *config.Config, usernames []string, stdout io.Writer) error {
	fetcher := github.NewFetcher(newClient(cfg))
	writer := newDocumentWriter(cfg.Defaults.OutputFile, stdout)
	store := openHistory(ctx, cfg.Defaults.HistoryDB)
	if store != nil {
		defer store.Close()
	}

	var firstErr error
	failed := 0
	for _, username := range usernames {
		if err := fetchOne(ctx, fetcher, writer, store, cfg.Defaults.PageSize, cfg.Defaults.OutputFile, username); err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if cfg.Defaults.OutputFile != stdoutPath {
		ui.File(cfg.Defaults.OutputFile)
	}

	if firstErr == nil {
		return nil
	}
	if len(usernames) > 1 {
		return fmt.Errorf("%d of %d usernames failed: %w", failed, len(usernames), firstErr)
	}
	return firstErr
}

// fetchOne fetches a single username and adds its records to the
// document. Partial results from a mid-pagination failure are kept in
// the document; the failure is still reported and recorded.
func fetchOne(ctx context.Context, fetcher *github.Fetcher, writer output.DocumentWriter, store *history.Store, pageSize int, outputPath, username string) error {
	username = strings.TrimSpace(username)
	startedAt := time.Now()
	opts := github.FetchOptions{
		PageSize: pageSize,
		Progress: func(page, fetched int) {
			fmt.Fprintf(os.Stderr, "\rfetching %s... %d repositories", username, fetched)
		},
	}

	result, err := fetcher.Fetch(ctx, username, opts)
	fmt.Fprintf(os.Stderr, "\r\033[K") // Clear progress line

	if err != nil {
		ui.Error("%s: %v", username, err)

		records := 0
		var fetchFailed *github.FetchFailedError
		if errors.As(err, &fetchFailed) && len(fetchFailed.Partial) > 0 {
			writer.Add(username, fetchFailed.Partial)
			records = len(fetchFailed.Partial)
			ui.Warning("%s: keeping %d repositories fetched before the failure", username, records)
		}

		recordRun(ctx, store, &history.Run{
			Username:   username,
			Records:    records,
			Status:     history.StatusFailed,
			Error:      err.Error(),
			OutputPath: outputPath,
			StartedAt:  startedAt,
			FinishedAt: time.Now(),
		})
		return err
	}

	writer.Add(username, result.Repositories)
	ui.Success("%s: %s (%s)",
		username,
		pluralize(len(result.Repositories), "repository", "repositories"),
		pluralize(result.Requests, "request", "requests"))

	recordRun(ctx, store, &history.Run{
		Username:   username,
		Records:    len(result.Repositories),
		Requests:   result.Requests,
		Status:     history.StatusOK,
		OutputPath: outputPath,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
	})
	return nil
}

// newDocumentWriter selects the output destination for the document.
func newDocumentWriter(outputFile string, stdout io.Writer) *output.Writer {
	if outputFile == stdoutPath {
		return output.NewWriter(stdout)
	}
	return output.NewFileWriter(outputFile)
}

// openHistory opens the run history store. An empty path disables
// history; open failures only cost the audit trail, never the fetch.
func openHistory(ctx context.Context, dbPath string) *history.Store {
	if dbPath == "" {
		return nil
	}
	store, err := history.Open(dbPath)
	if err != nil {
		logging.FromContext(ctx).Warn("history disabled", "error", err, "path", dbPath)
		return nil
	}
	return store
}

// recordRun writes a history row. History is advisory, so failures are
// logged and otherwise ignored.
func recordRun(ctx context.Context, store *history.Store, run *history.Run) {
	if store == nil {
		return
	}
	if err := store.RecordRun(run); err != nil {
		logging.FromContext(ctx).Warn("failed to record run history", "error", err)
	}
}

// pluralize formats a count with the matching noun form.
func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// mapErrorToExitCode maps internal errors to appropriate exit codes.
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	// Check for specific error types
	if errors.Is(err, snaperrors.ErrUserNotFound) ||
		errors.Is(err, snaperrors.ErrRateLimited) {
		return 2 // User lookup and quota errors
	}

	if errors.Is(err, snaperrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
