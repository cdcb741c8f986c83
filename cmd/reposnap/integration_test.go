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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/reposnaphq/reposnap/internal/config"
	snaperrors "github.com/reposnaphq/reposnap/internal/errors"
	"github.com/reposnaphq/reposnap/internal/github"
	"github.com/reposnaphq/reposnap/internal/history"
)

// isolateEnv points config discovery at empty directories so machine
// state cannot leak into a test. History is disabled unless a test sets
// REPOSNAP_HISTORY_DB itself. Returns the working directory.
func isolateEnv(t *testing.T) string {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_API_ENDPOINT", "")
	t.Setenv("REPOSNAP_PAGE_SIZE", "")
	t.Setenv("REPOSNAP_OUTPUT_FILE", "")
	t.Setenv("REPOSNAP_MAX_ATTEMPTS", "")
	t.Setenv("REPOSNAP_HISTORY_DB", "")

	work := t.TempDir()
	t.Chdir(work)
	return work
}

// runCommand executes the root command with the client seam replaced,
// returning captured stdout and the command error.
func runCommand(t *testing.T, client github.Client, args ...string) (string, error) {
	t.Helper()

	orig := newClient
	newClient = func(*config.Config) github.Client { return client }
	t.Cleanup(func() { newClient = orig })

	cmd := newRootCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func readDocument(t *testing.T, path string) map[string][]github.RepositorySummary {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	var doc map[string][]github.RepositorySummary
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("failed to parse output document: %v", err)
	}
	return doc
}

func makeTestRepos(n int) []github.Repository {
	repos := make([]github.Repository, n)
	for i := range repos {
		repos[i] = github.Repository{
			Name:            fmt.Sprintf("repo-%03d", i),
			StargazersCount: i,
			CreatedAt:       "2023-01-01T00:00:00Z",
			UpdatedAt:       "2024-01-01T00:00:00Z",
		}
	}
	return repos
}

func TestFetchCommand_WritesDocument(t *testing.T) {
	work := isolateEnv(t)
	outFile := filepath.Join(work, "out.json")

	mock := github.NewMockClient()
	if _, err := runCommand(t, mock, "octocat", "-o", outFile); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	doc := readDocument(t, outFile)
	records := doc["octocat"]
	if len(records) != 3 {
		t.Fatalf("expected 3 records for octocat, got %d", len(records))
	}
	if records[0].Name != "data-pipeline" {
		t.Errorf("first record = %q, want data-pipeline", records[0].Name)
	}
	if mock.CallCount != 1 {
		t.Errorf("expected 1 API call for a short page, got %d", mock.CallCount)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("failed to re-read output file: %v", err)
	}
	if !strings.Contains(string(data), "\n    \"octocat\"") {
		t.Error("document should be indented with four spaces")
	}
}

func TestFetchCommand_StdoutDocument(t *testing.T) {
	isolateEnv(t)

	stdout, err := runCommand(t, github.NewMockClient(), "octocat", "-o", "-")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var doc map[string][]github.RepositorySummary
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("stdout is not a JSON document: %v\n%s", err, stdout)
	}
	if len(doc["octocat"]) != 3 {
		t.Errorf("expected 3 records on stdout, got %d", len(doc["octocat"]))
	}
}

func TestFetchCommand_BatchContinuesPastFailure(t *testing.T) {
	work := isolateEnv(t)
	outFile := filepath.Join(work, "out.json")

	mock := &github.MockClient{}
	mock.ListFunc = func(ctx context.Context, username string, opts github.PageOptions) (*github.RepositoryPage, error) {
		if username == "ghost" {
			return nil, &github.NotFoundError{Username: username}
		}
		return &github.RepositoryPage{Repositories: makeTestRepos(2)}, nil
	}

	_, err := runCommand(t, mock, "octocat", "ghost", "hubot", "-o", outFile)
	if err == nil {
		t.Fatal("expected an error for the failed username")
	}
	if !errors.Is(err, snaperrors.ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound in chain", err)
	}
	if !strings.Contains(err.Error(), "1 of 3 usernames failed") {
		t.Errorf("error = %v, want batch summary", err)
	}
	if got := mapErrorToExitCode(err); got != 2 {
		t.Errorf("exit code = %d, want 2", got)
	}

	doc := readDocument(t, outFile)
	if len(doc["octocat"]) != 2 || len(doc["hubot"]) != 2 {
		t.Errorf("expected records for both good usernames, got %v", doc)
	}
	if _, ok := doc["ghost"]; ok {
		t.Error("ghost should not appear in the document")
	}
	if mock.CallCount != 3 {
		t.Errorf("expected 3 API calls, got %d", mock.CallCount)
	}
}

func TestFetchCommand_PageSizeFlag(t *testing.T) {
	work := isolateEnv(t)
	outFile := filepath.Join(work, "out.json")

	mock := github.NewMockClient()
	if _, err := runCommand(t, mock, "octocat", "--page-size", "2", "-o", outFile); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if mock.LastOpts.PerPage != 2 {
		t.Errorf("PerPage = %d, want 2", mock.LastOpts.PerPage)
	}
	if mock.CallCount != 2 {
		t.Errorf("expected 2 API calls for 3 repos at page size 2, got %d", mock.CallCount)
	}
	if doc := readDocument(t, outFile); len(doc["octocat"]) != 3 {
		t.Errorf("expected all 3 records, got %d", len(doc["octocat"]))
	}
}

func TestFetchCommand_InvalidPageSize(t *testing.T) {
	isolateEnv(t)

	_, err := runCommand(t, github.NewMockClient(), "octocat", "--page-size", "500")
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !strings.Contains(err.Error(), "page size") {
		t.Errorf("error = %v, want page size validation", err)
	}
	if got := mapErrorToExitCode(err); got != 1 {
		t.Errorf("exit code = %d, want 1", got)
	}
}

func TestFetchCommand_PartialResultsKept(t *testing.T) {
	work := isolateEnv(t)
	outFile := filepath.Join(work, "out.json")

	corpus := makeTestRepos(150)
	mock := &github.MockClient{}
	mock.ListFunc = func(ctx context.Context, username string, opts github.PageOptions) (*github.RepositoryPage, error) {
		if opts.Page > 1 {
			return nil, errors.New("dial tcp: connection refused")
		}
		return &github.RepositoryPage{Repositories: corpus[:opts.PerPage]}, nil
	}
	client := github.NewRetryClient(mock, &github.RetryConfig{
		MaxAttempts: 2,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
	})

	_, err := runCommand(t, client, "octocat", "-o", outFile)
	if err == nil {
		t.Fatal("expected a network failure")
	}
	if !errors.Is(err, snaperrors.ErrNetworkFailure) {
		t.Errorf("error = %v, want ErrNetworkFailure in chain", err)
	}
	if got := mapErrorToExitCode(err); got != 3 {
		t.Errorf("exit code = %d, want 3", got)
	}

	// The first page was fetched successfully and must survive.
	doc := readDocument(t, outFile)
	if len(doc["octocat"]) != 100 {
		t.Errorf("expected the 100 records fetched before the failure, got %d", len(doc["octocat"]))
	}
}

func TestFetchCommand_RateLimitStopsEarly(t *testing.T) {
	work := isolateEnv(t)
	outFile := filepath.Join(work, "out.json")

	mock := github.NewMockClientWithOptions(
		github.WithRepositories(makeTestRepos(100)),
		github.WithRateLimit(github.RateLimit{
			Limit:     60,
			Remaining: 0,
			ResetAt:   time.Now().Add(time.Hour),
			Known:     true,
		}),
	)

	_, err := runCommand(t, mock, "octocat", "-o", outFile)
	if err == nil {
		t.Fatal("expected a rate limit error")
	}
	if !errors.Is(err, snaperrors.ErrRateLimited) {
		t.Errorf("error = %v, want ErrRateLimited in chain", err)
	}
	if mock.CallCount != 1 {
		t.Errorf("expected no further requests after exhaustion, got %d calls", mock.CallCount)
	}

	// The document is still written, without the rate limited user.
	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if strings.TrimSpace(string(data)) != "{}" {
		t.Errorf("document = %q, want empty object", data)
	}
}

func TestFetchCommand_EmptyUserWritesEmptyArray(t *testing.T) {
	work := isolateEnv(t)
	outFile := filepath.Join(work, "out.json")

	mock := &github.MockClient{}
	if _, err := runCommand(t, mock, "newcomer", "-o", outFile); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if !strings.Contains(string(data), `"newcomer": []`) {
		t.Errorf("document = %s, want empty array for newcomer", data)
	}
	if mock.CallCount != 1 {
		t.Errorf("expected exactly 1 request for an empty user, got %d", mock.CallCount)
	}
}

func TestFetchCommand_RecordsHistory(t *testing.T) {
	work := isolateEnv(t)
	dbPath := filepath.Join(work, "history", "runs.db")
	t.Setenv("REPOSNAP_HISTORY_DB", dbPath)
	outFile := filepath.Join(work, "out.json")

	if _, err := runCommand(t, github.NewMockClient(), "octocat", "-o", outFile); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	store, err := history.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open history: %v", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(runs))
	}
	run := runs[0]
	if run.Username != "octocat" || run.Status != history.StatusOK {
		t.Errorf("run = %+v, want octocat/ok", run)
	}
	if run.Records != 3 || run.Requests != 1 {
		t.Errorf("run counted %d records in %d requests, want 3 in 1", run.Records, run.Requests)
	}
	if run.OutputPath != outFile {
		t.Errorf("OutputPath = %q, want %q", run.OutputPath, outFile)
	}
}

func TestHistoryCommand_ListsRuns(t *testing.T) {
	work := isolateEnv(t)
	dbPath := filepath.Join(work, "runs.db")
	t.Setenv("REPOSNAP_HISTORY_DB", dbPath)

	if _, err := runCommand(t, github.NewMockClient(), "octocat", "-o", filepath.Join(work, "out.json")); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	stdout, err := runCommand(t, github.NewMockClient(), "history")
	if err != nil {
		t.Fatalf("history command error = %v", err)
	}
	if !strings.Contains(stdout, "octocat") {
		t.Errorf("history output = %q, want it to mention octocat", stdout)
	}
	if !strings.Contains(stdout, "3 records") {
		t.Errorf("history output = %q, want the record count", stdout)
	}
}

func TestHistoryCommand_Disabled(t *testing.T) {
	isolateEnv(t) // REPOSNAP_HISTORY_DB is empty

	stdout, err := runCommand(t, github.NewMockClient(), "history")
	if err != nil {
		t.Fatalf("history command error = %v", err)
	}
	if stdout != "" {
		t.Errorf("expected no stdout when history is disabled, got %q", stdout)
	}
}

func TestFetchCommand_ConfigFileDiscovery(t *testing.T) {
	work := isolateEnv(t)

	configured := filepath.Join(work, "from-config.json")
	yaml := fmt.Sprintf("defaults:\n  output_file: %s\n  page_size: 2\n", configured)
	if err := os.WriteFile(filepath.Join(work, ".reposnap.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	mock := github.NewMockClient()
	if _, err := runCommand(t, mock, "octocat"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if mock.LastOpts.PerPage != 2 {
		t.Errorf("PerPage = %d, want 2 from the config file", mock.LastOpts.PerPage)
	}
	if doc := readDocument(t, configured); len(doc["octocat"]) != 3 {
		t.Errorf("expected 3 records at the configured path, got %d", len(doc["octocat"]))
	}

	// A flag still wins over the file.
	flagged := filepath.Join(work, "from-flag.json")
	if _, err := runCommand(t, github.NewMockClient(), "octocat", "-o", flagged); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := os.Stat(flagged); err != nil {
		t.Errorf("expected document at the flag path: %v", err)
	}
}
