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

package integration

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/reposnaphq/reposnap/test/testutil"
)

// TestEdgeCase_UserWithNoRepositories fetches an account that exists but
// owns nothing. The document must carry an explicit empty array, not null
// and not a missing key.
func TestEdgeCase_UserWithNoRepositories(t *testing.T) {
	server := testutil.NewRepoServer(t, map[string][]map[string]any{
		"newcomer": {},
	})
	outPath := filepath.Join(t.TempDir(), "repos.json")

	result := testutil.RunCLI(t, []string{"newcomer", "--output", outPath}, testutil.ServerEnv(t, server.URL, nil))

	testutil.AssertCLISuccess(t, result)
	testutil.AssertFileContains(t, outPath, `"newcomer": []`)
	if got := server.Requests(); got != 1 {
		t.Errorf("Expected 1 request, got %d", got)
	}
}

// TestEdgeCase_SparseRecords feeds repositories with missing optional fields
// and a fork through the pipeline. Nulls survive as nulls and forks are not
// filtered client side.
func TestEdgeCase_SparseRecords(t *testing.T) {
	server := testutil.NewRepoServer(t, map[string][]map[string]any{
		"testuser": {
			testutil.NewRepositoryBuilder(1).WithoutDescription().Build(),
			testutil.NewRepositoryBuilder(2).WithoutLanguage().Build(),
			testutil.NewRepositoryBuilder(3).AsFork().Build(),
		},
	})
	outPath := filepath.Join(t.TempDir(), "repos.json")

	result := testutil.RunCLI(t, []string{"testuser", "--output", outPath}, testutil.ServerEnv(t, server.URL, nil))

	testutil.AssertCLISuccess(t, result)
	testutil.AssertDocumentOutput(t, outPath, "testuser", 3)
	testutil.AssertFileContains(t, outPath, `"description": null`)
	testutil.AssertFileContains(t, outPath, `"language": null`)

	records := testutil.ReadDocument(t, outPath)["testuser"]
	if records[0]["description"] != nil {
		t.Errorf("Expected null description, got %v", records[0]["description"])
	}
	if records[1]["language"] != nil {
		t.Errorf("Expected null language, got %v", records[1]["language"])
	}
	if records[2]["name"] != "repo-003" {
		t.Errorf("Expected the fork to pass through, got %v", records[2]["name"])
	}
}

// TestEdgeCase_BatchContinuesPastFailure puts a bad username in the middle
// of a batch. The users after it must still be fetched, and the document
// must carry everything that succeeded.
func TestEdgeCase_BatchContinuesPastFailure(t *testing.T) {
	server := testutil.NewRepoServer(t, map[string][]map[string]any{
		"alpha": testutil.GenerateRepoPayload(1, 2),
		"gamma": testutil.GenerateRepoPayload(1, 4),
	})
	outPath := filepath.Join(t.TempDir(), "repos.json")

	result := testutil.RunCLI(t, []string{"alpha", "ghost", "gamma", "--output", outPath},
		testutil.ServerEnv(t, server.URL, nil))

	testutil.AssertExitCode(t, result, 2)
	testutil.AssertCLIError(t, result, "1 of 3 usernames failed")
	testutil.AssertCLIError(t, result, `user "ghost" not found`)

	testutil.AssertDocumentOutput(t, outPath, "alpha", 2)
	testutil.AssertDocumentOutput(t, outPath, "gamma", 4)
	if _, ok := testutil.ReadDocument(t, outPath)["ghost"]; ok {
		t.Error("Expected no document entry for the failed user")
	}

	if got := server.Requests(); got != 3 {
		t.Errorf("Expected 3 requests, got %d", got)
	}
}

// TestEdgeCase_FirstFailureSetsExitCode runs a batch where the first failure
// is an unknown user and a later one is a network failure. The exit code
// follows the first failure.
func TestEdgeCase_FirstFailureSetsExitCode(t *testing.T) {
	server := testutil.NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		testutil.AssertRepoRequest(t, r)
		switch r.URL.Path {
		case "/users/ghost/repos":
			http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
		default:
			http.Error(w, `{"message": "Service Unavailable"}`, http.StatusServiceUnavailable)
		}
	})
	cfgPath := testutil.WriteRetryConfig(t, t.TempDir(), 2)
	outPath := filepath.Join(t.TempDir(), "repos.json")

	result := testutil.RunCLI(t, []string{"ghost", "flaky", "--config", cfgPath, "--output", outPath},
		testutil.ServerEnv(t, server.URL, nil))

	testutil.AssertExitCode(t, result, 2)
	testutil.AssertCLIError(t, result, "2 of 2 usernames failed")
}

func TestEdgeCase_PageSizeBounds(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "zero",
			args:    []string{"octocat", "--page-size", "0"},
			wantErr: "page size must be positive",
		},
		{
			name:    "negative",
			args:    []string{"octocat", "--page-size=-5"},
			wantErr: "page size must be positive",
		},
		{
			name:    "above API maximum",
			args:    []string{"octocat", "--page-size", "101"},
			wantErr: "exceeds GitHub API limit",
		},
	}

	server := testutil.NewRepoServer(t, map[string][]map[string]any{
		"octocat": testutil.OctocatPayload(),
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := testutil.RunCLI(t, tt.args, testutil.ServerEnv(t, server.URL, nil))

			testutil.AssertExitCode(t, result, 1)
			testutil.AssertCLIError(t, result, tt.wantErr)
		})
	}

	// Validation happens before any request goes out.
	if got := server.Requests(); got != 0 {
		t.Errorf("Expected no requests for invalid page sizes, got %d", got)
	}
}

func TestEdgeCase_WhitespaceUsername(t *testing.T) {
	server := testutil.NewRepoServer(t, map[string][]map[string]any{
		"octocat": testutil.OctocatPayload(),
	})
	outPath := filepath.Join(t.TempDir(), "repos.json")

	result := testutil.RunCLI(t, []string{"  octocat  ", "--output", outPath}, testutil.ServerEnv(t, server.URL, nil))

	testutil.AssertCLISuccess(t, result)
	testutil.AssertDocumentOutput(t, outPath, "octocat", 3)
}

// TestEdgeCase_UnicodeFields pushes names and descriptions with emoji and
// CJK text through the whole pipeline.
func TestEdgeCase_UnicodeFields(t *testing.T) {
	server := testutil.NewRepoServer(t, map[string][]map[string]any{
		"testuser": {
			testutil.NewRepositoryBuilder(1).
				WithName("日本語-repo").
				WithDescription("🚀 deploy tooling, 中文说明").
				Build(),
		},
	})
	outPath := filepath.Join(t.TempDir(), "repos.json")

	result := testutil.RunCLI(t, []string{"testuser", "--output", outPath}, testutil.ServerEnv(t, server.URL, nil))

	testutil.AssertCLISuccess(t, result)

	records := testutil.ReadDocument(t, outPath)["testuser"]
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0]["name"] != "日本語-repo" {
		t.Errorf("Unicode name mangled: %v", records[0]["name"])
	}
	if records[0]["description"] != "🚀 deploy tooling, 中文说明" {
		t.Errorf("Unicode description mangled: %v", records[0]["description"])
	}
}

// TestEdgeCase_UnwritableOutputPath points the output at a path whose parent
// is a regular file. The fetch itself succeeds; the write must fail cleanly.
func TestEdgeCase_UnwritableOutputPath(t *testing.T) {
	server := testutil.NewRepoServer(t, map[string][]map[string]any{
		"octocat": testutil.OctocatPayload(),
	})
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0o644); err != nil {
		t.Fatalf("Failed to create blocker file: %v", err)
	}

	result := testutil.RunCLI(t,
		[]string{"octocat", "--output", filepath.Join(blocker, "repos.json")},
		testutil.ServerEnv(t, server.URL, nil))

	testutil.AssertExitCode(t, result, 1)
	testutil.AssertCLIError(t, result, "failed to write output")
}

// TestEdgeCase_RunReplacesDocument verifies each run writes a fresh
// document. Results from earlier runs do not leak into the file.
func TestEdgeCase_RunReplacesDocument(t *testing.T) {
	server := testutil.NewRepoServer(t, map[string][]map[string]any{
		"octocat": testutil.OctocatPayload(),
		"hubot":   testutil.GenerateRepoPayload(1, 5),
	})
	outPath := filepath.Join(t.TempDir(), "repos.json")
	env := testutil.ServerEnv(t, server.URL, nil)

	testutil.AssertCLISuccess(t, testutil.RunCLI(t, []string{"octocat", "--output", outPath}, env))
	testutil.AssertCLISuccess(t, testutil.RunCLI(t, []string{"hubot", "--output", outPath}, env))

	doc := testutil.ReadDocument(t, outPath)
	if _, ok := doc["octocat"]; ok {
		t.Error("Expected the second run to replace the document")
	}
	testutil.AssertDocumentOutput(t, outPath, "hubot", 5)
}
