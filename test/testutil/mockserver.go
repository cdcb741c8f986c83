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

// Package testutil provides common test helpers for reposnap
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// MockServer wraps httptest.Server with request counting.
type MockServer struct {
	*httptest.Server
	requests int32
}

// Requests reports how many requests the server has handled.
func (s *MockServer) Requests() int {
	return int(atomic.LoadInt32(&s.requests))
}

// NewMockServer wraps a handler with request counting and automatic
// shutdown at test cleanup.
func NewMockServer(t *testing.T, handler http.HandlerFunc) *MockServer {
	t.Helper()

	ms := &MockServer{}
	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&ms.requests, 1)
		handler(w, r)
	}))
	t.Cleanup(ms.Close)
	return ms
}

// NewRepoServer creates a mock server that lists the given users'
// repositories in page-sized slices, the way the live API does. Unknown
// usernames get the documented 404 body.
func NewRepoServer(t *testing.T, users map[string][]map[string]any) *MockServer {
	t.Helper()
	return NewMockServer(t, repoHandler(t, users, nil))
}

// NewDepletedRepoServer serves repository pages while reporting an
// exhausted rate limit budget on every response.
func NewDepletedRepoServer(t *testing.T, users map[string][]map[string]any, resetAt time.Time) *MockServer {
	t.Helper()
	return NewMockServer(t, repoHandler(t, users, map[string]string{
		"X-RateLimit-Limit":     "60",
		"X-RateLimit-Remaining": "0",
		"X-RateLimit-Reset":     strconv.FormatInt(resetAt.Unix(), 10),
	}))
}

// NewRateLimitedServer creates a mock server that rejects every request
// with the documented rate limit 403.
func NewRateLimitedServer(t *testing.T, resetAt time.Time) *MockServer {
	t.Helper()
	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		setRateHeaders(w, 60, 0, resetAt)
		writeJSONError(w, http.StatusForbidden, "API rate limit exceeded for 127.0.0.1.")
	})
}

// NewTransientErrorServer creates a mock server that fails N times with
// the given status code and then serves repository pages normally.
func NewTransientErrorServer(t *testing.T, failCount, errorCode int, users map[string][]map[string]any) *MockServer {
	t.Helper()

	handler := repoHandler(t, users, nil)
	var failures int32
	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&failures, 1) <= int32(failCount) {
			w.WriteHeader(errorCode)
			_, _ = w.Write([]byte(http.StatusText(errorCode)))
			return
		}
		handler(w, r)
	})
}

// NewErrorServer creates a mock server that always returns the specified error
func NewErrorServer(t *testing.T, statusCode int) *MockServer {
	t.Helper()
	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(http.StatusText(statusCode)))
	})
}

// repoHandler serves paginated repository listings from the users map,
// attaching any extra headers to successful responses.
func repoHandler(t *testing.T, users map[string][]map[string]any, headers map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		AssertRepoRequest(t, r)

		username, ok := repoPathUser(r.URL.Path)
		if !ok {
			http.NotFound(w, r)
			return
		}
		repos, found := users[username]
		if !found {
			writeJSONError(w, http.StatusNotFound, "Not Found")
			return
		}

		page, perPage := pageParams(r)
		start := (page - 1) * perPage
		if start > len(repos) {
			start = len(repos)
		}
		end := min(start+perPage, len(repos))

		for k, v := range headers {
			w.Header().Set(k, v)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(repos[start:end])
	}
}

// repoPathUser extracts the username from a /users/{username}/repos path.
func repoPathUser(path string) (string, bool) {
	rest, ok := strings.CutPrefix(path, "/users/")
	if !ok {
		return "", false
	}
	username, ok := strings.CutSuffix(rest, "/repos")
	if !ok || username == "" {
		return "", false
	}
	return username, true
}

// pageParams reads the pagination query parameters with the live API's
// defaults.
func pageParams(r *http.Request) (page, perPage int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(r.URL.Query().Get("per_page"))
	if perPage < 1 {
		perPage = 30
	}
	return page, perPage
}

func setRateHeaders(w http.ResponseWriter, limit, remaining int, resetAt time.Time) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `{"message": %q}`, message)
}

// GenerateRepoPayload generates raw repository objects numbered start
// through end inclusive, with the extra fields the live API sends.
func GenerateRepoPayload(start, end int) []map[string]any {
	repos := make([]map[string]any, 0, end-start+1)
	for i := start; i <= end; i++ {
		repos = append(repos, NewRepositoryBuilder(i).Build())
	}
	return repos
}

// OctocatPayload returns the fixture listing used across the suite for
// the octocat account.
func OctocatPayload() []map[string]any {
	return []map[string]any{
		NewRepositoryBuilder(1).
			WithName("Hello-World").
			WithDescription("My first repository on GitHub!").
			WithStars(1500).
			WithLanguage("C").
			WithTimestamps(
				time.Date(2011, 1, 26, 19, 1, 12, 0, time.UTC),
				time.Date(2024, 6, 10, 4, 32, 28, 0, time.UTC)).
			Build(),
		NewRepositoryBuilder(2).
			WithName("Spoon-Knife").
			WithDescription("This repo is for demonstration purposes only.").
			WithStars(12000).
			WithoutLanguage().
			WithTimestamps(
				time.Date(2011, 1, 27, 19, 30, 43, 0, time.UTC),
				time.Date(2024, 6, 11, 10, 17, 52, 0, time.UTC)).
			Build(),
		NewRepositoryBuilder(3).
			WithName("octocat.github.io").
			WithoutDescription().
			WithStars(512).
			WithLanguage("CSS").
			Build(),
	}
}

// AssertRepoRequest validates a repository listing request's shape.
func AssertRepoRequest(t *testing.T, r *http.Request) {
	t.Helper()
	if !strings.HasPrefix(r.URL.Path, "/users/") || !strings.HasSuffix(r.URL.Path, "/repos") {
		t.Errorf("Unexpected path: %s", r.URL.Path)
	}
	if r.Method != http.MethodGet {
		t.Errorf("Expected GET method, got: %s", r.Method)
	}
	if accept := r.Header.Get("Accept"); accept != "application/vnd.github.v3+json" {
		t.Errorf("Expected GitHub v3 Accept header, got: %s", accept)
	}
	if auth := r.Header.Get("Authorization"); auth != "" {
		t.Errorf("Expected unauthenticated request, got Authorization header: %s", auth)
	}

	q := r.URL.Query()
	if q.Get("type") != "owner" || q.Get("sort") != "updated" || q.Get("direction") != "desc" {
		t.Errorf("Expected owner/updated/desc listing parameters, got: %s", r.URL.RawQuery)
	}
}
