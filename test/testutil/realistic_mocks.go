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

package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// RateTrackedServer mimics the live API's rate limit accounting: every
// request spends one unit of budget, response headers reflect what is
// left, and requests past an exhausted budget get the documented 403.
type RateTrackedServer struct {
	*httptest.Server
	mu        sync.Mutex
	limit     int
	remaining int
	resetAt   time.Time
	users     map[string][]map[string]any
	history   []RepoRequest
}

// RepoRequest is one recorded listing request.
type RepoRequest struct {
	Username string
	Page     int
	PerPage  int
}

// NewRateTrackedServer creates a realistic API mock with the given
// request budget.
func NewRateTrackedServer(t *testing.T, budget int, users map[string][]map[string]any) *RateTrackedServer {
	t.Helper()

	mock := &RateTrackedServer{
		limit:     budget,
		remaining: budget,
		resetAt:   time.Now().Add(time.Hour).UTC(),
		users:     users,
	}

	mock.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		AssertRepoRequest(t, r)

		mock.mu.Lock()
		defer mock.mu.Unlock()

		username, ok := repoPathUser(r.URL.Path)
		if !ok {
			http.NotFound(w, r)
			return
		}

		page, perPage := pageParams(r)
		mock.history = append(mock.history, RepoRequest{Username: username, Page: page, PerPage: perPage})

		if mock.remaining == 0 {
			setRateHeaders(w, mock.limit, 0, mock.resetAt)
			writeJSONError(w, http.StatusForbidden, "API rate limit exceeded for 127.0.0.1.")
			return
		}
		mock.remaining--
		setRateHeaders(w, mock.limit, mock.remaining, mock.resetAt)

		repos, found := mock.users[username]
		if !found {
			writeJSONError(w, http.StatusNotFound, "Not Found")
			return
		}

		start := (page - 1) * perPage
		if start > len(repos) {
			start = len(repos)
		}
		end := min(start+perPage, len(repos))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(repos[start:end])
	}))
	t.Cleanup(mock.Close)

	return mock
}

// Remaining reports the budget left on the server.
func (s *RateTrackedServer) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// History returns the listing requests handled so far.
func (s *RateTrackedServer) History() []RepoRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RepoRequest(nil), s.history...)
}
