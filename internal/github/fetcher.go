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

package github

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reposnaphq/reposnap/internal/logging"
)

// Fetcher drives paginated retrieval of a user's repositories and
// assembles the normalized result. All state for one fetch lives in the
// call frame; a Fetcher is safe for concurrent use.
type Fetcher struct {
	client Client
}

// NewFetcher creates a Fetcher on top of the given client. Wrap the client
// with NewRetryClient first to get retry behavior.
func NewFetcher(client Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch retrieves every repository owned by username, page by page, and
// returns them in API order.
//
// The listing is complete when a page comes back shorter than the page
// size; a full final page costs one extra request that returns empty.
// Completion is checked before the rate-limit budget, so a short page on
// the last allowed request still succeeds. If the budget runs out with
// pages still to fetch, Fetch stops immediately with a RateLimitError
// and issues no further requests.
//
// On retry exhaustion the returned FetchFailedError carries the records
// accumulated so far in its Partial field.
func (f *Fetcher) Fetch(ctx context.Context, username string, opts FetchOptions) (*FetchResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &ValidationError{Field: "username", Reason: "must not be empty"}
	}

	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return nil, &ValidationError{
			Field:  "page size",
			Reason: fmt.Sprintf("must be between 1 and %d, got %d", maxPageSize, opts.PageSize),
		}
	}

	logger := logging.FromContext(ctx)
	result := &FetchResult{Username: username}

	for page := 1; ; page++ {
		repoPage, err := f.client.ListRepositories(ctx, username, PageOptions{Page: page, PerPage: pageSize})
		if err != nil {
			var failed *FetchFailedError
			if errors.As(err, &failed) {
				failed.Partial = result.Repositories
			}
			return nil, err
		}
		result.Requests++

		for _, repo := range repoPage.Repositories {
			result.Repositories = append(result.Repositories, repo.Summary())
		}

		logger.Debug("fetched page",
			"user", username,
			"page", page,
			"records", len(repoPage.Repositories),
			"total", len(result.Repositories))

		if opts.Progress != nil {
			opts.Progress(page, len(result.Repositories))
		}

		if len(repoPage.Repositories) < pageSize {
			return result, nil
		}
		if repoPage.RateLimit.Exhausted() {
			return nil, &RateLimitError{ResetAt: repoPage.RateLimit.ResetAt}
		}
	}
}
