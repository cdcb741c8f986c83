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

// Repository mirrors the fields of a repository object as returned by the
// GET /users/{username}/repos endpoint. Only the fields the summary needs
// are decoded; everything else in the payload is ignored.
//
// Timestamps are kept as strings so the values pass through to the output
// byte for byte, exactly as the API returned them.
type Repository struct {
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	StargazersCount int     `json:"stargazers_count"`
	Language        *string `json:"language"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// RepositorySummary is the normalized record written to the output document.
// Description and Language stay null in the JSON when the API reported them
// as null rather than being collapsed to empty strings.
type RepositorySummary struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Stars       int     `json:"stars"`
	Language    *string `json:"language"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// Summary extracts the normalized output record from the API payload.
// A repository the API never starred reports stargazers_count 0, which
// maps through unchanged.
func (r Repository) Summary() RepositorySummary {
	return RepositorySummary{
		Name:        r.Name,
		Description: r.Description,
		Stars:       r.StargazersCount,
		Language:    r.Language,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// RepositoryPage represents one page of repositories from a list request.
// It carries the rate-limit snapshot observed on the response so the
// pagination loop can stop before issuing a request that would be rejected.
type RepositoryPage struct {
	Repositories []Repository
	RateLimit    RateLimit
}

// PageOptions addresses a single page of the listing.
// Pages are numbered from 1 per GitHub's REST pagination.
type PageOptions struct {
	// Page is the 1-based page number to request.
	Page int

	// PerPage controls how many repositories to request for this page.
	// GitHub caps the value at 100.
	PerPage int
}

// FetchOptions configures a full fetch of a user's repositories.
type FetchOptions struct {
	// PageSize controls how many repositories to request per page.
	// Defaults to 100, the API maximum. Valid values are 1 through 100.
	PageSize int

	// Progress, when non-nil, is invoked after each page with the page
	// number just fetched and the running record count.
	Progress ProgressFunc
}

// ProgressFunc receives pagination progress as pages arrive.
type ProgressFunc func(page, fetched int)

// FetchResult is the complete, ordered outcome of fetching one user.
// Repositories preserves the order the API returned them in, most recently
// updated first.
type FetchResult struct {
	Username     string
	Repositories []RepositorySummary

	// Requests counts the pages fetched successfully.
	Requests int
}

// Default values for fetch operations
const (
	defaultPageSize = 100
	maxPageSize     = 100
)
