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
)

// MockClient is a mock implementation of the Client interface for testing.
// It serves Repositories in page-sized slices the way the live API does,
// so pagination behavior can be exercised without a network.
type MockClient struct {
	// Repositories is the full corpus served in page slices.
	Repositories []Repository

	// Err is returned instead of data when set. When FailCalls is
	// positive only the first FailCalls calls fail and later calls
	// succeed, which simulates a transient outage.
	Err       error
	FailCalls int

	// RateLimit is attached to every page served.
	RateLimit RateLimit

	// NotFound makes every call report an unknown user.
	NotFound bool

	// ListFunc, when set, handles calls entirely, for cases the data
	// fields cannot express.
	ListFunc func(ctx context.Context, username string, opts PageOptions) (*RepositoryPage, error)

	// Track calls for verification
	CallCount    int
	LastUsername string
	LastOpts     PageOptions
}

// NewMockClient creates a mock client with default test data.
func NewMockClient() *MockClient {
	return &MockClient{
		Repositories: generateTestRepos(),
	}
}

// ListRepositories implements the Client interface.
func (m *MockClient) ListRepositories(ctx context.Context, username string, opts PageOptions) (*RepositoryPage, error) {
	m.CallCount++
	m.LastUsername = username
	m.LastOpts = opts

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.ListFunc != nil {
		return m.ListFunc(ctx, username, opts)
	}

	if m.NotFound || username == "nonexistent" {
		return nil, &NotFoundError{Username: username}
	}

	if m.Err != nil && (m.FailCalls == 0 || m.CallCount <= m.FailCalls) {
		return nil, m.Err
	}

	start := (opts.Page - 1) * opts.PerPage
	if start >= len(m.Repositories) {
		return &RepositoryPage{RateLimit: m.RateLimit}, nil
	}
	end := min(start+opts.PerPage, len(m.Repositories))

	return &RepositoryPage{
		Repositories: m.Repositories[start:end],
		RateLimit:    m.RateLimit,
	}, nil
}

// generateTestRepos creates sample repository data for testing.
func generateTestRepos() []Repository {
	return []Repository{
		{
			Name:            "data-pipeline",
			Description:     strPtr("Streaming data processing toolkit"),
			StargazersCount: 128,
			Language:        strPtr("Go"),
			CreatedAt:       "2023-02-10T08:15:00Z",
			UpdatedAt:       "2024-06-01T12:00:00Z",
		},
		{
			Name:            "dotfiles",
			StargazersCount: 4,
			CreatedAt:       "2021-11-03T19:42:10Z",
			UpdatedAt:       "2024-05-20T07:30:45Z",
		},
		{
			Name:            "parser-experiments",
			Description:     strPtr("Scratchpad for recursive descent parsers"),
			StargazersCount: 17,
			Language:        strPtr("Rust"),
			CreatedAt:       "2022-08-29T14:05:33Z",
			UpdatedAt:       "2024-04-11T22:18:09Z",
		},
	}
}

func strPtr(s string) *string { return &s }

// MockClientOption allows configuring the mock client.
type MockClientOption func(*MockClient)

// WithRepositories sets the corpus the mock serves.
func WithRepositories(repos []Repository) MockClientOption {
	return func(m *MockClient) {
		m.Repositories = repos
	}
}

// WithError makes the client return a specific error on every call.
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Err = err
	}
}

// WithFailures makes the first n calls return err, after which calls
// serve data normally.
func WithFailures(n int, err error) MockClientOption {
	return func(m *MockClient) {
		m.Err = err
		m.FailCalls = n
	}
}

// WithRateLimit attaches a rate-limit snapshot to every served page.
func WithRateLimit(rl RateLimit) MockClientOption {
	return func(m *MockClient) {
		m.RateLimit = rl
	}
}

// NewMockClientWithOptions creates a mock client with options.
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
