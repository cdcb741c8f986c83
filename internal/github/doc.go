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

// Package github provides a client for the GitHub REST API to fetch the
// repositories owned by a user. It abstracts pagination, retry with
// exponential backoff, and rate-limit detection behind a small interface
// and normalizes the API payload into summary records.
//
// The package includes:
//   - A Client interface for fetching one page of repositories
//   - A REST implementation backed by net/http
//   - A retrying decorator that wraps any Client
//   - A Fetcher that drives pagination and assembles results
//   - Mock client for testing
//   - Typed errors for the terminal failure modes
//
// Basic usage:
//
//	client := github.NewRetryClient(github.NewRESTClient(github.ClientConfig{}), nil)
//	fetcher := github.NewFetcher(client)
//	result, err := fetcher.Fetch(ctx, "octocat", github.FetchOptions{})
//	if err != nil {
//	    // Handle error
//	}
//	for _, repo := range result.Repositories {
//	    // Process repository summary
//	}
package github
