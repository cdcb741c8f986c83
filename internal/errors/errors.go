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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidInput indicates the fetch request itself was malformed
	// (empty username, page size out of range). Never retried.
	// Maps to exit code 1.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUserNotFound indicates the requested GitHub user does not exist.
	// Maps to exit code 2.
	ErrUserNotFound = errors.New("github user not found")

	// ErrRateLimited indicates the GitHub API rate limit budget is exhausted.
	// Maps to exit code 2.
	ErrRateLimited = errors.New("github rate limit exceeded")

	// ErrNetworkFailure indicates a page request kept failing after all
	// retry attempts (network problem, persistent 5xx, bad payload).
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")
)
