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
	"fmt"
	"time"

	snaperrors "github.com/reposnaphq/reposnap/internal/errors"
)

// ValidationError reports input that was rejected before any API request
// was made. No network traffic happens for invalid input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is maps the error to the ErrInvalidInput sentinel for exit-code handling.
func (e *ValidationError) Is(target error) bool {
	return target == snaperrors.ErrInvalidInput
}

// NotFoundError reports that the requested user does not exist. The API
// answers 404 on the first page, so exactly one request precedes this error.
type NotFoundError struct {
	Username string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user %q not found", e.Username)
}

// Is maps the error to the ErrUserNotFound sentinel for exit-code handling.
func (e *NotFoundError) Is(target error) bool {
	return target == snaperrors.ErrUserNotFound
}

// IsNotFoundError marks the error for inspector classification.
func (e *NotFoundError) IsNotFoundError() bool { return true }

// RateLimitError reports that the API budget is spent. ResetAt is the
// absolute instant the budget replenishes; it is the zero time when the
// API response carried no reset header.
type RateLimitError struct {
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return "rate limit exceeded: no reset time provided"
	}
	return fmt.Sprintf("rate limit exceeded: resets at %s", FormatIST(e.ResetAt))
}

// Is maps the error to the ErrRateLimited sentinel for exit-code handling.
func (e *RateLimitError) Is(target error) bool {
	return target == snaperrors.ErrRateLimited
}

// IsRateLimitError marks the error for inspector classification.
func (e *RateLimitError) IsRateLimitError() bool { return true }

// FetchFailedError reports that a page request kept failing after every
// retry attempt. Partial holds the records accumulated from the pages that
// did succeed, so callers can salvage them.
type FetchFailedError struct {
	Username string
	Attempts int
	Err      error
	Partial  []RepositorySummary
}

func (e *FetchFailedError) Error() string {
	return fmt.Sprintf("fetching repositories for %q failed after %d attempts: %v", e.Username, e.Attempts, e.Err)
}

func (e *FetchFailedError) Unwrap() error { return e.Err }

// Is maps the error to the ErrNetworkFailure sentinel for exit-code handling.
func (e *FetchFailedError) Is(target error) bool {
	return target == snaperrors.ErrNetworkFailure
}
