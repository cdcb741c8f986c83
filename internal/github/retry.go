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
	"math"
	"math/rand"
	"time"

	"github.com/reposnaphq/reposnap/internal/apierror"
	"github.com/reposnaphq/reposnap/internal/logging"
)

// RetryConfig configures the retry behavior for page requests.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts per page request,
	// the first try included.
	MaxAttempts int
	// BaseDelay is the backoff unit. The wait after failed attempt k is
	// BaseDelay * 2^(k-1) plus jitter drawn uniformly from [0, BaseDelay/2).
	BaseDelay time.Duration
	// MaxDelay caps the exponential term before jitter.
	MaxDelay time.Duration
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		MaxDelay:    30 * time.Second,
	}
}

// RetryClient wraps a Client with automatic retry for transient failures
// using exponential backoff. Terminal outcomes pass through untouched: a
// missing user or an exhausted rate limit never triggers another attempt.
type RetryClient struct {
	client    Client
	config    *RetryConfig
	inspector apierror.Inspector
}

// NewRetryClient creates a RetryClient with the given configuration.
// A nil config selects DefaultRetryConfig.
func NewRetryClient(client Client, config *RetryConfig) Client {
	if config == nil {
		config = DefaultRetryConfig()
	}
	return &RetryClient{
		client:    client,
		config:    config,
		inspector: apierror.NewErrorChainInspector(apierror.NewInspector()),
	}
}

// ListRepositories implements the Client interface with retry logic.
// When every attempt fails it returns a FetchFailedError wrapping the last
// underlying error.
func (r *RetryClient) ListRepositories(ctx context.Context, username string, opts PageOptions) (*RepositoryPage, error) {
	logger := logging.FromContext(ctx)
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		page, err := r.client.ListRepositories(ctx, username, opts)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if !r.inspector.IsTransient(err) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt == r.config.MaxAttempts {
			break
		}

		backoff := r.calculateBackoff(attempt)
		// A server-provided Retry-After hint floors the computed wait.
		if hint := apierror.RetryAfterHint(err); hint > backoff {
			backoff = hint
		}

		logger.Warn("transient failure, retrying",
			"user", username,
			"page", opts.Page,
			"attempt", attempt,
			"max", r.config.MaxAttempts,
			"wait", backoff,
			"error", err)

		select {
		case <-time.After(backoff):
			// Continue to next attempt
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, &FetchFailedError{
		Username: username,
		Attempts: r.config.MaxAttempts,
		Err:      lastErr,
	}
}

// calculateBackoff computes the wait after the given failed attempt,
// counted from 1.
func (r *RetryClient) calculateBackoff(attempt int) time.Duration {
	backoff := float64(r.config.BaseDelay) * math.Pow(2, float64(attempt-1))
	if backoff > float64(r.config.MaxDelay) {
		backoff = float64(r.config.MaxDelay)
	}

	// Jitter spreads out clients that fail in lockstep.
	jitter := rand.Float64() * float64(r.config.BaseDelay) / 2

	return time.Duration(backoff + jitter)
}
