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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/reposnaphq/reposnap/internal/apierror"
)

// Defaults for the live client.
const (
	defaultAPIEndpoint = "https://api.github.com"
	defaultTimeout     = 10 * time.Second
	defaultUserAgent   = "reposnap"
)

// ClientConfig configures the live REST client. The zero value selects the
// public GitHub endpoint with sensible defaults.
type ClientConfig struct {
	// BaseURL is the API root. Defaults to https://api.github.com.
	// Override it to point at a GitHub Enterprise instance or a test server.
	BaseURL string

	// UserAgent is sent on every request. GitHub rejects requests without
	// one. Defaults to "reposnap".
	UserAgent string

	// Timeout bounds each individual page request. Defaults to 10s.
	Timeout time.Duration
}

// RESTClient implements Client against the GitHub REST v3 API.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client

	mu       sync.Mutex
	lastRate RateLimit
}

// NewRESTClient creates a client for the GitHub REST API. Zero-value config
// fields fall back to defaults.
func NewRESTClient(cfg ClientConfig) *RESTClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAPIEndpoint
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &RESTClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &headerTransport{
				base:      http.DefaultTransport,
				userAgent: cfg.UserAgent,
			},
		},
	}
}

// ListRepositories fetches one page of username's repositories, owner
// repositories only, ordered by most recent update.
//
// Terminal conditions map to typed errors: a 404 becomes NotFoundError and
// a 403 with a zero remaining budget becomes RateLimitError. Everything
// else that goes wrong is wrapped as transient so the retry layer can
// decide whether another attempt makes sense.
func (c *RESTClient) ListRepositories(ctx context.Context, username string, opts PageOptions) (*RepositoryPage, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %q: %w", username, err)
	}

	q := req.URL.Query()
	q.Set("type", "owner")
	q.Set("sort", "updated")
	q.Set("direction", "desc")
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("per_page", strconv.Itoa(opts.PerPage))
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Respect cancellation over retry classification.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &apierror.Transient{
			Err: fmt.Errorf("requesting page %d for %q: %w", opts.Page, username, err),
		}
	}
	defer resp.Body.Close()

	rate := ParseRateLimit(resp.Header)
	c.setRate(rate)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &NotFoundError{Username: username}
	case resp.StatusCode == http.StatusForbidden && rate.Exhausted():
		return nil, &RateLimitError{ResetAt: rate.ResetAt}
	case resp.StatusCode != http.StatusOK:
		return nil, &apierror.Transient{
			Err:        fmt.Errorf("page %d for %q: received status %d", opts.Page, username, resp.StatusCode),
			RetryAfter: retryAfterHeader(resp.Header),
		}
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(strings.ToLower(ct), "application/json") {
		return nil, &apierror.Transient{
			Err: fmt.Errorf("page %d for %q: unexpected content type %q", opts.Page, username, ct),
		}
	}

	var repos []Repository
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&repos); err != nil {
		return nil, &apierror.Transient{
			Err: fmt.Errorf("page %d for %q: decoding response: %w", opts.Page, username, err),
		}
	}

	return &RepositoryPage{Repositories: repos, RateLimit: rate}, nil
}

// RateLimit reports the budget snapshot from the most recent API exchange.
func (c *RESTClient) RateLimit() RateLimit {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRate
}

func (c *RESTClient) setRate(rate RateLimit) {
	if !rate.Known {
		return
	}
	c.mu.Lock()
	c.lastRate = rate
	c.mu.Unlock()
}

// retryAfterHeader parses a Retry-After header given in seconds.
// GitHub uses the delta form for secondary rate limits.
func retryAfterHeader(h http.Header) time.Duration {
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
