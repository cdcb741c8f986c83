package apierror

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestAPIErrorInspector_IsNotFoundError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "404 not found",
			err:  errors.New("404 Not Found"),
			want: true,
		},
		{
			name: "resource not found",
			err:  errors.New("Resource not found"),
			want: true,
		},
		{
			name: "wrapped not found",
			err:  fmt.Errorf("fetching page: %w", errors.New("404 Not Found")),
			want: true,
		},
		{
			name: "unrelated error",
			err:  errors.New("something went wrong"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsNotFoundError(tt.err); got != tt.want {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAPIErrorInspector_IsRateLimitError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "api rate limit exceeded",
			err:  errors.New("API rate limit exceeded for 203.0.113.7"),
			want: true,
		},
		{
			name: "rate limit phrase",
			err:  errors.New("secondary rate limit hit"),
			want: true,
		},
		{
			name: "plain forbidden",
			err:  errors.New("403 Forbidden"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsRateLimitError(tt.err); got != tt.want {
				t.Errorf("IsRateLimitError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAPIErrorInspector_IsNetworkError(t *testing.T) {
	inspector := NewInspector()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "connection refused",
			err:  errors.New("dial tcp 127.0.0.1:443: connect: connection refused"),
			want: true,
		},
		{
			name: "dns failure",
			err:  errors.New("lookup api.github.invalid: no such host"),
			want: true,
		},
		{
			name: "client timeout",
			err:  errors.New("Get \"https://api.github.com\": context deadline exceeded (Client.Timeout exceeded while awaiting headers)"),
			want: true,
		},
		{
			name: "connection reset",
			err:  errors.New("read tcp: connection reset by peer"),
			want: true,
		},
		{
			name: "not a network error",
			err:  errors.New("invalid JSON payload"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsNetworkError(tt.err); got != tt.want {
				t.Errorf("IsNetworkError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorChainInspector_IsTransient(t *testing.T) {
	inspector := NewErrorChainInspector(NewInspector())

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "wrapped transient marker",
			err:  &Transient{Err: errors.New("received status 502")},
			want: true,
		},
		{
			name: "transient deep in chain",
			err:  fmt.Errorf("page 3: %w", &Transient{Err: errors.New("received status 503")}),
			want: true,
		},
		{
			name: "raw network error string",
			err:  errors.New("dial tcp: connection refused"),
			want: true,
		},
		{
			name: "not found is terminal",
			err:  errors.New("404 Not Found"),
			want: false,
		},
		{
			name: "rate limit is terminal",
			err:  errors.New("API rate limit exceeded"),
			want: false,
		},
		{
			name: "transient wrapping a 404 stays terminal",
			err:  &Transient{Err: errors.New("404 Not Found")},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inspector.IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRetryAfterHint(t *testing.T) {
	hinted := &Transient{Err: errors.New("received status 429"), RetryAfter: 7 * time.Second}

	if got := RetryAfterHint(hinted); got != 7*time.Second {
		t.Errorf("RetryAfterHint() = %v, want 7s", got)
	}
	if got := RetryAfterHint(fmt.Errorf("wrapped: %w", hinted)); got != 7*time.Second {
		t.Errorf("RetryAfterHint(wrapped) = %v, want 7s", got)
	}
	if got := RetryAfterHint(errors.New("no hint")); got != 0 {
		t.Errorf("RetryAfterHint(plain) = %v, want 0", got)
	}
}
