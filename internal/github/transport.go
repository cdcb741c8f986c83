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
	"net/http"
)

// maxResponseBytes caps how much of a response body gets decoded. A full
// page of repositories is well under a megabyte.
const maxResponseBytes = 10 << 20

// headerTransport injects the standard request headers on every API call.
// All requests are unauthenticated; the tool never sends a token.
type headerTransport struct {
	base      http.RoundTripper
	userAgent string
}

// RoundTrip implements http.RoundTripper.
func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone so the caller's request stays untouched, per the
	// RoundTripper contract.
	cloned := req.Clone(req.Context())
	cloned.Header.Set("User-Agent", t.userAgent)
	cloned.Header.Set("Accept", "application/vnd.github.v3+json")
	return t.base.RoundTrip(cloned)
}
