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
	"strconv"
	"time"
)

// RateLimit is a snapshot of the X-RateLimit-* headers from one API
// response. Known is false when the response carried no usable headers,
// which keeps an absent header distinct from a genuine zero budget.
type RateLimit struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	Known     bool
}

// ParseRateLimit reads the rate-limit headers from an API response.
// A missing or malformed X-RateLimit-Remaining yields an unknown snapshot.
func ParseRateLimit(h http.Header) RateLimit {
	var rl RateLimit

	remaining, err := strconv.Atoi(h.Get("X-RateLimit-Remaining"))
	if err != nil {
		return rl
	}
	rl.Known = true
	rl.Remaining = remaining

	if limit, err := strconv.Atoi(h.Get("X-RateLimit-Limit")); err == nil {
		rl.Limit = limit
	}
	if reset, err := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		rl.ResetAt = time.Unix(reset, 0).UTC()
	}
	return rl
}

// Exhausted reports whether the API budget is spent. An unknown snapshot
// is never exhausted.
func (r RateLimit) Exhausted() bool {
	return r.Known && r.Remaining == 0
}

// istZone is UTC+5:30. Reset instants are rendered in Indian Standard Time
// for operator-facing messages; all comparisons use the absolute instant.
var istZone = time.FixedZone("IST", 5*3600+30*60)

// FormatIST renders an instant in Indian Standard Time, matching the
// format users see in rate-limit messages.
func FormatIST(t time.Time) string {
	return t.In(istZone).Format("02-Jan-2006 03:04:05 PM") + " IST"
}
