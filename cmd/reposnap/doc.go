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

// Package main implements the reposnap command-line interface.
// The tool fetches the public repositories owned by GitHub users and
// writes a normalized JSON document with one entry per username.
//
// The CLI supports:
//   - Batch mode: usernames passed as arguments
//   - Interactive mode: a prompt loop when run without arguments
//   - Customizable output destinations (file, or stdout via "-")
//   - A run history recorded to SQLite, shown by the history command
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	reposnap [username...] [flags]
//	reposnap history
//
// Example:
//
//	reposnap octocat torvalds --output repos.json
//
// Exit codes:
//   - 0: Success
//   - 1: General or validation error
//   - 2: Unknown user or rate limit exhaustion
//   - 3: Network error
package main
