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

// Package output assembles the repository summary document and persists it.
// The document is a JSON object mapping each username to the ordered array
// of that user's repository summaries, indented with four spaces for human
// readability.
//
// File writes are atomic: the document lands in a temporary file that is
// renamed over the target, so readers never observe a half-written document
// and a crash cannot corrupt an existing one.
//
// Example usage:
//
//	w := output.NewFileWriter("github_repos.json")
//	w.Add("octocat", result.Repositories)
//	if err := w.Flush(); err != nil {
//	    log.Fatal(err)
//	}
package output
