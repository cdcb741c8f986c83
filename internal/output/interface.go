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

package output

import "github.com/reposnaphq/reposnap/internal/github"

// DocumentWriter defines the interface for assembling the summary document.
// This abstraction allows different destinations (file, stream) and formats
// to be implemented without changing the fetch logic.
type DocumentWriter interface {
	// Add records the summaries for one username, replacing any earlier
	// entry for the same name.
	Add(username string, records []github.RepositorySummary)

	// Flush persists the assembled document. It can be called more than
	// once; each call writes the complete current document.
	Flush() error
}
