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

package testutil

import (
	"strings"
	"testing"
)

// summaryFields are the fields every normalized output record carries,
// present even when their value is null.
var summaryFields = []string{"name", "description", "stars", "language", "created_at", "updated_at"}

// AssertDocumentOutput validates that a document file holds the
// expected record count for a username and that every record carries
// the normalized fields.
func AssertDocumentOutput(t *testing.T, filePath, username string, expectedCount int) {
	t.Helper()

	doc := ReadDocument(t, filePath)

	records, ok := doc[username]
	if !ok {
		t.Fatalf("Document has no entry for %q, got users %v", username, documentUsers(doc))
	}
	if len(records) != expectedCount {
		t.Errorf("Expected %d records for %q, got %d", expectedCount, username, len(records))
	}

	for i, record := range records {
		for _, field := range summaryFields {
			if _, ok := record[field]; !ok {
				t.Errorf("Record %d: missing required field %q", i, field)
			}
		}
		if len(record) != len(summaryFields) {
			t.Errorf("Record %d: has %d fields, want exactly %d normalized fields", i, len(record), len(summaryFields))
		}
	}
}

func documentUsers(doc map[string][]map[string]any) []string {
	users := make([]string, 0, len(doc))
	for u := range doc {
		users = append(users, u)
	}
	return users
}

// AssertContainsString checks if a string contains a substring
func AssertContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("Expected string to contain %q, got: %s", needle, haystack)
	}
}

// AssertNotContainsString checks if a string does not contain a substring
func AssertNotContainsString(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Errorf("Expected string to NOT contain %q, got: %s", needle, haystack)
	}
}

// AssertEqual compares two values and fails if they're not equal
func AssertEqual(t *testing.T, got, want any) {
	t.Helper()
	if got != want {
		t.Errorf("Got %v, want %v", got, want)
	}
}
