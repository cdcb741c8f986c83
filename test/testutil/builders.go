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
	"fmt"
	"time"
)

// RepositoryBuilder provides a fluent API for creating raw repository
// payloads shaped like the live API's serialization.
type RepositoryBuilder struct {
	id          int
	name        string
	description *string
	stars       int
	language    *string
	fork        bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewRepositoryBuilder creates a repository builder with defaults
// derived from the given number.
func NewRepositoryBuilder(number int) *RepositoryBuilder {
	base := time.Date(2022, 3, 14, 9, 26, 53, 0, time.UTC)
	description := fmt.Sprintf("Test repository %d", number)
	language := "Go"

	return &RepositoryBuilder{
		id:          1000 + number,
		name:        fmt.Sprintf("repo-%03d", number),
		description: &description,
		stars:       number,
		language:    &language,
		createdAt:   base.AddDate(0, 0, number),
		updatedAt:   base.AddDate(0, 1, number),
	}
}

// WithName sets the repository name.
func (b *RepositoryBuilder) WithName(name string) *RepositoryBuilder {
	b.name = name
	return b
}

// WithDescription sets the description.
func (b *RepositoryBuilder) WithDescription(description string) *RepositoryBuilder {
	b.description = &description
	return b
}

// WithoutDescription clears the description, which the API serializes
// as an explicit null.
func (b *RepositoryBuilder) WithoutDescription() *RepositoryBuilder {
	b.description = nil
	return b
}

// WithStars sets the stargazer count.
func (b *RepositoryBuilder) WithStars(stars int) *RepositoryBuilder {
	b.stars = stars
	return b
}

// WithLanguage sets the primary language.
func (b *RepositoryBuilder) WithLanguage(language string) *RepositoryBuilder {
	b.language = &language
	return b
}

// WithoutLanguage clears the language, which the API serializes as an
// explicit null.
func (b *RepositoryBuilder) WithoutLanguage() *RepositoryBuilder {
	b.language = nil
	return b
}

// WithTimestamps sets the creation and update instants.
func (b *RepositoryBuilder) WithTimestamps(createdAt, updatedAt time.Time) *RepositoryBuilder {
	b.createdAt = createdAt
	b.updatedAt = updatedAt
	return b
}

// AsFork marks the repository as a fork.
func (b *RepositoryBuilder) AsFork() *RepositoryBuilder {
	b.fork = true
	return b
}

// Build produces the raw JSON object for one repository.
func (b *RepositoryBuilder) Build() map[string]any {
	return map[string]any{
		"id":               b.id,
		"name":             b.name,
		"full_name":        "testuser/" + b.name,
		"description":      b.description,
		"stargazers_count": b.stars,
		"watchers_count":   b.stars,
		"language":         b.language,
		"fork":             b.fork,
		"created_at":       b.createdAt.Format(time.RFC3339),
		"updated_at":       b.updatedAt.Format(time.RFC3339),
		"default_branch":   "main",
	}
}
