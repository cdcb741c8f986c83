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

// Package config types define the configuration structures used throughout
// reposnap. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values can be written as strings
// like "1s" or "500ms". yaml.v3 has no native duration support.
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config represents the complete configuration for reposnap.
// It consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Retry    RetryConfig    `yaml:"retry"`
	HTTP     HTTPConfig     `yaml:"http"`
}

// GitHubConfig contains GitHub-specific settings. The endpoint can point at
// a GitHub Enterprise deployment; all requests stay unauthenticated either way.
type GitHubConfig struct {
	APIEndpoint string `yaml:"api_endpoint"`
}

// DefaultsConfig contains default settings that apply to all fetch
// operations unless overridden by command-line flags.
type DefaultsConfig struct {
	// PageSize is the number of repositories requested per page, 1 to 100.
	PageSize int `yaml:"page_size"`

	// OutputFile is where the summary document is written. "-" selects
	// stdout.
	OutputFile string `yaml:"output_file"`

	// HistoryDB is the path of the run history database. Empty disables
	// history entirely.
	HistoryDB string `yaml:"history_db"`
}

// RetryConfig controls the retry behavior for failed page requests.
type RetryConfig struct {
	MaxAttempts int      `yaml:"max_attempts"`
	BaseDelay   Duration `yaml:"base_delay"`
	MaxDelay    Duration `yaml:"max_delay"`
}

// HTTPConfig controls the HTTP client.
type HTTPConfig struct {
	Timeout Duration `yaml:"timeout"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. These defaults target public GitHub.com but can be overridden
// for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint: "https://api.github.com",
		},
		Defaults: DefaultsConfig{
			PageSize:   100,
			OutputFile: "github_repos.json",
			HistoryDB:  "~/.reposnap/history.db",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   Duration{1 * time.Second},
			MaxDelay:    Duration{30 * time.Second},
		},
		HTTP: HTTPConfig{
			Timeout: Duration{10 * time.Second},
		},
	}
}
