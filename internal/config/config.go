// Package config loads tool configuration from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultMaxResults is the page size used for tracker searches.
const DefaultMaxResults = 50

// Config carries the settings shared by all commands.
type Config struct {
	// BaseURL is the tracker's base URL, e.g. https://jira.example.com.
	BaseURL string
	// Token is a personal access token used as a bearer token.
	Token string
	// JQL is the default search query when none is given on the command line.
	JQL string
	// ExcludeFields are field names whose changes never count as activity.
	ExcludeFields []string
	// ExcludeUsers are actors whose changes never count as activity.
	ExcludeUsers []string
	// Format is the default output format (table, json, csv).
	Format string
	// MaxResults is the search page size.
	MaxResults int
}

// defaultPath returns the per-user config file location.
func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jirafewer", "config.yaml")
}

// Load reads the YAML config file and applies environment overrides.
// When path is empty the per-user default location is used; a missing
// file there is not an error. JIRA_URL and JIRA_TOKEN take precedence
// over the file, so the token can stay out of it.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("search.maxResults", DefaultMaxResults)
	v.SetDefault("output.format", "table")

	explicit := path != ""
	if !explicit {
		path = defaultPath()
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			// A missing file at the default location is fine.
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		BaseURL:       v.GetString("jira.url"),
		Token:         v.GetString("jira.token"),
		JQL:           v.GetString("jira.jql"),
		ExcludeFields: v.GetStringSlice("exclude.fields"),
		ExcludeUsers:  v.GetStringSlice("exclude.users"),
		Format:        v.GetString("output.format"),
		MaxResults:    v.GetInt("search.maxResults"),
	}

	if url := os.Getenv("JIRA_URL"); url != "" {
		cfg.BaseURL = url
	}
	if token := os.Getenv("JIRA_TOKEN"); token != "" {
		cfg.Token = token
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}

	return cfg, nil
}

// ValidateConnection checks the settings every tracker-facing command
// needs.
func (c *Config) ValidateConnection() error {
	if c.BaseURL == "" {
		return fmt.Errorf("tracker URL not configured (set jira.url or JIRA_URL)")
	}
	if c.Token == "" {
		return fmt.Errorf("tracker token not configured (set jira.token or JIRA_TOKEN)")
	}
	return nil
}
