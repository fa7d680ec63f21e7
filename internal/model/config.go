package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultMarker is the attribution substring searched for in descriptions.
const DefaultMarker = "Contributed by:"

// DefaultPageSize is the search page size; Jira Server caps search
// results at 1000 per request.
const DefaultPageSize = 1000

// Config is the top-level tool configuration.
type Config struct {
	// BaseURL is the root URL of the Jira instance.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Project is the key of the project whose issues are scanned.
	Project string `mapstructure:"project" yaml:"project"`

	// Marker is the attribution substring matched in descriptions.
	Marker string `mapstructure:"marker" yaml:"marker"`

	// JQL, when set, replaces the generated project+marker query entirely.
	JQL string `mapstructure:"jql" yaml:"jql"`

	// PageSize is the number of issues requested per search page.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// ReportPath is where the CSV report is appended.
	ReportPath string `mapstructure:"report_path" yaml:"report_path"`

	// AuthScheme selects the Authorization header scheme,
	// "bearer" or "basic".
	AuthScheme string `mapstructure:"auth_scheme" yaml:"auth_scheme"`

	// TokenEnv names an environment variable checked for the API token
	// before falling back to the system keyring.
	TokenEnv string `mapstructure:"token_env" yaml:"token_env"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/jira-cleanup/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "jira-cleanup", "config.yaml")
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Missing keys resolve to defaults; base_url and project are required.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("marker", DefaultMarker)
	v.SetDefault("page_size", DefaultPageSize)
	v.SetDefault("report_path", "Jira_Cleanup.csv")
	v.SetDefault("auth_scheme", "bearer")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("config %s: base_url is required", path)
	}
	if cfg.Project == "" && cfg.JQL == "" {
		return nil, fmt.Errorf("config %s: project is required unless jql is set", path)
	}
	if cfg.PageSize < 1 || cfg.PageSize > DefaultPageSize {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.AuthScheme != "bearer" && cfg.AuthScheme != "basic" {
		return nil, fmt.Errorf(
			"config %s: auth_scheme must be \"bearer\" or \"basic\", got %q",
			path, cfg.AuthScheme,
		)
	}

	return cfg, nil
}
