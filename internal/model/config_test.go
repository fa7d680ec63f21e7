package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_LoadConfig_Defaults(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "base_url: https://jira.example.com\nproject: LOL\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://jira.example.com", cfg.BaseURL)
	assert.Equal(t, "LOL", cfg.Project)
	assert.Equal(t, DefaultMarker, cfg.Marker)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, "Jira_Cleanup.csv", cfg.ReportPath)
	assert.Equal(t, "bearer", cfg.AuthScheme)
}

func Test_LoadConfig_Overrides(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `base_url: https://jira.example.com
project: LOL
marker: "Thanks to:"
page_size: 200
report_path: /tmp/out.csv
auth_scheme: basic
token_env: JIRA_TOKEN
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Thanks to:", cfg.Marker)
	assert.Equal(t, 200, cfg.PageSize)
	assert.Equal(t, "/tmp/out.csv", cfg.ReportPath)
	assert.Equal(t, "basic", cfg.AuthScheme)
	assert.Equal(t, "JIRA_TOKEN", cfg.TokenEnv)
}

func Test_LoadConfig_MissingBaseURL(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "project: LOL\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url is required")
}

func Test_LoadConfig_MissingProjectWithoutJQL(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "base_url: https://jira.example.com\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project is required")
}

func Test_LoadConfig_JQLOverrideWithoutProject(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, `base_url: https://jira.example.com
jql: 'project = LOL AND description ~ "Contributed by:"'
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, `project = LOL AND description ~ "Contributed by:"`, cfg.JQL)
}

func Test_LoadConfig_PageSizeClamped(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "base_url: https://jira.example.com\nproject: LOL\npage_size: 5000\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
}

func Test_LoadConfig_BadAuthScheme(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "base_url: https://jira.example.com\nproject: LOL\nauth_scheme: ntlm\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth_scheme")
}

func Test_LoadConfig_MissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
