package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "doc/variable_codes_FULLSET_20200504.csv", cfg.LegendPath)
	assert.Equal(t, "doc/site_info.csv", cfg.SiteInfoPath)
	assert.Equal(t, "doc/variable_groups.csv", cfg.VariableGroupsPath)
	assert.Equal(t, "output_variables.csv", cfg.PolicyPath)
	assert.Equal(t, "netcdf", cfg.OutputDir)
	assert.Equal(t, "https://fluxnet.org", cfg.Contact)
	assert.Empty(t, cfg.MetricsTextfile)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LEGEND_PATH", "/ref/legend.csv")
	t.Setenv("SITE_INFO_PATH", "/ref/sites.csv")
	t.Setenv("VARIABLE_GROUPS_PATH", "/ref/groups.csv")
	t.Setenv("POLICY_PATH", "/ref/policy.yaml")
	t.Setenv("OUTPUT_DIR", "/data/out")
	t.Setenv("CONTACT", "ops@example.org")
	t.Setenv("METRICS_TEXTFILE", "/var/lib/node_exporter/fluxcdf.prom")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/ref/policy.yaml", cfg.PolicyPath)
	assert.Equal(t, "/data/out", cfg.OutputDir)
	assert.Equal(t, "ops@example.org", cfg.Contact)
	assert.Equal(t, "/var/lib/node_exporter/fluxcdf.prom", cfg.MetricsTextfile)

	paths := cfg.ReferencePaths()
	assert.Equal(t, "/ref/legend.csv", paths.Legend)
	assert.Equal(t, "/ref/sites.csv", paths.Sites)
	assert.Equal(t, "/ref/groups.csv", paths.VariableGroups)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestLoadDotEnv(t *testing.T) {
	env := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(env, []byte("OUTPUT_DIR=from-dotenv\nCONTACT=dotenv@example.org\n"), 0o600))

	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("CONTACT", "shell@example.org")
	require.NoError(t, os.Unsetenv("OUTPUT_DIR"))

	require.NoError(t, LoadDotEnv(env))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.OutputDir)
	assert.Equal(t, "shell@example.org", cfg.Contact, "existing variables win")

	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
