package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/fluxcdf/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureDoc = filepath.Join("..", "..", "internal", "pipeline", "testdata", "doc")

func fixtureConfig() *config.Config {
	return &config.Config{
		LogLevel:           "info",
		LogFormat:          "text",
		LegendPath:         filepath.Join(fixtureDoc, "variable_codes.csv"),
		SiteInfoPath:       filepath.Join(fixtureDoc, "site_info.csv"),
		VariableGroupsPath: filepath.Join(fixtureDoc, "variable_groups.csv"),
		PolicyPath:         filepath.Join(fixtureDoc, "output_variables.csv"),
	}
}

func TestRunCheck_Passes(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runCheck(&out, fixtureConfig()))

	assert.Contains(t, out.String(), "Variables: 5, groups: 3 (2 enabled), sites: 2")
	assert.Contains(t, out.String(), "Unit blocks: 2 variables, without unit at HH 0, DD 0, WW 1, YY 1")
	assert.Contains(t, out.String(), "All checks passed.")
}

func TestRunCheck_UnknownPolicyGroup(t *testing.T) {
	cfg := fixtureConfig()
	cfg.PolicyPath = filepath.Join(t.TempDir(), "output_variables.yaml")
	require.NoError(t, os.WriteFile(cfg.PolicyPath, []byte("groups:\n  NEE: true\n  SOIL: true\n"), 0o600))

	var out bytes.Buffer
	err := runCheck(&out, cfg)
	require.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out.String(), `group "SOIL" has no variables`)
}

func TestRootCommand_UsageErrorsReported(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing argument", args: []string{"/data", "all", "DD"}, want: "accepts 4 arg(s), received 3"},
		{name: "unknown flag", args: []string{"--bogus", "/data", "all", "DD", "FULLSET"}, want: "unknown flag: --bogus"},
		{name: "check takes no arguments", args: []string{"check", "extra"}, want: `unknown command "extra"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			cmd := rootCommand(fixtureConfig())
			cmd.SetArgs(tt.args)
			cmd.SetOut(&stdout)
			cmd.SetErr(&stderr)

			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, stderr.String(), "Error: "+tt.want)
		})
	}
}
