package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/couchcryptid/fluxcdf/internal/adapter/reference"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Config holds deployment settings, populated from environment variables.
// Conversion parameters come from the command line, not from here.
type Config struct {
	LogLevel  string
	LogFormat string

	LegendPath         string
	SiteInfoPath       string
	VariableGroupsPath string
	PolicyPath         string

	OutputDir string
	Contact   string

	// MetricsTextfile is where run metrics are written in Prometheus text
	// format. Empty disables it.
	MetricsTextfile string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:           strings.ToLower(sharedcfg.EnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "text")),
		LegendPath:         sharedcfg.EnvOrDefault("LEGEND_PATH", "doc/variable_codes_FULLSET_20200504.csv"),
		SiteInfoPath:       sharedcfg.EnvOrDefault("SITE_INFO_PATH", "doc/site_info.csv"),
		VariableGroupsPath: sharedcfg.EnvOrDefault("VARIABLE_GROUPS_PATH", "doc/variable_groups.csv"),
		PolicyPath:         sharedcfg.EnvOrDefault("POLICY_PATH", "output_variables.csv"),
		OutputDir:          sharedcfg.EnvOrDefault("OUTPUT_DIR", "netcdf"),
		Contact:            sharedcfg.EnvOrDefault("CONTACT", "https://fluxnet.org"),
		MetricsTextfile:    sharedcfg.EnvOrDefault("METRICS_TEXTFILE", ""),
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	return cfg, nil
}

// LoadDotEnv seeds the environment from the given .env files. Variables that
// are already set win, and missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ReferencePaths returns the locations of the reference tables.
func (c *Config) ReferencePaths() reference.Paths {
	return reference.Paths{
		Legend:         c.LegendPath,
		Sites:          c.SiteInfoPath,
		VariableGroups: c.VariableGroupsPath,
	}
}
