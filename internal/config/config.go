// Package config loads refstats settings.
//
// Settings are layered, lowest precedence first: built-in defaults, an
// optional YAML file, then REFSTATS_* environment variables. The defaults
// reproduce the repository's fixed relative paths, so no file or variable is
// needed for a normal run.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/pfrederiksen/referee-stats/internal/logger"
	"github.com/pfrederiksen/referee-stats/internal/referee"
	"github.com/pfrederiksen/referee-stats/internal/region"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "REFSTATS_"

// EnvConfigFile names the YAML file when no path is passed to Load.
const EnvConfigFile = EnvPrefix + "CONFIG"

// Config contains process configuration.
type Config struct {
	// DataDir is the dataset root holding the per-league and combined CSVs.
	DataDir string `koanf:"data_dir"`

	// PlotsDir receives rendered PNG charts.
	PlotsDir string `koanf:"plots_dir"`

	// BaseURL, UserAgent, Timeout and Retries drive the scraper.
	BaseURL   string        `koanf:"base_url"`
	UserAgent string        `koanf:"user_agent"`
	Timeout   time.Duration `koanf:"timeout"`
	Retries   int           `koanf:"retries"`

	// KeyMode selects how season rows are grouped into career rows.
	KeyMode string `koanf:"key_mode"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// MetricsFile, when set, receives Prometheus text-format metrics on exit.
	MetricsFile string `koanf:"metrics_file"`

	// Regions replaces the built-in nationality map: region -> nationalities.
	Regions map[string][]string `koanf:"regions"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DataDir:   "public/datasets",
		PlotsDir:  "src/utils/python/plots",
		BaseURL:   "https://www.transfermarkt.co.uk",
		UserAgent: "Mozilla/5.0",
		Timeout:   30 * time.Second,
		Retries:   0,
		KeyMode:   string(referee.KeyNameNationalityAge),
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load builds a Config from defaults, the YAML file at path (or the file
// named by REFSTATS_CONFIG when path is empty) and REFSTATS_* variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// REFSTATS_DATA_DIR -> data_dir
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := *Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values and the region override.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("data_dir must not be empty")
	}
	if strings.TrimSpace(c.PlotsDir) == "" {
		return errors.New("plots_dir must not be empty")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.Retries < 0 {
		return errors.New("retries must not be negative")
	}
	if _, err := referee.ParseKeyMode(c.KeyMode); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logger.ParseFormat(c.LogFormat); err != nil {
		return err
	}
	if _, err := c.RegionMap(); err != nil {
		return err
	}
	return nil
}

// RegionMap returns the configured override, or region.DefaultMap when none is set.
func (c *Config) RegionMap() (region.Map, error) {
	if len(c.Regions) == 0 {
		return region.DefaultMap(), nil
	}
	groups := make(map[region.Region][]string, len(c.Regions))
	for name, nationalities := range c.Regions {
		groups[region.Region(name)] = nationalities
	}
	m, err := region.NewMap(groups)
	if err != nil {
		return region.Map{}, fmt.Errorf("regions: %w", err)
	}
	return m, nil
}
