// Package config loads the server configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lengolf/timeclock-engine/engine"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Business BusinessConfig `yaml:"business"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port                  int      `yaml:"port"`
	AllowedOrigins        []string `yaml:"allowed_origins"`
	RateLimitPerSec       float64  `yaml:"rate_limit_per_sec"`
	RateLimitBurst        int      `yaml:"rate_limit_burst"`
	RosterCacheTTLSeconds int      `yaml:"roster_cache_ttl_seconds"`
}

// DatabaseConfig holds the SQLite configuration.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// BusinessConfig holds the business time zone and rule thresholds.
// The threshold values are a business decision confirmed with the owner;
// they are deliberately not defaulted here - a missing rules block fails
// startup rather than silently producing a zero-deduction payroll report.
type BusinessConfig struct {
	Timezone string      `yaml:"timezone"`
	Rules    RulesConfig `yaml:"rules"`
}

// RulesConfig mirrors engine.Rules in YAML form.
type RulesConfig struct {
	BreakEligibleMinutes  int  `yaml:"break_eligible_minutes"`
	BreakDeductionMinutes int  `yaml:"break_deduction_minutes"`
	DailyRegularMinutes   int  `yaml:"daily_regular_minutes"`
	SingleOpenShift       bool `yaml:"single_open_shift"`
}

// Default returns the configuration used when no file is given: local demo
// settings with the demo rule thresholds.
func Default() *Config {
	rules := engine.DefaultRules()
	return &Config{
		Server: ServerConfig{
			Port:                  8080,
			AllowedOrigins:        []string{"http://localhost:5173", "http://localhost:8080"},
			RateLimitPerSec:       20,
			RateLimitBurst:        40,
			RosterCacheTTLSeconds: 30,
		},
		Database: DatabaseConfig{Path: "timeclock.db"},
		Business: BusinessConfig{
			Timezone: "Asia/Bangkok",
			Rules: RulesConfig{
				BreakEligibleMinutes:  rules.BreakEligibleMinutes,
				BreakDeductionMinutes: rules.BreakDeductionMinutes,
				DailyRegularMinutes:   rules.DailyRegularMinutes,
			},
		},
	}
}

// Load reads the configuration from the given path, applies server defaults,
// and validates the business rules. A rules failure here is fatal by design:
// every downstream duration decision depends on them.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	def := Default()
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = def.Server.Port
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = def.Server.AllowedOrigins
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = def.Server.RateLimitPerSec
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = def.Server.RateLimitBurst
	}
	if cfg.Server.RosterCacheTTLSeconds <= 0 {
		cfg.Server.RosterCacheTTLSeconds = def.Server.RosterCacheTTLSeconds
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = def.Database.Path
	}
	if cfg.Business.Timezone == "" {
		cfg.Business.Timezone = def.Business.Timezone
	}

	if err := cfg.Rules().Validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Rules converts the YAML rules block into the engine's type.
func (c *Config) Rules() engine.Rules {
	return engine.Rules{
		BreakEligibleMinutes:  c.Business.Rules.BreakEligibleMinutes,
		BreakDeductionMinutes: c.Business.Rules.BreakDeductionMinutes,
		DailyRegularMinutes:   c.Business.Rules.DailyRegularMinutes,
		SingleOpenShift:       c.Business.Rules.SingleOpenShift,
	}
}

// Location resolves the configured business time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Business.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid business timezone %q: %w", c.Business.Timezone, err)
	}
	return loc, nil
}

// RosterCacheTTL returns the roster cache duration.
func (c *Config) RosterCacheTTL() time.Duration {
	return time.Duration(c.Server.RosterCacheTTLSeconds) * time.Second
}
