package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lengolf/timeclock-engine/config"
	"github.com/lengolf/timeclock-engine/engine"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  allowed_origins:
    - https://dashboard.example.com
  rate_limit_per_sec: 5
  rate_limit_burst: 10
  roster_cache_ttl_seconds: 60
database:
  path: /var/lib/timeclock/events.db
business:
  timezone: Asia/Bangkok
  rules:
    break_eligible_minutes: 300
    break_deduction_minutes: 45
    daily_regular_minutes: 420
    single_open_shift: true
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://dashboard.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "/var/lib/timeclock/events.db", cfg.Database.Path)

	rules := cfg.Rules()
	assert.Equal(t, 300, rules.BreakEligibleMinutes)
	assert.Equal(t, 45, rules.BreakDeductionMinutes)
	assert.Equal(t, 420, rules.DailyRegularMinutes)
	assert.True(t, rules.SingleOpenShift)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Bangkok", loc.String())
}

func TestLoad_ServerDefaultsApplied(t *testing.T) {
	// Only the rules block is mandatory; everything else falls back.
	path := writeConfig(t, `
business:
  rules:
    break_eligible_minutes: 360
    break_deduction_minutes: 60
    daily_regular_minutes: 480
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	def := config.Default()
	assert.Equal(t, def.Server.Port, cfg.Server.Port)
	assert.Equal(t, def.Server.RateLimitPerSec, cfg.Server.RateLimitPerSec)
	assert.Equal(t, def.Database.Path, cfg.Database.Path)
	assert.Equal(t, def.Business.Timezone, cfg.Business.Timezone)
	assert.Equal(t, def.RosterCacheTTL(), cfg.RosterCacheTTL())
}

func TestLoad_MissingRulesIsFatal(t *testing.T) {
	// A zero rules block must not load: it would produce a payroll report
	// with no break deduction and zero overtime threshold.
	path := writeConfig(t, `
server:
  port: 8080
`)

	_, err := config.Load(path)
	require.Error(t, err)
	assert.True(t, engine.IsConfigError(err))
}

func TestLoad_InvalidTimezoneIsFatal(t *testing.T) {
	path := writeConfig(t, `
business:
  timezone: Mars/Olympus_Mons
  rules:
    break_eligible_minutes: 360
    break_deduction_minutes: 60
    daily_regular_minutes: 480
`)

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Mars/Olympus_Mons")
}

func TestLoad_UnparsableYAML(t *testing.T) {
	path := writeConfig(t, "server: [not: a mapping")

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDefault_RulesValidate(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Rules().Validate())
	assert.Equal(t, engine.DefaultRules(), cfg.Rules())
}
