package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func requiredEnv() map[string]string {
	return map[string]string{
		"DB_DSN":                             "postgres://localhost/everyclass",
		"RESOURCE_IDENTIFIER_ENCRYPTION_KEY": "development_key",
		"JWT_SECRET":                         "secret",
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envMap(requiredEnv()))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 2, cfg.CalendarCacheHits)
	assert.Equal(t, time.Hour, cfg.CalendarCacheWindow)
	assert.Equal(t, 24*time.Hour, cfg.CalendarForceRefresh)
	assert.Equal(t, time.Hour, cfg.CounterPurgeInterval)
	assert.Equal(t, 30*24*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	env := requiredEnv()
	env["ENV"] = "production"
	env["HTTP_ADDR"] = ":9000"
	env["CALENDAR_CACHE_WINDOW"] = "30m"
	env["CALENDAR_CACHE_HITS"] = "5"

	cfg, err := FromEnv(envMap(env))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Minute, cfg.CalendarCacheWindow)
	assert.Equal(t, 5, cfg.CalendarCacheHits)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(map[string]string)
	}{
		{"missing dsn", func(m map[string]string) { delete(m, "DB_DSN") }},
		{"missing key", func(m map[string]string) { delete(m, "RESOURCE_IDENTIFIER_ENCRYPTION_KEY") }},
		{"long key", func(m map[string]string) {
			m["RESOURCE_IDENTIFIER_ENCRYPTION_KEY"] = "0123456789abcdef0123456789abcdef"
		}},
		{"missing jwt secret", func(m map[string]string) { delete(m, "JWT_SECRET") }},
		{"cache hits not a number", func(m map[string]string) { m["CALENDAR_CACHE_HITS"] = "two" }},
		{"bad duration", func(m map[string]string) { m["CALENDAR_FORCE_REFRESH"] = "one day" }},
		{"negative duration", func(m map[string]string) { m["CALENDAR_CACHE_WINDOW"] = "-1h" }},
		{"zero cache hits", func(m map[string]string) { m["CALENDAR_CACHE_HITS"] = "0" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := requiredEnv()
			tt.modify(env)

			_, err := FromEnv(envMap(env))
			assert.Error(t, err)
		})
	}
}
