package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ModeStdio, cfg.Mode)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "meridian", cfg.ServerName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(100*1024*1024), cfg.MaxFileSize)
	assert.Equal(t, int64(1024*1024), cfg.MaxBodySize)
	assert.Equal(t, DefaultTemplate, cfg.TemplatePath)
	assert.Equal(t, StoreNone, cfg.Store)
	assert.True(t, cfg.S3Secure)

	currentDir, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(currentDir, "output"), cfg.OutputDirectory)

	assert.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "server mode", modify: func(c *Config) { c.Mode = ModeServer }},
		{name: "invalid mode", modify: func(c *Config) { c.Mode = "http" }, wantErr: "mode must be"},
		{name: "port too low", modify: func(c *Config) { c.Mode = ModeServer; c.Port = 0 }, wantErr: "port must be"},
		{name: "port too high", modify: func(c *Config) { c.Mode = ModeServer; c.Port = 70000 }, wantErr: "port must be"},
		{name: "port ignored in stdio", modify: func(c *Config) { c.Port = 0 }},
		{name: "empty template", modify: func(c *Config) { c.TemplatePath = "" }, wantErr: "template path"},
		{name: "empty outdir", modify: func(c *Config) { c.OutputDirectory = "" }, wantErr: "output directory"},
		{name: "zero file size", modify: func(c *Config) { c.MaxFileSize = 0 }, wantErr: "file size"},
		{name: "negative body size", modify: func(c *Config) { c.MaxBodySize = -1 }, wantErr: "body size"},
		{name: "postgres without url", modify: func(c *Config) { c.Store = StorePostgres }, wantErr: "database-url"},
		{name: "postgres", modify: func(c *Config) { c.Store = StorePostgres; c.DatabaseURL = "postgres://localhost/meridian" }},
		{name: "redis without url", modify: func(c *Config) { c.Store = StoreRedis }, wantErr: "redis-url"},
		{name: "redis", modify: func(c *Config) { c.Store = StoreRedis; c.RedisURL = "redis://localhost:6379/0" }},
		{name: "unknown store", modify: func(c *Config) { c.Store = "mongo" }, wantErr: "invalid store"},
		{name: "invalid log level", modify: func(c *Config) { c.LogLevel = "trace" }, wantErr: "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "0.0.0.0"
	cfg.Port = 9090
	cfg.S3SecretKey = "hunter2"
	cfg.DatabaseURL = "postgres://user:secret@db/meridian"

	assert.Equal(t, "0.0.0.0:9090", cfg.Address())
	assert.True(t, cfg.IsStdioMode())
	assert.False(t, cfg.IsServerMode())
	assert.False(t, cfg.IsDebug())
	assert.False(t, cfg.HasStore())

	s := cfg.String()
	assert.Contains(t, s, "Port: 9090")
	assert.NotContains(t, s, "hunter2")
	assert.NotContains(t, s, "secret@")

	cfg.Mode = ModeServer
	cfg.LogLevel = "debug"
	cfg.Store = StoreRedis
	assert.True(t, cfg.IsServerMode())
	assert.True(t, cfg.IsDebug())
	assert.True(t, cfg.HasStore())
}
