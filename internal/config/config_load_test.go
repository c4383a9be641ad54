package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("meridian", nil)
	require.NoError(t, err)

	assert.Equal(t, ModeStdio, cfg.Mode)
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultTemplate, cfg.TemplatePath)
	assert.Equal(t, StoreNone, cfg.Store)
	assert.True(t, filepath.IsAbs(cfg.OutputDirectory))
}

func TestLoad_Flags(t *testing.T) {
	outdir := t.TempDir()

	cfg, err := Load("meridian", []string{
		"--mode=server",
		"--host=0.0.0.0",
		"--port=9000",
		"--template=s3://forms/n400.pdf",
		"--s3-endpoint=minio:9000",
		"--s3-secure=false",
		"--store=Redis",
		"--redis-url=redis://localhost:6379/1",
		"--outdir", outdir,
		"--loglevel=debug",
		"--maxbody=2048",
		"--cors=https://intake.example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, ModeServer, cfg.Mode)
	assert.Equal(t, "0.0.0.0:9000", cfg.Address())
	assert.Equal(t, "s3://forms/n400.pdf", cfg.TemplatePath)
	assert.Equal(t, "minio:9000", cfg.S3Endpoint)
	assert.False(t, cfg.S3Secure)
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	assert.Equal(t, outdir, cfg.OutputDirectory)
	assert.True(t, cfg.IsDebug())
	assert.Equal(t, int64(2048), cfg.MaxBodySize)
	assert.Equal(t, "https://intake.example.com", cfg.CORSOrigin)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("MERIDIAN_MODE", "server")
	t.Setenv("MERIDIAN_PORT", "7000")
	t.Setenv("MERIDIAN_STORE", "postgres")
	t.Setenv("MERIDIAN_DATABASE_URL", "postgres://localhost/meridian")
	t.Setenv("MERIDIAN_MAXFILESIZE", "4096")

	cfg, err := Load("meridian", nil)
	require.NoError(t, err)

	assert.Equal(t, ModeServer, cfg.Mode)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, "postgres://localhost/meridian", cfg.DatabaseURL)
	assert.Equal(t, int64(4096), cfg.MaxFileSize)
}

func TestLoad_FlagOverridesEnvironment(t *testing.T) {
	t.Setenv("MERIDIAN_PORT", "7000")

	cfg, err := Load("meridian", []string{"--port=7100"})
	require.NoError(t, err)
	assert.Equal(t, 7100, cfg.Port)
}

func TestLoad_ConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "meridian.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
mode: server
port: 8181
template: /srv/forms/n400.pdf
store: redis
redis-url: redis://cache:6379/0
`), 0o600))

	cfg, err := Load("meridian", []string{"--config", file, "--port=8282"})
	require.NoError(t, err)

	assert.Equal(t, file, cfg.ConfigFile)
	assert.Equal(t, ModeServer, cfg.Mode)
	assert.Equal(t, 8282, cfg.Port)
	assert.Equal(t, "/srv/forms/n400.pdf", cfg.TemplatePath)
	assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "invalid mode", args: []string{"--mode=http"}, wantErr: "invalid configuration"},
		{name: "store without url", args: []string{"--store=postgres"}, wantErr: "database-url"},
		{name: "unknown flag", args: []string{"--dir=/tmp"}, wantErr: "unknown flag"},
		{name: "bad port", args: []string{"--port=abc"}, wantErr: "invalid argument"},
		{name: "missing config file", args: []string{"--config=/nonexistent/meridian.yaml"}, wantErr: "failed to read config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("meridian", tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Version(t *testing.T) {
	for _, arg := range []string{"-v", "-version", "--version"} {
		_, err := Load("meridian", []string{"--mode=server", arg})
		assert.ErrorIs(t, err, ErrVersionRequested, arg)
	}
}

func TestLoad_Help(t *testing.T) {
	_, err := Load("meridian", []string{"--help"})
	assert.ErrorIs(t, err, pflag.ErrHelp)
}
