package main

import (
	"bytes"
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zed-charania/Meridian/internal/config"
	"github.com/zed-charania/Meridian/internal/pdf"
	"github.com/zed-charania/Meridian/internal/pdf/pdftest"
)

func TestPrintVersion(t *testing.T) {
	oldVersion, oldBuildTime, oldGitCommit := version, buildTime, gitCommit
	defer func() { version, buildTime, gitCommit = oldVersion, oldBuildTime, oldGitCommit }()

	version = "1.2.3"
	buildTime = "2024-05-01_10:30:00"
	gitCommit = "abc123"

	var buf bytes.Buffer
	printVersion(&buf)

	out := buf.String()
	assert.Contains(t, out, "Meridian N-400 Generator")
	assert.Contains(t, out, "Version: 1.2.3")
	assert.Contains(t, out, "Build Time: 2024-05-01_10:30:00")
	assert.Contains(t, out, "Git Commit: abc123")
	assert.Contains(t, out, "Built with: go")
}

func TestSetupLogging(t *testing.T) {
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	}()

	tests := []struct {
		name        string
		mode        string
		logLevel    string
		wantDiscard bool
		wantFlags   int
	}{
		{name: "stdio quiet", mode: config.ModeStdio, logLevel: "info", wantDiscard: true, wantFlags: log.LstdFlags},
		{name: "stdio debug", mode: config.ModeStdio, logLevel: "debug", wantFlags: log.LstdFlags},
		{name: "server", mode: config.ModeServer, logLevel: "info", wantFlags: log.LstdFlags | log.Lshortfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log.SetOutput(os.Stderr)
			log.SetFlags(log.LstdFlags)

			cfg := config.DefaultConfig()
			cfg.Mode = tt.mode
			cfg.LogLevel = tt.logLevel
			setupLogging(cfg)

			assert.Equal(t, tt.wantDiscard, log.Writer() == io.Discard)
			assert.Equal(t, tt.wantFlags, log.Flags())
		})
	}
}

func TestLoadService(t *testing.T) {
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	path := filepath.Join(t.TempDir(), "n400.pdf")
	require.NoError(t, os.WriteFile(path, pdftest.FormPDF(), 0o600))

	cfg := config.DefaultConfig()
	cfg.TemplatePath = path
	service := loadService(context.Background(), cfg)
	assert.True(t, service.TemplateAvailable())
	assert.Equal(t, path, service.Health().TemplateSource)

	cfg.TemplatePath = filepath.Join(t.TempDir(), "missing.pdf")
	service = loadService(context.Background(), cfg)
	assert.False(t, service.TemplateAvailable())
}

func TestRunServerMode_StoreError(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeServer
	cfg.Store = "sqlite"

	err := runServerMode(context.Background(), cfg, pdf.NewService(nil, cfg.TemplatePath, false))
	assert.ErrorContains(t, err, "failed to open sqlite store")
}

func TestRunServerMode_Shutdown(t *testing.T) {
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeServer
	cfg.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, runServerMode(ctx, cfg, pdf.NewService(nil, cfg.TemplatePath, false)))
}
