package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/zed-charania/Meridian/internal/api"
	"github.com/zed-charania/Meridian/internal/config"
	"github.com/zed-charania/Meridian/internal/mcp"
	"github.com/zed-charania/Meridian/internal/pdf"
	"github.com/zed-charania/Meridian/internal/store"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the server mode
func setupLogging(cfg *config.Config) {
	if cfg.IsStdioMode() {
		// stdout carries the MCP protocol
		log.SetOutput(os.Stderr)
		if !cfg.IsDebug() {
			log.SetOutput(io.Discard)
		}
	} else {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// loadService loads the template and builds the generation service. A
// template that fails to load leaves the service running without one.
func loadService(ctx context.Context, cfg *config.Config) *pdf.Service {
	tmpl, err := pdf.LoadTemplate(ctx, cfg.TemplatePath, cfg.MaxFileSize, pdf.S3Options{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Secure:    cfg.S3Secure,
	})
	if err != nil {
		log.Printf("Warning: template unavailable, generation disabled: %v", err)
		tmpl = nil
	} else {
		log.Printf("Loaded template %s (%d fields)", cfg.TemplatePath, len(tmpl.FieldNames()))
	}
	return pdf.NewService(tmpl, cfg.TemplatePath, cfg.IsDebug())
}

// runServerMode serves the HTTP API until ctx is cancelled
func runServerMode(ctx context.Context, cfg *config.Config, service *pdf.Service) error {
	var st store.Store
	if cfg.HasStore() {
		var err error
		st, err = store.Open(ctx, store.Options{
			Backend:     cfg.Store,
			DatabaseURL: cfg.DatabaseURL,
			RedisURL:    cfg.RedisURL,
		})
		if err != nil {
			return fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
		}
		defer st.Close()
		log.Printf("Using %s submission store", cfg.Store)
	} else {
		log.Printf("Submission store disabled")
	}

	server, err := api.NewServer(service, st, api.Options{
		MaxBodySize: cfg.MaxBodySize,
		CORSOrigin:  cfg.CORSOrigin,
		Debug:       cfg.IsDebug(),
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	if err := server.Run(ctx, cfg.Address()); err != nil {
		return err
	}
	log.Println("Server stopped successfully")
	return nil
}

// runStdioMode serves MCP over stdin/stdout; the parent process controls
// our lifecycle
func runStdioMode(ctx context.Context, cfg *config.Config, service *pdf.Service) error {
	server, err := mcp.NewServer(cfg, service)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	return server.Run(ctx)
}

func main() {
	cfg, err := config.LoadFromFlags()
	switch {
	case errors.Is(err, config.ErrVersionRequested):
		printVersion(os.Stdout)
		return
	case errors.Is(err, pflag.ErrHelp):
		return
	case err != nil:
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() && cfg.IsServerMode() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	service := loadService(ctx, cfg)

	if cfg.IsServerMode() {
		err = runServerMode(ctx, cfg, service)
	} else {
		err = runStdioMode(ctx, cfg, service)
	}
	if err != nil {
		log.Printf("Server error: %v", err)
		stop()
		os.Exit(1)
	}
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "Meridian N-400 Generator\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}
