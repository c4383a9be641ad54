package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Store backends
	StoreNone     = "none"
	StorePostgres = "postgres"
	StoreRedis    = "redis"

	// Default values
	DefaultPort         = 8080
	DefaultHost         = "127.0.0.1"
	DefaultLogLevel     = "info"
	DefaultTemplate     = "templates/n400.pdf"
	DefaultMaxFileSize  = 100 * 1024 * 1024 // 100MB
	DefaultMaxBodySize  = 1024 * 1024       // 1MB
	DefaultCORSOrigin   = "*"
	DefaultOutputSubdir = "output"

	// Directory permissions
	DefaultDirPerm = 0o750

	envPrefix = "MERIDIAN"
)

// ErrVersionRequested is returned by Load when --version is on the command
// line.
var ErrVersionRequested = errors.New("version requested")

// Config holds all configuration for the Meridian service
type Config struct {
	// Server configuration
	Mode       string // "server" or "stdio"
	Host       string
	Port       int
	CORSOrigin string

	// Template configuration
	TemplatePath    string // file path or s3://bucket/key
	OutputDirectory string // where the MCP generate tool writes PDFs

	// Object storage for s3:// templates
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Secure    bool

	// Submission store
	Store       string
	DatabaseURL string
	RedisURL    string

	// Application configuration
	ConfigFile  string
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum template size in bytes
	MaxBodySize int64 // Maximum request payload in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:            ModeStdio, // Default to stdio mode for MCP compatibility
		Host:            DefaultHost,
		Port:            DefaultPort,
		CORSOrigin:      DefaultCORSOrigin,
		TemplatePath:    DefaultTemplate,
		OutputDirectory: filepath.Join(currentDir, DefaultOutputSubdir),
		S3Secure:        true,
		Store:           StoreNone,
		Version:         "1.0.0",
		ServerName:      "meridian",
		LogLevel:        DefaultLogLevel,
		MaxFileSize:     DefaultMaxFileSize,
		MaxBodySize:     DefaultMaxBodySize,
	}
}

// LoadFromFlags parses the process command line and environment.
func LoadFromFlags() (*Config, error) {
	return Load(os.Args[0], os.Args[1:])
}

// Load builds a configuration from defaults, an optional YAML config file,
// MERIDIAN_* environment variables and args, in increasing precedence.
func Load(program string, args []string) (*Config, error) {
	if versionRequested(args) {
		return nil, ErrVersionRequested
	}

	cfg := DefaultConfig()
	v := viper.New()
	flags := pflag.NewFlagSet(program, pflag.ContinueOnError)

	setupViperEnvironment(v, cfg)
	defineCommandLineFlags(flags, cfg)
	bindFlagsToViper(v, flags)
	flags.Usage = usage(flags, program, os.Stderr)

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	populateConfigFromViper(v, cfg)

	// Expand paths if needed
	if cfg.OutputDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.OutputDirectory); err == nil {
			cfg.OutputDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(v *viper.Viper, cfg *Config) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetConfigType("yaml")

	v.SetDefault("mode", cfg.Mode)
	v.SetDefault("host", cfg.Host)
	v.SetDefault("port", cfg.Port)
	v.SetDefault("cors", cfg.CORSOrigin)
	v.SetDefault("template", cfg.TemplatePath)
	v.SetDefault("outdir", cfg.OutputDirectory)
	v.SetDefault("s3-endpoint", cfg.S3Endpoint)
	v.SetDefault("s3-access-key", cfg.S3AccessKey)
	v.SetDefault("s3-secret-key", cfg.S3SecretKey)
	v.SetDefault("s3-secure", cfg.S3Secure)
	v.SetDefault("store", cfg.Store)
	v.SetDefault("database-url", cfg.DatabaseURL)
	v.SetDefault("redis-url", cfg.RedisURL)
	v.SetDefault("loglevel", cfg.LogLevel)
	v.SetDefault("maxfilesize", cfg.MaxFileSize)
	v.SetDefault("maxbody", cfg.MaxBodySize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(flags *pflag.FlagSet, cfg *Config) {
	flags.String("config", "", "Path to a YAML configuration file")
	flags.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP server")
	flags.String("host", cfg.Host, "Server host address (server mode only)")
	flags.Int("port", cfg.Port, "Server port (server mode only)")
	flags.String("cors", cfg.CORSOrigin, "Value of Access-Control-Allow-Origin (server mode only)")
	flags.String("template", cfg.TemplatePath, "N-400 template: file path or s3://bucket/key")
	flags.String("outdir", cfg.OutputDirectory, "Directory the MCP generate tool writes PDFs to")
	flags.String("s3-endpoint", cfg.S3Endpoint, "S3-compatible endpoint for s3:// templates")
	flags.String("s3-access-key", cfg.S3AccessKey, "S3 access key")
	flags.String("s3-secret-key", cfg.S3SecretKey, "S3 secret key")
	flags.Bool("s3-secure", cfg.S3Secure, "Use TLS for the S3 endpoint")
	flags.String("store", cfg.Store, "Submission store: none, postgres or redis")
	flags.String("database-url", cfg.DatabaseURL, "Postgres connection URL (store=postgres)")
	flags.String("redis-url", cfg.RedisURL, "Redis connection URL (store=redis)")
	flags.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.Int64("maxfilesize", cfg.MaxFileSize, "Maximum template size in bytes")
	flags.Int64("maxbody", cfg.MaxBodySize, "Maximum request body size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})
}

// usage builds the custom usage message
func usage(flags *pflag.FlagSet, program string, w io.Writer) func() {
	return func() {
		fmt.Fprintf(w, "Usage of %s:\n", program)
		fmt.Fprintf(w, "\nMeridian - fills the USCIS N-400 form from applicant intake data\n\n")
		fmt.Fprintf(w, "Options:\n")
		flags.SetOutput(w)
		flags.PrintDefaults()
		fmt.Fprintf(w, "\nExamples:\n")
		fmt.Fprintf(w, "  %s                                            # MCP over stdio (default)\n", program)
		fmt.Fprintf(w, "  %s --mode=server --template=forms/n400.pdf    # HTTP API\n", program)
		fmt.Fprintf(w, "  %s --mode=server --store=redis --redis-url=redis://localhost:6379/0\n", program)
		fmt.Fprintf(w, "\nEnvironment Variables:\n")
		fmt.Fprintf(w, "  Every option can be set as MERIDIAN_<OPTION>, with dashes as underscores,\n")
		fmt.Fprintf(w, "  e.g. MERIDIAN_TEMPLATE, MERIDIAN_DATABASE_URL, MERIDIAN_S3_ENDPOINT.\n")
	}
}

// versionRequested checks if version flag was requested
func versionRequested(args []string) bool {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return true
		}
	}
	return false
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(v *viper.Viper, cfg *Config) {
	cfg.ConfigFile = v.GetString("config")
	cfg.Mode = v.GetString("mode")
	cfg.Host = v.GetString("host")
	cfg.Port = v.GetInt("port")
	cfg.CORSOrigin = v.GetString("cors")
	cfg.TemplatePath = v.GetString("template")
	cfg.OutputDirectory = v.GetString("outdir")
	cfg.S3Endpoint = v.GetString("s3-endpoint")
	cfg.S3AccessKey = v.GetString("s3-access-key")
	cfg.S3SecretKey = v.GetString("s3-secret-key")
	cfg.S3Secure = v.GetBool("s3-secure")
	cfg.Store = strings.ToLower(v.GetString("store"))
	cfg.DatabaseURL = v.GetString("database-url")
	cfg.RedisURL = v.GetString("redis-url")
	cfg.LogLevel = v.GetString("loglevel")
	cfg.MaxFileSize = v.GetInt64("maxfilesize")
	cfg.MaxBodySize = v.GetInt64("maxbody")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	// Validate port range (only for server mode)
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.TemplatePath == "" {
		return errors.New("template path cannot be empty")
	}

	if c.OutputDirectory == "" {
		return errors.New("output directory cannot be empty")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}
	if c.MaxBodySize <= 0 {
		return errors.New("maximum body size must be positive")
	}

	switch c.Store {
	case StoreNone:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("database-url is required when store is 'postgres'")
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return errors.New("redis-url is required when store is 'redis'")
		}
	default:
		return fmt.Errorf("invalid store: %s (must be one of: none, postgres, redis)", c.Store)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// HasStore reports whether a submission store is configured.
func (c *Config) HasStore() bool {
	return c.Store != StoreNone
}

// String returns a string representation of the configuration. Secrets are
// not included.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, Template: %s, OutputDirectory: %s, "+
		"Store: %s, LogLevel: %s, MaxFileSize: %d, MaxBodySize: %d}",
		c.Mode, c.Host, c.Port, c.TemplatePath, c.OutputDirectory,
		c.Store, c.LogLevel, c.MaxFileSize, c.MaxBodySize)
}

// IsServerMode returns true if the service runs the HTTP API
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the service runs the MCP stdio transport
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
