package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/edusign-go/pkg/edusign"
)

// APIKeyEnvVar overrides the api_key attribute when set.
const APIKeyEnvVar = "EDUSIGN_API_KEY"

// Config is the host configuration file.
type Config struct {
	// Edusign configures the Edusign API client.
	Edusign *Edusign `hcl:"edusign,block"`
}

// Edusign is the edusign block of the configuration file.
type Edusign struct {
	// BaseURL is the root of the Edusign API.
	BaseURL string `hcl:"base_url,optional"`

	// APIKey is the Edusign account API key. Prefer the EDUSIGN_API_KEY
	// environment variable over storing the key in the file.
	APIKey string `hcl:"api_key,optional"`

	// Timeout is a duration string such as "30s".
	Timeout string `hcl:"timeout,optional"`

	// StrictErrors raises unexpected error envelopes. Defaults to true.
	StrictErrors *bool `hcl:"strict_errors,optional"`

	// GroupCacheSize bounds the group cache. Negative disables it.
	GroupCacheSize int `hcl:"group_cache_size,optional"`

	// RequestsPerSecond limits outgoing requests. Zero is unlimited.
	RequestsPerSecond float64 `hcl:"requests_per_second,optional"`

	// Trace wraps the HTTP transport with Datadog tracing.
	Trace bool `hcl:"trace,optional"`

	// TraceServiceName is the Datadog service name used when tracing.
	TraceServiceName string `hcl:"trace_service_name,optional"`

	// LogLevel is an hclog level name such as "debug" or "warn".
	LogLevel string `hcl:"log_level,optional"`
}

// Load reads and decodes the configuration file at path from fs.
func Load(fs afero.Fs, path string) (*Config, error) {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var cfg Config
	if err := hclsimple.Decode(path, src, nil, &cfg); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	if cfg.Edusign == nil {
		cfg.Edusign = &Edusign{}
	}

	if key, ok := os.LookupEnv(APIKeyEnvVar); ok && key != "" {
		cfg.Edusign.APIKey = key
	}

	return &cfg, nil
}

// Level returns the configured log level, or info when unset.
func (e *Edusign) Level() (hclog.Level, error) {
	if e.LogLevel == "" {
		return hclog.Info, nil
	}
	level := hclog.LevelFromString(e.LogLevel)
	if level == hclog.NoLevel {
		return hclog.NoLevel, fmt.Errorf("invalid log_level %q", e.LogLevel)
	}
	return level, nil
}

// ClientConfig converts the block into an edusign.Config. Unset attributes
// are left for edusign.NewClient to default.
func (e *Edusign) ClientConfig(logger hclog.Logger) (*edusign.Config, error) {
	cfg := &edusign.Config{
		BaseURL:           strings.TrimRight(e.BaseURL, "/"),
		APIKey:            e.APIKey,
		StrictErrors:      e.StrictErrors,
		GroupCacheSize:    e.GroupCacheSize,
		RequestsPerSecond: e.RequestsPerSecond,
		Trace:             e.Trace,
		TraceServiceName:  e.TraceServiceName,
		Logger:            logger,
	}

	if e.Timeout != "" {
		timeout, err := time.ParseDuration(e.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", e.Timeout, err)
		}
		cfg.Timeout = timeout
	}

	return cfg, nil
}
