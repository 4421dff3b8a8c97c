package edusign

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"
	httptrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/net/http"
)

// DefaultBaseURL is the root of the Edusign v1 API.
const DefaultBaseURL = "https://ext.edusign.fr/v1"

// DefaultGroupCacheSize is the group cache capacity used when none is set.
const DefaultGroupCacheSize = 128

// Config contains configuration for the Edusign client.
//
// Example configuration (HCL):
//
//	edusign {
//	  api_key       = "..."
//	  timeout       = "30s"
//	  strict_errors = true
//	}
type Config struct {
	// BaseURL is the root of the remote API
	// Default: https://ext.edusign.fr/v1
	BaseURL string `json:"baseUrl"`

	// APIKey is the account API key sent as a Bearer token
	APIKey string `json:"-"` // Don't marshal the key to JSON

	// TLSVerify controls TLS certificate verification
	// Set to false only for development/testing with self-signed certs
	TLSVerify *bool `json:"tlsVerify,omitempty"`

	// Timeout for API requests
	// Default: 30 seconds
	Timeout time.Duration `json:"timeout,omitempty"`

	// StrictErrors makes error envelopes fail the call. When false they are
	// logged and the call returns its zero value.
	// Default: true
	StrictErrors *bool `json:"strictErrors,omitempty"`

	// GroupCacheSize bounds the group cache. Negative disables caching.
	// Default: 128
	GroupCacheSize int `json:"groupCacheSize,omitempty"`

	// RequestsPerSecond limits outgoing requests. Zero means unlimited.
	RequestsPerSecond float64 `json:"requestsPerSecond,omitempty"`

	// Trace wraps the transport with Datadog APM tracing.
	Trace            bool   `json:"trace,omitempty"`
	TraceServiceName string `json:"traceServiceName,omitempty"`

	// HTTPClient replaces the default HTTP client. Its transport is still
	// wrapped with authentication.
	HTTPClient *http.Client `json:"-"`

	// Logger (optional)
	Logger hclog.Logger `json:"-"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := true
	strict := true
	return &Config{
		BaseURL:          DefaultBaseURL,
		TLSVerify:        &tlsVerify,
		Timeout:          30 * time.Second,
		StrictErrors:     &strict,
		GroupCacheSize:   DefaultGroupCacheSize,
		TraceServiceName: "edusign",
	}
}

// applyDefaults fills every unset field from DefaultConfig.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	if c.TLSVerify == nil {
		c.TLSVerify = defaults.TLSVerify
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	if c.StrictErrors == nil {
		c.StrictErrors = defaults.StrictErrors
	}
	if c.GroupCacheSize == 0 {
		c.GroupCacheSize = defaults.GroupCacheSize
	}
	if c.TraceServiceName == "" {
		c.TraceServiceName = defaults.TraceServiceName
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
}

// Strict reports whether error envelopes fail calls.
func (c *Config) Strict() bool {
	return c.StrictErrors == nil || *c.StrictErrors
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingCredential
	}

	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}

	// Parse and validate URL
	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https scheme, got: %s", parsedURL.Scheme)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Timeout)
	}

	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be non-negative, got: %v", c.RequestsPerSecond)
	}

	return nil
}

// NewHTTPClient creates the HTTP client used by the Edusign client. The
// Authorization header is injected by an oauth2 transport over a static
// token source.
func (c *Config) NewHTTPClient() *http.Client {
	var base http.RoundTripper
	timeout := c.Timeout

	if c.HTTPClient != nil {
		base = c.HTTPClient.Transport
		if c.HTTPClient.Timeout > 0 {
			timeout = c.HTTPClient.Timeout
		}
	}

	if base == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()

		// Configure TLS verification
		if c.TLSVerify != nil && !*c.TLSVerify {
			transport.TLSClientConfig = &tls.Config{
				InsecureSkipVerify: true,
			}
		}
		base = transport
	}

	if c.Trace {
		base = httptrace.WrapRoundTripper(base, httptrace.RTWithServiceName(c.TraceServiceName))
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.APIKey}),
			Base:   base,
		},
	}
}
