package edusign

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/time/rate"
)

// Client is the Edusign API client. A Client holds a single account API key
// and is safe for concurrent use; the group cache is internally locked.
type Client struct {
	config  *Config
	client  *http.Client
	logger  hclog.Logger
	limiter *rate.Limiter
	groups  *groupCache
}

// NewClient creates a new Edusign client
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, ErrMissingCredential
	}

	// Apply defaults
	cfg.applyDefaults()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, ErrMissingCredential) {
			return nil, err
		}
		return nil, fmt.Errorf("invalid edusign client config: %w", err)
	}

	groups, err := newGroupCache(cfg.GroupCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create group cache: %w", err)
	}

	c := &Client{
		config: cfg,
		client: cfg.NewHTTPClient(),
		logger: cfg.Logger.Named("edusign"),
		groups: groups,
	}

	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return c, nil
}

// do sends one request and classifies the answer. On an error envelope it
// returns both the envelope and a *RemoteError.
func (c *Client) do(ctx context.Context, op Operation, method, path string, body interface{}) (*Envelope, error) {
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + path

	// GET and DELETE never carry a body
	if method == http.MethodGet || method == http.MethodDelete {
		body = nil
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	c.logger.Debug("sending request",
		"operation", op,
		"method", method,
		"path", path,
		"request_id", requestID,
	)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &RemoteError{Operation: op, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{Operation: op, Message: err.Error(), Err: err}
	}

	c.logger.Debug("received response",
		"operation", op,
		"status", resp.StatusCode,
		"request_id", requestID,
	)

	return classify(op, resp.StatusCode, respBody)
}

// settle decides what a call site does with err. It returns OutcomeRaise
// when err must reach the caller.
func (c *Client) settle(op Operation, err error) Outcome {
	if outcome := ExpectedOutcome(op, err); outcome != OutcomeRaise {
		var remoteErr *RemoteError
		if errors.As(err, &remoteErr) {
			c.logger.Debug("absorbed expected remote error",
				"operation", op,
				"message", remoteErr.Message,
				"outcome", outcome.String(),
			)
		}
		return outcome
	}

	if !c.config.Strict() {
		var remoteErr *RemoteError
		if errors.As(err, &remoteErr) && remoteErr.FromEnvelope() {
			c.logger.Warn("remote error ignored outside strict mode",
				"operation", op,
				"message", remoteErr.Message,
			)
			return OutcomeNil
		}
	}

	return OutcomeRaise
}

// InvalidateGroup drops one group from the cache.
func (c *Client) InvalidateGroup(groupID string) {
	c.groups.remove(groupID)
}

// invalidateGroups drops groups whose membership a student write may have
// changed.
func (c *Client) invalidateGroups(groupIDs []string) {
	for _, id := range groupIDs {
		c.groups.remove(id)
	}
}

// PurgeGroupCache drops every cached group.
func (c *Client) PurgeGroupCache() {
	c.groups.purge()
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
