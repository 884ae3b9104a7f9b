package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vendora/backend/internal/domain/integration"
)

const (
	// maxResponseSize limits the response body size to prevent memory exhaustion
	maxResponseSize = 10 * 1024 * 1024 // 10MB max response

	// DefaultAPIVersion is the Admin API version used when none is configured
	DefaultAPIVersion = "2024-10"
)

// Config holds the Shopify Admin API client settings. Credentials are
// deliberately absent: every call carries the vendor's own shop
// credential.
type Config struct {
	APIVersion string
	Timeout    time.Duration
	// BaseURLOverride replaces the https://<shop> prefix, used by tests
	// to point the client at a local server.
	BaseURLOverride string
}

// Client implements integration.StorefrontClient against the Shopify
// Admin GraphQL API.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Shopify Admin API client
func NewClient(config Config, logger *zap.Logger) *Client {
	if config.APIVersion == "" {
		config.APIVersion = DefaultAPIVersion
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

// gqlRequest is the Admin GraphQL request envelope
type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// gqlError is one entry of the top-level GraphQL errors array. These are
// request-level failures (syntax, throttling, missing scopes), distinct
// from mutation userErrors.
type gqlError struct {
	Message string `json:"message"`
}

// endpoint builds the Admin GraphQL URL for a shop
func (c *Client) endpoint(shopDomain string) string {
	if c.config.BaseURLOverride != "" {
		return fmt.Sprintf("%s/admin/api/%s/graphql.json", c.config.BaseURLOverride, c.config.APIVersion)
	}
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shopDomain, c.config.APIVersion)
}

// execute performs one GraphQL call against the vendor's shop and
// returns the raw data payload. Failures map onto the integration
// sentinels: network errors to ErrStorefrontUnavailable, 401/403 to
// ErrStorefrontAuth, other HTTP and GraphQL-level errors to
// ErrStorefrontRequestFailed.
func (c *Client) execute(ctx context.Context, cred integration.ShopCredential, query string, variables map[string]any) (json.RawMessage, error) {
	if err := cred.Validate(); err != nil {
		return nil, err
	}

	bodyBytes, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(cred.ShopDomain), bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", cred.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrStorefrontUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", integration.ErrStorefrontUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrStorefrontAuth, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: HTTP %d", integration.ErrStorefrontRequestFailed, resp.StatusCode)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []gqlError      `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrStorefrontInvalidResponse, err)
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		c.logger.Warn("shopify graphql request rejected",
			zap.String("shop", cred.ShopDomain),
			zap.Strings("errors", msgs))
		return nil, fmt.Errorf("%w: %s", integration.ErrStorefrontRequestFailed, msgs[0])
	}
	if len(envelope.Data) == 0 {
		return nil, fmt.Errorf("%w: empty data", integration.ErrStorefrontInvalidResponse)
	}

	return envelope.Data, nil
}

// Ensure Client implements the storefront port
var _ integration.StorefrontClient = (*Client)(nil)
