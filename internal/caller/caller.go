// Package caller talks to the outbound calling API and the form webhook.
package caller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/Raymond9734/loan-callback-service/internal/models"
)

// OutboundCallPath is appended to the calling API base URL
const OutboundCallPath = "/ca/api/v0/calling/outbound/individual"

// maxResponseBody bounds how much of a remote response is read
const maxResponseBody = 1 << 20

// Target identifies the calling API deployment to use
type Target struct {
	BaseURL string
	APIKey  string
}

// CallPlacer triggers an outbound call
type CallPlacer interface {
	PlaceCall(ctx context.Context, target Target, payload *models.OutboundCallPayload) (any, error)
}

// FormForwarder posts a raw form submission to a webhook
type FormForwarder interface {
	Forward(ctx context.Context, webhookURL string, payload *models.WebhookPayload) error
}

// HTTPClient implements CallPlacer and FormForwarder over net/http
type HTTPClient struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a client for the outbound collaborators
func NewHTTPClient(httpClient *http.Client, logger *slog.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		httpClient: httpClient,
		logger:     logger,
	}
}

// PlaceCall posts the payload to the outbound calling endpoint.
// A 2xx answer returns the decoded response body.
func (c *HTTPClient) PlaceCall(ctx context.Context, target Target, payload *models.OutboundCallPayload) (any, error) {
	endpoint := strings.TrimRight(target.BaseURL, "/") + OutboundCallPath

	status, body, err := c.postJSON(ctx, "Calling service", endpoint, payload, map[string]string{"X-API-KEY": target.APIKey})
	if err != nil {
		return nil, err
	}

	if status < 200 || status > 299 {
		c.logger.Error("calling API error",
			slog.Int("status", status),
			slog.String("body", string(body)),
		)
		return nil, &models.UpstreamError{
			Service:    "calling API",
			StatusCode: status,
			Detail:     strings.TrimSpace(string(body)),
		}
	}

	return decodeBody(body), nil
}

// Forward posts the form to the webhook; any 2xx status is a success
func (c *HTTPClient) Forward(ctx context.Context, webhookURL string, payload *models.WebhookPayload) error {
	status, body, err := c.postJSON(ctx, "Webhook", webhookURL, payload, nil)
	if err != nil {
		return err
	}

	if status < 200 || status > 299 {
		c.logger.Error("webhook submission failed",
			slog.Int("status", status),
			slog.String("body", string(body)),
		)
		return &models.UpstreamError{
			Service:    "webhook",
			StatusCode: status,
			Detail:     strings.TrimSpace(string(body)),
		}
	}

	return nil
}

func (c *HTTPClient) postJSON(ctx context.Context, service, endpoint string, payload any, headers map[string]string) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if IsTransportError(err) {
			c.logger.Error("remote service unreachable",
				slog.String("service", service),
				slog.String("host", req.URL.Host),
				slog.String("error", err.Error()),
			)
			return 0, nil, models.ErrServiceUnreachable(service+" is unreachable. Please try again later.", err)
		}
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, body, nil
}

// IsTransportError reports whether err is a network-level failure rather
// than an answer from the remote service
func IsTransportError(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// decodeBody returns JSON bodies as raw JSON and anything else as text
func decodeBody(body []byte) any {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	if json.Valid(trimmed) {
		return json.RawMessage(trimmed)
	}
	return string(trimmed)
}
