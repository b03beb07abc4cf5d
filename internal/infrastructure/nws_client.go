package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"nasa-mcp-server/internal/domain"
)

// nwsUserAgent identifies this server to the National Weather Service API,
// which requires a User-Agent on every request.
const nwsUserAgent = "weather-app/1.0"

// NWSClient talks to the National Weather Service alerts API.
type NWSClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNWSClient creates a client for the NWS API.
func NewNWSClient(baseURL string, httpClient *http.Client) *NWSClient {
	return &NWSClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// GetActiveAlerts fetches active alerts for a two-letter US state code.
func (c *NWSClient) GetActiveAlerts(ctx context.Context, state string) (*domain.AlertCollection, error) {
	endpoint := fmt.Sprintf("%s/alerts/active/area/%s", c.baseURL, state)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", nwsUserAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	var alerts domain.AlertCollection
	if err := json.Unmarshal(body, &alerts); err != nil {
		return nil, fmt.Errorf("failed to decode alerts response: %w", err)
	}
	return &alerts, nil
}
