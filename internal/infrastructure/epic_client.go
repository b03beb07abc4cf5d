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

// browserUserAgent is sent to the EPIC and GIBS services, which reject
// default Go client requests.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// EPICClient talks to the Earth Polychromatic Imaging Camera API.
type EPICClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewEPICClient creates a client for the EPIC API.
func NewEPICClient(baseURL string, httpClient *http.Client) *EPICClient {
	return &EPICClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// GetImages fetches image records for a collection ("natural", "enhanced",
// "aerosol" or "cloud"), optionally restricted to a date. An empty date
// returns the latest available images.
func (c *EPICClient) GetImages(ctx context.Context, imageType, date string) ([]domain.EPICImage, error) {
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, imageType)
	if date != "" {
		endpoint += "/date/" + date
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")

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

	var images []domain.EPICImage
	if err := json.Unmarshal(body, &images); err != nil {
		return nil, fmt.Errorf("failed to decode EPIC response: %w", err)
	}
	return images, nil
}
