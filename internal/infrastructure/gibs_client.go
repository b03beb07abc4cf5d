package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"nasa-mcp-server/internal/domain"
)

// GIBSClient talks to the Global Imagery Browse Services WMS endpoint.
type GIBSClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGIBSClient creates a client for the GIBS WMS service.
func NewGIBSClient(baseURL string, httpClient *http.Client) *GIBSClient {
	return &GIBSClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// GIBSResult describes a successfully fetched map image.
type GIBSResult struct {
	ImageURL  string
	SizeBytes int
}

// MapURL builds the WMS GetMap URL for a validated request.
func (c *GIBSClient) MapURL(r domain.GIBSRequest) string {
	projection := strings.ToLower(r.Projection)

	params := url.Values{}
	params.Set("SERVICE", "WMS")
	params.Set("REQUEST", "GetMap")
	params.Set("VERSION", "1.3.0")
	params.Set("LAYERS", r.Layer)
	params.Set("BBOX", r.BBox.String())
	params.Set("WIDTH", strconv.Itoa(r.Width))
	params.Set("HEIGHT", strconv.Itoa(r.Height))
	params.Set("FORMAT", r.Format)
	params.Set("CRS", r.CRS())
	if r.Date != "" {
		params.Set("TIME", r.Date)
	}

	return fmt.Sprintf("%s/%s/best/wms.cgi?%s", c.baseURL, projection, params.Encode())
}

// FetchMap requests the map image and verifies the service actually served
// imagery rather than a ServiceException document.
func (c *GIBSClient) FetchMap(ctx context.Context, r domain.GIBSRequest) (*GIBSResult, error) {
	endpoint := c.MapURL(r)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case http.StatusBadRequest:
			return nil, errors.New("Bad request. Please check your parameters (layer name, bbox, date, etc.)")
		case http.StatusNotFound:
			return nil, errors.New("Layer not found or no data available for the specified date/area")
		default:
			return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		text := string(body)
		if strings.Contains(text, "ServiceException") || strings.Contains(text, "Error") {
			return nil, errors.New("GIBS service returned an error. Please check your parameters.")
		}
		return nil, fmt.Errorf("Unexpected response type: %s", contentType)
	}

	return &GIBSResult{ImageURL: endpoint, SizeBytes: len(body)}, nil
}
