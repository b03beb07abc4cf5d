package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"nasa-mcp-server/internal/domain"
)

// ErrTimeout is returned for any upstream call that exceeds its deadline.
// The text is surfaced verbatim to the calling agent.
var ErrTimeout = errors.New("Request timed out. Please try again.")

// NASAClient talks to the api.nasa.gov family of services (APOD, Mars
// Rover Photos, NeoWs). The API key is injected into every request.
type NASAClient struct {
	apodBaseURL string
	marsBaseURL string
	neoBaseURL  string
	apiKey      string
	httpClient  *http.Client
}

// NewNASAClient creates a client for the api.nasa.gov services.
// The httpClient should carry the upstream timeout from configuration.
func NewNASAClient(upstreams domain.UpstreamConfig, apiKey string, httpClient *http.Client) *NASAClient {
	return &NASAClient{
		apodBaseURL: upstreams.APODBaseURL,
		marsBaseURL: upstreams.MarsBaseURL,
		neoBaseURL:  upstreams.NeoBaseURL,
		apiKey:      apiKey,
		httpClient:  httpClient,
	}
}

// GetAPOD fetches Astronomy Picture of the Day records.
// The upstream returns a single object for date queries and an array for
// range and count queries; both shapes normalize to a slice.
func (c *NASAClient) GetAPOD(ctx context.Context, query domain.APODQuery) ([]domain.APODEntry, error) {
	params := url.Values{}
	if query.Count > 0 {
		params.Set("count", strconv.Itoa(query.Count))
	} else {
		if query.StartDate != "" {
			params.Set("start_date", query.StartDate)
		}
		if query.EndDate != "" {
			params.Set("end_date", query.EndDate)
		}
		if query.Date != "" {
			params.Set("date", query.Date)
		}
	}
	params.Set("api_key", c.apiKey)

	body, err := c.getJSON(ctx, c.apodBaseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	// Try the array shape first, then fall back to a single object.
	var entries []domain.APODEntry
	if err := json.Unmarshal(body, &entries); err == nil {
		return entries, nil
	}

	var single domain.APODEntry
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, fmt.Errorf("failed to decode APOD response: %w", err)
	}
	return []domain.APODEntry{single}, nil
}

// GetMarsPhotos fetches Curiosity rover photos for a sol or earth date.
func (c *NASAClient) GetMarsPhotos(ctx context.Context, query domain.MarsQuery) (*domain.MarsPhotosResponse, error) {
	params := url.Values{}
	if query.Sol != nil {
		params.Set("sol", strconv.Itoa(*query.Sol))
	} else if query.EarthDate != "" {
		params.Set("earth_date", query.EarthDate)
	}
	if query.Camera != "" {
		params.Set("camera", query.Camera)
	}
	params.Set("page", "1")
	params.Set("api_key", c.apiKey)

	body, err := c.getJSON(ctx, c.marsBaseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var photos domain.MarsPhotosResponse
	if err := json.Unmarshal(body, &photos); err != nil {
		return nil, fmt.Errorf("failed to decode Mars photos response: %w", err)
	}
	return &photos, nil
}

// GetNeoFeed fetches the near-earth object feed for a date range.
// The API reports some failures in the body with a 200 status, so the
// error_message field is checked before the HTTP status.
func (c *NASAClient) GetNeoFeed(ctx context.Context, query domain.NeoQuery) (*domain.NeoFeed, error) {
	params := url.Values{}
	if query.StartDate != "" {
		params.Set("start_date", query.StartDate)
	}
	if query.EndDate != "" {
		params.Set("end_date", query.EndDate)
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.neoBaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	var feed domain.NeoFeed
	if err := json.Unmarshal(body, &feed); err == nil && feed.ErrorMessage != "" {
		return nil, fmt.Errorf("API Error: %s", feed.ErrorMessage)
	}

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case http.StatusBadRequest:
			return nil, errors.New("Invalid date format or date range exceeds 7 days")
		case http.StatusForbidden:
			return nil, errors.New("Invalid API key")
		default:
			return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
		}
	}

	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to decode NEO feed response: %w", err)
	}
	return &feed, nil
}

// getJSON executes a GET and returns the raw body after status checks.
func (c *NASAClient) getJSON(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

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
	return body, nil
}

// classifyTransportError collapses timeout-shaped failures into ErrTimeout
// so the caller surfaces one consistent message.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return ErrTimeout
	}
	return err
}
