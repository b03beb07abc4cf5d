package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxImageBytes caps downloaded images so a misbehaving URL cannot exhaust
// memory before base64 encoding.
const maxImageBytes = 16 << 20

// ImageFetcher downloads arbitrary images for conversion into MCP image
// content blocks.
type ImageFetcher struct {
	httpClient *http.Client
}

// NewImageFetcher creates an ImageFetcher.
func NewImageFetcher(httpClient *http.Client) *ImageFetcher {
	return &ImageFetcher{httpClient: httpClient}
}

// Fetch downloads the image at the given URL and returns its bytes and
// mime type. Non-image content types are rejected.
func (f *ImageFetcher) Fetch(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("Failed to fetch image: HTTP %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("URL does not point to an image. Content-Type: %s", contentType)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", classifyTransportError(err)
	}
	if len(data) > maxImageBytes {
		return nil, "", fmt.Errorf("image exceeds %d byte limit", maxImageBytes)
	}

	// Strip any charset suffix from the mime type.
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}

	return data, contentType, nil
}
