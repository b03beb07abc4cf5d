package application

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"nasa-mcp-server/internal/domain"
	"nasa-mcp-server/internal/infrastructure"
)

// ImageAdapter implements the get_image_analyze tool.
// It fetches an arbitrary image URL and returns the image itself as a
// base64 content block so the calling agent can look at it, plus a text
// block with fetch metadata.
type ImageAdapter struct {
	fetcher *infrastructure.ImageFetcher
}

// NewImageAdapter creates the get_image_analyze adapter.
func NewImageAdapter(fetcher *infrastructure.ImageFetcher) *ImageAdapter {
	return &ImageAdapter{fetcher: fetcher}
}

// Definition returns the tool descriptor advertised by tools/list.
func (a *ImageAdapter) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Name:        "get_image_analyze",
		Description: "Fetch an image from URL and convert it to base64 for LLM analysis.",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"image_url": schemaProp("string", "The URL of the image to analyze."),
			},
			Required: []string{"image_url"},
		},
	}
}

// Call downloads the image and packages it for the model.
func (a *ImageAdapter) Call(ctx context.Context, args map[string]interface{}) ([]domain.ContentBlock, error) {
	imageURL, err := getStringArg(args, "image_url")
	if err != nil {
		return nil, err
	}
	if imageURL == "" {
		return nil, errors.New("image_url is required")
	}

	data, mimeType, err := a.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	encoded := base64.StdEncoding.EncodeToString(data)

	return []domain.ContentBlock{
		domain.ImageContent(encoded, mimeType),
		domain.TextContent(fmt.Sprintf("Fetched %s (%d bytes, %s)", imageURL, len(data), mimeType)),
	}, nil
}
