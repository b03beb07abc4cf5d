package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nasa-mcp-server/internal/domain"
	"nasa-mcp-server/internal/infrastructure"
)

// GIBSAdapter implements the get_gibs_image tool over the GIBS WMS
// endpoint.
type GIBSAdapter struct {
	client *infrastructure.GIBSClient
}

// NewGIBSAdapter creates the get_gibs_image adapter.
func NewGIBSAdapter(client *infrastructure.GIBSClient) *GIBSAdapter {
	return &GIBSAdapter{client: client}
}

// GIBS request defaults and bounds.
const (
	defaultGIBSLayer      = "MODIS_Terra_CorrectedReflectance_TrueColor"
	defaultGIBSBBox       = "-180,-90,180,90"
	defaultGIBSDimension  = 512
	maxGIBSDimension      = 2048
	defaultGIBSFormat     = "image/png"
	defaultGIBSProjection = "epsg4326"
)

// Definition returns the tool descriptor advertised by tools/list.
func (a *GIBSAdapter) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Name:        "get_gibs_image",
		Description: "Request to NASA GIBS (Global Imagery Browse Services) API. Fetch satellite imagery of Earth.",
		InputSchema: domain.JSONSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"layer":      schemaProp("string", "The imagery layer to fetch. Default: "+defaultGIBSLayer),
				"bbox":       schemaProp("string", "Bounding box as 'min_lon,min_lat,max_lon,max_lat'. Default: '"+defaultGIBSBBox+"'"),
				"date":       schemaProp("string", "(YYYY-MM-DD) Date for the imagery."),
				"width":      schemaProp("integer", "Image width in pixels. Default 512."),
				"height":     schemaProp("integer", "Image height in pixels. Default 512."),
				"format":     schemaProp("string", "Image format: image/png, image/jpeg"),
				"projection": schemaProp("string", "Coordinate system: epsg4326, epsg3857"),
			},
		},
	}
}

// Call validates the WMS parameters, fetches the map, and reports the
// image URL and metadata.
func (a *GIBSAdapter) Call(ctx context.Context, args map[string]interface{}) ([]domain.ContentBlock, error) {
	layer, err := getStringArgDefault(args, "layer", defaultGIBSLayer)
	if err != nil {
		return nil, err
	}
	bbox, err := getStringArgDefault(args, "bbox", defaultGIBSBBox)
	if err != nil {
		return nil, err
	}
	date, err := getStringArg(args, "date")
	if err != nil {
		return nil, err
	}
	width, err := getIntArgDefault(args, "width", defaultGIBSDimension)
	if err != nil {
		return nil, err
	}
	height, err := getIntArgDefault(args, "height", defaultGIBSDimension)
	if err != nil {
		return nil, err
	}
	format, err := getStringArgDefault(args, "format", defaultGIBSFormat)
	if err != nil {
		return nil, err
	}
	projection, err := getStringArgDefault(args, "projection", defaultGIBSProjection)
	if err != nil {
		return nil, err
	}

	if !domain.IsValidGIBSFormat(format) {
		return nil, fmt.Errorf("Invalid format '%s'. Valid options: %s",
			format, strings.Join(domain.ValidGIBSFormats, ", "))
	}
	if !domain.IsValidGIBSProjection(strings.ToLower(projection)) {
		return nil, fmt.Errorf("Invalid projection '%s'. Valid options: %s",
			projection, strings.Join(domain.ValidGIBSProjections, ", "))
	}
	if width < 1 || width > maxGIBSDimension {
		return nil, errors.New("width must be between 1 and 2048 pixels")
	}
	if height < 1 || height > maxGIBSDimension {
		return nil, errors.New("height must be between 1 and 2048 pixels")
	}

	box, err := domain.ParseBoundingBox(bbox)
	if err != nil {
		return nil, err
	}

	if date != "" && !isValidDate(date) {
		return nil, errors.New("date must be in YYYY-MM-DD format")
	}

	request := domain.GIBSRequest{
		Layer:      layer,
		BBox:       box,
		Date:       date,
		Width:      width,
		Height:     height,
		Format:     format,
		Projection: projection,
	}

	result, err := a.client.FetchMap(ctx, request)
	if err != nil {
		return nil, err
	}

	dateLabel := date
	if dateLabel == "" {
		dateLabel = "Most recent available"
	}

	var b strings.Builder
	b.WriteString("GIBS Satellite Image Retrieved!\n")
	fmt.Fprintf(&b, "Image URL: %s\n", result.ImageURL)
	fmt.Fprintf(&b, "Layer: %s\n", layer)
	fmt.Fprintf(&b, "Date: %s\n", dateLabel)
	fmt.Fprintf(&b, "Bounding Box: %s\n", bbox)
	fmt.Fprintf(&b, "Coverage Area: %.2f° longitude × %.2f° latitude\n", box.WidthDegrees(), box.HeightDegrees())
	fmt.Fprintf(&b, "Image Size: %d×%d pixels\n", width, height)
	fmt.Fprintf(&b, "Format: %s\n", format)
	fmt.Fprintf(&b, "Projection: %s\n", strings.ToUpper(projection))
	fmt.Fprintf(&b, "Image Size: %d bytes", result.SizeBytes)

	return []domain.ContentBlock{domain.TextContent(b.String())}, nil
}
