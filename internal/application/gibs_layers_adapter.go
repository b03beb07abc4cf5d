package application

import (
	"context"
	"fmt"
	"strings"

	"nasa-mcp-server/internal/domain"
)

// GIBSLayersAdapter implements the get_gibs_layers tool.
// The catalog is static; no upstream call is made.
type GIBSLayersAdapter struct{}

// NewGIBSLayersAdapter creates the get_gibs_layers adapter.
func NewGIBSLayersAdapter() *GIBSLayersAdapter {
	return &GIBSLayersAdapter{}
}

// gibsLayerCatalog groups commonly used GIBS layers by category.
// Order matters for output, hence the slice of pairs.
var gibsLayerCatalog = []struct {
	category string
	layers   []string
}{
	{"True Color Imagery", []string{
		"MODIS_Terra_CorrectedReflectance_TrueColor",
		"MODIS_Aqua_CorrectedReflectance_TrueColor",
		"VIIRS_SNPP_CorrectedReflectance_TrueColor",
		"VIIRS_NOAA20_CorrectedReflectance_TrueColor",
	}},
	{"False Color Imagery", []string{
		"MODIS_Terra_CorrectedReflectance_Bands721",
		"MODIS_Aqua_CorrectedReflectance_Bands721",
		"VIIRS_SNPP_CorrectedReflectance_Bands_M11-I2-I1",
		"VIIRS_NOAA20_CorrectedReflectance_Bands_M11-I2-I1",
	}},
	{"Environmental Data", []string{
		"MODIS_Terra_Aerosol",
		"MODIS_Aqua_Aerosol",
		"MODIS_Terra_Land_Surface_Temp_Day",
		"MODIS_Terra_Land_Surface_Temp_Night",
		"MODIS_Terra_Sea_Ice",
		"MODIS_Terra_Snow_Cover",
	}},
	{"Reference Data", []string{
		"Reference_Labels_15m",
		"Reference_Features_15m",
		"Coastlines_15m",
		"SRTM_GL1_Hillshade",
	}},
}

// popularBBoxes lists handy bounding boxes by region.
var popularBBoxes = []struct {
	region string
	bbox   string
}{
	{"World", "-180,-90,180,90"},
	{"North America", "-170,15,-50,75"},
	{"Europe", "-25,35,45,70"},
	{"Asia", "60,-10,150,55"},
	{"Australia", "110,-45,160,-10"},
	{"Africa", "-25,-40,55,40"},
	{"South America", "-85,-60,-30,15"},
}

// Definition returns the tool descriptor advertised by tools/list.
func (a *GIBSLayersAdapter) Definition() domain.ToolDefinition {
	return domain.ToolDefinition{
		Name:        "get_gibs_layers",
		Description: "Get information about available GIBS layers and their capabilities.",
		InputSchema: domain.JSONSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}

// Call renders the layer catalog.
func (a *GIBSLayersAdapter) Call(ctx context.Context, args map[string]interface{}) ([]domain.ContentBlock, error) {
	var b strings.Builder
	b.WriteString("Available GIBS Layers:\n\n")

	for _, group := range gibsLayerCatalog {
		fmt.Fprintf(&b, "%s:\n", group.category)
		for _, layer := range group.layers {
			fmt.Fprintf(&b, "  - %s\n", layer)
		}
		b.WriteString("\n")
	}

	b.WriteString("Popular Bounding Boxes:\n")
	for _, entry := range popularBBoxes {
		fmt.Fprintf(&b, "  - %s: %s\n", entry.region, entry.bbox)
	}

	return []domain.ContentBlock{domain.TextContent(b.String())}, nil
}
