package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// GIBSRequest holds validated parameters for a GIBS WMS GetMap request.
type GIBSRequest struct {
	Layer      string
	BBox       BoundingBox
	Date       string
	Width      int
	Height     int
	Format     string
	Projection string
}

// BoundingBox is a geographic bounding box in degrees.
type BoundingBox struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

// String renders the box back into the "min_lon,min_lat,max_lon,max_lat"
// wire form.
func (b BoundingBox) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
}

// Width returns the longitudinal extent in degrees.
func (b BoundingBox) WidthDegrees() float64 {
	w := b.MaxLon - b.MinLon
	if w < 0 {
		return -w
	}
	return w
}

// HeightDegrees returns the latitudinal extent in degrees.
func (b BoundingBox) HeightDegrees() float64 {
	h := b.MaxLat - b.MinLat
	if h < 0 {
		return -h
	}
	return h
}

// ParseBoundingBox parses and validates a "min_lon,min_lat,max_lon,max_lat"
// string.
func ParseBoundingBox(bbox string) (BoundingBox, error) {
	parts := strings.Split(bbox, ",")
	if len(parts) != 4 {
		return BoundingBox{}, fmt.Errorf("bbox must be in format 'min_lon,min_lat,max_lon,max_lat'")
	}

	values := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return BoundingBox{}, fmt.Errorf("bbox coordinates must be valid numbers")
		}
		values[i] = v
	}

	box := BoundingBox{MinLon: values[0], MinLat: values[1], MaxLon: values[2], MaxLat: values[3]}

	if box.MinLon >= box.MaxLon || box.MinLat >= box.MaxLat {
		return BoundingBox{}, fmt.Errorf("invalid bounding box coordinates")
	}
	if box.MinLon < -180 || box.MaxLon > 180 || box.MinLat < -90 || box.MaxLat > 90 {
		return BoundingBox{}, fmt.Errorf("coordinates must be within valid ranges (lon: -180 to 180, lat: -90 to 90)")
	}

	return box, nil
}

// ValidGIBSFormats lists the image formats the WMS endpoint serves.
var ValidGIBSFormats = []string{"image/png", "image/jpeg"}

// ValidGIBSProjections lists the supported coordinate systems.
var ValidGIBSProjections = []string{"epsg4326", "epsg3857"}

// IsValidGIBSFormat reports whether the format is supported.
func IsValidGIBSFormat(format string) bool {
	for _, f := range ValidGIBSFormats {
		if f == format {
			return true
		}
	}
	return false
}

// IsValidGIBSProjection reports whether the lower-cased projection is
// supported.
func IsValidGIBSProjection(projection string) bool {
	for _, p := range ValidGIBSProjections {
		if p == projection {
			return true
		}
	}
	return false
}

// CRS converts a projection code like "epsg4326" to its WMS CRS form
// "EPSG:4326".
func (r *GIBSRequest) CRS() string {
	return "EPSG:" + strings.TrimPrefix(strings.ToLower(r.Projection), "epsg")
}
