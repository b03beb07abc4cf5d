package domain

import (
	"fmt"
	"strings"
)

// EPICImage represents one image record from the EPIC API.
type EPICImage struct {
	Image   string `json:"image"`
	Date    string `json:"date"`
	Caption string `json:"caption,omitempty"`
}

// ValidEPICTypes lists the collections served by the EPIC API.
var ValidEPICTypes = []string{"natural", "enhanced", "aerosol", "cloud"}

// IsValidEPICType reports whether the lower-cased collection name is known.
func IsValidEPICType(imageType string) bool {
	for _, t := range ValidEPICTypes {
		if t == imageType {
			return true
		}
	}
	return false
}

// ArchiveURL builds the full-resolution PNG archive URL for an image.
// The record's date is "YYYY-MM-DD" optionally followed by a time component.
func (e *EPICImage) ArchiveURL(imageType string) (string, error) {
	parts := strings.SplitN(e.Date, "-", 3)
	if len(parts) != 3 {
		return "", fmt.Errorf("unexpected image date format: %s", e.Date)
	}

	day := parts[2]
	if idx := strings.Index(day, " "); idx != -1 {
		day = day[:idx]
	}

	return fmt.Sprintf("https://epic.gsfc.nasa.gov/archive/%s/%s/%s/%s/png/%s.png",
		imageType, parts[0], parts[1], day, e.Image), nil
}
