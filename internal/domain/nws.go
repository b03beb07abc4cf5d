package domain

import (
	"fmt"
	"strings"
)

// AlertCollection is the GeoJSON envelope returned by the NWS alerts API.
type AlertCollection struct {
	Features []AlertFeature `json:"features"`
}

// AlertFeature is one active alert.
type AlertFeature struct {
	Properties AlertProperties `json:"properties"`
}

// AlertProperties carries the fields surfaced to the caller.
type AlertProperties struct {
	Event       string `json:"event"`
	AreaDesc    string `json:"areaDesc"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Instruction string `json:"instruction"`
}

// Format renders an alert feature into a readable string.
func (f *AlertFeature) Format() string {
	props := f.Properties
	return fmt.Sprintf(`
    Event: %s
    Area: %s
    Severity: %s
    Description: %s
    Instructions: %s
    `,
		orDefault(props.Event, "Unknown"),
		orDefault(props.AreaDesc, "Unknown"),
		orDefault(props.Severity, "Unknown"),
		orDefault(props.Description, "No description available"),
		orDefault(props.Instruction, "No specific instructions provided"))
}

// FormatAlerts joins a collection of alerts with separators.
func (c *AlertCollection) FormatAlerts() string {
	formatted := make([]string, 0, len(c.Features))
	for i := range c.Features {
		formatted = append(formatted, c.Features[i].Format())
	}
	return strings.Join(formatted, "\n---\n")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
