package application

import (
	"time"
)

// dateLayout is the wire format every date-taking tool accepts.
const dateLayout = "2006-01-02"

// isValidDate reports whether the value is a well-formed YYYY-MM-DD date.
func isValidDate(value string) bool {
	_, err := time.Parse(dateLayout, value)
	return err == nil
}

// parseDate parses a YYYY-MM-DD date.
func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// capitalize upper-cases the first byte of an ASCII word.
func capitalize(value string) string {
	if value == "" {
		return value
	}
	if value[0] >= 'a' && value[0] <= 'z' {
		return string(value[0]-'a'+'A') + value[1:]
	}
	return value
}

// schemaProp builds one property entry for a tool input schema.
func schemaProp(propType, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        propType,
		"description": description,
	}
}
