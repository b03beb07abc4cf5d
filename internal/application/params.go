package application

import (
	"fmt"
	"math"
	"strconv"
)

// Argument extraction helpers. JSON-decoded arguments arrive as strings,
// float64s and bools; agents also routinely send numbers as quoted
// strings, so the numeric helpers coerce both forms.

// getStringArg extracts a string argument.
// Returns "" when the argument is absent.
func getStringArg(args map[string]interface{}, name string) (string, error) {
	value, exists := args[name]
	if !exists || value == nil {
		return "", nil
	}

	strValue, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("parameter %s must be a string", name)
	}
	return strValue, nil
}

// getIntArg extracts an integer argument, coercing float64 and numeric
// strings. The second return reports presence.
func getIntArg(args map[string]interface{}, name string) (int, bool, error) {
	value, exists := args[name]
	if !exists || value == nil {
		return 0, false, nil
	}

	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, true, fmt.Errorf("parameter %s must be an integer", name)
		}
		return int(v), true, nil
	case int:
		return v, true, nil
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, true, fmt.Errorf("parameter %s must be an integer", name)
		}
		return parsed, true, nil
	default:
		return 0, true, fmt.Errorf("parameter %s must be an integer", name)
	}
}

// getIntArgDefault extracts an optional integer argument with a default.
func getIntArgDefault(args map[string]interface{}, name string, fallback int) (int, error) {
	value, present, err := getIntArg(args, name)
	if err != nil {
		return 0, err
	}
	if !present {
		return fallback, nil
	}
	return value, nil
}

// getStringArgDefault extracts an optional string argument with a default.
func getStringArgDefault(args map[string]interface{}, name, fallback string) (string, error) {
	value, err := getStringArg(args, name)
	if err != nil {
		return "", err
	}
	if value == "" {
		return fallback, nil
	}
	return value, nil
}
