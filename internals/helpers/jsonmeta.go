package helper

import (
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"
)

// ParseJSONObject validates a free-form metadata blob posted as text.
// Empty input yields an empty map. Anything that is not a JSON object is
// rejected with "Invalid JSON format for <label>".
func ParseJSONObject(label, raw string) (datatypes.JSONMap, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return datatypes.JSONMap{}, nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil || m == nil {
		return nil, fmt.Errorf("Invalid JSON format for %s", label)
	}
	return datatypes.JSONMap(m), nil
}

// JSONMapString renders a stored map back to text for edit forms. "{}" when empty.
func JSONMapString(m datatypes.JSONMap) string {
	if len(m) == 0 {
		return "{}"
	}
	b, err := json.Marshal(map[string]interface{}(m))
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ParseJSONList validates a JSON array of strings (gallery image urls).
func ParseJSONList(label, raw string) (datatypes.JSON, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return datatypes.JSON("[]"), nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("Invalid JSON format for %s", label)
	}
	b, _ := json.Marshal(list)
	return datatypes.JSON(b), nil
}

// FloatFromMap reads a numeric leaf; strings holding numbers are accepted.
func FloatFromMap(m datatypes.JSONMap, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(v), "%g", &f); err == nil {
			return f
		}
	}
	return 0
}
