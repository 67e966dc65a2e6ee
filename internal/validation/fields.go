package validation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MissingFields returns the required keys that are absent from body, in the
// order they are listed. A key that is present with a null or empty value
// counts as present.
func MissingFields(body map[string]json.RawMessage, required []string) []string {
	var missing []string
	for _, field := range required {
		if _, ok := body[field]; !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

// MissingFieldsError formats the message for missing fields
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s must be in the request body", strings.Join(e.Fields, ", "))
}

// RequireFields decodes data as a JSON object and checks that every required
// key is present. It returns the raw object so the caller can decode it into
// a typed request without reading the body twice.
func RequireFields(data []byte, required []string) (map[string]json.RawMessage, error) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if body == nil {
		return nil, fmt.Errorf("invalid request body: expected a JSON object")
	}

	if missing := MissingFields(body, required); len(missing) > 0 {
		return body, &MissingFieldsError{Fields: missing}
	}

	return body, nil
}
