package utils

import (
	"encoding/json"

	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
)

// ToStruct decodes a generic JSON object, as read from a jsonb column, into T.
// A nil map yields the zero value.
func ToStruct[T any](value map[string]interface{}) (T, error) {
	var result T
	if value == nil {
		return result, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return result, ierr.WithError(err).
			WithHint("Failed to marshal map to JSON").
			Mark(ierr.ErrValidation)
	}

	if err := json.Unmarshal(raw, &result); err != nil {
		return result, ierr.WithError(err).
			WithHint("Failed to unmarshal JSON to struct").
			Mark(ierr.ErrValidation)
	}
	return result, nil
}

// ToMap encodes value as a generic JSON object
func ToMap[T any](value T) (map[string]interface{}, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to marshal value to JSON").
			Mark(ierr.ErrSystem)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Value does not encode to a JSON object").
			Mark(ierr.ErrSystem)
	}
	return result, nil
}
