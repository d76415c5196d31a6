package jsonutil

import (
	"encoding/json"
	"fmt"
)

// Decode unmarshals request params. Empty or null params are an error.
func Decode[T any](raw json.RawMessage) (T, error) {
	var out T
	if len(raw) == 0 || string(raw) == "null" {
		return out, fmt.Errorf("no parameters provided")
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}
