package store

import (
	"encoding/json"
	"fmt"
)

// JSON column helpers. products.images, products.tags and
// products.specifications are stored as JSON TEXT; empty collections are
// stored as their empty literal rather than NULL so scans never deal
// with sql.NullString.

func marshalStrings(v []string) (string, error) {
	if v == nil {
		return "[]", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal string list: %w", err)
	}
	return string(data), nil
}

func unmarshalStrings(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var v []string
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, fmt.Errorf("unmarshal string list: %w", err)
	}
	return v, nil
}

func marshalStringMap(v map[string]string) (string, error) {
	if v == nil {
		return "{}", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal string map: %w", err)
	}
	return string(data), nil
}

func unmarshalStringMap(data string) (map[string]string, error) {
	if data == "" || data == "{}" {
		return nil, nil
	}
	var v map[string]string
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, fmt.Errorf("unmarshal string map: %w", err)
	}
	return v, nil
}
