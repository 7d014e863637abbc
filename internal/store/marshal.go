package store

import (
	"encoding/json"
	"fmt"
)

// marshalSymbols converts a symbol list to JSON TEXT for storage.
func marshalSymbols(symbols []string) (string, error) {
	data, err := json.Marshal(symbols)
	if err != nil {
		return "", fmt.Errorf("marshal symbols: %w", err)
	}
	return string(data), nil
}

func unmarshalSymbols(text string) ([]string, error) {
	var symbols []string
	if err := json.Unmarshal([]byte(text), &symbols); err != nil {
		return nil, fmt.Errorf("unmarshal symbols: %w", err)
	}
	return symbols, nil
}

// marshalCoordinates converts a coordinate matrix to JSON TEXT for
// storage. Stored row count must match the symbol count; callers validate
// that at the boundary.
func marshalCoordinates(coords [][3]float64) (string, error) {
	data, err := json.Marshal(coords)
	if err != nil {
		return "", fmt.Errorf("marshal coordinates: %w", err)
	}
	return string(data), nil
}

func unmarshalCoordinates(text string) ([][3]float64, error) {
	var rows [][]float64
	if err := json.Unmarshal([]byte(text), &rows); err != nil {
		return nil, fmt.Errorf("unmarshal coordinates: %w", err)
	}
	coords := make([][3]float64, len(rows))
	for i, row := range rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("unmarshal coordinates: row %d has %d components, want 3", i, len(row))
		}
		coords[i] = [3]float64{row[0], row[1], row[2]}
	}
	return coords, nil
}
