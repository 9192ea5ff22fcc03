package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ReadInput decodes a DiagramInput from JSON.
func ReadInput(r io.Reader) (DiagramInput, error) {
	var in DiagramInput
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return DiagramInput{}, fmt.Errorf("decode diagram input: %w", err)
	}
	return in, nil
}

// ReadInputFile decodes a DiagramInput from a JSON file at path.
func ReadInputFile(path string) (DiagramInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return DiagramInput{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadInput(f)
}

// MarshalInput encodes a DiagramInput as canonical JSON. Used for cache keys,
// so the encoding must be deterministic for a given input.
func MarshalInput(in DiagramInput) ([]byte, error) {
	return json.Marshal(in)
}

// WriteLayout encodes a PositionedLayout as indented JSON and writes it to w.
func WriteLayout(l PositionedLayout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}

// MarshalLayout encodes a PositionedLayout as compact JSON.
func MarshalLayout(l PositionedLayout) ([]byte, error) {
	return json.Marshal(l)
}

// UnmarshalLayout decodes a PositionedLayout from JSON.
func UnmarshalLayout(data []byte) (PositionedLayout, error) {
	var l PositionedLayout
	if err := json.Unmarshal(data, &l); err != nil {
		return PositionedLayout{}, fmt.Errorf("decode layout: %w", err)
	}
	return l, nil
}

// ReadLayoutFile decodes a PositionedLayout from a JSON file at path.
func ReadLayoutFile(path string) (PositionedLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PositionedLayout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
