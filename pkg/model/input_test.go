package model

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   DiagramInput
		wantErr error
	}{
		{
			name:    "missing title",
			input:   DiagramInput{Blocks: []BlockData{{ID: "a"}}},
			wantErr: ErrMissingTitle,
		},
		{
			name: "duplicate block id",
			input: DiagramInput{
				Title:  "t",
				Blocks: []BlockData{{ID: "a"}, {ID: "a"}},
			},
			wantErr: ErrDuplicateBlockID,
		},
		{
			name: "empty block id",
			input: DiagramInput{
				Title:  "t",
				Blocks: []BlockData{{ID: ""}},
			},
			wantErr: ErrDuplicateBlockID,
		},
		{
			name: "dangling connector",
			input: DiagramInput{
				Title:      "t",
				Blocks:     []BlockData{{ID: "a"}},
				Connectors: []ConnectorData{{FromID: "a", ToID: "missing"}},
			},
			wantErr: ErrUnknownEndpoint,
		},
		{
			name: "valid",
			input: DiagramInput{
				Title:      "t",
				Blocks:     []BlockData{{ID: "a"}, {ID: "b"}},
				Connectors: []ConnectorData{{FromID: "a", ToID: "b"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMetaFloat(t *testing.T) {
	b := BlockData{Meta: map[string]any{"x": 0.25, "level": 2, "shape": "ellipse"}}

	if v, ok := b.MetaFloat("x"); !ok || v != 0.25 {
		t.Errorf("MetaFloat(x) = %v, %v", v, ok)
	}
	if v, ok := b.MetaFloat("level"); !ok || v != 2 {
		t.Errorf("MetaFloat(level) = %v, %v", v, ok)
	}
	if _, ok := b.MetaFloat("missing"); ok {
		t.Error("MetaFloat(missing) reported ok")
	}
	if _, ok := b.MetaFloat("shape"); ok {
		t.Error("MetaFloat(shape) reported ok for string value")
	}
}

func TestElementTypeFromShape(t *testing.T) {
	tests := []struct {
		shape string
		want  ElementType
	}{
		{"ellipse", ElementEllipse},
		{"circle", ElementEllipse},
		{"ROUNDED", ElementRounded},
		{"diamond", ElementDiamond},
		{"chevron", ElementChevron},
		{"", ElementBlock},
		{"zigzag", ElementBlock},
	}
	for _, tt := range tests {
		if got := ElementTypeFromShape(tt.shape); got != tt.want {
			t.Errorf("ElementTypeFromShape(%q) = %v, want %v", tt.shape, got, tt.want)
		}
	}
}
