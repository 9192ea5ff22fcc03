package model

import (
	"errors"
	"fmt"
)

// Canvas dimensions for a 16:9 slide, in inches.
const (
	DefaultSlideWidth  = 13.333
	DefaultSlideHeight = 7.5
)

// EMUPerInch is the English Metric Unit conversion factor used by OOXML
// renderers. The layout engine itself never works in EMUs; this constant
// exists so downstream consumers convert at exactly one place.
const EMUPerInch = 914400

// Metadata keys recognized on BlockData.Meta.
const (
	MetaX        = "x"         // explicit x coordinate (normalized 0-1 or absolute inches)
	MetaY        = "y"         // explicit y coordinate
	MetaShape    = "shape"     // shape kind hint ("block", "ellipse", "diamond", ...)
	MetaParentID = "parent_id" // explicit tree parent
	MetaLevel    = "level"     // explicit tree depth
)

var (
	// ErrMissingTitle is returned by Validate when the diagram has no title.
	ErrMissingTitle = errors.New("diagram title is required")

	// ErrDuplicateBlockID is returned by Validate when two blocks share an ID.
	ErrDuplicateBlockID = errors.New("duplicate block ID")

	// ErrUnknownEndpoint is returned by Validate when a connector references
	// a block ID that does not exist.
	ErrUnknownEndpoint = errors.New("connector references unknown block")
)

// DiagramInput is the abstract description of a diagram before layout.
// It is constructed once per request and read-only to the layout engine.
type DiagramInput struct {
	Title      string          `json:"title" bson:"title"`
	Subtitle   string          `json:"subtitle,omitempty" bson:"subtitle,omitempty"`
	Blocks     []BlockData     `json:"blocks" bson:"blocks"`
	Connectors []ConnectorData `json:"connectors,omitempty" bson:"connectors,omitempty"`
	Layers     []LayerData     `json:"layers,omitempty" bson:"layers,omitempty"`
	Palette    ColorPalette    `json:"palette,omitempty" bson:"palette,omitempty"`
}

// BlockData describes a single named block. The Meta map may carry explicit
// coordinates, shape hints, or tree structure (see the Meta* constants).
type BlockData struct {
	ID      string         `json:"id" bson:"id"`
	Label   string         `json:"label" bson:"label"`
	LayerID string         `json:"layer_id,omitempty" bson:"layer_id,omitempty"`
	Color   string         `json:"color,omitempty" bson:"color,omitempty"`
	Meta    map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (b BlockData) DisplayLabel() string {
	if b.Label != "" {
		return b.Label
	}
	return b.ID
}

// MetaString returns a string metadata value, or "" when absent.
func (b BlockData) MetaString(key string) string {
	if v, ok := b.Meta[key].(string); ok {
		return v
	}
	return ""
}

// MetaFloat returns a numeric metadata value. JSON decoding produces
// float64, but explicit ints are accepted too.
func (b BlockData) MetaFloat(key string) (float64, bool) {
	switch v := b.Meta[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// ConnectorData describes a directed connection between two blocks.
// FromID and ToID must reference existing block IDs.
type ConnectorData struct {
	FromID string `json:"from_id" bson:"from_id"`
	ToID   string `json:"to_id" bson:"to_id"`
	Style  string `json:"style,omitempty" bson:"style,omitempty"`
	Label  string `json:"label,omitempty" bson:"label,omitempty"`
	Color  string `json:"color,omitempty" bson:"color,omitempty"`
}

// LayerData groups blocks into a named tier. The order of Layers inside
// DiagramInput encodes the implied hierarchy for tree and layered archetypes.
type LayerData struct {
	ID       string   `json:"id" bson:"id"`
	Label    string   `json:"label,omitempty" bson:"label,omitempty"`
	BlockIDs []string `json:"block_ids" bson:"block_ids"`
}

// Validate checks the structural invariants of the input: a non-empty title,
// unique block IDs, and connector endpoints that resolve to existing blocks.
// Element count bounds are archetype-specific and checked by the composer.
func (d DiagramInput) Validate() error {
	if d.Title == "" {
		return ErrMissingTitle
	}
	seen := make(map[string]struct{}, len(d.Blocks))
	for _, b := range d.Blocks {
		if b.ID == "" {
			return fmt.Errorf("%w: block with empty ID", ErrDuplicateBlockID)
		}
		if _, ok := seen[b.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateBlockID, b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	for _, c := range d.Connectors {
		if _, ok := seen[c.FromID]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownEndpoint, c.FromID)
		}
		if _, ok := seen[c.ToID]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownEndpoint, c.ToID)
		}
	}
	return nil
}

// BlockByID returns the block with the given ID, or false when absent.
func (d DiagramInput) BlockByID(id string) (BlockData, bool) {
	for _, b := range d.Blocks {
		if b.ID == id {
			return b, true
		}
	}
	return BlockData{}, false
}

// LayerOf returns the index of the layer containing the block ID, or -1.
func (d DiagramInput) LayerOf(blockID string) int {
	for i, l := range d.Layers {
		for _, id := range l.BlockIDs {
			if id == blockID {
				return i
			}
		}
	}
	return -1
}
