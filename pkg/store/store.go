// Package store archives finished layouts for later retrieval. The archive
// is strictly optional: the layout pipeline never touches it, only the CLI
// (--save) and service callers do.
//
// Backends:
//   - mongo: MongoDB-backed archive for shared deployments
//   - memory: in-process archive for tests and single runs
package store

import (
	"context"
	"errors"
	"time"

	"github.com/diagramkit/diagramkit/pkg/model"
)

// ErrNotFound is returned when a layout ID does not exist in the archive.
var ErrNotFound = errors.New("layout not found")

// Entry is one archived layout plus bookkeeping metadata.
type Entry struct {
	Layout    model.PositionedLayout `bson:"layout" json:"layout"`
	Archetype string                 `bson:"archetype" json:"archetype"`
	Score     float64                `bson:"score,omitempty" json:"score,omitempty"`
	SavedAt   time.Time              `bson:"saved_at" json:"saved_at"`
}

// Store is the interface for layout archive backends.
type Store interface {
	// Save archives a layout under its ID, overwriting any previous
	// version. The layout must carry a non-empty ID.
	Save(ctx context.Context, entry Entry) error

	// Get retrieves an archived layout by its ID.
	// Returns ErrNotFound when the ID does not exist.
	Get(ctx context.Context, id string) (Entry, error)

	// List returns the most recent entries, newest first, up to limit.
	// A non-positive limit returns everything.
	List(ctx context.Context, limit int) ([]Entry, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// ErrMissingID is returned by Save when the layout has no ID to key on.
var ErrMissingID = errors.New("layout has no ID")
