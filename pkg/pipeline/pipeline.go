// Package pipeline provides the core layout pipeline for diagramkit.
//
// This package implements the complete resolve → compose → validate pipeline
// that can be used by the CLI and any embedding application. By centralizing
// this logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: Map the requested archetype identifier to layout rules
//  2. Compose: Position every element and connector on the canvas
//  3. Validate: Check the positioned layout against quality constraints
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(registry, cfg, cache, nil, logger)
//	opts := pipeline.Options{Archetype: "funnel", Fix: true}
//	result, err := runner.Execute(ctx, input, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Validation.Score)
//
// Run individual stages:
//
//	layout, hit, err := runner.ComposeWithCacheInfo(ctx, input, opts)
//	validation := runner.Validate(layout)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/diagramkit/diagramkit/pkg/errors"
	"github.com/diagramkit/diagramkit/pkg/model"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for embedding applications.
type Options struct {
	// Archetype is the requested layout archetype identifier. Resolution
	// never fails; an unknown identifier falls back to a freeform canvas.
	Archetype string `json:"archetype,omitempty"`

	// Overlays override the archetype's default overlay set when non-nil.
	Overlays []model.OverlaySpec `json:"overlays,omitempty"`

	// Fix applies the deterministic repair pass when validation finds
	// violations, then re-validates.
	Fix bool `json:"fix,omitempty"`

	// Refresh bypasses the cache and recomputes the layout.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks option consistency and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	for i, spec := range o.Overlays {
		if spec.Kind == "" {
			return errors.New(errors.ErrCodeInvalidOverlay, "overlay %d: kind is required", i)
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the positioned, render-ready layout.
	Layout model.PositionedLayout

	// Validation is the constraint check outcome for the returned layout.
	Validation model.ConstraintResult

	// InputHash is the content hash of the serialized input.
	InputHash string

	// Archetype is the resolved archetype identifier.
	Archetype string

	// Fixed reports whether the repair pass ran and changed the layout.
	Fixed bool

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ElementCount   int
	ConnectorCount int
	ResolveTime    time.Duration
	ComposeTime    time.Duration
	ValidateTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the composed layout came from cache
}
