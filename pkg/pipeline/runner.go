package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/diagramkit/diagramkit/pkg/archetype"
	"github.com/diagramkit/diagramkit/pkg/cache"
	"github.com/diagramkit/diagramkit/pkg/compose"
	"github.com/diagramkit/diagramkit/pkg/config"
	"github.com/diagramkit/diagramkit/pkg/constraint"
	"github.com/diagramkit/diagramkit/pkg/model"
	"github.com/diagramkit/diagramkit/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and embedding applications can use this to avoid duplicating
// caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Registry *archetype.Registry
	Config   config.Config
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger

	composer *compose.Composer
}

// NewRunner creates a runner with the given registry, config, cache and keyer.
// If registry is nil, a registry with only the predefined archetypes is used.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(registry *archetype.Registry, cfg config.Config, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if registry == nil {
		registry = archetype.NewRegistry()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Registry: registry,
		Config:   cfg,
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		composer: compose.New(registry, cfg, compose.WithLogger(logger)),
	}
}

// Execute runs the complete resolve → compose → validate pipeline.
func (r *Runner) Execute(ctx context.Context, input model.DiagramInput, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Resolve
	resolveStart := time.Now()
	observability.Pipeline().OnResolveStart(ctx, opts.Archetype)
	rules := r.Registry.Resolve(opts.Archetype)
	result.Archetype = rules.ArchetypeID
	result.Stats.ResolveTime = time.Since(resolveStart)
	observability.Pipeline().OnResolveComplete(ctx, opts.Archetype, rules.ArchetypeID, result.Stats.ResolveTime)

	// Stage 2: Compose
	composeStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, rules.ArchetypeID, len(input.Blocks))
	layout, layoutHit, err := r.composeCached(ctx, input, rules.ArchetypeID, opts)
	observability.Pipeline().OnLayoutComplete(ctx, rules.ArchetypeID, time.Since(composeStart), err)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	layout.ID = uuid.NewString()
	result.Layout = layout
	result.Stats.ComposeTime = time.Since(composeStart)
	result.Stats.ElementCount = len(layout.Elements)
	result.Stats.ConnectorCount = len(layout.Connectors)
	result.CacheInfo.LayoutHit = layoutHit

	if data, err := model.MarshalInput(input); err == nil {
		result.InputHash = cache.Hash(data)
	}

	r.Logger.Info("composed layout",
		"archetype", rules.ArchetypeID,
		"elements", result.Stats.ElementCount,
		"connectors", result.Stats.ConnectorCount,
		"cached", layoutHit,
		"duration", result.Stats.ComposeTime)

	// Stage 3: Validate (with optional repair)
	validateStart := time.Now()
	observability.Pipeline().OnValidateStart(ctx, result.Stats.ElementCount)
	validation := r.Validate(result.Layout)

	if opts.Fix && len(validation.Violations) > 0 {
		fixed := r.Fix(result.Layout)
		revalidation := r.Validate(fixed)
		if revalidation.Score >= validation.Score {
			result.Layout = fixed
			result.Fixed = true
			validation = revalidation
		}
	}
	result.Validation = validation
	result.Stats.ValidateTime = time.Since(validateStart)
	observability.Pipeline().OnValidateComplete(ctx, len(validation.Violations), validation.Score, result.Stats.ValidateTime)

	r.Logger.Info("validated layout",
		"score", validation.Score,
		"violations", len(validation.Violations),
		"fixed", result.Fixed,
		"duration", result.Stats.ValidateTime)

	return result, nil
}

// ComposeWithCacheInfo composes a layout with caching and returns cache hit info.
func (r *Runner) ComposeWithCacheInfo(ctx context.Context, input model.DiagramInput, opts Options) (model.PositionedLayout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return model.PositionedLayout{}, false, fmt.Errorf("invalid options: %w", err)
	}
	rules := r.Registry.Resolve(opts.Archetype)
	return r.composeCached(ctx, input, rules.ArchetypeID, opts)
}

// Compose is a convenience wrapper that calls ComposeWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Compose(ctx context.Context, input model.DiagramInput, opts Options) (model.PositionedLayout, error) {
	layout, _, err := r.ComposeWithCacheInfo(ctx, input, opts)
	return layout, err
}

// composeCached runs the compose stage through the cache. The cached value is
// content-addressed, so the layout ID is never stored: callers assign a fresh
// one per run.
func (r *Runner) composeCached(ctx context.Context, input model.DiagramInput, archetypeID string, opts Options) (model.PositionedLayout, bool, error) {
	inputData, err := model.MarshalInput(input)
	if err != nil {
		return model.PositionedLayout{}, false, fmt.Errorf("serialize input for cache key: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(inputData), cache.LayoutKeyOpts{
		Archetype:    archetypeID,
		OverlaysHash: overlaysHash(opts.Overlays),
		Version:      layoutVersion,
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := model.UnmarshalLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	layout := r.composer.Generate(input, archetypeID, opts.Overlays)

	// Cache the result
	if data, err := model.MarshalLayout(layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.LayoutTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return layout, false, nil // Cache miss
}

// Validate checks the layout's elements against the quality constraints.
func (r *Runner) Validate(layout model.PositionedLayout) model.ConstraintResult {
	engine := constraint.NewEngine(r.Config.Canvas.Width, r.Config.Canvas.Height, r.Config.Tolerance)
	return engine.Validate(constraint.FromElements(layout.Elements))
}

// Fix applies the deterministic repair pass and returns the repaired layout.
// The input layout is not modified.
func (r *Runner) Fix(layout model.PositionedLayout) model.PositionedLayout {
	engine := constraint.NewEngine(r.Config.Canvas.Width, r.Config.Canvas.Height, r.Config.Tolerance)
	shapes := engine.Fix(constraint.FromElements(layout.Elements), r.Config.Canvas.MarginY)
	out := layout
	out.Elements = constraint.ApplyToElements(layout.Elements, shapes)
	return out
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// layoutVersion invalidates cached layouts when the layout algorithms change
// incompatibly.
const layoutVersion = "1"

// overlaysHash returns a content hash of the overlay specs, empty when the
// archetype defaults apply.
func overlaysHash(overlays []model.OverlaySpec) string {
	if overlays == nil {
		return ""
	}
	data, err := json.Marshal(overlays)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
