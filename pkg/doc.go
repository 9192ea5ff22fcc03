// Package pkg provides the core libraries for Diagramkit layout generation.
//
// # Overview
//
// Diagramkit turns an abstract diagram description (blocks, connectors,
// layers) into a fully positioned, render-ready layout on a fixed slide
// canvas. The pkg directory is organized into four main areas:
//
//  1. Domain logic - composition, placement strategies, constraint checks
//  2. Knowledge - archetype rules and overlay decoration
//  3. Infrastructure - caching, persistence, configuration, observability
//  4. Orchestration - the resolve → compose → validate pipeline
//
// # Architecture
//
// The typical data flow through Diagramkit:
//
//	DiagramInput (blocks + connectors + layers)
//	         ↓
//	    [archetype] package (resolve layout rules)
//	         ↓
//	    [compose] package (strategy placement + overlays + routing)
//	         ↓
//	    [constraint] package (validate and repair)
//	         ↓
//	    PositionedLayout JSON output
//
// # Quick Start
//
// Compose and validate a layout:
//
//	import (
//	    "context"
//	    "github.com/diagramkit/diagramkit/pkg/config"
//	    "github.com/diagramkit/diagramkit/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, config.Default(), nil, nil, nil)
//	defer runner.Close()
//
//	result, _ := runner.Execute(context.Background(), input, pipeline.Options{
//	    Archetype: "funnel",
//	    Fix:       true,
//	})
//	fmt.Printf("score %.0f\n", result.Validation.Score)
//
// # Main Packages
//
// ## Domain Logic
//
// [model] - Input and output data types: DiagramInput, PositionedLayout,
// violations, overlays, and their JSON codecs.
//
// [strategy] - Placement strategies (vertical stack, horizontal flow, radial,
// grid, tree, freeform). Each strategy maps blocks to canvas coordinates.
//
// [compose] - The composer glues resolution, strategy placement, overlay
// application, and connector routing into a single layout generator.
//
// [constraint] - Geometric validation (bounds, overlap, alignment, spacing)
// plus the deterministic repair pass that clamps, separates, and recenters.
//
// [router] - Connector routing between placed elements with orthogonal and
// straight segment styles.
//
// [geometry] - Low-level rectangle and point math shared by strategies,
// constraints, and routing.
//
// ## Knowledge
//
// [archetype] - The rules registry: built-in archetypes (funnel, pyramid,
// timeline, cycle, ...), learned rules persisted to disk, and input-shape
// inference for unlabeled diagrams.
//
// [overlay] - Decoration passes applied after placement (annotations,
// highlights, badges, group frames).
//
// ## Infrastructure
//
// [cache] - Content-addressed layout cache with file, Redis, and null
// backends. Keys are derived from the input hash plus layout options.
//
// [store] - Durable layout archive with MongoDB and in-memory backends.
//
// [config] - TOML configuration with defaults, file discovery, and
// environment overrides.
//
// [observability] - Hook interfaces for pipeline, cache, and store events
// with no-op defaults.
//
// [errors] - Coded errors shared across packages, plus input validators.
//
// ## Orchestration
//
// [pipeline] - Complete layout pipeline (resolve → compose → validate) used
// by the CLI. Handles caching, timing stats, and optional repair.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/constraint/...   # Specific package
//	go test -run Example           # Examples only
//
// [model]: https://pkg.go.dev/github.com/diagramkit/diagramkit/pkg/model
// [strategy]: https://pkg.go.dev/github.com/diagramkit/diagramkit/pkg/strategy
// [compose]: https://pkg.go.dev/github.com/diagramkit/diagramkit/pkg/compose
// [constraint]: https://pkg.go.dev/github.com/diagramkit/diagramkit/pkg/constraint
// [router]: https://pkg.go.dev/github.com/diagramkit/diagramkit/pkg/router
// [geometry]: https://pkg.go.dev/github.com/diagramkit/diagramkit/pkg/geometry
// [archetype]: https://pkg.go.dev/github.com/diagramkit/diagramkit/pkg/archetype
// [overlay]: https://pkg.go.dev/github.com/diagramkit/diagramkit/pkg/overlay
// [cache]: https://pkg.go.dev/github.com/diagramkit/diagramkit/pkg/cache
// [store]: https://pkg.go.dev/github.com/diagramkit/diagramkit/pkg/store
// [config]: https://pkg.go.dev/github.com/diagramkit/diagramkit/pkg/config
// [observability]: https://pkg.go.dev/github.com/diagramkit/diagramkit/pkg/observability
// [errors]: https://pkg.go.dev/github.com/diagramkit/diagramkit/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/diagramkit/diagramkit/pkg/pipeline
package pkg
