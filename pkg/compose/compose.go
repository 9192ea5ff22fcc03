// Package compose orchestrates a full layout run: validate the input,
// resolve the archetype, dispatch the strategy, apply the archetype's
// repair rules, fit text, route connectors, and compose overlays into a
// final PositionedLayout. Generate never returns an error; invalid input
// produces an error layout with a visible banner instead.
package compose

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/diagramkit/diagramkit/pkg/archetype"
	"github.com/diagramkit/diagramkit/pkg/config"
	"github.com/diagramkit/diagramkit/pkg/constraint"
	"github.com/diagramkit/diagramkit/pkg/errors"
	"github.com/diagramkit/diagramkit/pkg/geometry"
	"github.com/diagramkit/diagramkit/pkg/model"
	"github.com/diagramkit/diagramkit/pkg/overlay"
	"github.com/diagramkit/diagramkit/pkg/router"
	"github.com/diagramkit/diagramkit/pkg/strategy"
)

// textInset keeps labels off their shape's border, in inches.
const textInset = 0.08

// Composer builds render-ready layouts. Safe for concurrent use; all
// per-request state lives on the stack.
type Composer struct {
	registry *archetype.Registry
	cfg      config.Config
	logger   *log.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogger sets the logger used for per-stage progress.
func WithLogger(l *log.Logger) Option {
	return func(c *Composer) { c.logger = l }
}

// New creates a Composer over the given registry and engine config.
func New(registry *archetype.Registry, cfg config.Config, opts ...Option) *Composer {
	c := &Composer{
		registry: registry,
		cfg:      cfg,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate turns a diagram description into a positioned layout. Overlays
// replace the archetype's default set when non-nil. Invalid input yields an
// error layout, never a Go error, so downstream renderers always have
// something to draw.
func (c *Composer) Generate(input model.DiagramInput, archetypeID string, overlays []model.OverlaySpec) model.PositionedLayout {
	rules := c.registry.Resolve(archetypeID)
	palette := input.Palette.Merged()

	if msgs := c.validate(input, rules); len(msgs) > 0 {
		c.logger.Warn("input rejected", "archetype", rules.ArchetypeID, "problems", len(msgs))
		return c.errorLayout(input, rules.ArchetypeID, msgs, palette)
	}

	if overlays == nil {
		overlays = rules.Overlays
	}

	content := c.contentBounds(input)
	res := strategy.Compute(input, rules, content, palette)
	for _, w := range res.Warnings {
		c.logger.Warn("strategy warning", "archetype", rules.ArchetypeID, "warning", w)
	}

	placed := constraint.ApplyPostRules(res.Elements, rules.Constraints, content)

	elements := make([]model.PositionedElement, len(placed))
	for i, e := range placed {
		elements[i] = c.finishElement(e, rules, palette)
	}
	connectors := c.finishConnectors(res.Connectors, placed, rules, content)

	elements, connectors = overlay.Apply(elements, connectors, overlays, content, palette)

	layout := model.PositionedLayout{
		SlideWidth:  c.cfg.Canvas.Width,
		SlideHeight: c.cfg.Canvas.Height,
		Background:  palette.Background,
		Elements:    elements,
		Connectors:  connectors,
		Archetype:   rules.ArchetypeID,
	}
	c.addTitles(&layout, input, palette)

	if len(res.Warnings) > 0 {
		layout.Meta = map[string]any{"warnings": res.Warnings}
	}

	c.logger.Debug("layout composed",
		"archetype", rules.ArchetypeID,
		"elements", len(layout.Elements),
		"connectors", len(layout.Connectors))
	return layout
}

// validate collects every input problem instead of stopping at the first,
// so the error banner can name all of them.
func (c *Composer) validate(input model.DiagramInput, rules archetype.Rules) []string {
	var msgs []string
	if err := input.Validate(); err != nil {
		msgs = append(msgs, err.Error())
	}
	for _, b := range input.Blocks {
		if err := errors.ValidateElementID(b.ID); err != nil {
			msgs = append(msgs, err.Error())
		}
		// Color overrides are either palette tokens or literal hex.
		if strings.HasPrefix(b.Color, "#") {
			if err := errors.ValidateHexColor(b.Color); err != nil {
				msgs = append(msgs, fmt.Sprintf("block %q: %v", b.ID, err))
			}
		}
	}
	n := len(input.Blocks)
	if rules.MinElements > 0 && n < rules.MinElements {
		msgs = append(msgs, fmt.Sprintf("archetype %q needs at least %d blocks, got %d",
			rules.ArchetypeID, rules.MinElements, n))
	}
	if rules.MaxElements > 0 && n > rules.MaxElements {
		msgs = append(msgs, fmt.Sprintf("archetype %q allows at most %d blocks, got %d",
			rules.ArchetypeID, rules.MaxElements, n))
	}
	return msgs
}

// contentBounds is the canvas minus margins and the title/subtitle strip.
func (c *Composer) contentBounds(input model.DiagramInput) geometry.Rect {
	cv := c.cfg.Canvas
	top := cv.MarginY
	if input.Title != "" {
		top += cv.TitleHeight
	}
	if input.Subtitle != "" {
		top += cv.SubtitleHeight
	}
	return geometry.Rect{
		Left:   cv.MarginX,
		Top:    top,
		Width:  cv.Width - 2*cv.MarginX,
		Height: cv.Height - top - cv.MarginY,
	}
}

// finishElement converts raw strategy output into a render-ready element:
// closed shape type, stroke from the archetype template, fitted text, and
// a contrast-picked label color.
func (c *Composer) finishElement(e model.ElementPosition, rules archetype.Rules, palette model.ColorPalette) model.PositionedElement {
	out := model.PositionedElement{
		ID:           e.ID,
		Type:         model.ElementTypeFromShape(e.Shape),
		X:            e.X,
		Y:            e.Y,
		Width:        e.Width,
		Height:       e.Height,
		FillColor:    palette.Resolve(e.Color),
		CornerRadius: rules.Element.CornerRadius,
		Z:            e.Z,
	}
	if rules.Element.StrokeWidth > 0 {
		out.StrokeWidth = rules.Element.StrokeWidth
		out.StrokeColor = palette.Resolve(model.TokenBorder)
	}

	if e.Label != "" {
		box := geometry.Rect{Width: e.Width, Height: e.Height}.Inset(textInset)
		fit := geometry.FitText(e.Label, box, geometry.FitOptions{})
		out.Text = &model.PositionedText{
			Lines:    fit.Lines,
			FontSize: fit.FontSize,
			Bold:     fit.Bold,
			Color:    palette.LabelColorFor(out.FillColor),
		}
	}
	return out
}

// finishConnectors converts connector positions, sending the ones the
// archetype marks for orthogonal routing through the obstacle-avoiding
// router. Direct connectors keep the strategy's anchors verbatim.
func (c *Composer) finishConnectors(
	conns []model.ConnectorPosition,
	elements []model.ElementPosition,
	rules archetype.Rules,
	content geometry.Rect,
) []model.PositionedConnector {
	if len(conns) == 0 {
		return nil
	}

	orthogonal := rules.Connector.Routing == "orthogonal"
	var rt *router.Router
	byID := make(map[string]geometry.Rect, len(elements))
	if orthogonal {
		obstacles := make([]geometry.Rect, len(elements))
		for i, e := range elements {
			r := geometry.Rect{Left: e.X, Top: e.Y, Width: e.Width, Height: e.Height}
			obstacles[i] = r
			byID[e.ID] = r
		}
		rt = router.New(content, obstacles, router.Options{
			CellSize:      c.cfg.Router.CellSize,
			Clearance:     c.cfg.Router.Clearance,
			TurnPenalty:   c.cfg.Router.TurnPenalty,
			MaxExpansions: c.cfg.Router.MaxExpansions,
		})
	}

	out := make([]model.PositionedConnector, 0, len(conns))
	for i, cp := range conns {
		pc := model.PositionedConnector{
			FromID:    cp.FromID,
			ToID:      cp.ToID,
			Start:     cp.Start,
			End:       cp.End,
			Waypoints: cp.Waypoints,
			Style:     cp.Style,
			Label:     cp.Label,
			Color:     cp.Color,
			Z:         i,
		}

		if orthogonal {
			from, okFrom := byID[cp.FromID]
			to, okTo := byID[cp.ToID]
			if okFrom && okTo {
				path := rt.Route(from, to)
				if path.Fallback {
					c.logger.Debug("router fell back", "from", cp.FromID, "to", cp.ToID)
				}
				if n := len(path.Points); n >= 2 {
					pc.Start = path.Points[0]
					pc.End = path.Points[n-1]
					pc.Waypoints = path.Points[1 : n-1]
				}
			}
		}
		out = append(out, pc)
	}
	return out
}

// addTitles measures the title and subtitle into text blocks above the
// content area.
func (c *Composer) addTitles(layout *model.PositionedLayout, input model.DiagramInput, palette model.ColorPalette) {
	cv := c.cfg.Canvas
	width := cv.Width - 2*cv.MarginX
	y := cv.MarginY

	if input.Title != "" {
		box := geometry.Rect{Left: cv.MarginX, Top: y, Width: width, Height: cv.TitleHeight}
		fit := geometry.FitText(input.Title, box, geometry.FitOptions{
			Policy: geometry.FitTruncate,
			Bold:   true,
		})
		layout.Title = &model.TextBlock{
			X:      box.Left,
			Y:      box.Top,
			Width:  box.Width,
			Height: box.Height,
			Text: model.PositionedText{
				Lines:    fit.Lines,
				FontSize: fit.FontSize,
				Bold:     true,
				Color:    palette.LabelColorFor(palette.Background),
			},
		}
		y += cv.TitleHeight
	}

	if input.Subtitle != "" {
		box := geometry.Rect{Left: cv.MarginX, Top: y, Width: width, Height: cv.SubtitleHeight}
		fit := geometry.FitText(input.Subtitle, box, geometry.FitOptions{
			Policy:      geometry.FitTruncate,
			MaxFontSize: 18,
		})
		layout.Subtitle = &model.TextBlock{
			X:      box.Left,
			Y:      box.Top,
			Width:  box.Width,
			Height: box.Height,
			Text: model.PositionedText{
				Lines:    fit.Lines,
				FontSize: fit.FontSize,
				Color:    palette.LabelColorFor(palette.Background),
			},
		}
	}
}

// errorLayout is what invalid input renders to: the title (when present)
// and a centered banner listing the problems. Never empty, so a renderer
// pipeline that ignores errors still shows something actionable.
func (c *Composer) errorLayout(input model.DiagramInput, archetypeID string, msgs []string, palette model.ColorPalette) model.PositionedLayout {
	cv := c.cfg.Canvas
	banner := geometry.Rect{
		Left:   cv.MarginX,
		Top:    cv.Height/2 - 0.75,
		Width:  cv.Width - 2*cv.MarginX,
		Height: 1.5,
	}

	text := strings.Join(msgs, "; ")
	fit := geometry.FitText(text, banner.Inset(textInset), geometry.FitOptions{})

	layout := model.PositionedLayout{
		SlideWidth:  cv.Width,
		SlideHeight: cv.Height,
		Background:  palette.Background,
		Archetype:   archetypeID,
		Elements: []model.PositionedElement{{
			ID:        "error-banner",
			Type:      model.ElementBanner,
			X:         banner.Left,
			Y:         banner.Top,
			Width:     banner.Width,
			Height:    banner.Height,
			FillColor: palette.Accent(3), // the red-leaning accent
			Text: &model.PositionedText{
				Lines:    fit.Lines,
				FontSize: fit.FontSize,
				Color:    palette.LabelColorFor(palette.Accent(3)),
			},
		}},
		Meta: map[string]any{"error": true, "problems": msgs},
	}
	c.addTitles(&layout, input, palette)
	return layout
}
