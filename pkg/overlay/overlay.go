// Package overlay composes auxiliary annotations (arrows, callouts,
// banners, brackets) around an already-laid-out diagram. Overlays reserve a
// strip along one side of the content area; the existing scene is rescaled
// into the remaining space with an independent affine map per axis, so
// relative positions and proportions survive exactly.
package overlay

import (
	"strconv"

	"github.com/diagramkit/diagramkit/pkg/geometry"
	"github.com/diagramkit/diagramkit/pkg/model"
)

// Reservations returns the strip thickness each side needs: the maximum
// reservation among that side's overlays.
func Reservations(overlays []model.OverlaySpec) map[model.Side]float64 {
	out := map[model.Side]float64{}
	for _, o := range overlays {
		if r := o.Reservation(); r > out[o.Side] {
			out[o.Side] = r
		}
	}
	return out
}

// Apply reflows the scene to make room for the overlays and appends the
// overlay shapes. Title and subtitle are positioned outside the content
// rectangle and are not touched; everything passed here is reflowed.
// Returns new slices; the inputs are not modified.
func Apply(
	elements []model.PositionedElement,
	connectors []model.PositionedConnector,
	overlays []model.OverlaySpec,
	content geometry.Rect,
	palette model.ColorPalette,
) ([]model.PositionedElement, []model.PositionedConnector) {
	if len(overlays) == 0 {
		outE := append([]model.PositionedElement(nil), elements...)
		outC := append([]model.PositionedConnector(nil), connectors...)
		return outE, outC
	}

	res := Reservations(overlays)
	inner := compressed(content, res)

	outE := reflowElements(elements, content, inner)
	outC := reflowConnectors(connectors, content, inner)

	z := maxZ(outE) + 1
	for _, o := range overlays {
		built := build(o, res, content, inner, outE, palette, z)
		outE = append(outE, built.elements...)
		outC = append(outC, built.connectors...)
		z += len(built.elements)
	}
	return outE, outC
}

// compressed shrinks the content rectangle by each side's reservation.
func compressed(content geometry.Rect, res map[model.Side]float64) geometry.Rect {
	out := content
	out.Left += res[model.SideLeft]
	out.Width -= res[model.SideLeft] + res[model.SideRight]
	out.Top += res[model.SideTop]
	out.Height -= res[model.SideTop] + res[model.SideBottom]
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// affine maps one coordinate from the source span into the target span.
func affine(v, srcStart, srcExtent, dstStart, dstExtent float64) float64 {
	if srcExtent == 0 {
		return dstStart
	}
	return dstStart + (v-srcStart)/srcExtent*dstExtent
}

func reflowElements(elements []model.PositionedElement, src, dst geometry.Rect) []model.PositionedElement {
	sx := scale(src.Width, dst.Width)
	sy := scale(src.Height, dst.Height)

	out := make([]model.PositionedElement, len(elements))
	for i, e := range elements {
		out[i] = e.WithRect(
			affine(e.X, src.Left, src.Width, dst.Left, dst.Width),
			affine(e.Y, src.Top, src.Height, dst.Top, dst.Height),
			e.Width*sx,
			e.Height*sy,
		)
	}
	return out
}

func reflowConnectors(connectors []model.PositionedConnector, src, dst geometry.Rect) []model.PositionedConnector {
	mapPoint := func(p model.Point) model.Point {
		return model.Point{
			X: affine(p.X, src.Left, src.Width, dst.Left, dst.Width),
			Y: affine(p.Y, src.Top, src.Height, dst.Top, dst.Height),
		}
	}

	out := make([]model.PositionedConnector, len(connectors))
	for i, c := range connectors {
		c.Start = mapPoint(c.Start)
		c.End = mapPoint(c.End)
		if len(c.Waypoints) > 0 {
			wps := make([]model.Point, len(c.Waypoints))
			for j, w := range c.Waypoints {
				wps[j] = mapPoint(w)
			}
			c.Waypoints = wps
		}
		out[i] = c
	}
	return out
}

func scale(src, dst float64) float64 {
	if src == 0 {
		return 1
	}
	return dst / src
}

func maxZ(elements []model.PositionedElement) int {
	z := 0
	for _, e := range elements {
		if e.Z > z {
			z = e.Z
		}
	}
	return z
}

type built struct {
	elements   []model.PositionedElement
	connectors []model.PositionedConnector
}

// build constructs the shapes for one overlay inside its reserved strip.
func build(
	o model.OverlaySpec,
	res map[model.Side]float64,
	content, inner geometry.Rect,
	scene []model.PositionedElement,
	palette model.ColorPalette,
	z int,
) built {
	rect := stripRect(o, content, inner)
	fill := palette.Resolve(o.Color)
	if o.Color == "" {
		fill = palette.Resolve(model.TokenSecondary)
	}

	kind := model.OverlayKindFromString(o.Kind)
	elem := model.PositionedElement{
		ID:        overlayID(o, z),
		X:         rect.Left,
		Y:         rect.Top,
		Width:     rect.Width,
		Height:    rect.Height,
		FillColor: fill,
		Z:         z,
	}

	switch kind {
	case model.OverlaySideArrow:
		elem.Type = model.ElementArrow
	case model.OverlayCallout:
		elem.Type = model.ElementRounded
		elem.CornerRadius = 0.08
	case model.OverlayAnnotation, model.OverlayLabel:
		elem.Type = model.ElementText
		elem.FillColor = ""
	case model.OverlayBanner:
		elem.Type = model.ElementBanner
	case model.OverlayBracket:
		elem.Type = model.ElementBracket
		elem.FillColor = ""
		elem.StrokeColor = palette.Resolve(model.TokenBorder)
		elem.StrokeWidth = 0.02
	default:
		elem.Type = model.ElementBlock
	}

	if o.Text != "" {
		textColor := palette.Merged().TextDark
		if elem.FillColor != "" {
			textColor = palette.LabelColorFor(elem.FillColor)
		}
		fit := geometry.FitText(o.Text, geometry.Rect{Width: rect.Width, Height: rect.Height}, geometry.FitOptions{})
		elem.Text = &model.PositionedText{
			Lines:    fit.Lines,
			FontSize: fit.FontSize,
			Bold:     fit.Bold,
			Color:    textColor,
		}
	}

	b := built{elements: []model.PositionedElement{elem}}

	// A callout with a resolvable target gets a pointer line from its
	// center to the target's center.
	if kind == model.OverlayCallout && o.TargetID != "" {
		for _, target := range scene {
			if target.ID != o.TargetID {
				continue
			}
			b.connectors = append(b.connectors, model.PositionedConnector{
				FromID: elem.ID,
				ToID:   target.ID,
				Start:  model.Point{X: elem.CenterX(), Y: elem.CenterY()},
				End:    model.Point{X: target.CenterX(), Y: target.CenterY()},
				Color:  palette.Resolve(model.TokenConnector),
				Z:      z,
			})
			break
		}
	}
	return b
}

// stripRect places the overlay inside its side's reserved strip: brackets
// and banners span the full strip length, everything else is centered with
// its requested height (or a square default).
func stripRect(o model.OverlaySpec, content, inner geometry.Rect) geometry.Rect {
	kind := model.OverlayKindFromString(o.Kind)
	spansFull := kind == model.OverlayBanner || kind == model.OverlayBracket

	length := o.Height
	if length <= 0 {
		length = o.Width
	}

	switch o.Side {
	case model.SideLeft, model.SideRight:
		x := content.Left
		if o.Side == model.SideRight {
			x = inner.Right() + o.Margin
		}
		if spansFull || length > inner.Height {
			return geometry.Rect{Left: x, Top: inner.Top, Width: o.Width, Height: inner.Height}
		}
		return geometry.Rect{
			Left:   x,
			Top:    inner.CenterY() - length/2,
			Width:  o.Width,
			Height: length,
		}
	default: // top, bottom
		y := content.Top
		if o.Side == model.SideBottom {
			y = inner.Bottom() + o.Margin
		}
		if spansFull || length > inner.Width {
			return geometry.Rect{Left: inner.Left, Top: y, Width: inner.Width, Height: o.Width}
		}
		return geometry.Rect{
			Left:   inner.CenterX() - length/2,
			Top:    y,
			Width:  length,
			Height: o.Width,
		}
	}
}

func overlayID(o model.OverlaySpec, z int) string {
	return "overlay-" + model.OverlayKindFromString(o.Kind).String() + "-" + strconv.Itoa(z)
}
