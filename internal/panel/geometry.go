// Package panel holds the translation panel logic that does not depend on a DOM:
// placement, sizing, the lazily loaded dictionary section and audio fallback.
package panel

import "math"

// Direction places the panel relative to its reference point.
type Direction string

const (
	Top         Direction = "top"
	Bottom      Direction = "bottom"
	Right       Direction = "right"
	Left        Direction = "left"
	TopRight    Direction = "topRight"
	TopLeft     Direction = "topLeft"
	BottomRight Direction = "bottomRight"
	BottomLeft  Direction = "bottomLeft"
)

// MinWidth keeps room for the phonetic row.
const MinWidth = 200

// screenHeightShare caps an expanded dictionary section.
const screenHeightShare = 0.7

// Point is a position in page pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width and height in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CalcPosition returns the top-left corner for a panel of the given size, then
// clamps it so the panel stays offset pixels inside the viewport. An unknown
// direction starts from the origin and is only clamped.
func CalcPosition(ref Point, panel Size, viewport Size, offset float64, dir Direction) Point {
	var p Point
	switch dir {
	case Top:
		p = Point{X: ref.X - panel.Width/2, Y: ref.Y - panel.Height - offset}
	case Bottom:
		p = Point{X: ref.X - panel.Width/2, Y: ref.Y + offset}
	case Right:
		p = Point{X: ref.X + offset, Y: ref.Y - panel.Height/2}
	case Left:
		p = Point{X: ref.X - panel.Width - offset, Y: ref.Y - panel.Height/2}
	case TopRight:
		p = Point{X: ref.X + offset, Y: ref.Y - panel.Height - offset}
	case TopLeft:
		p = Point{X: ref.X - panel.Width - offset, Y: ref.Y - panel.Height - offset}
	case BottomRight:
		p = Point{X: ref.X + offset, Y: ref.Y + offset}
	case BottomLeft:
		p = Point{X: ref.X - panel.Width - offset, Y: ref.Y + offset}
	}

	if p.X+panel.Width > viewport.Width-offset {
		p.X = viewport.Width - panel.Width - offset
	}
	if p.Y+panel.Height > viewport.Height-offset {
		p.Y = viewport.Height - panel.Height - offset
	}
	if p.X < offset {
		p.X = offset
	}
	if p.Y < offset {
		p.Y = offset
	}
	return p
}

// Measure is what the renderer reports about the panel contents.
type Measure struct {
	WrapperWidth  float64
	ContentHeight float64
	// DictionaryHeight counts only while the dictionary section is expanded.
	DictionaryHeight float64
}

// Layout is the computed panel size.
type Layout struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Overflow bool    `json:"overflow"`
}

// CalcSize sizes the panel to its contents up to the configured maximum.
// An expanded dictionary may grow the panel past maxHeight, up to 70% of the screen.
func CalcSize(m Measure, maxWidth, maxHeight, screenHeight float64, dictExpanded bool) Layout {
	width := maxWidth
	if m.WrapperWidth < maxWidth {
		width = math.Max(m.WrapperWidth+1, MinWidth)
	}

	adaptedMax := maxHeight
	if dictExpanded && m.DictionaryHeight > 0 {
		adaptedMax = math.Min(m.ContentHeight+m.DictionaryHeight, screenHeight*screenHeightShare)
	}

	overflow := m.ContentHeight > adaptedMax
	height := m.ContentHeight
	if overflow {
		height = adaptedMax
	}

	return Layout{Width: width, Height: height, Overflow: overflow}
}
