package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcPosition_Directions(t *testing.T) {
	t.Parallel()

	ref := Point{X: 500, Y: 400}
	panel := Size{Width: 200, Height: 100}
	viewport := Size{Width: 1200, Height: 900}
	const offset = 10

	tests := []struct {
		dir  Direction
		want Point
	}{
		{dir: Top, want: Point{X: 400, Y: 290}},
		{dir: Bottom, want: Point{X: 400, Y: 410}},
		{dir: Right, want: Point{X: 510, Y: 350}},
		{dir: Left, want: Point{X: 290, Y: 350}},
		{dir: TopRight, want: Point{X: 510, Y: 290}},
		{dir: TopLeft, want: Point{X: 290, Y: 290}},
		{dir: BottomRight, want: Point{X: 510, Y: 410}},
		{dir: BottomLeft, want: Point{X: 290, Y: 410}},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CalcPosition(ref, panel, viewport, offset, tt.dir))
		})
	}
}

func TestCalcPosition_ClampsToViewport(t *testing.T) {
	t.Parallel()

	panel := Size{Width: 300, Height: 200}
	viewport := Size{Width: 800, Height: 600}

	// Near the bottom-right corner: pushed back inside.
	got := CalcPosition(Point{X: 790, Y: 590}, panel, viewport, 10, BottomRight)
	assert.Equal(t, Point{X: 490, Y: 390}, got)

	// Near the top-left corner: never above or left of the offset.
	got = CalcPosition(Point{X: 5, Y: 5}, panel, viewport, 10, TopLeft)
	assert.Equal(t, Point{X: 10, Y: 10}, got)
}

func TestCalcPosition_PanelLargerThanViewport(t *testing.T) {
	t.Parallel()

	// The minimum clamp runs last, so the top-left edge stays visible.
	got := CalcPosition(Point{X: 100, Y: 100}, Size{Width: 1000, Height: 1000}, Size{Width: 500, Height: 500}, 10, Bottom)
	assert.Equal(t, Point{X: 10, Y: 10}, got)
}

func TestCalcPosition_UnknownDirection(t *testing.T) {
	t.Parallel()

	got := CalcPosition(Point{X: 300, Y: 300}, Size{Width: 100, Height: 50}, Size{Width: 800, Height: 600}, 10, Direction("diagonal"))
	assert.Equal(t, Point{X: 10, Y: 10}, got)
}

func TestCalcSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		m        Measure
		expanded bool
		want     Layout
	}{
		{
			name: "narrow content gets minimum width",
			m:    Measure{WrapperWidth: 80, ContentHeight: 50},
			want: Layout{Width: MinWidth, Height: 50},
		},
		{
			name: "content under max width grows by one",
			m:    Measure{WrapperWidth: 250, ContentHeight: 120},
			want: Layout{Width: 251, Height: 120},
		},
		{
			name: "wide content capped at max",
			m:    Measure{WrapperWidth: 400, ContentHeight: 120},
			want: Layout{Width: 300, Height: 120},
		},
		{
			name: "tall content overflows",
			m:    Measure{WrapperWidth: 250, ContentHeight: 450},
			want: Layout{Width: 251, Height: 200, Overflow: true},
		},
		{
			name:     "expanded dictionary raises max height",
			m:        Measure{WrapperWidth: 250, ContentHeight: 350, DictionaryHeight: 150},
			expanded: true,
			want:     Layout{Width: 251, Height: 350},
		},
		{
			name:     "expanded dictionary capped by screen share",
			m:        Measure{WrapperWidth: 250, ContentHeight: 900, DictionaryHeight: 400},
			expanded: true,
			want:     Layout{Width: 251, Height: 700, Overflow: true},
		},
		{
			name: "collapsed dictionary ignored",
			m:    Measure{WrapperWidth: 250, ContentHeight: 350, DictionaryHeight: 150},
			want: Layout{Width: 251, Height: 200, Overflow: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CalcSize(tt.m, 300, 200, 1000, tt.expanded))
		})
	}
}
