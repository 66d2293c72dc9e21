// Package chart draws equity curves as inline SVG.
package chart

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/newthinker/stratdeck/internal/core"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	defaultWidth  = 320
	defaultHeight = 120
)

var (
	lineColor = drawing.Color{R: 16, G: 185, B: 129, A: 255}
	// Stands in for the top stop of a fade gradient, which go-chart lacks.
	fillColor = drawing.Color{R: 16, G: 185, B: 129, A: 51}
)

// SVGDrawer renders one filled line per call. It keeps no state between
// calls and is safe for concurrent use.
type SVGDrawer struct {
	width  int
	height int
}

// NewSVGDrawer creates a drawer producing width x height pixel charts.
// Non-positive sizes fall back to 320x120.
func NewSVGDrawer(width, height int) *SVGDrawer {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return &SVGDrawer{width: width, height: height}
}

// DrawSeries plots points against their indices 0..N-1 with hidden axes and
// no point markers. Series shorter than two points produce no drawing.
func (d *SVGDrawer) DrawSeries(target string, points []float64) (template.HTML, error) {
	if len(points) < 2 {
		return "", nil
	}

	xs := make([]float64, len(points))
	for i := range points {
		xs[i] = float64(i)
	}

	ch := gochart.Chart{
		Width:  d.width,
		Height: d.height,
		Background: gochart.Style{
			FillColor: drawing.ColorTransparent,
			Padding:   gochart.Box{Top: 4, Left: 2, Right: 2, Bottom: 2},
		},
		Canvas: gochart.Style{
			FillColor: drawing.ColorTransparent,
		},
		XAxis: gochart.XAxis{Style: gochart.Style{Hidden: true}},
		YAxis: gochart.YAxis{
			Style: gochart.Style{Hidden: true},
			Range: yRange(points),
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name: target,
				Style: gochart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 2,
					FillColor:   fillColor,
					DotWidth:    0,
				},
				XValues: xs,
				YValues: points,
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(gochart.SVG, &buf); err != nil {
		return "", core.WrapError(core.ErrChartFailed, fmt.Errorf("%s: %w", target, err))
	}
	return template.HTML(buf.String()), nil
}

// yRange pins the axis for flat series, which go-chart rejects as a zero
// range. Other series use the automatic range.
func yRange(points []float64) gochart.Range {
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = min(lo, p)
		hi = max(hi, p)
	}
	if lo != hi {
		return nil
	}
	return &gochart.ContinuousRange{Min: lo - 1, Max: hi + 1}
}
