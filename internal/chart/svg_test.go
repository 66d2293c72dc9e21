package chart

import (
	"strings"
	"testing"

	"github.com/newthinker/stratdeck/internal/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gochart "github.com/wcharczuk/go-chart/v2"
)

func TestSVGDrawer_ImplementsChartDrawer(t *testing.T) {
	var _ dashboard.ChartDrawer = (*SVGDrawer)(nil)
}

func TestNewSVGDrawer_Defaults(t *testing.T) {
	d := NewSVGDrawer(0, -5)
	assert.Equal(t, defaultWidth, d.width)
	assert.Equal(t, defaultHeight, d.height)
}

func TestSVGDrawer_DrawSeries(t *testing.T) {
	d := NewSVGDrawer(300, 100)

	out, err := d.DrawSeries("chart-0", []float64{10000, 10250.5, 9800, 11234.56})
	require.NoError(t, err)

	svg := string(out)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(svg), "<svg"), "expected svg markup, got %.40q", svg)
	assert.Contains(t, svg, `width="300"`)
	assert.Contains(t, svg, `height="100"`)
	assert.Contains(t, svg, "<path")
}

func TestSVGDrawer_ShortSeries(t *testing.T) {
	d := NewSVGDrawer(0, 0)

	for _, points := range [][]float64{nil, {}, {10000}} {
		out, err := d.DrawSeries("chart-0", points)
		require.NoError(t, err)
		assert.Empty(t, out)
	}
}

func TestSVGDrawer_FlatSeries(t *testing.T) {
	d := NewSVGDrawer(0, 0)

	out, err := d.DrawSeries("chart-3", []float64{10000, 10000, 10000})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<svg")
}

func TestYRange(t *testing.T) {
	assert.Nil(t, yRange([]float64{1, 2, 3}))

	r, ok := yRange([]float64{5, 5}).(*gochart.ContinuousRange)
	require.True(t, ok)
	assert.Equal(t, 4.0, r.Min)
	assert.Equal(t, 6.0, r.Max)
}
