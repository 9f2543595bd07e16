package dashboard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/folio/internal/models"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func renderConfig(t *testing.T, cfg ChartConfig, format string) []byte {
	t.Helper()
	c, err := NewGoChartFactory(640, 400, format)(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	return buf.Bytes()
}

func TestGoChart_RendersAllocationPNG(t *testing.T) {
	m := Calculate(scenarioSnapshot(), FormatOptions{LabelLength: 12})

	out := renderConfig(t, AllocationConfig(m, testPalette), FormatPNG)

	assert.True(t, bytes.HasPrefix(out, pngMagic), "expected PNG output")
}

func TestGoChart_RendersGrowthSVG(t *testing.T) {
	m := Calculate(scenarioSnapshot(), FormatOptions{})

	out := renderConfig(t, GrowthConfig(m), FormatSVG)

	assert.Contains(t, string(out), "<svg")
}

func TestGoChart_RendersEmptyPortfolio(t *testing.T) {
	m := Calculate(&models.PortfolioSnapshot{}, FormatOptions{})

	pie := renderConfig(t, AllocationConfig(m, testPalette), FormatPNG)
	bar := renderConfig(t, GrowthConfig(m), FormatPNG)

	assert.True(t, bytes.HasPrefix(pie, pngMagic))
	assert.True(t, bytes.HasPrefix(bar, pngMagic))
}

func TestGoChart_DestroyedInstanceRefusesRender(t *testing.T) {
	c, err := NewGoChartFactory(320, 200, FormatPNG)(ChartConfig{Kind: ChartPie})
	require.NoError(t, err)
	assert.Equal(t, "image/png", c.ContentType())

	c.Destroy()

	var buf bytes.Buffer
	assert.ErrorIs(t, c.Render(&buf), ErrChartDestroyed)
	assert.Zero(t, buf.Len())
}

func TestGoChart_UnknownKind(t *testing.T) {
	_, err := NewGoChartFactory(320, 200, FormatPNG)(ChartConfig{Kind: "radar"})
	assert.Error(t, err)
}

func TestBarGeometry(t *testing.T) {
	w, s := barGeometry(640, 4)
	assert.Equal(t, 60, w)
	assert.Greater(t, s, 0)

	w, s = barGeometry(640, 200)
	assert.GreaterOrEqual(t, w, 1)
	assert.GreaterOrEqual(t, s, 1)
	assert.LessOrEqual(t, (w+s)*200, 200*4+520)
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/svg+xml", ContentTypeFor("SVG"))
	assert.Equal(t, "image/png", ContentTypeFor("png"))
	assert.Equal(t, "image/png", ContentTypeFor(""))
}
