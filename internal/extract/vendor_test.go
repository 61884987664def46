package extract

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartinez/factura-extractor/internal/document"
)

func newTestPipeline() *Pipeline {
	return New(Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func docOf(lines ...string) *document.Document {
	return document.New(strings.Join(lines, "\n"))
}

func TestVendorLegalSuffixWins(t *testing.T) {
	p := newTestPipeline()
	doc := docOf(
		"FACTURA A",
		"REPUESTOS DEL SUR S.R.L.",
		"Av. Mitre 1234 - Avellaneda",
	)
	v, strategy := p.extractVendor(doc)
	assert.Equal(t, "REPUESTOS DEL SUR S.R.L.", v)
	assert.Equal(t, "legal-suffix", strategy)
}

func TestVendorPipeSegment(t *testing.T) {
	p := newTestPipeline()
	doc := docOf("ACME AUTOPARTES S.A. | Av. Siempreviva 742 | CABA")
	v, _ := p.extractVendor(doc)
	assert.Equal(t, "ACME AUTOPARTES S.A.", v)
}

func TestVendorHeadingFallbackStripsTel(t *testing.T) {
	p := newTestPipeline()
	doc := docOf(
		"FACTURA B",
		"LUBRICENTRO AVELLANEDA Tel: 4222-1111",
	)
	v, strategy := p.extractVendor(doc)
	assert.Equal(t, "LUBRICENTRO AVELLANEDA", v)
	assert.Equal(t, "heading", strategy)
}

func TestVendorExclusions(t *testing.T) {
	p := newTestPipeline()
	doc := docOf(
		"CUIT: 30-71234567-8",
		"12 DE OCTUBRE REPUESTOS S.A.", // starts with digit
		"Fecha: 05/03/2024 Distribuciones S.A.",
		"factura electronica original S.A.",
	)
	v, strategy := p.extractVendor(doc)
	assert.Empty(t, v)
	assert.Empty(t, strategy)
}

func TestVendorFirstQualifyingLineWins(t *testing.T) {
	p := newTestPipeline()
	doc := docOf(
		"DISTRIBUIDORA NORTE S.A.",
		"TALLERES UNIDOS S.R.L.",
	)
	v, _ := p.extractVendor(doc)
	assert.Equal(t, "DISTRIBUIDORA NORTE S.A.", v)
}

func TestVendorScanDepthBounded(t *testing.T) {
	lines := make([]string, 0, 20)
	for i := 0; i < 16; i++ {
		lines = append(lines, "....") // filler below candidate thresholds
	}
	lines = append(lines, "REPUESTOS DEL SUR S.R.L.")
	p := newTestPipeline()
	v, _ := p.extractVendor(docOf(lines...))
	require.Empty(t, v, "vendor beyond the first 15 lines must not match")
}

func TestBareSuffixNeedsTokenBoundary(t *testing.T) {
	assert.False(t, hasLegalSuffix("CASAS DEL CENTRO"))
	assert.True(t, hasLegalSuffix("TALLERES UNIDOS SRL"))
	assert.True(t, hasLegalSuffix("ACME AUTOPARTES SA"))
}
