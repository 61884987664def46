package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInvoice = `REPUESTOS DEL SUR S.R.L.
CUIT: 30-71234567-8
Invoice No: 0001-00001234
Fecha: 05/03/2024
FILTRO ACEITE 2 1.500,00 3.000,00
TOTAL 3.000,00`

func TestExtractFullInvoice(t *testing.T) {
	p := newTestPipeline()
	res, trace := p.Extract(sampleInvoice)

	assert.Equal(t, "REPUESTOS DEL SUR S.R.L.", res.VendorName)
	assert.Equal(t, "0001-00001234", res.InvoiceNumber)
	assert.Equal(t, "2024-03-05", res.InvoiceDate)
	assert.Empty(t, res.DueDate)
	assert.InDelta(t, 3000, res.TotalAmount, 0.001)

	require.Len(t, res.Items, 1)
	it := res.Items[0]
	assert.Equal(t, "FILTRO ACEITE", it.Name)
	assert.Equal(t, 2, it.Quantity)
	assert.InDelta(t, 1500, it.UnitPrice, 0.001)
	assert.InDelta(t, 3000, it.TotalPrice, 0.001)

	assert.Equal(t, "legal-suffix", trace.VendorStrategy)
	assert.Equal(t, "label", trace.InvoiceNumberStrategy)
	assert.Equal(t, "label", trace.IssueDateStrategy)
	assert.Empty(t, trace.DueDateStrategy)
	assert.Equal(t, "label-pattern", trace.TotalStrategy)
	assert.Equal(t, "single-line", trace.ItemStrategy)
	// the bare TOTAL line also matches a row shape and must be filtered out
	assert.Equal(t, 2, trace.ItemsFound)
	assert.Equal(t, 1, trace.ItemsKept)
}

func TestExtractDeterministic(t *testing.T) {
	p := newTestPipeline()
	a, _ := p.Extract(sampleInvoice)
	b, _ := p.Extract(sampleInvoice)
	assert.Equal(t, a, b)
}

func TestExtractEmptyInput(t *testing.T) {
	p := newTestPipeline()
	for _, in := range []string{"", "   \n\t\n  "} {
		res, trace := p.Extract(in)
		assert.Empty(t, res.VendorName)
		assert.Zero(t, res.TotalAmount)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
		assert.Empty(t, trace.VendorStrategy)
		assert.NotEqual(t, "", trace.ID.String())
	}
}

func TestExtractGarbageDegradesGracefully(t *testing.T) {
	p := newTestPipeline()
	res, trace := p.Extract(strings.Repeat("@@ ##\n??\n", 40))
	assert.Empty(t, res.VendorName)
	assert.Empty(t, res.InvoiceNumber)
	assert.Empty(t, res.InvoiceDate)
	assert.Zero(t, res.TotalAmount)
	assert.Empty(t, res.Items)
	assert.Empty(t, trace.TotalStrategy)
}

func TestExtractConfigDefaults(t *testing.T) {
	p := New(Config{}, nil)
	assert.Equal(t, 15, p.cfg.VendorScanLines)
	assert.Equal(t, 30, p.cfg.NumberFallbackLines)
	assert.Equal(t, 20, p.cfg.DateFallbackLines)
	assert.Equal(t, 3, p.cfg.TotalWindowBefore)
	assert.Equal(t, 15, p.cfg.TotalWindowAfter)
	assert.Equal(t, 9, p.cfg.GroupLookback)
}
