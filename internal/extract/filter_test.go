package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartinez/factura-extractor/internal/entity"
)

func item(name string, qty int, unit, total float64) entity.LineItem {
	return entity.LineItem{Name: name, Quantity: qty, UnitPrice: unit, TotalPrice: total}
}

func TestFilterDropsShortNames(t *testing.T) {
	out := FilterItems([]entity.LineItem{
		item("AB", 1, 500, 500),
		item("  X ", 1, 500, 500),
		item("ABC", 1, 500, 500),
	})
	require.Len(t, out, 1)
	assert.Equal(t, "ABC", out[0].Name)
}

func TestFilterDropsExcludedVocabulary(t *testing.T) {
	out := FilterItems([]entity.LineItem{
		item("TOTAL", 1, 3000, 3000),
		item("SUBTOTAL GENERAL", 1, 3000, 3000),
		item("CUIT 30-71234567-8", 1, 3000, 3000),
		item("Forma de pago contado", 1, 3000, 3000),
		item("FILTRO ACEITE", 2, 1500, 3000),
	})
	require.Len(t, out, 1)
	assert.Equal(t, "FILTRO ACEITE", out[0].Name)
}

func TestFilterPriceBounds(t *testing.T) {
	out := FilterItems([]entity.LineItem{
		item("FILTRO BARATO", 1, 60, 60),             // total below 100
		item("LOTE GIGANTE", 1, 20000000, 20000000),  // total above ceiling
		item("TUERCA SUELTA", 10, 12, 120),           // unit 12 but total < 1000
		item("TORNILLERIA CAJA", 100, 12, 1200),      // unit 12 vouched by total
		item("CORREA ALTERNADOR", 1, 4500, 4500),
	})
	require.Len(t, out, 2)
	assert.Equal(t, "TORNILLERIA CAJA", out[0].Name)
	assert.Equal(t, "CORREA ALTERNADOR", out[1].Name)
}

func TestFilterQuantityBounds(t *testing.T) {
	out := FilterItems([]entity.LineItem{
		item("BUJIA NGK", 0, 800, 800),
		item("BUJIA NGK", -2, 800, 800),
		item("BUJIA NGK", 1001, 800, 800000),
		item("BUJIA NGK", 4, 800, 3200),
	})
	require.Len(t, out, 1)
	assert.Equal(t, 4, out[0].Quantity)
}

func TestFilterDedupKeepsFirst(t *testing.T) {
	first := item("Filtro Aceite", 2, 1500, 3000)
	first.Code = "A1023"
	out := FilterItems([]entity.LineItem{
		first,
		item("FILTRO ACEITE", 2, 1500, 3000), // same name modulo case
		item("FILTRO ACEITE", 3, 1500, 4500), // different quantity survives
	})
	require.Len(t, out, 2)
	assert.Equal(t, "A1023", out[0].Code)
	assert.Equal(t, 3, out[1].Quantity)
}

func TestFilterEmptyInput(t *testing.T) {
	out := FilterItems(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
