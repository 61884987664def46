package amount

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRegionalFormat(t *testing.T) {
	cases := map[string]string{
		"1.234,56":     "1234.56",
		"93.356,09":    "93356.09",
		"3.000,00":     "3000",
		"1500,00":      "1500",
		"$ 12.100,00":  "12100",
		"1.234.567,89": "1234567.89",
	}
	for in, want := range cases {
		d, err := Parse(in)
		require.NoError(t, err, "token %q", in)
		assert.True(t, d.Equal(decimal.RequireFromString(want)), "token %q parsed to %s", in, d)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "$"} {
		_, err := Parse(in)
		assert.Error(t, err, "token %q", in)
	}
}

func TestFindReturnsTokensInOrder(t *testing.T) {
	got := Find("FILTRO ACEITE 2 1.500,00 3.000,00")
	require.Len(t, got, 2)
	assert.Equal(t, "1.500,00", got[0].Raw)
	assert.Equal(t, "3.000,00", got[1].Raw)
	assert.True(t, got[0].Value.Equal(decimal.NewFromInt(1500)))
	assert.True(t, got[1].Value.Equal(decimal.NewFromInt(3000)))
}

func TestFindIgnoresPlainIntegers(t *testing.T) {
	assert.Empty(t, Find("Nro: 0001-00001234 CUIT 30-71234567-8"))
}

func TestFloatRoundsToTwoDecimals(t *testing.T) {
	d := decimal.RequireFromString("1234.567")
	assert.InDelta(t, 1234.57, Float(d), 0.0001)
}
