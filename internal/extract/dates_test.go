package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDateNormalizesFormats(t *testing.T) {
	cases := map[string]string{
		"Fecha: 22/01/2026": "2026-01-22",
		"Fecha: 22-01-2026": "2026-01-22",
		"Emitida 2026-01-22": "2026-01-22",
	}
	for in, want := range cases {
		got, ok := findDate(in)
		require.True(t, ok, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestFindDateRejectsInvalid(t *testing.T) {
	for _, in := range []string{
		"31/02/2024",       // impossible day
		"15/13/2024",       // impossible month
		"CUIT 30-71234567-8",
		"70123456789012",
	} {
		_, ok := findDate(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestIssueDateByLabel(t *testing.T) {
	p := newTestPipeline()
	doc := docOf(
		"FACTURA A",
		"Fecha: 05/03/2024",
	)
	m, strategy := p.extractIssueDate(doc)
	assert.Equal(t, "2024-03-05", m.iso)
	assert.Equal(t, "label", strategy)
}

func TestIssueDateLabelOnNextLine(t *testing.T) {
	p := newTestPipeline()
	doc := docOf("Fecha de emision", "05/03/2024")
	m, _ := p.extractIssueDate(doc)
	assert.Equal(t, "2024-03-05", m.iso)
}

func TestIssueDateSkipsDueAndAuthorizationLabels(t *testing.T) {
	p := newTestPipeline()
	doc := docOf(
		"Fecha de Vto: 10/04/2024",
		"CAE Fecha: 15/04/2024",
		"Fecha: 05/03/2024",
	)
	m, _ := p.extractIssueDate(doc)
	assert.Equal(t, "2024-03-05", m.iso)
}

func TestIssueDatePositionalFallback(t *testing.T) {
	p := newTestPipeline()
	doc := docOf(
		"REPUESTOS DEL SUR S.R.L.",
		"Emitida el 05/03/2024",
	)
	m, strategy := p.extractIssueDate(doc)
	assert.Equal(t, "2024-03-05", m.iso)
	assert.Equal(t, "positional", strategy)
}

func TestDueDateByLabel(t *testing.T) {
	p := newTestPipeline()
	doc := docOf(
		"Fecha: 05/03/2024",
		"Vencimiento: 10/04/2024",
	)
	issue, _ := p.extractIssueDate(doc)
	due, strategy := p.extractDueDate(doc, issue)
	assert.Equal(t, "2024-04-10", due)
	assert.Equal(t, "label", strategy)
}

func TestDueDateAfterIssueFallback(t *testing.T) {
	p := newTestPipeline()
	doc := docOf(
		"Fecha: 05/03/2024",
		"Entrega 01/01/2024", // earlier than issue: not a due date
		"10/04/2024",
	)
	issue, _ := p.extractIssueDate(doc)
	due, strategy := p.extractDueDate(doc, issue)
	require.Equal(t, "2024-04-10", due)
	assert.Equal(t, "after-issue", strategy)
	assert.GreaterOrEqual(t, due, issue.iso)
}

func TestDueDateIgnoresAuthorizationExpiry(t *testing.T) {
	p := newTestPipeline()
	doc := docOf(
		"Fecha: 05/03/2024",
		"CAE Vto: 15/03/2024",
	)
	issue, _ := p.extractIssueDate(doc)
	due, strategy := p.extractDueDate(doc, issue)
	assert.Empty(t, due)
	assert.Empty(t, strategy)
}

func TestDueDateMissingWhenNothingLater(t *testing.T) {
	p := newTestPipeline()
	doc := docOf("Fecha: 05/03/2024")
	issue, _ := p.extractIssueDate(doc)
	due, _ := p.extractDueDate(doc, issue)
	assert.Empty(t, due)
}
