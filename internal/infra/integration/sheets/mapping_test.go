package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
)

var frozenNow = func() time.Time {
	return time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
}

func TestLeadFromCellsFullRow(t *testing.T) {
	cells := make([]string, 19)
	cells[colCNPJ] = "11.222.333/0001-44"
	cells[colCategoria] = "Padaria"
	cells[colNome] = "Carlos"
	cells[colTelefone] = "(11) 99999-8888"
	cells[colEmail] = "contato@padaria.com.br"
	cells[colInstagram] = "@padariasc"
	cells[colDataSubmissao] = "Date(2026,7,15,14,30,0)"
	cells[colRazaoSocial] = "Padaria Santa Clara LTDA"
	cells[colURL] = "https://holyfoods.com.br/form?utm_source=instagram&utm_medium=bio&utm_campaign=ago26"
	cells[colCidadeUF] = "Santos - SP"
	cells[colCEP] = "11010-000"

	lead := leadFromCells(cells, entity.CnpjValid, frozenNow)

	assert.Equal(t, "11.222.333/0001-44", lead.CNPJ)
	assert.Equal(t, entity.CnpjValid, lead.StatusCNPJ)
	assert.Equal(t, "Padaria", lead.Categoria)
	assert.Equal(t, "Carlos", lead.NomeContato)
	assert.Equal(t, "Padaria Santa Clara LTDA", lead.RazaoSocial)
	assert.Equal(t, "Santos", lead.Cidade)
	assert.Equal(t, "SP", lead.UF)
	assert.Equal(t, "11010-000", lead.CEP)
	assert.Equal(t, "instagram", lead.UTMSource)
	assert.Equal(t, "bio", lead.UTMMedium)
	assert.Equal(t, "ago26", lead.UTMCampaign)
	assert.Equal(t, entity.DealPending, lead.DealStatus)

	// Mês do GViz começa em zero: 7 é agosto
	assert.Equal(t, time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC), lead.DataSubmissao)
}

func TestLeadFromCellsShortRow(t *testing.T) {
	// Linha truncada (célula vazia no fim some da resposta do GViz)
	lead := leadFromCells([]string{"11222333000144"}, entity.CnpjInvalid, frozenNow)

	assert.Equal(t, "11222333000144", lead.CNPJ)
	assert.Equal(t, "Desconhecida", lead.Cidade)
	assert.Equal(t, "UF", lead.UF)
	assert.Equal(t, "direct", lead.UTMSource)
	assert.Equal(t, frozenNow(), lead.DataSubmissao)
}

func TestLeadFromCellsRazaoSocialFallsBackToNome(t *testing.T) {
	cells := make([]string, 19)
	cells[colNome] = "Carlos"

	lead := leadFromCells(cells, entity.CnpjValid, frozenNow)

	assert.Equal(t, "Carlos", lead.RazaoSocial)
}

func TestSplitCidadeUF(t *testing.T) {
	cidade, uf := splitCidadeUF("Santos - SP")
	assert.Equal(t, "Santos", cidade)
	assert.Equal(t, "SP", uf)

	cidade, uf = splitCidadeUF("São Caetano do Sul - SP")
	assert.Equal(t, "São Caetano do Sul", cidade)
	assert.Equal(t, "SP", uf)

	cidade, uf = splitCidadeUF("Santos")
	assert.Equal(t, "Santos", cidade)
	assert.Equal(t, "UF", uf)

	cidade, uf = splitCidadeUF("")
	assert.Equal(t, "Desconhecida", cidade)
	assert.Equal(t, "UF", uf)
}

func TestParseUTMsDegradesToDirect(t *testing.T) {
	for _, raw := range []string{"", "undefined", "null", "://quebrada"} {
		utm := parseUTMs(raw)
		assert.Equal(t, "direct", utm.source, "entrada: %q", raw)
		assert.Equal(t, "none", utm.medium, "entrada: %q", raw)
	}
}

func TestParseUTMsWithoutScheme(t *testing.T) {
	utm := parseUTMs("holyfoods.com.br/form?utm_source=facebook&utm_medium=cpc")

	assert.Equal(t, "facebook", utm.source)
	assert.Equal(t, "cpc", utm.medium)
	assert.Equal(t, "none", utm.campaign)
}

func TestParseSubmissionDateLayouts(t *testing.T) {
	// GViz Date(ano, mês zero-based, dia, h, m, s)
	got := parseSubmissionDate("Date(2026,0,5,9,15,0)", frozenNow)
	assert.Equal(t, time.Date(2026, 1, 5, 9, 15, 0, 0, time.UTC), got)

	got = parseSubmissionDate("2026-08-15T14:30:00Z", frozenNow)
	assert.Equal(t, time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC), got)

	got = parseSubmissionDate("15/08/2026", frozenNow)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), got)

	// Célula podre: o lead entra com o relógio
	assert.Equal(t, frozenNow(), parseSubmissionDate("amanhã", frozenNow))
	assert.Equal(t, frozenNow(), parseSubmissionDate("", frozenNow))
	assert.Equal(t, frozenNow(), parseSubmissionDate("Date()", frozenNow))
}
