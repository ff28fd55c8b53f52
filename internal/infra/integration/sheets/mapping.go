package sheets

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
)

// Layout de colunas da planilha de captação:
// 0:CNPJ  1:Categoria  2:Nome  3:Telefone  4:E-mail  5:Instagram
// 6:Data Submissão  7:Status CNPJ (ignorado, a aba decide)  8:Razão Social
// 9:URL completa com UTMs  ...  17:Cidade - UF  18:CEP
const (
	colCNPJ = iota
	colCategoria
	colNome
	colTelefone
	colEmail
	colInstagram
	colDataSubmissao
	_ // status na planilha, a aba de origem é a fonte da classificação
	colRazaoSocial
	colURL
)

const (
	colCidadeUF = 17
	colCEP      = 18
)

func cellAt(cells []string, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

// leadFromCells mapeia uma linha da planilha para um Lead ainda sem ID e
// sem vendedor — o merge/atribuição acontece no orquestrador.
func leadFromCells(cells []string, status entity.CnpjStatus, now func() time.Time) entity.Lead {
	cidade, uf := splitCidadeUF(cellAt(cells, colCidadeUF))

	razao := cellAt(cells, colRazaoSocial)
	if razao == "" {
		razao = cellAt(cells, colNome)
	}

	utm := parseUTMs(cellAt(cells, colURL))

	return entity.Lead{
		CNPJ:          cellAt(cells, colCNPJ),
		StatusCNPJ:    status,
		Categoria:     cellAt(cells, colCategoria),
		NomeContato:   cellAt(cells, colNome),
		Telefone:      cellAt(cells, colTelefone),
		Email:         cellAt(cells, colEmail),
		Instagram:     cellAt(cells, colInstagram),
		DataSubmissao: parseSubmissionDate(cellAt(cells, colDataSubmissao), now),
		RazaoSocial:   razao,
		Cidade:        cidade,
		UF:            uf,
		CEP:           cellAt(cells, colCEP),
		UTMSource:     utm.source,
		UTMMedium:     utm.medium,
		UTMCampaign:   utm.campaign,
		UTMContent:    utm.content,
		UTMTerm:       utm.term,
		UTMID:         utm.id,
		DealStatus:    entity.DealPending,
	}
}

func splitCidadeUF(raw string) (string, string) {
	parts := strings.SplitN(raw, " - ", 2)
	cidade := strings.TrimSpace(parts[0])
	uf := ""
	if len(parts) == 2 {
		uf = strings.TrimSpace(parts[1])
	}
	if cidade == "" {
		cidade = "Desconhecida"
	}
	if uf == "" {
		uf = "UF"
	}
	return cidade, uf
}

type utmSet struct {
	source, medium, campaign, content, term, id string
}

var defaultUTMs = utmSet{
	source: "direct", medium: "none", campaign: "none",
	content: "none", term: "none", id: "none",
}

// parseUTMs extrai a atribuição de campanha da URL de origem do form.
// URL quebrada ou ausente degrada para "direct", nunca erro.
func parseUTMs(raw string) utmSet {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "undefined" || raw == "null" {
		return defaultUTMs
	}
	if !strings.HasPrefix(raw, "http") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return defaultUTMs
	}
	q := u.Query()

	pick := func(key, fallback string) string {
		if v := q.Get(key); v != "" {
			return v
		}
		return fallback
	}

	return utmSet{
		source:   pick("utm_source", "direct"),
		medium:   pick("utm_medium", "none"),
		campaign: pick("utm_campaign", "none"),
		content:  pick("utm_content", "none"),
		term:     pick("utm_term", "none"),
		id:       pick("utm_id", "none"),
	}
}

var gvizDateDigits = regexp.MustCompile(`\d+`)

// parseSubmissionDate aceita o formato "Date(ano,mês,dia,...)" do GViz
// (mês começa em zero), RFC3339 e datas simples; sem data parseável,
// usa o relógio — o lead precisa entrar mesmo com a célula podre.
func parseSubmissionDate(raw string, now func() time.Time) time.Time {
	if raw == "" {
		return now()
	}

	if strings.HasPrefix(raw, "Date(") {
		parts := gvizDateDigits.FindAllString(raw, -1)
		if len(parts) >= 3 {
			nums := make([]int, 6)
			for i := 0; i < len(parts) && i < 6; i++ {
				nums[i], _ = strconv.Atoi(parts[i])
			}
			return time.Date(nums[0], time.Month(nums[1]+1), nums[2],
				nums[3], nums[4], nums[5], 0, time.UTC)
		}
		return now()
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02", "02/01/2006 15:04:05", "02/01/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return now()
}
