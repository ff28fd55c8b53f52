package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
)

const gvizPrefix = "google.visualization.Query.setResponse("

// Client lê a planilha de captação pelo endpoint GViz do Google Sheets.
// Duas abas: CNPJs válidos e inválidos — a aba define a classificação.
type Client struct {
	sheetID    string
	tabValid   string
	tabInvalid string
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(sheetID, tabValid, tabInvalid string, now func() time.Time) *Client {
	return &Client{
		sheetID:    sheetID,
		tabValid:   tabValid,
		tabInvalid: tabInvalid,
		// Timeout obrigatório: um fetch pendurado seguraria a trava do
		// sync para sempre.
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        now,
	}
}

// FetchBatch devolve as duas abas concatenadas em ordem estável
// (válidos primeiro). Planilha sem linhas devolve slice vazio, não erro.
func (c *Client) FetchBatch(ctx context.Context) ([]entity.Lead, error) {
	valid, err := c.fetchTab(ctx, c.tabValid, entity.CnpjValid)
	if err != nil {
		return nil, fmt.Errorf("aba %q: %w", c.tabValid, err)
	}

	invalid, err := c.fetchTab(ctx, c.tabInvalid, entity.CnpjInvalid)
	if err != nil {
		return nil, fmt.Errorf("aba %q: %w", c.tabInvalid, err)
	}

	return append(valid, invalid...), nil
}

func (c *Client) fetchTab(ctx context.Context, tab string, status entity.CnpjStatus) ([]entity.Lead, error) {
	endpoint := fmt.Sprintf(
		"https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:json&sheet=%s",
		c.sheetID, url.QueryEscape(tab))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d ao buscar planilha", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	parsed, err := parseGVizResponse(string(body))
	if err != nil {
		return nil, err
	}

	rows := parsed.Table.Rows
	// Pula o cabeçalho quando a primeira célula parece um título
	if len(rows) > 0 && cellString(firstCell(rows[0])) == "CNPJ" {
		rows = rows[1:]
	}

	leads := make([]entity.Lead, 0, len(rows))
	for _, row := range rows {
		leads = append(leads, leadFromCells(rowToCells(row), status, c.now))
	}
	return leads, nil
}

// parseGVizResponse remove o invólucro JSONP que o GViz devolve.
func parseGVizResponse(text string) (*gvizResponse, error) {
	start := strings.Index(text, gvizPrefix)
	end := strings.LastIndex(text, ")")
	if start == -1 || end == -1 || end <= start+len(gvizPrefix) {
		return nil, fmt.Errorf("resposta GViz mal formada")
	}

	var parsed gvizResponse
	if err := json.Unmarshal([]byte(text[start+len(gvizPrefix):end]), &parsed); err != nil {
		return nil, fmt.Errorf("json GViz inválido: %w", err)
	}
	return &parsed, nil
}

func firstCell(row gvizRow) *gvizCell {
	if len(row.C) == 0 {
		return nil
	}
	return row.C[0]
}

func rowToCells(row gvizRow) []string {
	cells := make([]string, len(row.C))
	for i, c := range row.C {
		cells[i] = cellString(c)
	}
	return cells
}

// cellString prefere o valor bruto; números viram texto sem notação
// científica, Date(...) fica como veio para o parse de data tratar.
func cellString(c *gvizCell) string {
	if c == nil {
		return ""
	}
	switch v := c.V.(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return c.F
}
