package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
)

// XLSXSource lê um export local da planilha (.xlsx) com o mesmo layout
// de colunas do GViz — usado em ambiente sem acesso ao Google Sheets.
type XLSXSource struct {
	path       string
	tabValid   string
	tabInvalid string
	now        func() time.Time
}

func NewXLSXSource(path, tabValid, tabInvalid string, now func() time.Time) *XLSXSource {
	return &XLSXSource{
		path:       path,
		tabValid:   tabValid,
		tabInvalid: tabInvalid,
		now:        now,
	}
}

func (s *XLSXSource) FetchBatch(ctx context.Context) ([]entity.Lead, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("falha ao abrir %s: %w", s.path, err)
	}
	defer f.Close()

	valid, err := s.readTab(f, s.tabValid, entity.CnpjValid)
	if err != nil {
		return nil, err
	}
	invalid, err := s.readTab(f, s.tabInvalid, entity.CnpjInvalid)
	if err != nil {
		return nil, err
	}

	return append(valid, invalid...), nil
}

func (s *XLSXSource) readTab(f *excelize.File, tab string, status entity.CnpjStatus) ([]entity.Lead, error) {
	rows, err := f.GetRows(tab)
	if err != nil {
		return nil, fmt.Errorf("aba %q: %w", tab, err)
	}

	if len(rows) > 0 && cellAt(rows[0], colCNPJ) == "CNPJ" {
		rows = rows[1:]
	}

	leads := make([]entity.Lead, 0, len(rows))
	for _, cells := range rows {
		leads = append(leads, leadFromCells(cells, status, s.now))
	}
	return leads, nil
}
