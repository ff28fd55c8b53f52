package sheets

// Resposta do endpoint GViz do Google Sheets, já sem o invólucro
// "google.visualization.Query.setResponse(...)".
type gvizResponse struct {
	Table gvizTable `json:"table"`
}

type gvizTable struct {
	Rows []gvizRow `json:"rows"`
}

type gvizRow struct {
	C []*gvizCell `json:"c"`
}

// V é o valor bruto (string, número ou "Date(y,m,d,...)"); F é o valor
// formatado que a planilha exibe.
type gvizCell struct {
	V any    `json:"v"`
	F string `json:"f"`
}
