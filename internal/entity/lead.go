package entity

import (
	"time"
)

type CnpjStatus string

const (
	CnpjValid   CnpjStatus = "VALID"
	CnpjInvalid CnpjStatus = "INVALID"
)

type DealStatus string

const (
	DealPending DealStatus = "PENDING"
	DealWon     DealStatus = "WON"
	DealLost    DealStatus = "LOST"
)

// Note: anotação do vendedor (texto ou transcrição de áudio)
type Note struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // TEXT ou AUDIO
	Content   string    `json:"content"`
	AudioURL  string    `json:"audio_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Attachment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Data     string `json:"data"` // Base64
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

type MessageHistoryItem struct {
	SentAt        time.Time `json:"sent_at"`
	TemplateTitle string    `json:"template_title"`
	Salesperson   string    `json:"salesperson"`
}

type ChangeLogEntry struct {
	At     time.Time `json:"at"`
	Action string    `json:"action"`
	Detail string    `json:"detail"`
}

// RegistryData: payload de enriquecimento da Receita (via BrasilAPI).
// Quando presente, seus campos têm precedência sobre os dados crus do form.
type RegistryData struct {
	CNPJ                string `json:"cnpj"`
	RazaoSocial         string `json:"razao_social"`
	NomeFantasia        string `json:"nome_fantasia"`
	DataInicioAtividade string `json:"data_inicio_atividade"`
	CnaeFiscalDescricao string `json:"cnae_fiscal_descricao"`
	NaturezaJuridica    string `json:"natureza_juridica"`
	Logradouro          string `json:"logradouro"`
	Numero              string `json:"numero"`
	Complemento         string `json:"complemento"`
	Bairro              string `json:"bairro"`
	Municipio           string `json:"municipio"`
	UF                  string `json:"uf"`
	CEP                 string `json:"cep"`
	Email               string `json:"email"`
	Telefone            string `json:"ddd_telefone_1"`
	Porte               string `json:"porte"`
	SituacaoCadastral   string `json:"descricao_situacao_cadastral"`
}

// Entidade: Lead (uma oportunidade B2B vinda da planilha)
type Lead struct {
	ID         string     `json:"id"`
	CNPJ       string     `json:"cnpj"`
	StatusCNPJ CnpjStatus `json:"status_cnpj"`

	// Campos de contato — a planilha é a fonte de verdade e sobrescreve
	// a cada sync (exceto quando o RegistryData já corrigiu o valor)
	RazaoSocial   string    `json:"razao_social"`
	NomeContato   string    `json:"nome_contato"`
	Telefone      string    `json:"telefone"`
	Email         string    `json:"email"`
	Cidade        string    `json:"cidade"`
	UF            string    `json:"uf"`
	CEP           string    `json:"cep"`
	Instagram     string    `json:"instagram,omitempty"`
	Categoria     string    `json:"categoria"`
	DataSubmissao time.Time `json:"data_submissao"`

	// Atribuição de campanha (extraída da URL de origem)
	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
	UTMContent  string `json:"utm_content,omitempty"`
	UTMTerm     string `json:"utm_term,omitempty"`
	UTMID       string `json:"utm_id,omitempty"`

	RegistryData *RegistryData `json:"registry_data,omitempty"`

	// Posse — campos do usuário, o sync nunca sobrescreve
	Salesperson     string `json:"salesperson,omitempty"`
	OriginalOwner   string `json:"original_owner,omitempty"`
	TransferPending bool   `json:"transfer_pending"`

	DealStatus DealStatus `json:"deal_status"`
	WonAt      *time.Time `json:"won_at,omitempty"`
	WonValue   float64    `json:"won_value,omitempty"`
	LostAt     *time.Time `json:"lost_at,omitempty"`
	LostReason string     `json:"lost_reason,omitempty"`

	MessageSentAt     *time.Time           `json:"message_sent_at,omitempty"`
	LastTemplateTitle string               `json:"last_template_title,omitempty"`
	MessageHistory    []MessageHistoryItem `json:"message_history,omitempty"`
	Notes             []Note               `json:"notes,omitempty"`
	Attachments       []Attachment         `json:"attachments,omitempty"`
	ChangeLog         []ChangeLogEntry     `json:"change_log,omitempty"`
}

// AppendChange registra uma entrada no histórico de alterações do lead.
func (l *Lead) AppendChange(at time.Time, action, detail string) {
	l.ChangeLog = append(l.ChangeLog, ChangeLogEntry{At: at, Action: action, Detail: detail})
}
