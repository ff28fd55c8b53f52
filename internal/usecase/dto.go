package usecase

// SyncOutcome: resultado explícito de um ciclo de sync. Falha é valor de
// retorno que o caller e os testes conseguem assertar, não console.log.
type SyncOutcome struct {
	Ok       bool   `json:"ok"`
	NewCount int    `json:"new_count"`
	Merged   int    `json:"merged"`
	Message  string `json:"message,omitempty"`
}

type SetDealStatusInput struct {
	Status     string  `json:"status"` // PENDING, WON, LOST
	WonValue   float64 `json:"won_value,omitempty"`
	LostReason string  `json:"lost_reason,omitempty"`
}

type EditContactInput struct {
	CNPJ        *string `json:"cnpj,omitempty"`
	RazaoSocial *string `json:"razao_social,omitempty"`
	NomeContato *string `json:"nome_contato,omitempty"`
	Telefone    *string `json:"telefone,omitempty"`
	Email       *string `json:"email,omitempty"`
	Cidade      *string `json:"cidade,omitempty"`
	UF          *string `json:"uf,omitempty"`
	CEP         *string `json:"cep,omitempty"`
	Categoria   *string `json:"categoria,omitempty"`
	Instagram   *string `json:"instagram,omitempty"`

	// A validade NUNCA é recalculada sozinha após edição de CNPJ: só muda
	// quando o operador reclassifica de propósito.
	ReclassifyAs string `json:"reclassify_as,omitempty"` // VALID ou INVALID
}

type AddNoteInput struct {
	Type     string `json:"type"` // TEXT ou AUDIO
	Content  string `json:"content"`
	AudioURL string `json:"audio_url,omitempty"`
}

type RecordMessageInput struct {
	TemplateTitle string `json:"template_title"`
}
