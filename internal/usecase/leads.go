package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
)

// LeadService: mutações iniciadas pelo usuário. Toda escrita registra
// uma entrada no change log do lead.
type LeadService struct {
	Leads LeadRepositoryInterface
	Now   Clock
}

func NewLeadService(leads LeadRepositoryInterface, now Clock) *LeadService {
	return &LeadService{Leads: leads, Now: now}
}

func (s *LeadService) SetDealStatus(ctx context.Context, id string, input SetDealStatusInput) (*entity.Lead, error) {
	lead, err := s.Leads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}

	now := s.Now()
	switch entity.DealStatus(input.Status) {
	case entity.DealWon:
		lead.DealStatus = entity.DealWon
		lead.WonAt = &now
		lead.WonValue = input.WonValue
		lead.LostAt = nil
		lead.LostReason = ""
		lead.AppendChange(now, "DEAL_WON", fmt.Sprintf("negócio ganho: R$ %.2f", input.WonValue))

	case entity.DealLost:
		lead.DealStatus = entity.DealLost
		lead.LostAt = &now
		lead.LostReason = input.LostReason
		lead.WonAt = nil
		lead.WonValue = 0
		lead.AppendChange(now, "DEAL_LOST", fmt.Sprintf("negócio perdido: %s", input.LostReason))

	case entity.DealPending:
		lead.DealStatus = entity.DealPending
		lead.WonAt = nil
		lead.WonValue = 0
		lead.LostAt = nil
		lead.LostReason = ""
		lead.AppendChange(now, "DEAL_REOPEN", "negócio reaberto")

	default:
		return nil, &DomainError{Code: "INVALID_DEAL_STATUS",
			Message: fmt.Sprintf("status inválido: %s", input.Status)}
	}

	if err := s.Leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// EditContactFields aplica uma edição manual. Editar o CNPJ NÃO repromove
// o lead para VALID sozinho: a classificação só muda via ReclassifyAs.
func (s *LeadService) EditContactFields(ctx context.Context, id string, input EditContactInput) (*entity.Lead, error) {
	lead, err := s.Leads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}

	apply := func(dst *string, src *string) bool {
		if src == nil || *src == *dst {
			return false
		}
		*dst = *src
		return true
	}

	touched := 0
	for _, pair := range []struct {
		dst *string
		src *string
	}{
		{&lead.CNPJ, input.CNPJ},
		{&lead.RazaoSocial, input.RazaoSocial},
		{&lead.NomeContato, input.NomeContato},
		{&lead.Telefone, input.Telefone},
		{&lead.Email, input.Email},
		{&lead.Cidade, input.Cidade},
		{&lead.UF, input.UF},
		{&lead.CEP, input.CEP},
		{&lead.Categoria, input.Categoria},
		{&lead.Instagram, input.Instagram},
	} {
		if apply(pair.dst, pair.src) {
			touched++
		}
	}

	now := s.Now()
	if touched > 0 {
		lead.AppendChange(now, "CONTACT_EDIT", fmt.Sprintf("%d campo(s) de contato editados", touched))
	}

	switch input.ReclassifyAs {
	case "":
		// mantém a classificação — auditoria manual decide depois
	case string(entity.CnpjValid), string(entity.CnpjInvalid):
		former := lead.StatusCNPJ
		lead.StatusCNPJ = entity.CnpjStatus(input.ReclassifyAs)
		lead.AppendChange(now, "RECLASSIFY",
			fmt.Sprintf("classificação alterada de %s para %s", former, lead.StatusCNPJ))
	default:
		return nil, &DomainError{Code: "INVALID_CLASSIFICATION",
			Message: fmt.Sprintf("classificação inválida: %s", input.ReclassifyAs)}
	}

	if err := s.Leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *LeadService) AddNote(ctx context.Context, id string, input AddNoteInput) (*entity.Lead, error) {
	lead, err := s.Leads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	if input.Content == "" {
		return nil, &DomainError{Code: "EMPTY_NOTE", Message: "nota sem conteúdo"}
	}

	noteType := input.Type
	if noteType == "" {
		noteType = "TEXT"
	}

	now := s.Now()
	lead.Notes = append(lead.Notes, entity.Note{
		ID:        uuid.New().String(),
		Type:      noteType,
		Content:   input.Content,
		AudioURL:  input.AudioURL,
		CreatedAt: now,
	})
	lead.AppendChange(now, "NOTE_ADD", "nota adicionada")

	if err := s.Leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// RecordMessageSent marca o envio de uma mensagem do playbook: atualiza
// o carimbo, o último template e o histórico — tudo campo do usuário.
func (s *LeadService) RecordMessageSent(ctx context.Context, id string, input RecordMessageInput) (*entity.Lead, error) {
	lead, err := s.Leads.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}

	title := input.TemplateTitle
	if title == "" {
		title = "Personalizada"
	}

	now := s.Now()
	lead.MessageSentAt = &now
	lead.LastTemplateTitle = title
	lead.MessageHistory = append(lead.MessageHistory, entity.MessageHistoryItem{
		SentAt:        now,
		TemplateTitle: title,
		Salesperson:   lead.Salesperson,
	})
	lead.AppendChange(now, "MESSAGE_SENT", fmt.Sprintf("mensagem enviada: %s", title))

	if err := s.Leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}
