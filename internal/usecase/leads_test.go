package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
)

func seedLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{leads: []entity.Lead{{
		ID:          "lead-1",
		CNPJ:        "123",
		StatusCNPJ:  entity.CnpjInvalid,
		Email:       "contato@padaria.com.br",
		NomeContato: "Carlos",
		Salesperson: "Maria",
		DealStatus:  entity.DealPending,
	}}}
}

func TestSetDealStatusWon(t *testing.T) {
	repo := seedLeadRepo()
	svc := NewLeadService(repo, fixedClock(testNow))

	lead, err := svc.SetDealStatus(context.Background(), "lead-1", SetDealStatusInput{
		Status: "WON", WonValue: 1500,
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.DealWon, lead.DealStatus)
	assert.Equal(t, testNow, *lead.WonAt)
	assert.Equal(t, 1500.0, lead.WonValue)
	assert.Nil(t, lead.LostAt)
	assert.Equal(t, "DEAL_WON", lead.ChangeLog[len(lead.ChangeLog)-1].Action)

	// Persistiu
	assert.Equal(t, entity.DealWon, repo.leads[0].DealStatus)
}

func TestSetDealStatusLostClearsWonFields(t *testing.T) {
	repo := seedLeadRepo()
	svc := NewLeadService(repo, fixedClock(testNow))

	svc.SetDealStatus(context.Background(), "lead-1", SetDealStatusInput{Status: "WON", WonValue: 900})
	lead, err := svc.SetDealStatus(context.Background(), "lead-1", SetDealStatusInput{
		Status: "LOST", LostReason: "preço",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.DealLost, lead.DealStatus)
	assert.Equal(t, "preço", lead.LostReason)
	assert.Nil(t, lead.WonAt)
	assert.Equal(t, 0.0, lead.WonValue)
}

func TestSetDealStatusReopen(t *testing.T) {
	repo := seedLeadRepo()
	svc := NewLeadService(repo, fixedClock(testNow))

	svc.SetDealStatus(context.Background(), "lead-1", SetDealStatusInput{Status: "LOST", LostReason: "sumiu"})
	lead, err := svc.SetDealStatus(context.Background(), "lead-1", SetDealStatusInput{Status: "PENDING"})

	assert.NoError(t, err)
	assert.Equal(t, entity.DealPending, lead.DealStatus)
	assert.Nil(t, lead.WonAt)
	assert.Nil(t, lead.LostAt)
	assert.Empty(t, lead.LostReason)
}

func TestSetDealStatusInvalidValue(t *testing.T) {
	svc := NewLeadService(seedLeadRepo(), fixedClock(testNow))

	_, err := svc.SetDealStatus(context.Background(), "lead-1", SetDealStatusInput{Status: "MAYBE"})

	assert.Error(t, err)
	assert.True(t, IsDomainError(err))
}

func TestSetDealStatusLeadNotFound(t *testing.T) {
	svc := NewLeadService(seedLeadRepo(), fixedClock(testNow))

	_, err := svc.SetDealStatus(context.Background(), "ghost", SetDealStatusInput{Status: "WON"})

	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestEditCNPJDoesNotReclassifyAlone(t *testing.T) {
	repo := seedLeadRepo()
	svc := NewLeadService(repo, fixedClock(testNow))

	cnpj := "11.222.333/0001-44"
	lead, err := svc.EditContactFields(context.Background(), "lead-1", EditContactInput{CNPJ: &cnpj})

	assert.NoError(t, err)
	assert.Equal(t, cnpj, lead.CNPJ)
	// Corrigir o CNPJ NÃO promove o lead sozinho: auditoria decide
	assert.Equal(t, entity.CnpjInvalid, lead.StatusCNPJ)
	assert.Equal(t, "CONTACT_EDIT", lead.ChangeLog[len(lead.ChangeLog)-1].Action)
}

func TestEditContactWithExplicitReclassification(t *testing.T) {
	repo := seedLeadRepo()
	svc := NewLeadService(repo, fixedClock(testNow))

	cnpj := "11.222.333/0001-44"
	lead, err := svc.EditContactFields(context.Background(), "lead-1", EditContactInput{
		CNPJ:         &cnpj,
		ReclassifyAs: "VALID",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.CnpjValid, lead.StatusCNPJ)
	assert.Equal(t, "RECLASSIFY", lead.ChangeLog[len(lead.ChangeLog)-1].Action)
}

func TestEditContactRejectsUnknownClassification(t *testing.T) {
	svc := NewLeadService(seedLeadRepo(), fixedClock(testNow))

	_, err := svc.EditContactFields(context.Background(), "lead-1", EditContactInput{
		ReclassifyAs: "TALVEZ",
	})

	assert.Error(t, err)
	assert.True(t, IsDomainError(err))
}

func TestEditContactNilFieldsUntouched(t *testing.T) {
	repo := seedLeadRepo()
	svc := NewLeadService(repo, fixedClock(testNow))

	tel := "11999998888"
	lead, err := svc.EditContactFields(context.Background(), "lead-1", EditContactInput{Telefone: &tel})

	assert.NoError(t, err)
	assert.Equal(t, tel, lead.Telefone)
	assert.Equal(t, "Carlos", lead.NomeContato)
	assert.Equal(t, "contato@padaria.com.br", lead.Email)
}

func TestAddNoteAppendsAndLogs(t *testing.T) {
	repo := seedLeadRepo()
	svc := NewLeadService(repo, fixedClock(testNow))

	lead, err := svc.AddNote(context.Background(), "lead-1", AddNoteInput{Content: "ligar sexta"})

	assert.NoError(t, err)
	assert.Len(t, lead.Notes, 1)
	assert.Equal(t, "TEXT", lead.Notes[0].Type)
	assert.Equal(t, "ligar sexta", lead.Notes[0].Content)
	assert.NotEmpty(t, lead.Notes[0].ID)
	assert.Equal(t, testNow, lead.Notes[0].CreatedAt)
}

func TestAddNoteRejectsEmptyContent(t *testing.T) {
	svc := NewLeadService(seedLeadRepo(), fixedClock(testNow))

	_, err := svc.AddNote(context.Background(), "lead-1", AddNoteInput{Content: ""})

	assert.Error(t, err)
	assert.True(t, IsDomainError(err))
}

func TestRecordMessageSentDefaultsTitle(t *testing.T) {
	repo := seedLeadRepo()
	svc := NewLeadService(repo, fixedClock(testNow))

	lead, err := svc.RecordMessageSent(context.Background(), "lead-1", RecordMessageInput{})

	assert.NoError(t, err)
	assert.Equal(t, "Personalizada", lead.LastTemplateTitle)
	assert.Equal(t, testNow, *lead.MessageSentAt)
	assert.Len(t, lead.MessageHistory, 1)
	assert.Equal(t, "Maria", lead.MessageHistory[0].Salesperson)
}

func TestRecordMessageSentWithTemplate(t *testing.T) {
	repo := seedLeadRepo()
	svc := NewLeadService(repo, fixedClock(testNow))

	svc.RecordMessageSent(context.Background(), "lead-1", RecordMessageInput{TemplateTitle: "Primeiro contato"})
	lead, err := svc.RecordMessageSent(context.Background(), "lead-1", RecordMessageInput{TemplateTitle: "Follow-up"})

	assert.NoError(t, err)
	assert.Equal(t, "Follow-up", lead.LastTemplateTitle)
	assert.Len(t, lead.MessageHistory, 2)
}
