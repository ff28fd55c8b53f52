package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
)

// stubGenerator guarda o prompt recebido para as asserções.
type stubGenerator struct {
	text   string
	err    error
	prompt string
}

func (s *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

type stubLeadRepo struct {
	leads []entity.Lead
}

func (s *stubLeadRepo) FindAll(ctx context.Context) ([]entity.Lead, error) { return s.leads, nil }
func (s *stubLeadRepo) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	return nil, nil
}
func (s *stubLeadRepo) Count(ctx context.Context) (int, error)                { return len(s.leads), nil }
func (s *stubLeadRepo) Update(ctx context.Context, lead *entity.Lead) error   { return nil }
func (s *stubLeadRepo) UpdateMany(ctx context.Context, leads []entity.Lead) error {
	return nil
}
func (s *stubLeadRepo) ReplaceAll(ctx context.Context, leads []entity.Lead, cursor int) error {
	return nil
}
func (s *stubLeadRepo) Cursor(ctx context.Context) (int, error) { return 0, nil }

type stubStateRepo struct {
	values map[string]string
}

func (s *stubStateRepo) Get(ctx context.Context, key string) (string, error) {
	return s.values[key], nil
}

func (s *stubStateRepo) Set(ctx context.Context, key, value string) error {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	return nil
}

var handlerNow = func() time.Time {
	return time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
}

func TestTemplateDraftGeneratesFromInstruction(t *testing.T) {
	gen := &stubGenerator{text: "Olá {nome_cliente}, aqui é {nome_vendedor} da Holy Foods!"}
	h := NewTemplateHandler(nil, gen)

	req := httptest.NewRequest("POST", "/templates/draft",
		strings.NewReader(`{"instruction":"primeiro contato com padarias"}`))
	rec := httptest.NewRecorder()

	h.HandleDraft(rec, req)

	assert.Equal(t, 200, rec.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, gen.text, body["draft"])

	// A instrução do operador entra no prompt, junto com as tags permitidas
	assert.Contains(t, gen.prompt, "primeiro contato com padarias")
	assert.Contains(t, gen.prompt, "{nome_cliente}")
}

func TestTemplateDraftRequiresInstruction(t *testing.T) {
	gen := &stubGenerator{text: "qualquer coisa"}
	h := NewTemplateHandler(nil, gen)

	req := httptest.NewRequest("POST", "/templates/draft", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	h.HandleDraft(rec, req)

	assert.Equal(t, 400, rec.Code)
	assert.Empty(t, gen.prompt) // nem chegou na IA
}

func TestTemplateDraftGeneratorFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("IA não configurada")}
	h := NewTemplateHandler(nil, gen)

	req := httptest.NewRequest("POST", "/templates/draft",
		strings.NewReader(`{"instruction":"follow-up"}`))
	rec := httptest.NewRecorder()

	h.HandleDraft(rec, req)

	assert.Equal(t, 502, rec.Code)
}

func TestQuickAnalysisSummarizesLeads(t *testing.T) {
	gen := &stubGenerator{text: "Operação saudável, volume crescente via Instagram."}
	leads := &stubLeadRepo{leads: []entity.Lead{
		{StatusCNPJ: entity.CnpjValid, UTMSource: "instagram", DealStatus: entity.DealWon},
		{StatusCNPJ: entity.CnpjInvalid, UTMSource: "direct", DealStatus: entity.DealPending},
	}}
	h := NewInsightsHandler(gen, leads, &stubStateRepo{}, handlerNow)

	req := httptest.NewRequest("POST", "/insights/quick", nil)
	rec := httptest.NewRecorder()

	h.HandleQuickAnalysis(rec, req)

	assert.Equal(t, 200, rec.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, gen.text, body["analysis"])

	// Prompt carrega só o resumo enxuto de cada lead
	assert.Contains(t, gen.prompt, `"utm":"instagram"`)
	assert.Contains(t, gen.prompt, `"deal":"WON"`)
	assert.NotContains(t, gen.prompt, "cnpj")
}

func TestQuickAnalysisGeneratorFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota excedida")}
	h := NewInsightsHandler(gen, &stubLeadRepo{}, &stubStateRepo{}, handlerNow)

	req := httptest.NewRequest("POST", "/insights/quick", nil)
	rec := httptest.NewRecorder()

	h.HandleQuickAnalysis(rec, req)

	assert.Equal(t, 502, rec.Code)
}

func TestInsightsRefreshCachesResultWithTimestamp(t *testing.T) {
	gen := &stubGenerator{text: "Foque no canal Instagram este mês."}
	state := &stubStateRepo{}
	h := NewInsightsHandler(gen, &stubLeadRepo{}, state, handlerNow)

	req := httptest.NewRequest("POST", "/insights/refresh", nil)
	rec := httptest.NewRecorder()

	h.HandleRefresh(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, gen.text, state.values["insights_text"])
	assert.Equal(t, handlerNow().Format(time.RFC3339), state.values["insights_updated_at"])
}
