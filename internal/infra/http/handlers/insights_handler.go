package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/infra/http/middleware"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/usecase"
)

const (
	stateKeyInsights     = "insights_text"
	stateKeyInsightsDate = "insights_updated_at"
)

// TextGenerator: geração de texto opaca (IA). O conteúdo do prompt não é
// contrato — só o texto de saída.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type InsightsHandler struct {
	generator TextGenerator
	leadRepo  usecase.LeadRepositoryInterface
	state     usecase.AppStateRepositoryInterface
	now       usecase.Clock
}

func NewInsightsHandler(
	generator TextGenerator,
	leadRepo usecase.LeadRepositoryInterface,
	state usecase.AppStateRepositoryInterface,
	now usecase.Clock,
) *InsightsHandler {
	return &InsightsHandler{
		generator: generator,
		leadRepo:  leadRepo,
		state:     state,
		now:       now,
	}
}

// HandleGet: GET /insights — devolve o insight em cache.
func (h *InsightsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	text, err := h.state.Get(r.Context(), stateKeyInsights)
	if err != nil {
		writeError(w, err)
		return
	}
	updatedAt, err := h.state.Get(r.Context(), stateKeyInsightsDate)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"insights":   text,
		"updated_at": updatedAt,
	})
}

// HandleRefresh: POST /insights/refresh — regenera a partir do funil
// atual e grava o resultado em cache.
func (h *InsightsHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leadRepo.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	text, err := h.generator.GenerateText(r.Context(), buildFunnelPrompt(leads))
	if err != nil {
		middleware.RecordIntegrationError("aistudio")
		writeJSON(w, http.StatusBadGateway, messageResponse{Success: false, Message: err.Error()})
		return
	}

	if err := h.state.Set(r.Context(), stateKeyInsights, text); err != nil {
		writeError(w, err)
		return
	}
	updatedAt := h.now().Format(time.RFC3339)
	if err := h.state.Set(r.Context(), stateKeyInsightsDate, updatedAt); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"insights":   text,
		"updated_at": updatedAt,
	})
}

// HandleQuickAnalysis: POST /insights/quick — resumo de uma frase sobre a
// saúde da operação, gerado na hora, sem cache.
func (h *InsightsHandler) HandleQuickAnalysis(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leadRepo.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	text, err := h.generator.GenerateText(r.Context(), buildQuickAnalysisPrompt(leads))
	if err != nil {
		middleware.RecordIntegrationError("aistudio")
		writeJSON(w, http.StatusBadGateway, messageResponse{Success: false, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "analysis": text})
}

func buildQuickAnalysisPrompt(leads []entity.Lead) string {
	// Payload enxuto: só classificação, origem e negócio de cada lead
	type row struct {
		S    string `json:"s"`
		UTM  string `json:"utm"`
		Deal string `json:"deal"`
	}
	rows := make([]row, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, row{S: string(l.StatusCNPJ), UTM: l.UTMSource, Deal: string(l.DealStatus)})
	}
	raw, _ := json.Marshal(rows)

	return fmt.Sprintf(
		"Analise rapidamente este JSON de vendas e me dê um resumo de 1 frase sobre a saúde da operação (foco em volume e origem): %s",
		raw)
}

func buildFunnelPrompt(leads []entity.Lead) string {
	var won, lost, pending int
	var revenue float64
	for _, l := range leads {
		switch l.DealStatus {
		case entity.DealWon:
			won++
			revenue += l.WonValue
		case entity.DealLost:
			lost++
		default:
			pending++
		}
	}

	return fmt.Sprintf(
		"Você é um analista de vendas B2B. Funil atual: %d leads em negociação, %d ganhos (R$ %.2f), %d perdidos, %d no total. Gere um resumo estratégico curto com os próximos passos para o time.",
		pending, won, revenue, lost, len(leads))
}
