package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/infra/http/middleware"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/usecase"
)

type TemplateHandler struct {
	repo      usecase.TemplateRepositoryInterface
	generator TextGenerator
}

func NewTemplateHandler(repo usecase.TemplateRepositoryInterface, generator TextGenerator) *TemplateHandler {
	return &TemplateHandler{repo: repo, generator: generator}
}

type templateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// HandleList: GET /templates
func (h *TemplateHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	templates, err := h.repo.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "templates": templates})
}

// HandleCreate: POST /templates
func (h *TemplateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Success: false, Message: "JSON inválido"})
		return
	}

	tpl, err := entity.NewMessageTemplate(req.Title, req.Content)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Success: false, Message: err.Error()})
		return
	}

	if err := h.repo.Create(r.Context(), tpl); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "template": tpl})
}

// HandleUpdate: PUT /templates/{id}
func (h *TemplateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Success: false, Message: "JSON inválido"})
		return
	}

	id := chi.URLParam(r, "id")
	tpl, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if tpl == nil {
		writeJSON(w, http.StatusNotFound, messageResponse{Success: false, Message: "template não encontrado"})
		return
	}

	tpl.Title = req.Title
	tpl.Content = req.Content
	if err := h.repo.Update(r.Context(), tpl); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "template": tpl})
}

type draftRequest struct {
	Instruction string `json:"instruction"`
}

// HandleDraft: POST /templates/draft — rascunho de template gerado por IA
// a partir de uma instrução livre. Devolve só o texto; salvar é uma
// decisão do operador, pelo POST /templates normal.
func (h *TemplateHandler) HandleDraft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Success: false, Message: "JSON inválido"})
		return
	}
	if req.Instruction == "" {
		writeJSON(w, http.StatusBadRequest, messageResponse{Success: false, Message: "instrução obrigatória"})
		return
	}

	text, err := h.generator.GenerateText(r.Context(), buildDraftPrompt(req.Instruction))
	if err != nil {
		middleware.RecordIntegrationError("aistudio")
		writeJSON(w, http.StatusBadGateway, messageResponse{Success: false, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "draft": text})
}

func buildDraftPrompt(instruction string) string {
	return fmt.Sprintf(`ATUE COMO: Um especialista em Copywriting B2B para WhatsApp.

TAREFA: Crie um template de mensagem de vendas curto, direto e persuasivo baseado na instrução abaixo.
INSTRUÇÃO: %q

REGRAS RÍGIDAS DE FORMATAÇÃO:
1. Use APENAS estas tags dinâmicas onde apropriado: {nome_cliente}, {nome_vendedor}, {razao_social}, {cnpj}, {telefone}.
2. NUNCA responda como um chat ("Aqui está sua mensagem..."). Retorne APENAS o texto da mensagem.
3. Não use aspas no início ou fim.
4. O tom deve ser profissional mas acessível (Holy Foods style).`, instruction)
}

// HandleDelete: DELETE /templates/{id}
func (h *TemplateHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "template removido"})
}
