package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/entity"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/usecase"
)

type LeadHandler struct {
	leadRepo    usecase.LeadRepositoryInterface
	leadService *usecase.LeadService
}

func NewLeadHandler(leadRepo usecase.LeadRepositoryInterface, leadService *usecase.LeadService) *LeadHandler {
	return &LeadHandler{
		leadRepo:    leadRepo,
		leadService: leadService,
	}
}

// HandleList: GET /leads?status=&salesperson=&from=&to=&dedup=
// dedup=true aplica a projeção canônica sem duplicatas.
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leadRepo.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	leads = filterLeads(leads, q.Get("status"), q.Get("salesperson"), q.Get("from"), q.Get("to"))

	if q.Get("dedup") == "true" {
		leads = usecase.ProjectDeduplicated(leads)
	}

	// Mais recentes primeiro, como o painel exibe
	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].DataSubmissao.After(leads[j].DataSubmissao)
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"count":   len(leads),
		"leads":   leads,
	})
}

func filterLeads(leads []entity.Lead, status, salesperson, from, to string) []entity.Lead {
	var fromT, toT time.Time
	if t, err := time.Parse("2006-01-02", from); err == nil {
		fromT = t
	}
	if t, err := time.Parse("2006-01-02", to); err == nil {
		// Fim do dia, como o filtro do painel
		toT = t.Add(24*time.Hour - time.Second)
	}

	filtered := leads[:0:0]
	for _, l := range leads {
		if status != "" && string(l.StatusCNPJ) != status {
			continue
		}
		if salesperson != "" && l.Salesperson != salesperson {
			continue
		}
		if !fromT.IsZero() && l.DataSubmissao.Before(fromT) {
			continue
		}
		if !toT.IsZero() && l.DataSubmissao.After(toT) {
			continue
		}
		filtered = append(filtered, l)
	}
	return filtered
}

// HandleSetDealStatus: PATCH /leads/{id}/deal
func (h *LeadHandler) HandleSetDealStatus(w http.ResponseWriter, r *http.Request) {
	var input usecase.SetDealStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Success: false, Message: "JSON inválido"})
		return
	}

	lead, err := h.leadService.SetDealStatus(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "lead": lead})
}

// HandleEditContact: PUT /leads/{id}/contact
func (h *LeadHandler) HandleEditContact(w http.ResponseWriter, r *http.Request) {
	var input usecase.EditContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Success: false, Message: "JSON inválido"})
		return
	}

	lead, err := h.leadService.EditContactFields(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "lead": lead})
}

// HandleAddNote: POST /leads/{id}/notes
func (h *LeadHandler) HandleAddNote(w http.ResponseWriter, r *http.Request) {
	var input usecase.AddNoteInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Success: false, Message: "JSON inválido"})
		return
	}

	lead, err := h.leadService.AddNote(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "lead": lead})
}

// HandleRecordMessage: POST /leads/{id}/messages
func (h *LeadHandler) HandleRecordMessage(w http.ResponseWriter, r *http.Request) {
	var input usecase.RecordMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Success: false, Message: "JSON inválido"})
		return
	}

	lead, err := h.leadService.RecordMessageSent(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "lead": lead})
}
