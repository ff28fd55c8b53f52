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

type TeamHandler struct {
	teamRepo    usecase.SalespersonRepositoryInterface
	teamService *usecase.TeamService
}

func NewTeamHandler(teamRepo usecase.SalespersonRepositoryInterface, teamService *usecase.TeamService) *TeamHandler {
	return &TeamHandler{
		teamRepo:    teamRepo,
		teamService: teamService,
	}
}

// HandleList: GET /team
func (h *TeamHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	team, err := h.teamRepo.FindAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "team": team})
}

type createSalespersonRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
	Role     string `json:"role,omitempty"`
}

// HandleCreate: POST /team
func (h *TeamHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createSalespersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Success: false, Message: "JSON inválido"})
		return
	}

	role := entity.SalespersonRole(req.Role)
	if role == "" {
		role = entity.RoleSales
	}

	existing, err := h.teamRepo.FindByName(r.Context(), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusConflict, messageResponse{Success: false, Message: "já existe um vendedor com esse nome"})
		return
	}

	person, err := entity.NewSalesperson(req.Name, req.Email, req.PhotoURL, role)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Success: false, Message: err.Error()})
		return
	}

	if err := h.teamRepo.Create(r.Context(), person); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "salesperson": person})
}

// HandleRemove: DELETE /team/{name} — remoção lógica + transferência
// automática dos leads do removido para a conta da casa.
func (h *TeamHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	orphaned, err := h.teamService.RemoveSalesperson(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: fmt.Sprintf("%s removido; %d lead(s) aguardando redistribuição", name, orphaned),
	})
}

// HandleRedistribute: POST /team/redistribute
func (h *TeamHandler) HandleRedistribute(w http.ResponseWriter, r *http.Request) {
	count, err := h.teamService.RedistributePending(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordRedistribution(count)
	writeJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: fmt.Sprintf("%d lead(s) redistribuído(s)", count),
	})
}
