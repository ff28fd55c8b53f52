package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/usecase"
)

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	// Erro de domínio é rejeição do usuário (422); o resto é 500
	if usecase.IsDomainError(err) {
		writeJSON(w, http.StatusUnprocessableEntity, messageResponse{Success: false, Message: err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, messageResponse{Success: false, Message: err.Error()})
}
