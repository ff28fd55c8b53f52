package handlers

import (
	"net/http"

	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/infra/http/middleware"
	"github.com/leandromenechelle/CRM-B2B-HolyFoods/internal/usecase"
)

type SyncHandler struct {
	syncService *usecase.SyncService
}

func NewSyncHandler(syncService *usecase.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// HandleRun: POST /sync — disparo manual. Passa pelo mesmo RunSync do
// timer; se já houver ciclo em voo, volta 409 sem tocar em nada.
func (h *SyncHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	outcome := h.syncService.RunSync(r.Context())
	middleware.RecordSyncCycle(outcome.Ok)

	if !outcome.Ok {
		status := http.StatusBadGateway
		if outcome.Message == "sync já em andamento" {
			status = http.StatusConflict
		}
		writeJSON(w, status, outcome)
		return
	}

	middleware.RecordLeadsSynced(outcome.NewCount, outcome.Merged)
	writeJSON(w, http.StatusOK, outcome)
}

// HandleStatus: GET /sync/status
func (h *SyncHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"state":   h.syncService.State(),
	})
}
