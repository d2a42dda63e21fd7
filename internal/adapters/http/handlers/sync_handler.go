package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/go-interactor/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-interactor/internal/ports"
)

// SyncHandler schedules feed imports and reports their status.
type SyncHandler struct {
	service ports.ArticleService
}

// NewSyncHandler creates a new SyncHandler with the given service port.
func NewSyncHandler(service ports.ArticleService) *SyncHandler {
	return &SyncHandler{service: service}
}

// StartSync handles POST /api/v1/sync. The import runs in the background;
// the response carries the scheduled task ID.
func (h *SyncHandler) StartSync(w http.ResponseWriter, r *http.Request) {
	taskID, err := h.service.StartSync(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/sync")
	writeJSON(w, r, http.StatusAccepted, dto.SyncAcceptedResponse{
		TaskID: taskID,
		Status: string(ports.SyncRunning),
	})
}

// SyncStatus handles GET /api/v1/sync.
func (h *SyncHandler) SyncStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.ToSyncStatusResponse(h.service.LastSync(r.Context())))
}
