package handlers

import (
	"net/http"
	"strconv"

	"github.com/retailqa/scanbench/backend/internal/catalog"
	"github.com/retailqa/scanbench/backend/internal/models"
	"github.com/retailqa/scanbench/backend/internal/rotation"
)

// RotationHandler drives the playback state machine.
type RotationHandler struct {
	engine *rotation.Engine
	repo   *catalog.Repository
}

// NewRotationHandler creates a new RotationHandler.
func NewRotationHandler(engine *rotation.Engine, repo *catalog.Repository) *RotationHandler {
	return &RotationHandler{engine: engine, repo: repo}
}

// Start handles POST /api/rotation/start
func (h *RotationHandler) Start(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FolderID string `json:"folder_id"`
	}
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	items, err := h.repo.ActiveItems(models.UUID(request.FolderID))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.engine.Start(items); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.engine.Status())
}

// Stop handles POST /api/rotation/stop
func (h *RotationHandler) Stop(w http.ResponseWriter, r *http.Request) {
	h.engine.Stop()
	writeJSON(w, http.StatusOK, h.engine.Status())
}

// Pause handles POST /api/rotation/pause
func (h *RotationHandler) Pause(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Pause(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.engine.Status())
}

// Resume handles POST /api/rotation/resume
func (h *RotationHandler) Resume(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Resume(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.engine.Status())
}

// Next handles POST /api/rotation/next
func (h *RotationHandler) Next(w http.ResponseWriter, r *http.Request) {
	entry, err := h.engine.Next()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Prev handles POST /api/rotation/prev
func (h *RotationHandler) Prev(w http.ResponseWriter, r *http.Request) {
	entry, err := h.engine.Prev()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Demo handles POST /api/rotation/demo
func (h *RotationHandler) Demo(w http.ResponseWriter, r *http.Request) {
	entry, err := h.engine.ShowDemo()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// SetInterval handles PUT /api/rotation/interval. Unparseable or
// non-positive values leave the interval untouched, matching the engine's
// fail-silent contract; the current status is returned either way.
func (h *RotationHandler) SetInterval(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Seconds string `json:"seconds"`
	}
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	if seconds, err := strconv.ParseFloat(request.Seconds, 64); err == nil {
		h.engine.SetInterval(seconds)
	}
	writeJSON(w, http.StatusOK, h.engine.Status())
}

// SetComposite handles PUT /api/rotation/composite
func (h *RotationHandler) SetComposite(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Mode string `json:"mode"`
	}
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	if err := h.engine.SetComposite(rotation.CompositeMode(request.Mode)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.engine.Status())
}

// Status handles GET /api/rotation/status
func (h *RotationHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Status())
}

// Modes handles GET /api/rotation/modes
func (h *RotationHandler) Modes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"modes": rotation.CompositeModes(),
	})
}
