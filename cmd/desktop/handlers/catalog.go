package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/retailqa/scanbench/backend/internal/catalog"
	"github.com/retailqa/scanbench/backend/internal/errors"
	"github.com/retailqa/scanbench/backend/internal/models"
	"github.com/retailqa/scanbench/backend/internal/rotation"
)

// CatalogHandler manages folders and catalog items.
type CatalogHandler struct {
	repo   *catalog.Repository
	engine *rotation.Engine
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(repo *catalog.Repository, engine *rotation.Engine) *CatalogHandler {
	return &CatalogHandler{repo: repo, engine: engine}
}

// CreateFolder handles POST /api/folders
func (h *CatalogHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}
	request.Name = strings.TrimSpace(request.Name)
	if request.Name == "" {
		writeError(w, errors.New(errors.ErrValidation, "folder name is required"))
		return
	}

	folder := &models.Folder{Name: request.Name}
	if err := h.repo.CreateFolder(folder); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

// ListFolders handles GET /api/folders
func (h *CatalogHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.repo.ListFolders()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"folders": folders,
	})
}

// GetFolder handles GET /api/folders/{id}
func (h *CatalogHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	id := models.UUID(mux.Vars(r)["id"])
	folder, err := h.repo.GetFolder(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

// DeleteFolder handles DELETE /api/folders/{id}
func (h *CatalogHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id := models.UUID(mux.Vars(r)["id"])
	if err := h.repo.DeleteFolder(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// itemRequest is the create-item body. The stored payload is always derived
// from these fields server-side, never accepted from the client.
type itemRequest struct {
	FolderID    string  `json:"folder_id"`
	Kind        string  `json:"kind"`
	SourceValue string  `json:"source_value"`
	TemplateID  string  `json:"template_id"`
	Prefix      string  `json:"prefix"`
	WeightGrams int     `json:"weight_grams"`
	ProductType string  `json:"product_type"`
	Quantity    float64 `json:"quantity"`
	Discount    int     `json:"discount"`
	UniqueID    string  `json:"unique_id"`
	DecimalPos  *int    `json:"decimal_pos"`
	Active      *bool   `json:"active"`
}

// CreateItem handles POST /api/items
func (h *CatalogHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var request itemRequest
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	if _, err := h.repo.GetFolder(models.UUID(request.FolderID)); err != nil {
		writeError(w, err)
		return
	}

	item := models.Item{
		FolderID:    models.UUID(request.FolderID),
		Kind:        models.Kind(request.Kind),
		SourceValue: strings.TrimSpace(request.SourceValue),
		TemplateID:  request.TemplateID,
		Prefix:      request.Prefix,
		WeightGrams: request.WeightGrams,
		ProductType: models.ProductType(request.ProductType),
		Quantity:    request.Quantity,
		Discount:    request.Discount,
		UniqueID:    request.UniqueID,
		DecimalPos:  models.DecimalPosUnset,
		Active:      true,
	}
	if request.DecimalPos != nil {
		item.DecimalPos = *request.DecimalPos
	}
	if request.Active != nil {
		item.Active = *request.Active
	}

	// Encode once at creation so the catalog never holds an item that
	// cannot be displayed.
	code, err := h.engine.Encode(item)
	if err != nil {
		writeError(w, err)
		return
	}
	item.Payload = code.Payload

	if err := h.repo.CreateItem(&item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// ListItems handles GET /api/folders/{id}/items
func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	folderID := models.UUID(mux.Vars(r)["id"])
	items, err := h.repo.ListItems(folderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
	})
}

// GetItem handles GET /api/items/{id}
func (h *CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id := models.UUID(mux.Vars(r)["id"])
	item, err := h.repo.GetItem(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// SetItemActive handles PUT /api/items/{id}/active
func (h *CatalogHandler) SetItemActive(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Active bool `json:"active"`
	}
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	id := models.UUID(mux.Vars(r)["id"])
	if err := h.repo.SetItemActive(id, request.Active); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":     id,
		"active": request.Active,
	})
}

// DeleteItem handles DELETE /api/items/{id}
func (h *CatalogHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := models.UUID(mux.Vars(r)["id"])
	if err := h.repo.DeleteItem(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// ListActivity handles GET /api/activity
func (h *CatalogHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	entries, err := h.repo.ListActivity(limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
