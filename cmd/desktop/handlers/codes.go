package handlers

import (
	"net/http"

	"github.com/retailqa/scanbench/backend/internal/encode"
	"github.com/retailqa/scanbench/backend/internal/errors"
	"github.com/retailqa/scanbench/backend/internal/models"
	"github.com/retailqa/scanbench/backend/internal/mutate"
)

// CodesHandler exposes one-off encode and corruption operations that do not
// touch the catalog. The desktop UI uses these for its preview pane.
type CodesHandler struct{}

// NewCodesHandler creates a new CodesHandler.
func NewCodesHandler() *CodesHandler {
	return &CodesHandler{}
}

// DataMatrix handles POST /api/codes/datamatrix
func (h *CodesHandler) DataMatrix(w http.ResponseWriter, r *http.Request) {
	var request struct {
		GTIN       string `json:"gtin"`
		TemplateID string `json:"template_id"`
	}
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	code, err := encode.DataMatrix(request.GTIN, request.TemplateID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"payload":  code.Payload,
		"template": code.TemplateName,
		"format":   models.FormatDataMatrix,
	})
}

// Weight handles POST /api/codes/weight
func (h *CodesHandler) Weight(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Prefix      string `json:"prefix"`
		PLU         string `json:"plu"`
		WeightGrams int    `json:"weight_grams"`
		Discount    int    `json:"discount"`
	}
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	code, err := encode.WeightBarcode(request.Prefix, request.PLU, request.WeightGrams, request.Discount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"payload": code.Payload,
		"format":  code.Format,
	})
}

// GS1 handles POST /api/codes/gs1
func (h *CodesHandler) GS1(w http.ResponseWriter, r *http.Request) {
	var request struct {
		GoodsID     string  `json:"goods_id"`
		Type        string  `json:"type"`
		Quantity    float64 `json:"quantity"`
		WeightGrams int     `json:"weight_grams"`
		Discount    int     `json:"discount"`
		UniqueID    string  `json:"unique_id"`
		DecimalPos  *int    `json:"decimal_pos"`
	}
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	params := encode.GS1Params{
		GoodsID:     request.GoodsID,
		Type:        models.ProductType(request.Type),
		Quantity:    request.Quantity,
		WeightGrams: request.WeightGrams,
		Discount:    request.Discount,
		UniqueID:    request.UniqueID,
		DecimalPos:  models.DecimalPosUnset,
	}
	if request.DecimalPos != nil {
		params.DecimalPos = *request.DecimalPos
	}

	payload, err := encode.GS1(params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"payload": payload,
		"format":  models.FormatDataMatrix,
	})
}

// Simple handles POST /api/codes/simple
func (h *CodesHandler) Simple(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Value  string `json:"value"`
		Format string `json:"format"`
	}
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}
	if request.Value == "" {
		writeError(w, errors.New(errors.ErrValidation, "value is required"))
		return
	}

	code := encode.Simple(request.Value, models.Format(request.Format))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"payload": code.Payload,
		"format":  code.Format,
	})
}

// FieldConfig handles POST /api/codes/field
func (h *CodesHandler) FieldConfig(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ConfigID      string            `json:"config_id"`
		Values        map[string]string `json:"values"`
		SimulateError bool              `json:"simulate_error"`
	}
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	payload, ok, err := encode.FromFieldConfig(request.ConfigID, request.Values, request.SimulateError)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"payload": payload,
		"ok":      ok,
	})
}

// Corrupt handles POST /api/codes/corrupt
func (h *CodesHandler) Corrupt(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Payload string `json:"payload"`
		Method  string `json:"method"`
	}
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	corrupted, err := mutate.Corrupt(request.Payload, mutate.Method(request.Method))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"payload": corrupted,
	})
}

// Extract handles POST /api/codes/extract
func (h *CodesHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Payload string `json:"payload"`
	}
	if err := decodeBody(r, &request); err != nil {
		writeError(w, err)
		return
	}

	ean13, ok := encode.ExtractGTINAsEAN13(request.Payload)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ean13": ean13,
		"ok":    ok,
	})
}

// Templates handles GET /api/codes/templates
func (h *CodesHandler) Templates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"templates": encode.TemplateIDs(),
		"default":   encode.DefaultTemplateID,
	})
}

// FieldConfigs handles GET /api/codes/fieldconfigs
func (h *CodesHandler) FieldConfigs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"configs": encode.FieldConfigs(),
	})
}

// MutationMethods handles GET /api/codes/mutations
func (h *CodesHandler) MutationMethods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"methods": mutate.Methods(),
	})
}
