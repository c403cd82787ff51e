package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/HerosSMP/Heros-shop.de/internal/service"
)

// SiteTextHandler serves the editable site copy.
type SiteTextHandler struct {
	texts  *service.SiteTextService
	logger *slog.Logger
}

func NewSiteTextHandler(texts *service.SiteTextService, logger *slog.Logger) *SiteTextHandler {
	return &SiteTextHandler{texts: texts, logger: logger}
}

type updateTextRequest struct {
	Value string `json:"value"`
}

// textValueResponse is the resolved value for one key.
type textValueResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// HandleList returns all site texts with keys and descriptions — the admin
// "site copy" edit screen.
//
// HTTP: GET /api/texts
func (h *SiteTextHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	texts, err := h.texts.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, texts)
}

// HandleGetValue resolves a single key for the storefront. An unknown key
// answers 200 with the key itself as the value — missing copy degrades,
// it doesn't 404.
//
// HTTP: GET /api/texts/{key}
func (h *SiteTextHandler) HandleGetValue(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	value, err := h.texts.GetValue(r.Context(), key)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, textValueResponse{Key: key, Value: value})
}

// HandleUpdateValue overwrites the value of an existing key.
//
// HTTP: PUT /api/texts/{key} (admin)
// BODY: {"value": "..."}
func (h *SiteTextHandler) HandleUpdateValue(w http.ResponseWriter, r *http.Request) {
	var req updateTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid site text JSON", slog.String("error", err.Error()))
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	key := r.PathValue("key")
	if err := h.texts.UpdateValue(r.Context(), key, req.Value); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, textValueResponse{Key: key, Value: req.Value})
}
