package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/lcabrel/medialib-go/internal/appctx"
	"github.com/lcabrel/medialib-go/internal/port"
	"github.com/lcabrel/medialib-go/internal/usecase/media"
)

// UpdateMediaRequest carries partial metadata changes; absent fields are left
// untouched, and a property with a null value is removed.
type UpdateMediaRequest struct {
	Name       *string        `json:"name"`
	Collection *string        `json:"collection"`
	Order      *uint          `json:"order"`
	Properties map[string]any `json:"properties"`
}

func UpdateMediaHandler(svc port.MediaUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := appctx.MediaIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "a numeric ID is required", nil)
			return
		}

		var req UpdateMediaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}

		m, err := svc.UpdateMedia(r.Context(), port.UpdateMediaInput{
			ID:         id,
			Name:       req.Name,
			Collection: req.Collection,
			Order:      req.Order,
			Properties: req.Properties,
		})
		if err != nil {
			if errors.Is(err, media.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Media not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "could not update media", err)
			return
		}

		RespondJSON(w, http.StatusOK, m)
		log.Printf("✅  Successfully updated media #%d", id)
	}
}
