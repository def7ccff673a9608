package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/lcabrel/medialib-go/internal/appctx"
	"github.com/lcabrel/medialib-go/internal/port"
	"github.com/lcabrel/medialib-go/internal/usecase/media"
	"github.com/lcabrel/medialib-go/internal/validation"
)

func DeleteMediaHandler(svc port.MediaDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := appctx.MediaIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "a numeric ID is required", nil)
			return
		}

		if err := svc.DeleteMedia(r.Context(), id); err != nil {
			if errors.Is(err, media.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Media not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "could not delete media", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Successfully deleted media #%d", id)
	}
}

type BulkDeleteRequest struct {
	IDs []uint64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

func BulkDeleteHandler(svc port.MediaDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BulkDeleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}
		if err := validation.ValidateStruct(req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}

		if err := svc.BulkDelete(r.Context(), req.IDs); err != nil {
			WriteError(w, http.StatusInternalServerError, "some media could not be deleted", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Successfully deleted %d medias", len(req.IDs))
	}
}
