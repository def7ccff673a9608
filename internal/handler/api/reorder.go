package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lcabrel/medialib-go/internal/port"
	"github.com/lcabrel/medialib-go/internal/usecase/media"
	"github.com/lcabrel/medialib-go/internal/validation"
)

type ReorderRequest struct {
	OrderedIDs []uint64 `json:"ordered_ids" validate:"required,min=1,dive,gt=0"`
}

func ReorderHandler(svc port.CollectionReorderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerType, ownerID, ok := ownerFromRequest(r)
		if !ok {
			WriteError(w, http.StatusBadRequest, "owner type and numeric owner id are required", nil)
			return
		}
		collection := chi.URLParam(r, "collection")
		if collection == "" {
			WriteError(w, http.StatusBadRequest, "a collection is required", nil)
			return
		}

		var req ReorderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}
		if err := validation.ValidateStruct(req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}

		err := svc.Reorder(r.Context(), port.ReorderInput{
			OwnerType:  ownerType,
			OwnerID:    ownerID,
			Collection: collection,
			OrderedIDs: req.OrderedIDs,
		})
		if err != nil {
			if errors.Is(err, media.ErrInvalidOrder) {
				WriteError(w, http.StatusUnprocessableEntity, "invalid order sequence", err)
				return
			}
			WriteError(w, http.StatusInternalServerError, "could not reorder collection", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		log.Printf("✅  Successfully reordered collection %q of %s #%d", collection, ownerType, ownerID)
	}
}
