package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/lcabrel/medialib-go/internal/appctx"
	"github.com/lcabrel/medialib-go/internal/port"
	"github.com/lcabrel/medialib-go/internal/usecase/media"
	"github.com/lcabrel/medialib-go/internal/uuid"
)

func GetMediaHandler(svc port.MediaGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := resolveMedia(r, svc)
		if err != nil {
			if errors.Is(err, media.ErrNotFound) {
				WriteError(w, http.StatusNotFound, "Media not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not get media details", err)
			return
		}

		w.Header().Set("Cache-Control", "public, max-age=300")
		RespondJSON(w, http.StatusOK, out)
		log.Printf("✅  Successfully returned details for media #%d", out.Media.ID)
	}
}

func resolveMedia(r *http.Request, svc port.MediaGetter) (port.GetMediaOutput, error) {
	ctx := r.Context()

	if id, ok := appctx.MediaIDFromContext(ctx); ok {
		return svc.GetMedia(ctx, id)
	}
	if raw, ok := appctx.ExternalIDFromContext(ctx); ok {
		extID, err := uuid.Parse(raw)
		if err != nil {
			return port.GetMediaOutput{}, media.ErrNotFound
		}
		return svc.GetMediaByExternalID(ctx, extID)
	}
	return port.GetMediaOutput{}, errors.New("no media identifier in request context")
}
