package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lcabrel/medialib-go/internal/appctx"
	"github.com/lcabrel/medialib-go/internal/handler/api"
)

// WithMediaID parses the {id} route parameter into the request context. A
// numeric id addresses the internal key; anything else must be the media's
// public UUID.
func WithMediaID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, "id")
			if raw == "" {
				api.WriteError(w, http.StatusBadRequest, "ID is required", nil)
				return
			}

			ctx := r.Context()
			if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
				ctx = appctx.WithMediaID(ctx, id)
			} else if len(raw) == 36 {
				ctx = appctx.WithExternalID(ctx, raw)
			} else {
				api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("ID %q is not a valid media identifier", raw), nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
