package api

import (
	"log"
	"net/http"

	"github.com/lcabrel/medialib-go/internal/appctx"
	"github.com/lcabrel/medialib-go/internal/port"
)

// RegenerateHandler schedules a fresh conversion run for the media. The work
// itself happens on the queue; the request only enqueues it.
func RegenerateHandler(dispatcher port.TaskDispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := appctx.MediaIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "a numeric ID is required", nil)
			return
		}

		if err := dispatcher.EnqueueGenerateConversions(r.Context(), id); err != nil {
			WriteError(w, http.StatusInternalServerError, "could not schedule regeneration", err)
			return
		}

		w.WriteHeader(http.StatusAccepted)
		log.Printf("✅  Scheduled conversion regeneration for media #%d", id)
	}
}
