package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/port"
)

func ownerFromRequest(r *http.Request) (string, uint64, bool) {
	ownerType := chi.URLParam(r, "ownerType")
	ownerID, err := strconv.ParseUint(chi.URLParam(r, "ownerID"), 10, 64)
	if ownerType == "" || err != nil {
		return "", 0, false
	}
	return ownerType, ownerID, true
}

func ListMediaHandler(svc port.MediaLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerType, ownerID, ok := ownerFromRequest(r)
		if !ok {
			WriteError(w, http.StatusBadRequest, "owner type and numeric owner id are required", nil)
			return
		}
		collection := r.URL.Query().Get("collection")

		items, err := svc.ListByOwner(r.Context(), ownerType, ownerID, collection)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "could not list media", err)
			return
		}
		if items == nil {
			items = []model.Media{}
		}

		RespondJSON(w, http.StatusOK, items)
		log.Printf("✅  Listed %d medias for %s #%d", len(items), ownerType, ownerID)
	}
}

func CollectionsHandler(svc port.MediaLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerType, ownerID, ok := ownerFromRequest(r)
		if !ok {
			WriteError(w, http.StatusBadRequest, "owner type and numeric owner id are required", nil)
			return
		}

		summaries, err := svc.Collections(r.Context(), ownerType, ownerID)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "could not list collections", err)
			return
		}
		if summaries == nil {
			summaries = []port.CollectionSummary{}
		}

		RespondJSON(w, http.StatusOK, summaries)
	}
}

func SearchMediaHandler(svc port.MediaLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term := r.URL.Query().Get("q")
		if term == "" {
			WriteError(w, http.StatusBadRequest, "a 'q' query parameter is required", nil)
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		items, err := svc.Search(r.Context(), term, limit)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "could not search media", err)
			return
		}
		if items == nil {
			items = []model.Media{}
		}

		RespondJSON(w, http.StatusOK, items)
	}
}
