package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/port"
	"github.com/lcabrel/medialib-go/internal/usecase/media"
	"github.com/lcabrel/medialib-go/internal/validation"
)

// AddMediaRequest is the JSON body of a URL ingest. Multipart uploads carry
// the same fields as form values instead.
type AddMediaRequest struct {
	URL        string         `json:"url" validate:"required,url"`
	OwnerType  string         `json:"owner_type" validate:"required"`
	OwnerID    uint64         `json:"owner_id" validate:"required"`
	Collection string         `json:"collection"`
	Name       string         `json:"name"`
	Disk       string         `json:"disk"`
	Properties map[string]any `json:"properties"`
}

func AddMediaHandler(svc port.MediaAdder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in port.AddMediaInput
		var err error

		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			in, err = parseMultipart(r)
		} else {
			in, err = parseURLIngest(r)
		}
		if err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}

		m, err := svc.AddMedia(r.Context(), in)
		if err != nil {
			status := ingestErrorStatus(err)
			WriteError(w, status, "could not add media", err)
			return
		}

		RespondJSON(w, http.StatusCreated, m)
		log.Printf("✅  Successfully added media #%d (%s)", m.ID, m.FileName)
	}
}

func parseMultipart(r *http.Request) (port.AddMediaInput, error) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		return port.AddMediaInput{}, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return port.AddMediaInput{}, errors.New("a 'file' part is required")
	}

	ownerID, err := strconv.ParseUint(r.FormValue("owner_id"), 10, 64)
	if err != nil {
		return port.AddMediaInput{}, errors.New("'owner_id' must be a positive integer")
	}
	ownerType := r.FormValue("owner_type")
	if ownerType == "" {
		return port.AddMediaInput{}, errors.New("'owner_type' is required")
	}

	var props model.Properties
	if raw := r.FormValue("properties"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &props); err != nil {
			return port.AddMediaInput{}, errors.New("'properties' must be a JSON object")
		}
	}

	return port.AddMediaInput{
		Source:     port.UploadSource(file, header.Filename, header.Header.Get("Content-Type")),
		OwnerType:  ownerType,
		OwnerID:    ownerID,
		Collection: r.FormValue("collection"),
		Name:       r.FormValue("name"),
		Disk:       r.FormValue("disk"),
		Properties: props,
	}, nil
}

func parseURLIngest(r *http.Request) (port.AddMediaInput, error) {
	var req AddMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return port.AddMediaInput{}, err
	}
	if err := validation.ValidateStruct(req); err != nil {
		return port.AddMediaInput{}, err
	}

	return port.AddMediaInput{
		Source:     port.URLSource(req.URL),
		OwnerType:  req.OwnerType,
		OwnerID:    req.OwnerID,
		Collection: req.Collection,
		Name:       req.Name,
		Disk:       req.Disk,
		Properties: req.Properties,
	}, nil
}

func ingestErrorStatus(err error) int {
	switch {
	case errors.Is(err, media.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, media.ErrMimeTypeNotAllowed):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, media.ErrEmptyFile),
		errors.Is(err, media.ErrInvalidSource),
		errors.Is(err, media.ErrDownloadFailed):
		return http.StatusBadRequest
	case errors.Is(err, media.ErrDuplicateContent):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
