package media

import "errors"

var (
	ErrNotFound           = errors.New("media: not found")
	ErrFileTooLarge       = errors.New("media: file too large")
	ErrEmptyFile          = errors.New("media: file is empty")
	ErrMimeTypeNotAllowed = errors.New("media: mime type not allowed")
	ErrInvalidSource      = errors.New("media: invalid source")
	ErrDownloadFailed     = errors.New("media: download failed")
	ErrDuplicateContent   = errors.New("media: duplicate content")
	ErrInvalidOrder       = errors.New("media: invalid order sequence")
)
