package port

import "errors"

var (
	ErrObjectNotFound     = errors.New("storage: object not found")
	ErrDiskNotFound       = errors.New("storage: disk not found")
	ErrUnauthorized       = errors.New("storage: unauthorized")
	ErrPresignUnsupported = errors.New("storage: presigned URLs not supported")
	ErrInternal           = errors.New("storage: internal error")

	// ErrUnsupportedMediaType is returned by the conversion engine when no
	// registered generator handles the media's mime type. Permanent; callers
	// must not retry.
	ErrUnsupportedMediaType = errors.New("converter: unsupported media type")
)
