package storage

import (
	"fmt"

	"github.com/lcabrel/medialib-go/internal/port"
	"github.com/minio/minio-go/v7"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return port.ErrObjectNotFound
	case "NoSuchBucket":
		return port.ErrDiskNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return port.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", port.ErrInternal, err)
	}
}
