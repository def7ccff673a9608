package media

import (
	"context"
	"errors"
	"log"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/pathgen"
	"github.com/lcabrel/medialib-go/internal/port"
)

type removeFilesSrv struct {
	strg  port.Storage
	paths *pathgen.Generator
}

// compile-time check: *removeFilesSrv must satisfy port.FileRemover
var _ port.FileRemover = (*removeFilesSrv)(nil)

// NewFileRemover constructs the blob cleanup job service.
func NewFileRemover(strg port.Storage, paths *pathgen.Generator) port.FileRemover {
	return &removeFilesSrv{strg: strg, paths: paths}
}

// RemoveFiles deletes the snapshot's blobs best-effort: the original, every
// conversion ever attempted, then whatever is left under the media's
// directory. A missing blob is success; every other failure is logged and the
// remaining deletes still run.
func (s *removeFilesSrv) RemoveFiles(ctx context.Context, snapshot model.FileSnapshot) error {
	m := snapshot.Media()

	keys := []string{s.paths.Path(m, "")}
	for name := range snapshot.GeneratedConversions {
		keys = append(keys, s.paths.Path(m, name))
	}

	var failures int
	for _, key := range keys {
		if !s.remove(ctx, snapshot.Disk, key) {
			failures++
		}
	}

	// Sweep strays (responsive images, conversions from retired definitions).
	dir := s.paths.Dir(m) + "/"
	leftovers, err := s.strg.ListPrefix(ctx, snapshot.Disk, dir)
	if err != nil {
		log.Printf("failed listing leftovers under %q: %v", dir, err)
		failures++
	} else {
		for _, key := range leftovers {
			if !s.remove(ctx, snapshot.Disk, key) {
				failures++
			}
		}
	}

	if failures > 0 {
		// Let the job runner retry; deletes already done are idempotent.
		return errors.New("some files could not be removed")
	}
	return nil
}

func (s *removeFilesSrv) remove(ctx context.Context, disk, key string) bool {
	err := s.strg.RemoveFile(ctx, disk, key)
	if err == nil || errors.Is(err, port.ErrObjectNotFound) {
		return true
	}
	log.Printf("failed removing file %q from disk %q: %v", key, disk, err)
	return false
}
