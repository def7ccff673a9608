package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/lcabrel/medialib-go/internal/model"
)

const TypeGenerateConversions = "media:generate_conversions"

type GenerateConversionsPayload struct {
	MediaID uint64 `json:"media_id"`
}

// NewGenerateConversionsTask creates an Asynq task that runs every registered
// conversion for the media.
func NewGenerateConversionsTask(mediaID uint64) (*asynq.Task, error) {
	p := GenerateConversionsPayload{MediaID: mediaID}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal generate-conversions payload: %w", err)
	}
	return asynq.NewTask(TypeGenerateConversions, data), nil
}

// ParseGenerateConversionsPayload parses the task payload to GenerateConversionsPayload.
func ParseGenerateConversionsPayload(t *asynq.Task) (GenerateConversionsPayload, error) {
	var p GenerateConversionsPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return GenerateConversionsPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}

const TypeRemoveFiles = "media:remove_files"

// RemoveFilesPayload carries the full snapshot so files can be located after
// the database row is gone.
type RemoveFilesPayload struct {
	Snapshot model.FileSnapshot `json:"snapshot"`
}

// NewRemoveFilesTask creates an Asynq task that deletes the snapshot's stored
// files.
func NewRemoveFilesTask(snapshot model.FileSnapshot) (*asynq.Task, error) {
	p := RemoveFilesPayload{Snapshot: snapshot}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal remove-files payload: %w", err)
	}
	return asynq.NewTask(TypeRemoveFiles, data), nil
}

// ParseRemoveFilesPayload parses the task payload to RemoveFilesPayload.
func ParseRemoveFilesPayload(t *asynq.Task) (RemoveFilesPayload, error) {
	var p RemoveFilesPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return RemoveFilesPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
