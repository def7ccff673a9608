package task

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"github.com/lcabrel/medialib-go/internal/model"
	"github.com/lcabrel/medialib-go/internal/port"
)

type Dispatcher struct {
	client *asynq.Client
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password string) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{client: c}
}

func (d *Dispatcher) EnqueueGenerateConversions(ctx context.Context, mediaID uint64) error {
	t, err := NewGenerateConversionsTask(mediaID)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t, asynq.MaxRetry(3), asynq.Timeout(5*time.Minute)); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) EnqueueRemoveFiles(ctx context.Context, snapshot model.FileSnapshot) error {
	t, err := NewRemoveFilesTask(snapshot)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t, asynq.MaxRetry(3), asynq.Timeout(60*time.Second)); err != nil {
		return err
	}
	return nil
}

func (d *Dispatcher) Close() error {
	return d.client.Close()
}
