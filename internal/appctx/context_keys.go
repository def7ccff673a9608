package appctx

import "context"

type ctxKey string

const (
	mediaIDKey    ctxKey = "mediaID"
	operationKey  ctxKey = "operation"
	externalIDKey ctxKey = "externalID"
)

// WithMediaID returns a context carrying the internal media id, picked up by the logger.
func WithMediaID(ctx context.Context, id uint64) context.Context {
	return context.WithValue(ctx, mediaIDKey, id)
}

func MediaIDFromContext(ctx context.Context) (uint64, bool) {
	id, ok := ctx.Value(mediaIDKey).(uint64)
	return id, ok
}

// WithOperation tags the context with the name of the running operation
// (e.g. "add_media", "generate_conversions").
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey, op)
}

func OperationFromContext(ctx context.Context) (string, bool) {
	op, ok := ctx.Value(operationKey).(string)
	return op, ok
}

// WithExternalID carries the public identifier resolved by the HTTP layer.
func WithExternalID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, externalIDKey, id)
}

func ExternalIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(externalIDKey).(string)
	return id, ok
}
