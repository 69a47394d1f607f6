package services

import "context"

// ctxKey is typed per value so the four annotations never collide.
type ctxKey int

const (
	runIDKey ctxKey = iota
	stageKey
	rootKey
	requestIDKey
)

func with(ctx context.Context, key ctxKey, value string) context.Context {
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func lookup(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, _ := ctx.Value(key).(string)
	return value, value != ""
}

// WithRunID annotates ctx with the organize run identifier. Blank IDs leave
// ctx unchanged, as do blank values for every helper below.
func WithRunID(ctx context.Context, id string) context.Context { return with(ctx, runIDKey, id) }

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) { return lookup(ctx, runIDKey) }

// WithStage annotates ctx with the pipeline phase name.
func WithStage(ctx context.Context, stage string) context.Context { return with(ctx, stageKey, stage) }

func StageFromContext(ctx context.Context) (string, bool) { return lookup(ctx, stageKey) }

// WithRoot annotates ctx with the directory being organized.
func WithRoot(ctx context.Context, root string) context.Context { return with(ctx, rootKey, root) }

func RootFromContext(ctx context.Context) (string, bool) { return lookup(ctx, rootKey) }

// WithRequestID annotates ctx with an API correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	return with(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) (string, bool) { return lookup(ctx, requestIDKey) }
