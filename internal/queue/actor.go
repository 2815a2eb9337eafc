package queue

import "context"

type actorKey struct{}

const systemActor = "sistema"

// WithActor - Attach the operator identity recorded in history entries.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFrom(ctx context.Context) string {
	if a, ok := ctx.Value(actorKey{}).(string); ok && a != "" {
		return a
	}
	return systemActor
}
