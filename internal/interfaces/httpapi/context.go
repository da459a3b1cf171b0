package httpapi

import "context"

type contextKey string

const adminActorContextKey contextKey = "admin_actor"

func withAdminActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, adminActorContextKey, actor)
}

func adminActorFromContext(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(adminActorContextKey).(string)
	return actor, ok && actor != ""
}
