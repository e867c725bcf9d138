package apitablev1

import (
	"context"

	"github.com/fulldump/stagedb/service"
)

const ContextServicerKey = "1c9f9a52-7d3c-11ef-9cb1-73b2d1a4f8a6"

func SetServicer(ctx context.Context, s service.Servicer) context.Context {
	return context.WithValue(ctx, ContextServicerKey, s)
}

func GetServicer(ctx context.Context) service.Servicer {
	return ctx.Value(ContextServicerKey).(service.Servicer)
}

const ContextCursorRegistryKey = "2b1de87e-7d3c-11ef-9cb1-4fd3a8c1b2e0"

func SetCursorRegistry(ctx context.Context, c *CursorRegistry) context.Context {
	return context.WithValue(ctx, ContextCursorRegistryKey, c)
}

func GetCursorRegistry(ctx context.Context) *CursorRegistry {
	return ctx.Value(ContextCursorRegistryKey).(*CursorRegistry)
}
