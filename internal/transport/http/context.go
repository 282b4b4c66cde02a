package http

import (
	"context"

	"hklcompare/internal/services"
)

func contextWithComparison(ctx context.Context, c *services.Comparison) context.Context {
	return context.WithValue(ctx, comparisonKey{}, c)
}

func comparisonFromContext(ctx context.Context) *services.Comparison {
	c, _ := ctx.Value(comparisonKey{}).(*services.Comparison)
	return c
}
