package http

import (
	"context"

	"hklcompare/internal/services"
)

// ComparisonServiceInterface defines the comparison operations the handlers need
type ComparisonServiceInterface interface {
	DefaultRequest() services.CompareRequest
	Compare(ctx context.Context, req services.CompareRequest) (*services.Comparison, error)
	Get(id string) (*services.Comparison, error)
	List() []*services.Comparison
	Delete(id string) error
}
