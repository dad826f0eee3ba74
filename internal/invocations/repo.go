package invocations

import "context"

// DefaultListLimit and MaxListLimit bound ListRecent.
const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

// Repo persists invocation audit records.
type Repo interface {
	Create(ctx context.Context, inv Invocation) error
	ListRecent(ctx context.Context, limit int) ([]Invocation, error)
	CountByFeature(ctx context.Context) (map[string]int, error)
}

// ClampLimit normalizes a requested list size.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
