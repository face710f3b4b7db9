package ports

import "context"

// HealthChecker reports the health of one backing dependency.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}
