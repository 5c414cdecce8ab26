package insight

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"
)

// Resilient wraps a Generator with retry and timeout policies so a flaky
// endpoint degrades into one visible error instead of a hung UI.
type Resilient struct {
	inner Generator
}

func NewResilient(inner Generator) *Resilient {
	return &Resilient{inner: inner}
}

func (r *Resilient) ID() string {
	return r.inner.ID()
}

func (r *Resilient) Generate(ctx context.Context, req Request) (*Response, error) {
	re := retry.New[*Response](retry.Config{
		MaxAttempts:   2,
		InitialDelay:  time.Second,
		BackoffPolicy: retry.BackoffExponential,
	})

	to := timeout.New[*Response](timeout.Config{
		DefaultTimeout: 60 * time.Second,
	})

	return to.Execute(ctx, 60*time.Second, func(ctx context.Context) (*Response, error) {
		return re.Do(ctx, func(ctx context.Context) (*Response, error) {
			return r.inner.Generate(ctx, req)
		})
	})
}
