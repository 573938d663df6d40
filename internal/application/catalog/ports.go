package catalog

import "context"

// Locker bloqueos por designación y por artículo (ver consistency.Guard).
// Orden de adquisición: designación antes que artículo.
type Locker interface {
	WithDesignationLock(ctx context.Context, designation string, fn func(ctx context.Context) error) error
	WithArticleLock(ctx context.Context, articleID string, fn func(ctx context.Context) error) error
}
