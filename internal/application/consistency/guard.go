package consistency

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
)

// Guard serializa las operaciones que leen y luego escriben sobre la misma designación, el mismo artículo
// o el mismo email de externo. Orden global de adquisición: designación antes que artículo.
// Los bloqueos de email nunca se combinan con los otros.
type Guard struct {
	designations *keyedLock
	articles     *keyedLock
	emails       *keyedLock
}

// NewGuard construye el guard. timeout acota la espera por un bloqueo (0 = esperar hasta que el contexto termine).
func NewGuard(timeout time.Duration) *Guard {
	return &Guard{
		designations: newKeyedLock(timeout),
		articles:     newKeyedLock(timeout),
		emails:       newKeyedLock(timeout),
	}
}

// WithDesignationLock ejecuta fn con acceso exclusivo a la designación (clave sin mayúsculas).
func (g *Guard) WithDesignationLock(ctx context.Context, designation string, fn func(ctx context.Context) error) error {
	return g.designations.with(ctx, entity.DesignationKey(designation), fn)
}

// WithArticleLock ejecuta fn con acceso exclusivo al artículo.
func (g *Guard) WithArticleLock(ctx context.Context, articleID string, fn func(ctx context.Context) error) error {
	return g.articles.with(ctx, articleID, fn)
}

// WithEmailLock ejecuta fn con acceso exclusivo al email (clave en minúsculas).
func (g *Guard) WithEmailLock(ctx context.Context, email string, fn func(ctx context.Context) error) error {
	return g.emails.with(ctx, entity.EmailKey(email), fn)
}

type lockEntry struct {
	sem  *semaphore.Weighted
	refs int
}

// keyedLock un semáforo de peso 1 por clave; la entrada se elimina cuando nadie la usa.
type keyedLock struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
	timeout time.Duration
}

func newKeyedLock(timeout time.Duration) *keyedLock {
	return &keyedLock{entries: make(map[string]*lockEntry), timeout: timeout}
}

func (l *keyedLock) ref(key string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		e = &lockEntry{sem: semaphore.NewWeighted(1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *keyedLock) unref(key string, e *lockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

// acquire toma el bloqueo de la clave. Devuelve la función de liberación.
func (l *keyedLock) acquire(ctx context.Context, key string) (func(), error) {
	e := l.ref(key)

	waitCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}
	if err := e.sem.Acquire(waitCtx, 1); err != nil {
		l.unref(key, e)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.ErrLockTimeout
		}
		return nil, err
	}
	return func() {
		e.sem.Release(1)
		l.unref(key, e)
	}, nil
}

func (l *keyedLock) with(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	release, err := l.acquire(ctx, key)
	if err != nil {
		return err
	}
	defer release()
	return fn(ctx)
}

// size número de claves con bloqueo vivo (tomado o en espera).
func (l *keyedLock) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
