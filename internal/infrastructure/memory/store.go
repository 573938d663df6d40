// Package memory implementa los repositorios sobre un almacén en memoria del proceso.
// Se usa con STORAGE_DRIVER=memory y en las pruebas de los casos de uso.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/stock-articulos-api/internal/application/ports"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	articles   map[string]entity.Article
	categories map[string]entity.Category
	externs    map[string]entity.Extern
	movements  []entity.StockMovement
	stocks     map[string]entity.Stock
	seq        int64
}

func newState() *state {
	return &state{
		articles:   make(map[string]entity.Article),
		categories: make(map[string]entity.Category),
		externs:    make(map[string]entity.Extern),
		stocks:     make(map[string]entity.Stock),
	}
}

func (s *state) clone() *state {
	c := &state{
		articles:   make(map[string]entity.Article, len(s.articles)),
		categories: make(map[string]entity.Category, len(s.categories)),
		externs:    make(map[string]entity.Extern, len(s.externs)),
		movements:  make([]entity.StockMovement, len(s.movements)),
		stocks:     make(map[string]entity.Stock, len(s.stocks)),
		seq:        s.seq,
	}
	for k, v := range s.articles {
		c.articles[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.externs {
		c.externs[k] = v
	}
	copy(c.movements, s.movements)
	for k, v := range s.stocks {
		c.stocks[k] = v
	}
	return c
}

// Store almacén en memoria. Las escrituras (fuera o dentro de una transacción) se serializan con
// writeMu; una transacción trabaja sobre una copia que solo se publica si fn no falla.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	st      *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Run ejecuta fn en una transacción: todo o nada.
func (s *Store) Run(ctx context.Context, fn func(
	articles repository.ArticleRepository,
	movements repository.StockMovementRepository,
	stocks repository.StockRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	work := s.st.clone()
	s.mu.RUnlock()

	b := base{tx: work}
	if err := fn(&ArticleRepo{b}, &StockMovementRepo{b}, &StockRepo{b}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	s.mu.Lock()
	s.st = work
	s.mu.Unlock()
	return nil
}

// base da acceso al estado: el de la transacción si existe, si no el del Store con sus locks.
type base struct {
	store *Store
	tx    *state
}

func (b base) read(fn func(st *state)) {
	if b.tx != nil {
		fn(b.tx)
		return
	}
	b.store.mu.RLock()
	defer b.store.mu.RUnlock()
	fn(b.store.st)
}

func (b base) write(fn func(st *state) error) error {
	if b.tx != nil {
		return fn(b.tx)
	}
	b.store.writeMu.Lock()
	defer b.store.writeMu.Unlock()
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	return fn(b.store.st)
}
