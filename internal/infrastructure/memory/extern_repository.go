package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
)

var _ repository.ExternRepository = (*ExternRepo)(nil)

// ExternRepo clientes y proveedores en memoria.
type ExternRepo struct {
	base
}

// NewExternRepository construye el repositorio sobre el Store.
func NewExternRepository(s *Store) *ExternRepo {
	return &ExternRepo{base{store: s}}
}

// Create aplica la misma unicidad de email que el índice ux_externs_email.
func (r *ExternRepo) Create(ctx context.Context, extern *entity.Extern) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if extern.ID == "" {
		extern.ID = uuid.New().String()
	}
	if extern.CreatedAt.IsZero() {
		extern.CreatedAt = time.Now().UTC()
	}
	key := entity.EmailKey(extern.Email)
	return r.write(func(st *state) error {
		for _, e := range st.externs {
			if entity.EmailKey(e.Email) == key {
				return domain.ErrDuplicateEmail
			}
		}
		st.externs[extern.ID] = *extern
		return nil
	})
}

func (r *ExternRepo) GetByID(ctx context.Context, id string) (*entity.Extern, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *entity.Extern
	r.read(func(st *state) {
		if e, ok := st.externs[id]; ok {
			out = &e
		}
	})
	return out, nil
}

func (r *ExternRepo) ExistsByEmail(ctx context.Context, emailKey string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var found bool
	r.read(func(st *state) {
		for _, e := range st.externs {
			if entity.EmailKey(e.Email) == emailKey {
				found = true
				return
			}
		}
	})
	return found, nil
}
