package postgres

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
)

var _ repository.ExternRepository = (*ExternRepo)(nil)

type externRow struct {
	ID           string    `db:"id"`
	Type         string    `db:"extern_type"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Email        string    `db:"email"`
	PhoneNumber  string    `db:"phone_number"`
	Street       string    `db:"street"`
	City         string    `db:"city"`
	Municipality string    `db:"municipality"`
	Zip          string    `db:"zip"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r externRow) toEntity() *entity.Extern {
	return &entity.Extern{
		ID:          r.ID,
		Type:        entity.ExternType(r.Type),
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Address: entity.Address{
			Street:       r.Street,
			City:         r.City,
			Municipality: r.Municipality,
			Zip:          r.Zip,
		},
		CreatedAt: r.CreatedAt,
	}
}

// ExternRepo implementación de ExternRepository sobre PostgreSQL.
type ExternRepo struct {
	q Querier
}

// NewExternRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExternRepository(q Querier) *ExternRepo {
	return &ExternRepo{q: q}
}

// Create inserta el externo; el índice ux_externs_email resuelve la carrera entre procesos.
func (r *ExternRepo) Create(ctx context.Context, e *entity.Extern) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO externs (id, extern_type, first_name, last_name, email, email_key, phone_number,
			street, city, municipality, zip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		e.ID, string(e.Type), e.FirstName, e.LastName, e.Email, entity.EmailKey(e.Email), e.PhoneNumber,
		e.Address.Street, e.Address.City, e.Address.Municipality, e.Address.Zip, e.CreatedAt,
	)
	return mapError(err, "create extern")
}

func (r *ExternRepo) GetByID(ctx context.Context, id string) (*entity.Extern, error) {
	query := `
		SELECT id, extern_type, first_name, last_name, email, phone_number,
			street, city, municipality, zip, created_at
		FROM externs WHERE id = $1`
	var row externRow
	if err := pgxscan.Get(ctx, r.q, &row, query, id); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, mapError(err, "get extern")
	}
	return row.toEntity(), nil
}

func (r *ExternRepo) ExistsByEmail(ctx context.Context, emailKey string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM externs WHERE email_key = $1)`, emailKey).Scan(&exists)
	if err != nil {
		return false, mapError(err, "exists extern email")
	}
	return exists, nil
}
