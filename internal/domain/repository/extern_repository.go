package repository

import (
	"context"

	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
)

// ExternRepository define el puerto de persistencia para clientes y proveedores (DIP).
type ExternRepository interface {
	// Create inserta el externo. domain.ErrDuplicateEmail si la clave de email ya existe.
	Create(ctx context.Context, extern *entity.Extern) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Extern, error)
	ExistsByEmail(ctx context.Context, emailKey string) (bool, error)
}
