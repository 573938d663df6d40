package repository

import (
	"context"

	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	// GetByID devuelve (nil, nil) si la categoría no existe.
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByDesignation(ctx context.Context, designation string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}
