package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
)

// ArticleRepository define el puerto de persistencia para Article (DIP).
// No existe borrado físico: la baja es lógica (MarkDeleted).
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	// GetByID devuelve el artículo aunque esté eliminado; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Article, error)
	// Update reemplaza los campos editables de un artículo activo. domain.ErrDeleted si ya no lo está.
	Update(ctx context.Context, article *entity.Article) error
	MarkDeleted(ctx context.Context, id string, at time.Time) error
	// ListActive artículos activos ordenados por (created_at, id).
	ListActive(ctx context.Context) ([]*entity.Article, error)
	// ExistsActiveByDesignation indica si otro artículo activo (distinto de excludeID) usa la clave.
	ExistsActiveByDesignation(ctx context.Context, designationKey, excludeID string) (bool, error)
}
