package catalog

import (
	"context"
	"strings"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
)

// CategoryUseCase consulta y alta de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// List todas las categorías por designación.
func (uc *CategoryUseCase) List(ctx context.Context) ([]*entity.Category, error) {
	return uc.repo.List(ctx)
}

// Ensure devuelve la categoría con esa designación, creándola si no existe.
func (uc *CategoryUseCase) Ensure(ctx context.Context, designation string) (*entity.Category, error) {
	designation = strings.TrimSpace(designation)
	if designation == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByDesignation(ctx, designation)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}
	c = &entity.Category{Designation: designation}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
