package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-articulos-api/internal/application/ports"
	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
	"github.com/jhoicas/stock-articulos-api/pkg/logger"
)

// DefaultPageLimit tamaño de página por defecto al listar movimientos.
const DefaultPageLimit = 50

// MaxPageLimit tamaño de página máximo.
const MaxPageLimit = 500

// MovementPage página de movimientos del libro.
type MovementPage struct {
	Items  []*entity.StockMovement
	Total  int64
	Limit  int
	Offset int
}

// StockUseCase consultas sobre el stock y el libro, y reconstrucción de la proyección.
type StockUseCase struct {
	txRunner  ports.TxRunner
	locker    ArticleLocker
	articles  repository.ArticleRepository
	ledger    *MovementLedger
	projector *QuantityProjector
	log       *logger.Logger
}

// NewStockUseCase construye el caso de uso con repositorios atados al pool (lecturas).
func NewStockUseCase(
	txRunner ports.TxRunner,
	locker ArticleLocker,
	articles repository.ArticleRepository,
	movements repository.StockMovementRepository,
	stocks repository.StockRepository,
	log *logger.Logger,
) *StockUseCase {
	return &StockUseCase{
		txRunner:  txRunner,
		locker:    locker,
		articles:  articles,
		ledger:    NewMovementLedger(movements),
		projector: NewQuantityProjector(stocks, movements),
		log:       log,
	}
}

// existing devuelve el artículo (activo o eliminado) o ErrNotFound.
func (uc *StockUseCase) existing(ctx context.Context, articleID string) (*entity.Article, error) {
	a, err := uc.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// CurrentQuantity cantidad en stock; 0 si nunca hubo movimientos. Permitido sobre artículos eliminados.
func (uc *StockUseCase) CurrentQuantity(ctx context.Context, articleID string) (int64, error) {
	if _, err := uc.existing(ctx, articleID); err != nil {
		return 0, err
	}
	return uc.projector.CurrentQuantity(ctx, articleID)
}

// Verify compara la caché con el libro.
func (uc *StockUseCase) Verify(ctx context.Context, articleID string) (*StockCheck, error) {
	if _, err := uc.existing(ctx, articleID); err != nil {
		return nil, err
	}
	return uc.projector.Verify(ctx, articleID)
}

// Rebuild recalcula la caché desde el libro con el artículo bloqueado. Registra la diferencia si la había.
func (uc *StockUseCase) Rebuild(ctx context.Context, articleID string) (*StockCheck, error) {
	var check *StockCheck
	err := uc.locker.WithArticleLock(ctx, articleID, func(ctx context.Context) error {
		return uc.txRunner.Run(ctx, func(
			articles repository.ArticleRepository,
			movements repository.StockMovementRepository,
			stocks repository.StockRepository,
		) error {
			a, err := articles.GetByID(ctx, articleID)
			if err != nil {
				return err
			}
			if a == nil {
				return domain.ErrNotFound
			}
			p := NewQuantityProjector(stocks, movements)
			before, err := p.CurrentQuantity(ctx, articleID)
			if err != nil {
				return err
			}
			after, err := p.Rebuild(ctx, articleID, time.Now().UTC())
			if err != nil {
				return err
			}
			check = &StockCheck{ArticleID: articleID, Cached: before, Ledger: after, Consistent: before == after}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if !check.Consistent {
		uc.log.Warn().
			Str("article_id", articleID).
			Int64("cached", check.Cached).
			Int64("ledger", check.Ledger).
			Msg("stock reconstruido: la caché no coincidía con el libro")
	}
	return check, nil
}

// ListMovements página del libro del artículo con filtros opcionales.
func (uc *StockUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) (*MovementPage, error) {
	if _, err := uc.existing(ctx, filter.ArticleID); err != nil {
		return nil, err
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultPageLimit
	}
	if filter.Limit > MaxPageLimit {
		filter.Limit = MaxPageLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, domain.ErrInvalidInput
	}
	items, total, err := uc.ledger.Page(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &MovementPage{Items: items, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}
