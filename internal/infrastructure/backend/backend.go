// Package backend elige el driver de persistencia (postgres o memory) y expone sus repositorios.
package backend

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-articulos-api/internal/application/ports"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
	"github.com/jhoicas/stock-articulos-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-articulos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-articulos-api/pkg/config"
	"github.com/jhoicas/stock-articulos-api/pkg/logger"
)

// Backend repositorios atados al pool (lecturas) y el TxRunner para escrituras atómicas.
type Backend struct {
	Driver     string
	TxRunner   ports.TxRunner
	Articles   repository.ArticleRepository
	Categories repository.CategoryRepository
	Externs    repository.ExternRepository
	Movements  repository.StockMovementRepository
	Stocks     repository.StockRepository
	close      func()
}

// Close libera el pool (no-op en memoria).
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open conecta según cfg.Driver. Con postgres y AutoMigrate aplica las migraciones antes de devolver.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn().Msg("driver en memoria: los datos se pierden al reiniciar")
		return newMemory(), nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, log); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &Backend{
			Driver:     config.DriverPostgres,
			TxRunner:   postgres.NewTxRunner(pool),
			Articles:   postgres.NewArticleRepository(pool),
			Categories: postgres.NewCategoryRepository(pool),
			Externs:    postgres.NewExternRepository(pool),
			Movements:  postgres.NewStockMovementRepository(pool),
			Stocks:     postgres.NewStockRepository(pool),
			close:      pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("driver no soportado: %q", cfg.Driver)
	}
}

func newMemory() *Backend {
	s := memory.NewStore()
	return &Backend{
		Driver:     config.DriverMemory,
		TxRunner:   s,
		Articles:   memory.NewArticleRepository(s),
		Categories: memory.NewCategoryRepository(s),
		Externs:    memory.NewExternRepository(s),
		Movements:  memory.NewStockMovementRepository(s),
		Stocks:     memory.NewStockRepository(s),
	}
}
