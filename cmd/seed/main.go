// seed carga el catálogo de demostración: tres categorías, tres artículos y su stock inicial.
// Es idempotente: los artículos que ya existen activos no se vuelven a crear ni a abastecer.
//
// Uso: go run ./cmd/seed  (misma configuración que la API: STORAGE_DRIVER, DATABASE_URL, ...)
package main

import (
	"context"
	"os"

	"github.com/jhoicas/stock-articulos-api/internal/application/catalog"
	"github.com/jhoicas/stock-articulos-api/internal/application/consistency"
	"github.com/jhoicas/stock-articulos-api/internal/application/inventory"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/pricing"
	"github.com/jhoicas/stock-articulos-api/internal/infrastructure/backend"
	"github.com/jhoicas/stock-articulos-api/internal/infrastructure/storage"
	"github.com/jhoicas/stock-articulos-api/pkg/config"
	"github.com/jhoicas/stock-articulos-api/pkg/logger"
)

type seedArticle struct {
	designation string
	price       int64 // centavos
	rate        pricing.TaxRate
	category    string
	initial     int64
}

var seedArticles = []seedArticle{
	{"Dragon ball sparkling zero", 4999, pricing.TaxRateTwentyOne, "Jeux vidéo", 10},
	{"Sun Tzu, L'art de la guèrre", 599, pricing.TaxRateTwentyOne, "Livres", 20},
	{"Le dernier samurai", 399, pricing.TaxRateTwentyOne, "Films", 50},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	ctx := context.Background()
	db, err := backend.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer db.Close()

	images, err := storage.NewLocalImageStore(cfg.Storage.ImagesDir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de imágenes")
	}

	guard := consistency.NewGuard(cfg.Guard.LockTimeout)
	s := &seeder{
		categories: catalog.NewCategoryUseCase(db.Categories),
		articles:   catalog.NewArticleUseCase(guard, db.Articles, db.Categories, db.Stocks, images, log),
		register:   inventory.NewRegisterMovementUseCase(db.TxRunner, guard, log),
		exists:     db.Articles.ExistsActiveByDesignation,
		log:        log,
	}
	if err := s.run(ctx, seedArticles); err != nil {
		log.Error().Err(err).Msg("seed incompleto")
		db.Close()
		os.Exit(1)
	}
	log.Info().Msg("seed completado")
}

type seeder struct {
	categories *catalog.CategoryUseCase
	articles   *catalog.ArticleUseCase
	register   *inventory.RegisterMovementUseCase
	exists     func(ctx context.Context, designationKey, excludeID string) (bool, error)
	log        *logger.Logger
}

func (s *seeder) run(ctx context.Context, items []seedArticle) error {
	for _, it := range items {
		cat, err := s.categories.Ensure(ctx, it.category)
		if err != nil {
			return err
		}
		taken, err := s.exists(ctx, entity.DesignationKey(it.designation), "")
		if err != nil {
			return err
		}
		if taken {
			s.log.Info().Str("designation", it.designation).Msg("ya existe, se omite")
			continue
		}
		a, err := s.articles.Create(ctx, catalog.CreateArticleInput{
			Designation:           it.designation,
			UnitPriceExcludingTax: it.price,
			TaxRate:               it.rate,
			CategoryID:            cat.ID,
		})
		if err != nil {
			return err
		}
		if _, err := s.register.RecordMovement(ctx, inventory.RecordMovementInput{
			ArticleID: a.ID,
			Type:      entity.MovementTypeStockIn,
			Quantity:  it.initial,
			CreatedBy: "seed",
		}); err != nil {
			return err
		}
	}
	return nil
}
