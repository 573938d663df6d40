package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/stock-articulos-api/docs"
	"github.com/jhoicas/stock-articulos-api/internal/application/catalog"
	"github.com/jhoicas/stock-articulos-api/internal/application/consistency"
	"github.com/jhoicas/stock-articulos-api/internal/application/extern"
	"github.com/jhoicas/stock-articulos-api/internal/application/inventory"
	"github.com/jhoicas/stock-articulos-api/internal/infrastructure/backend"
	infrapdf "github.com/jhoicas/stock-articulos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-articulos-api/internal/infrastructure/storage"
	"github.com/jhoicas/stock-articulos-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/stock-articulos-api/internal/interfaces/http"
	"github.com/jhoicas/stock-articulos-api/pkg/config"
	"github.com/jhoicas/stock-articulos-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title                       Stock Artículos API
// @version                     1.0
// @description                 Catálogo de artículos, libro de movimientos de stock y cálculo de IVA.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	db, err := backend.Open(ctx, cfg.DB, log.Named("db"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer db.Close()

	images, err := storage.NewLocalImageStore(cfg.Storage.ImagesDir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de imágenes")
	}

	guard := consistency.NewGuard(cfg.Guard.LockTimeout)
	articleUC := catalog.NewArticleUseCase(guard, db.Articles, db.Categories, db.Stocks, images, log.Named("catalog"))
	categoryUC := catalog.NewCategoryUseCase(db.Categories)
	registerMovementUC := inventory.NewRegisterMovementUseCase(db.TxRunner, guard, log.Named("inventory"))
	stockUC := inventory.NewStockUseCase(db.TxRunner, guard, db.Articles, db.Movements, db.Stocks, log.Named("inventory"))
	stockCardUC := inventory.NewStockCardUseCase(
		db.Articles, db.Categories, db.Movements, db.Stocks,
		infrapdf.NewStockCardGenerator(), xlsx.NewLedgerExporter(),
	)
	externUC := extern.NewExternUseCase(guard, db.Externs, log.Named("extern"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Stock Artículos API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "driver": db.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ArticleUC:        articleUC,
		CategoryUC:       categoryUC,
		RegisterMovement: registerMovementUC,
		StockUC:          stockUC,
		StockCardUC:      stockCardUC,
		ExternUC:         externUC,
		JWTSecret:        cfg.JWT.Secret,
		ImagesDir:        images.Dir(),
		Log:              log.Named("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
