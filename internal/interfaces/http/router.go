package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-articulos-api/internal/application/catalog"
	"github.com/jhoicas/stock-articulos-api/internal/application/extern"
	"github.com/jhoicas/stock-articulos-api/internal/application/inventory"
	"github.com/jhoicas/stock-articulos-api/pkg/jwt"
	"github.com/jhoicas/stock-articulos-api/pkg/logger"
)

// ImagesPath ruta pública bajo la que se sirven las imágenes de los artículos.
const ImagesPath = "/images"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ArticleUC        *catalog.ArticleUseCase
	CategoryUC       *catalog.CategoryUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	StockUC          *inventory.StockUseCase
	StockCardUC      *inventory.StockCardUseCase
	ExternUC         *extern.ExternUseCase
	JWTSecret        string
	ImagesDir        string // vacío = no servir imágenes
	Log              *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.ImagesDir != "" {
		app.Static(ImagesPath, deps.ImagesDir)
	}

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(jwt.RoleAdmin)
	writers := RequireRole(jwt.RoleAdmin, jwt.RoleBodeguero)

	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Log)
	api.Get("/categories", categoryHandler.List)

	articles := api.Group("/articles")
	articleHandler := NewArticleHandler(deps.ArticleUC, ImagesPath, deps.Log)
	articles.Get("/", articleHandler.List)
	articles.Post("/", writers, articleHandler.Create)
	articles.Get("/:id", articleHandler.GetByID)
	articles.Put("/:id", writers, articleHandler.Update)
	articles.Delete("/:id", adminOnly, articleHandler.Delete)

	// Libro de movimientos y stock por artículo
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.StockUC, deps.StockCardUC, deps.Log)
	articles.Post("/:id/movements", writers, inventoryHandler.RecordMovement)
	articles.Get("/:id/movements", inventoryHandler.ListMovements)
	articles.Get("/:id/movements/export.xlsx", inventoryHandler.ExportMovements)
	articles.Get("/:id/stock", inventoryHandler.VerifyStock)
	articles.Post("/:id/stock/rebuild", adminOnly, inventoryHandler.RebuildStock)
	articles.Get("/:id/stock-card.pdf", inventoryHandler.StockCardPDF)

	// Clientes y proveedores
	externHandler := NewExternHandler(deps.ExternUC, deps.Log)
	api.Post("/externs", writers, externHandler.Create)
	api.Get("/externs/:id", externHandler.GetByID)
}
