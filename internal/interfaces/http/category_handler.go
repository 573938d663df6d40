package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-articulos-api/internal/application/catalog"
	"github.com/jhoicas/stock-articulos-api/internal/application/dto"
	"github.com/jhoicas/stock-articulos-api/pkg/logger"
)

// CategoryHandler consulta de categorías (protegido).
type CategoryHandler struct {
	uc  *catalog.CategoryUseCase
	log *logger.Logger
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *catalog.CategoryUseCase, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToCategoryResponses(list))
}
