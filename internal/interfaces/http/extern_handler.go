package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/stock-articulos-api/internal/application/dto"
	"github.com/jhoicas/stock-articulos-api/internal/application/extern"
	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/pkg/logger"
)

// ExternHandler alta y consulta de clientes y proveedores (protegido).
type ExternHandler struct {
	uc  *extern.ExternUseCase
	log *logger.Logger
}

// NewExternHandler construye el handler.
func NewExternHandler(uc *extern.ExternUseCase, log *logger.Logger) *ExternHandler {
	return &ExternHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar cliente o proveedor
// @Description  El email es único sin distinguir mayúsculas.
// @Tags         externs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateExternRequest  true  "Datos del externo"
// @Success      201   {object}  dto.ExternResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/externs [post]
func (h *ExternHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExternRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	typ, err := entity.ParseExternType(in.ExternType)
	if err != nil {
		return badRequest(c, "VALIDATION", "extern_type debe ser CLIENT o SUPPLIER")
	}
	e, err := h.uc.Create(c.UserContext(), extern.CreateExternInput{
		Type:        typ,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address.ToAddress(),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Location("/api/externs/" + e.ID)
	return c.Status(fiber.StatusCreated).JSON(dto.ToExternResponse(e))
}

// GetByID godoc
// @Summary      Obtener cliente o proveedor
// @Tags         externs
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del externo"
// @Success      200  {object}  dto.ExternResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/externs/{id} [get]
func (h *ExternHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, h.log, domain.ErrExternNotFound)
	}
	e, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToExternResponse(e))
}
