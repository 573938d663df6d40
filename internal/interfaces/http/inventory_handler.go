package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-articulos-api/internal/application/dto"
	"github.com/jhoicas/stock-articulos-api/internal/application/inventory"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
	"github.com/jhoicas/stock-articulos-api/pkg/logger"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// InventoryHandler movimientos de stock, verificación y reportes por artículo (protegido).
type InventoryHandler struct {
	register *inventory.RegisterMovementUseCase
	stock    *inventory.StockUseCase
	card     *inventory.StockCardUseCase
	log      *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	register *inventory.RegisterMovementUseCase,
	stock *inventory.StockUseCase,
	card *inventory.StockCardUseCase,
	log *logger.Logger,
) *InventoryHandler {
	return &InventoryHandler{register: register, stock: stock, card: card, log: log}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Agrega una entrada al libro y actualiza la cantidad cacheada en la misma transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del artículo"
// @Param        body  body  dto.RecordMovementRequest  true  "type (STOCK_IN, STOCK_OUT, ...), quantity >= 0, movement_date opcional"
// @Success      201   {object}  dto.RecordMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      410   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	id, ok := articleID(c)
	if !ok {
		return articleNotFound(c)
	}
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	typ, err := entity.ParseMovementType(in.Type)
	if err != nil {
		return badRequest(c, "VALIDATION", "type no reconocido")
	}
	res, err := h.register.RecordMovement(c.UserContext(), inventory.RecordMovementInput{
		ArticleID:    id,
		Type:         typ,
		Quantity:     in.Quantity,
		MovementDate: in.MovementDate,
		CreatedBy:    GetUserID(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecordMovementResponse{
		Movement:        dto.ToMovementResponse(res.Movement),
		CurrentQuantity: res.CurrentQuantity,
	})
}

// ListMovements godoc
// @Summary      Libro de movimientos del artículo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del artículo"
// @Param        from    query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (RFC3339 o YYYY-MM-DD, inclusive)"
// @Param        type    query  string  false  "Tipo de movimiento"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementPageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	id, ok := articleID(c)
	if !ok {
		return articleNotFound(c)
	}
	filter := repository.MovementFilter{
		ArticleID: id,
		Limit:     c.QueryInt("limit", inventory.DefaultPageLimit),
		Offset:    c.QueryInt("offset", 0),
	}
	var err error
	if filter.From, err = parseDateParam(c.Query("from"), false); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	if filter.To, err = parseDateParam(c.Query("to"), true); err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	if t := c.Query("type"); t != "" {
		typ, err := entity.ParseMovementType(t)
		if err != nil {
			return badRequest(c, "VALIDATION", "type no reconocido")
		}
		filter.Type = typ
	}
	page, err := h.stock.ListMovements(c.UserContext(), filter)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToMovementPageResponse(page))
}

// ExportMovements godoc
// @Summary      Exportar libro a Excel
// @Tags         inventory
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/movements/export.xlsx [get]
func (h *InventoryHandler) ExportMovements(c *fiber.Ctx) error {
	id, ok := articleID(c)
	if !ok {
		return articleNotFound(c)
	}
	b, name, err := h.card.XLSX(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendAttachment(c, contentTypeXLSX, name, b)
}

// StockCardPDF godoc
// @Summary      Ficha de stock en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/stock-card.pdf [get]
func (h *InventoryHandler) StockCardPDF(c *fiber.Ctx) error {
	id, ok := articleID(c)
	if !ok {
		return articleNotFound(c)
	}
	b, name, err := h.card.PDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendAttachment(c, contentTypePDF, name, b)
}

// VerifyStock godoc
// @Summary      Comparar cantidad cacheada con el libro
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.StockCheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/stock [get]
func (h *InventoryHandler) VerifyStock(c *fiber.Ctx) error {
	id, ok := articleID(c)
	if !ok {
		return articleNotFound(c)
	}
	check, err := h.stock.Verify(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToStockCheckResponse(check))
}

// RebuildStock godoc
// @Summary      Reconstruir la cantidad cacheada desde el libro
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.StockCheckResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/articles/{id}/stock/rebuild [post]
func (h *InventoryHandler) RebuildStock(c *fiber.Ctx) error {
	id, ok := articleID(c)
	if !ok {
		return articleNotFound(c)
	}
	check, err := h.stock.Rebuild(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToStockCheckResponse(check))
}

func sendAttachment(c *fiber.Ctx, contentType, filename string, b []byte) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(b)
}

// parseDateParam acepta RFC3339 o YYYY-MM-DD. Con endOfDay, una fecha sin hora cubre el día completo.
func parseDateParam(s string, endOfDay bool) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida: %q", s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
