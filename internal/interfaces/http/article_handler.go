package http

import (
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-articulos-api/internal/application/catalog"
	"github.com/jhoicas/stock-articulos-api/internal/application/dto"
	"github.com/jhoicas/stock-articulos-api/internal/domain/pricing"
	"github.com/jhoicas/stock-articulos-api/pkg/logger"
)

// ArticleHandler maneja el catálogo de artículos (protegido).
type ArticleHandler struct {
	uc         *catalog.ArticleUseCase
	imagesPath string
	log        *logger.Logger
}

// NewArticleHandler construye el handler. imagesPath es la ruta pública de las imágenes (/images).
func NewArticleHandler(uc *catalog.ArticleUseCase, imagesPath string, log *logger.Logger) *ArticleHandler {
	return &ArticleHandler{uc: uc, imagesPath: imagesPath, log: log}
}

// articleForm campos multipart comunes a alta y modificación.
type articleForm struct {
	designation string
	price       int64
	rate        pricing.TaxRate
	categoryID  string
	picture     *catalog.Picture
	file        multipart.File
}

func (f *articleForm) close() {
	if f.file != nil {
		_ = f.file.Close()
	}
}

// parseArticleForm lee designation, unit_price_excluding_tax (19.99), vat (SIX|TWELVE|TWENTY_ONE o 6|12|21),
// category_id e image (opcional).
func parseArticleForm(c *fiber.Ctx) (*articleForm, string, string) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, "INVALID_BODY", "se espera multipart/form-data"
	}
	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return strings.TrimSpace(v[0])
		}
		return ""
	}

	out := &articleForm{designation: value("designation"), categoryID: value("category_id")}
	if out.price, err = pricing.ParseMajorUnits(value("unit_price_excluding_tax")); err != nil {
		return nil, "VALIDATION", "unit_price_excluding_tax debe ser un monto >= 0 con hasta 2 decimales"
	}
	if out.rate, err = pricing.ParseTaxRate(value("vat")); err != nil {
		return nil, "VALIDATION", "vat no reconocido (SIX, TWELVE, TWENTY_ONE)"
	}
	if files := form.File["image"]; len(files) > 0 {
		fh := files[0]
		f, err := fh.Open()
		if err != nil {
			return nil, "INVALID_BODY", "no se pudo leer la imagen"
		}
		out.file = f
		out.picture = &catalog.Picture{Filename: fh.Filename, Content: io.Reader(f)}
	}
	return out, "", ""
}

// Create godoc
// @Summary      Crear artículo
// @Tags         articles
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        designation               formData  string  true   "Designación (única entre activos)"
// @Param        unit_price_excluding_tax  formData  string  true   "Precio sin IVA (19.99)"
// @Param        vat                       formData  string  true   "SIX | TWELVE | TWENTY_ONE"
// @Param        category_id               formData  string  false  "ID de categoría"
// @Param        image                     formData  file    false  "Imagen .jpg/.jpeg/.png"
// @Success      201   {object}  dto.ArticleDetailsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/articles [post]
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	in, code, msg := parseArticleForm(c)
	if in == nil {
		return badRequest(c, code, msg)
	}
	defer in.close()

	view, err := h.uc.CreateView(c.UserContext(), catalog.CreateArticleInput{
		Designation:           in.designation,
		UnitPriceExcludingTax: in.price,
		TaxRate:               in.rate,
		CategoryID:            in.categoryID,
		Picture:               in.picture,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Location("/api/articles/" + view.Article.ID)
	return c.Status(fiber.StatusCreated).JSON(dto.ToArticleDetailsResponse(view, h.imagesPath))
}

// Update godoc
// @Summary      Modificar artículo
// @Description  Reemplaza designación, precio, IVA y categoría. La imagen solo cambia si se envía una nueva.
// @Tags         articles
// @Security     Bearer
// @Accept       multipart/form-data
// @Param        id                        path      string  true   "ID del artículo"
// @Param        designation               formData  string  true   "Designación"
// @Param        unit_price_excluding_tax  formData  string  true   "Precio sin IVA (19.99)"
// @Param        vat                       formData  string  true   "SIX | TWELVE | TWENTY_ONE"
// @Param        category_id               formData  string  false  "ID de categoría"
// @Param        image                     formData  file    false  "Imagen .jpg/.jpeg/.png"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      410   {object}  dto.ErrorResponse
// @Router       /api/articles/{id} [put]
func (h *ArticleHandler) Update(c *fiber.Ctx) error {
	id, ok := articleID(c)
	if !ok {
		return articleNotFound(c)
	}
	in, code, msg := parseArticleForm(c)
	if in == nil {
		return badRequest(c, code, msg)
	}
	defer in.close()

	err := h.uc.Update(c.UserContext(), id, catalog.UpdateArticleInput{
		Designation:           in.designation,
		UnitPriceExcludingTax: in.price,
		TaxRate:               in.rate,
		CategoryID:            in.categoryID,
		Picture:               in.picture,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Detalle de artículo activo
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ArticleDetailsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Router       /api/articles/{id} [get]
func (h *ArticleHandler) GetByID(c *fiber.Ctx) error {
	id, ok := articleID(c)
	if !ok {
		return articleNotFound(c)
	}
	view, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ToArticleDetailsResponse(view, h.imagesPath))
}

// List godoc
// @Summary      Listar artículos activos
// @Tags         articles
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ArticleResponse
// @Router       /api/articles [get]
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	views, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]dto.ArticleResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.ToArticleResponse(v))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar artículo (baja lógica)
// @Tags         articles
// @Security     Bearer
// @Param        id   path  string  true  "ID del artículo"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      410  {object}  dto.ErrorResponse
// @Router       /api/articles/{id} [delete]
func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	id, ok := articleID(c)
	if !ok {
		return articleNotFound(c)
	}
	if err := h.uc.SoftDelete(c.UserContext(), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
