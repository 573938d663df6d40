package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-articulos-api/internal/application/catalog"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/pricing"
)

// ArticleResponse fila del listado de artículos. Los precios van en unidades (19.99), no en centavos.
type ArticleResponse struct {
	ID                    string          `json:"id"`
	Designation           string          `json:"designation"`
	UnitPriceExcludingTax decimal.Decimal `json:"unit_price_excluding_tax"`
	UnitPriceIncludingTax decimal.Decimal `json:"unit_price_including_tax"`
	Vat                   string          `json:"vat"`
	CategoryID            string          `json:"category_id,omitempty"`
	Category              string          `json:"category,omitempty"`
	Quantity              int64           `json:"quantity"`
}

// ArticleDetailsResponse detalle de un artículo activo.
type ArticleDetailsResponse struct {
	ArticleResponse
	AddedValue decimal.Decimal `json:"added_value"`
	VatPercent int64           `json:"vat_percent"`
	PictureURL string          `json:"picture_url,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CategoryResponse categoría del catálogo.
type CategoryResponse struct {
	ID          string `json:"id"`
	Designation string `json:"designation"`
}

// ToArticleResponse convierte la vista del catálogo a la fila del listado.
func ToArticleResponse(v *catalog.ArticleView) ArticleResponse {
	a := v.Article
	return ArticleResponse{
		ID:                    a.ID,
		Designation:           a.Designation,
		UnitPriceExcludingTax: pricing.ToMajorUnits(a.UnitPriceExcludingTax),
		UnitPriceIncludingTax: pricing.ToMajorUnits(v.Tax.UnitPriceIncludingTax),
		Vat:                   string(a.TaxRate),
		CategoryID:            a.CategoryID,
		Category:              v.CategoryName,
		Quantity:              v.Quantity,
	}
}

// ToArticleDetailsResponse agrega valor añadido, porcentaje y URL de la imagen (imagesPath + ref).
func ToArticleDetailsResponse(v *catalog.ArticleView, imagesPath string) ArticleDetailsResponse {
	a := v.Article
	pct, _ := a.TaxRate.Percent()
	out := ArticleDetailsResponse{
		ArticleResponse: ToArticleResponse(v),
		AddedValue:      pricing.ToMajorUnits(v.Tax.TaxAmount),
		VatPercent:      pct,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if a.PictureRef != "" {
		out.PictureURL = imagesPath + "/" + a.PictureRef
	}
	return out
}

// ToCategoryResponses convierte categorías de dominio.
func ToCategoryResponses(list []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, CategoryResponse{ID: c.ID, Designation: c.Designation})
	}
	return out
}
