package entity

import (
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/pricing"
)

// MaxDesignationLength longitud máxima (en caracteres) de la designación.
const MaxDesignationLength = 80

// Lifecycle estado del artículo. Un artículo eliminado conserva su fila pero queda congelado.
type Lifecycle string

const (
	LifecycleActive  Lifecycle = "active"
	LifecycleDeleted Lifecycle = "deleted"
)

// Article artículo vendible del catálogo. La cantidad en stock no vive aquí: se deriva del
// libro de movimientos (StockMovement) y se cachea en Stock.
type Article struct {
	ID                    string
	Designation           string
	UnitPriceExcludingTax int64 // centavos
	TaxRate               pricing.TaxRate
	PictureRef            string // vacío si no tiene imagen
	CategoryID            string // vacío si no tiene categoría
	State                 Lifecycle
	DeletedAt             *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsDeleted indica si el artículo fue eliminado lógicamente.
func (a *Article) IsDeleted() bool {
	return a.State == LifecycleDeleted
}

// DesignationKey clave de unicidad de la designación (sin distinguir mayúsculas).
func (a *Article) DesignationKey() string {
	return DesignationKey(a.Designation)
}

// Tax calcula el IVA del artículo con su precio y tasa actuales.
func (a *Article) Tax() (pricing.TaxBreakdown, error) {
	return pricing.ComputeTax(a.UnitPriceExcludingTax, a.TaxRate)
}

// MarkDeleted pasa el artículo a estado eliminado. Falla si ya lo estaba.
func (a *Article) MarkDeleted(now time.Time) error {
	if a.IsDeleted() {
		return domain.ErrAlreadyDeleted
	}
	a.State = LifecycleDeleted
	a.DeletedAt = &now
	a.UpdatedAt = now
	return nil
}

// NormalizeDesignation limpia espacios y unifica la forma Unicode (NFC).
func NormalizeDesignation(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// DesignationKey pliega mayúsculas/minúsculas sobre la designación normalizada.
// Dos designaciones con la misma clave se consideran iguales.
func DesignationKey(s string) string {
	return cases.Fold().String(NormalizeDesignation(s))
}

// ValidateArticleFields valida los campos editables de un artículo.
func ValidateArticleFields(designation string, unitPriceExcludingTax int64, rate pricing.TaxRate) error {
	if designation == "" || utf8.RuneCountInString(designation) > MaxDesignationLength {
		return domain.ErrInvalidInput
	}
	// El precio con IVA también debe caber en centavos enteros.
	_, err := pricing.ComputeTax(unitPriceExcludingTax, rate)
	return err
}

// allowedPictureExt extensiones de imagen aceptadas.
var allowedPictureExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// ValidPictureName indica si el nombre de archivo tiene una extensión de imagen aceptada.
func ValidPictureName(filename string) bool {
	return allowedPictureExt[strings.ToLower(filepath.Ext(filename))]
}
