// Package pricing calcula precios con IVA sobre montos enteros en centavos.
// Toda la aritmética es exacta (decimal); nunca se usan flotantes.
package pricing

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
)

// TaxRate código de tasa de IVA aplicable a un artículo.
type TaxRate string

const (
	TaxRateSix       TaxRate = "SIX"        // 6%
	TaxRateTwelve    TaxRate = "TWELVE"     // 12%
	TaxRateTwentyOne TaxRate = "TWENTY_ONE" // 21%
)

// maxCents mayor monto representable en centavos.
var maxCents = decimal.NewFromInt(math.MaxInt64)

// percents porcentaje entero por código; agregar una tasa nueva es agregar una entrada.
var percents = map[TaxRate]int64{
	TaxRateSix:       6,
	TaxRateTwelve:    12,
	TaxRateTwentyOne: 21,
}

// TaxBreakdown resultado del cálculo de impuestos, en centavos.
type TaxBreakdown struct {
	TaxAmount             int64
	UnitPriceIncludingTax int64
}

// Percent devuelve el porcentaje entero de la tasa o ErrInvalidRate.
func (r TaxRate) Percent() (int64, error) {
	p, ok := percents[r]
	if !ok {
		return 0, domain.ErrInvalidRate
	}
	return p, nil
}

// Valid indica si la tasa pertenece al conjunto reconocido.
func (r TaxRate) Valid() bool {
	_, ok := percents[r]
	return ok
}

// Rate devuelve la tasa como racional exacto (porcentaje / 100).
func (r TaxRate) Rate() (decimal.Decimal, error) {
	p, err := r.Percent()
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.New(p, -2), nil
}

// ParseTaxRate acepta el código (SIX, twelve) o el porcentaje ("21", "21%").
func ParseTaxRate(s string) (TaxRate, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if r := TaxRate(s); r.Valid() {
		return r, nil
	}
	s = strings.TrimSuffix(s, "%")
	for code, p := range percents {
		if decimal.NewFromInt(p).String() == s {
			return code, nil
		}
	}
	return "", domain.ErrInvalidRate
}

// ComputeTax calcula el IVA y el precio con IVA a partir del precio sin IVA (centavos).
// IVA = redondeo half-up a centavo de (precio * porcentaje / 100).
func ComputeTax(unitPriceExcludingTax int64, rate TaxRate) (TaxBreakdown, error) {
	if unitPriceExcludingTax < 0 {
		return TaxBreakdown{}, domain.ErrInvalidPrice
	}
	r, err := rate.Rate()
	if err != nil {
		return TaxBreakdown{}, err
	}
	price := decimal.NewFromInt(unitPriceExcludingTax)
	// Con precio >= 0, Round (half away from zero) equivale a half-up.
	tax := price.Mul(r).Round(0)
	included := price.Add(tax)
	if included.GreaterThan(maxCents) {
		return TaxBreakdown{}, domain.ErrOutOfRange
	}
	return TaxBreakdown{
		TaxAmount:             tax.IntPart(),
		UnitPriceIncludingTax: included.IntPart(),
	}, nil
}

// ToMajorUnits convierte centavos a unidades monetarias con 2 decimales (1999 -> 19.99).
func ToMajorUnits(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// ParseMajorUnits convierte "19.99" a 1999 centavos. Rechaza negativos y más de 2 decimales.
func ParseMajorUnits(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	if d.IsNegative() {
		return 0, domain.ErrInvalidPrice
	}
	cents := d.Shift(2)
	if !cents.Equal(cents.Truncate(0)) {
		return 0, domain.ErrInvalidInput
	}
	if cents.GreaterThan(maxCents) {
		return 0, domain.ErrOutOfRange
	}
	return cents.IntPart(), nil
}
