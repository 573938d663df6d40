package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
)

// MovementType tipo de movimiento de stock. El signo lo define el tipo, nunca la cantidad.
type MovementType string

const (
	MovementTypeStockIn            MovementType = "STOCK_IN"                  // entrada
	MovementTypeStockOut           MovementType = "STOCK_OUT"                 // salida
	MovementTypePositiveCorrection MovementType = "STOCK_POSITIVE_CORRECTION" // corrección +
	MovementTypeNegativeCorrection MovementType = "STOCK_NEGATIVE_CORRECTION" // corrección -
	MovementTypeReturn             MovementType = "STOCK_RETURN"              // devolución
	MovementTypeRecall             MovementType = "STOCK_RECALL"              // retiro
	MovementTypeMissing            MovementType = "STOCK_MISSING"             // faltante
)

var movementSigns = map[MovementType]int64{
	MovementTypeStockIn:            1,
	MovementTypeStockOut:           -1,
	MovementTypePositiveCorrection: 1,
	MovementTypeNegativeCorrection: -1,
	MovementTypeReturn:             1,
	MovementTypeRecall:             -1,
	MovementTypeMissing:            -1,
}

// MovementTypes todos los tipos en orden de declaración.
var MovementTypes = []MovementType{
	MovementTypeStockIn,
	MovementTypeStockOut,
	MovementTypePositiveCorrection,
	MovementTypeNegativeCorrection,
	MovementTypeReturn,
	MovementTypeRecall,
	MovementTypeMissing,
}

// Valid indica si el tipo es reconocido.
func (t MovementType) Valid() bool {
	_, ok := movementSigns[t]
	return ok
}

// Sign +1 para tipos que suman stock, -1 para los que restan. 0 si el tipo es desconocido.
func (t MovementType) Sign() int64 {
	return movementSigns[t]
}

// SignedDelta traduce (tipo, magnitud) al delta firmado que se aplica a la proyección.
func SignedDelta(t MovementType, quantity int64) (int64, error) {
	if !t.Valid() {
		return 0, domain.ErrInvalidInput
	}
	if quantity < 0 {
		return 0, domain.ErrInvalidQuantity
	}
	return t.Sign() * quantity, nil
}

// ParseMovementType acepta "STOCK_IN" o la forma corta "IN", "POSITIVE_CORRECTION", etc.
func ParseMovementType(s string) (MovementType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if t := MovementType(s); t.Valid() {
		return t, nil
	}
	if t := MovementType("STOCK_" + s); t.Valid() {
		return t, nil
	}
	return "", domain.ErrInvalidInput
}

// StockMovement entrada del libro de movimientos. Inmutable una vez registrada.
type StockMovement struct {
	ID           string
	Seq          int64 // orden de inserción; define el orden del libro
	ArticleID    string
	Type         MovementType
	Quantity     int64 // magnitud >= 0
	MovementDate time.Time
	CreatedAt    time.Time
	CreatedBy    string // UserID, opcional
}

// SignedQuantity cantidad con el signo de su tipo.
func (m *StockMovement) SignedQuantity() int64 {
	return m.Type.Sign() * m.Quantity
}
