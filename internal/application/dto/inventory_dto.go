package dto

import (
	"time"

	"github.com/jhoicas/stock-articulos-api/internal/application/inventory"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
)

// RecordMovementRequest body para POST /api/articles/:id/movements.
// Type acepta el nombre completo (STOCK_IN) o corto (IN).
type RecordMovementRequest struct {
	Type         string     `json:"type"`
	Quantity     int64      `json:"quantity"`
	MovementDate *time.Time `json:"movement_date,omitempty"`
}

// MovementResponse entrada del libro de movimientos.
type MovementResponse struct {
	ID             string    `json:"id"`
	Seq            int64     `json:"seq"`
	ArticleID      string    `json:"article_id"`
	Type           string    `json:"type"`
	Quantity       int64     `json:"quantity"`
	SignedQuantity int64     `json:"signed_quantity"`
	MovementDate   time.Time `json:"movement_date"`
	CreatedAt      time.Time `json:"created_at"`
	CreatedBy      string    `json:"created_by,omitempty"`
}

// RecordMovementResponse movimiento registrado y cantidad resultante.
type RecordMovementResponse struct {
	Movement        MovementResponse `json:"movement"`
	CurrentQuantity int64            `json:"current_quantity"`
}

// MovementPageResponse página del libro.
type MovementPageResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockCheckResponse comparación caché/libro de un artículo.
type StockCheckResponse struct {
	ArticleID      string `json:"article_id"`
	CachedQuantity int64  `json:"cached_quantity"`
	LedgerQuantity int64  `json:"ledger_quantity"`
	Consistent     bool   `json:"consistent"`
}

// ToMovementResponse convierte un movimiento de dominio.
func ToMovementResponse(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		Seq:            m.Seq,
		ArticleID:      m.ArticleID,
		Type:           string(m.Type),
		Quantity:       m.Quantity,
		SignedQuantity: m.SignedQuantity(),
		MovementDate:   m.MovementDate,
		CreatedAt:      m.CreatedAt,
		CreatedBy:      m.CreatedBy,
	}
}

// ToMovementPageResponse convierte una página del libro.
func ToMovementPageResponse(p *inventory.MovementPage) MovementPageResponse {
	items := make([]MovementResponse, 0, len(p.Items))
	for _, m := range p.Items {
		items = append(items, ToMovementResponse(m))
	}
	return MovementPageResponse{
		Items: items,
		Page:  PageResponse{Limit: p.Limit, Offset: p.Offset, Total: p.Total},
	}
}

// ToStockCheckResponse convierte el resultado de Verify/Rebuild.
func ToStockCheckResponse(c *inventory.StockCheck) StockCheckResponse {
	return StockCheckResponse{
		ArticleID:      c.ArticleID,
		CachedQuantity: c.Cached,
		LedgerQuantity: c.Ledger,
		Consistent:     c.Consistent,
	}
}
