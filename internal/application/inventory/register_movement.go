package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-articulos-api/internal/application/ports"
	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
	"github.com/jhoicas/stock-articulos-api/pkg/logger"
)

// maxClockSkew tolerancia para fechas de movimiento "en el futuro" enviadas por clientes.
const maxClockSkew = time.Minute

// RecordMovementInput entrada para registrar un movimiento de stock.
type RecordMovementInput struct {
	ArticleID    string
	Type         entity.MovementType
	Quantity     int64
	MovementDate *time.Time // nil = ahora; puede ser anterior, nunca futura
	CreatedBy    string
}

// RecordMovementResult movimiento registrado y cantidad resultante.
type RecordMovementResult struct {
	Movement        *entity.StockMovement
	CurrentQuantity int64
}

// RegisterMovementUseCase registra movimientos de stock: bloqueo por artículo y, dentro de una
// única transacción, inserción en el libro + delta sobre la proyección.
type RegisterMovementUseCase struct {
	txRunner ports.TxRunner
	locker   ArticleLocker
	log      *logger.Logger
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner ports.TxRunner, locker ArticleLocker, log *logger.Logger) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner: txRunner,
		locker:   locker,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RecordMovement valida la entrada antes de bloquear; luego, con el artículo bloqueado, verifica que
// exista y esté activo, agrega el movimiento al libro y aplica el delta firmado al stock.
// Si cualquiera de los dos pasos falla no queda nada persistido.
func (uc *RegisterMovementUseCase) RecordMovement(ctx context.Context, in RecordMovementInput) (*RecordMovementResult, error) {
	if in.ArticleID == "" {
		return nil, domain.ErrInvalidInput
	}
	delta, err := entity.SignedDelta(in.Type, in.Quantity)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	at := now
	if in.MovementDate != nil {
		if in.MovementDate.After(now.Add(maxClockSkew)) {
			return nil, fmt.Errorf("%w: la fecha del movimiento no puede ser futura", domain.ErrInvalidInput)
		}
		at = in.MovementDate.UTC()
	}

	var res *RecordMovementResult
	err = uc.locker.WithArticleLock(ctx, in.ArticleID, func(ctx context.Context) error {
		return uc.txRunner.Run(ctx, func(
			articles repository.ArticleRepository,
			movements repository.StockMovementRepository,
			stocks repository.StockRepository,
		) error {
			article, err := articles.GetByID(ctx, in.ArticleID)
			if err != nil {
				return err
			}
			if article == nil {
				return domain.ErrNotFound
			}
			if article.IsDeleted() {
				return domain.ErrDeleted
			}

			projector := NewQuantityProjector(stocks, movements)
			if _, err := projector.Project(ctx, in.ArticleID, delta); err != nil {
				return err
			}
			m, err := NewMovementLedger(movements).Append(ctx, in.ArticleID, in.Type, in.Quantity, at, in.CreatedBy)
			if err != nil {
				return err
			}
			qty, err := projector.ApplyDelta(ctx, in.ArticleID, delta, now)
			if err != nil {
				return err
			}
			res = &RecordMovementResult{Movement: m, CurrentQuantity: qty}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Debug().
		Str("article_id", in.ArticleID).
		Str("type", string(in.Type)).
		Int64("quantity", in.Quantity).
		Int64("current_quantity", res.CurrentQuantity).
		Msg("movimiento registrado")
	return res, nil
}
