// Package extern registra clientes y proveedores con email único.
package extern

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
	"github.com/jhoicas/stock-articulos-api/pkg/logger"
)

// EmailLocker bloqueo por email (ver consistency.Guard).
type EmailLocker interface {
	WithEmailLock(ctx context.Context, email string, fn func(ctx context.Context) error) error
}

// CreateExternInput datos de alta de un cliente o proveedor.
type CreateExternInput struct {
	Type        entity.ExternType
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Address     entity.Address
}

// ExternUseCase alta y consulta de externos.
type ExternUseCase struct {
	locker EmailLocker
	repo   repository.ExternRepository
	log    *logger.Logger
	now    func() time.Time
}

// NewExternUseCase construye el caso de uso.
func NewExternUseCase(locker EmailLocker, repo repository.ExternRepository, log *logger.Logger) *ExternUseCase {
	return &ExternUseCase{
		locker: locker,
		repo:   repo,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create valida y, con el email bloqueado, comprueba que nadie lo use antes de insertar.
func (uc *ExternUseCase) Create(ctx context.Context, in CreateExternInput) (*entity.Extern, error) {
	e := &entity.Extern{
		Type:        in.Type,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
	}
	e.Normalize()
	if err := e.Validate(); err != nil {
		return nil, err
	}

	err := uc.locker.WithEmailLock(ctx, e.Email, func(ctx context.Context) error {
		taken, err := uc.repo.ExistsByEmail(ctx, entity.EmailKey(e.Email))
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrDuplicateEmail
		}
		e.ID = uuid.New().String()
		e.CreatedAt = uc.now()
		return uc.repo.Create(ctx, e)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("extern_id", e.ID).Str("type", string(e.Type)).Msg("externo creado")
	return e, nil
}

// Get devuelve el externo o domain.ErrExternNotFound.
func (uc *ExternUseCase) Get(ctx context.Context, id string) (*entity.Extern, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrExternNotFound
	}
	return e, nil
}
