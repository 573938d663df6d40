package catalog

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-articulos-api/internal/application/ports"
	"github.com/jhoicas/stock-articulos-api/internal/domain"
	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
	"github.com/jhoicas/stock-articulos-api/internal/domain/pricing"
	"github.com/jhoicas/stock-articulos-api/internal/domain/repository"
	"github.com/jhoicas/stock-articulos-api/pkg/logger"
)

// Picture imagen subida con el artículo.
type Picture struct {
	Filename string
	Content  io.Reader
}

// CreateArticleInput entrada para crear un artículo.
type CreateArticleInput struct {
	Designation           string
	UnitPriceExcludingTax int64 // centavos
	TaxRate               pricing.TaxRate
	CategoryID            string
	Picture               *Picture
}

// UpdateArticleInput entrada para modificar un artículo. Picture nil conserva la imagen actual.
type UpdateArticleInput struct {
	Designation           string
	UnitPriceExcludingTax int64
	TaxRate               pricing.TaxRate
	CategoryID            string
	Picture               *Picture
}

// ArticleView artículo listo para mostrar: categoría, cantidad en stock e IVA calculado.
type ArticleView struct {
	Article      *entity.Article
	CategoryName string
	Quantity     int64
	Tax          pricing.TaxBreakdown
}

// ArticleUseCase catálogo de artículos: alta, modificación, baja lógica y consultas.
// Garantiza que dos artículos activos nunca compartan designación (sin distinguir mayúsculas).
type ArticleUseCase struct {
	locker     Locker
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	stocks     repository.StockRepository
	images     ports.ImageStore
	log        *logger.Logger
	now        func() time.Time
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(
	locker Locker,
	articles repository.ArticleRepository,
	categories repository.CategoryRepository,
	stocks repository.StockRepository,
	images ports.ImageStore,
	log *logger.Logger,
) *ArticleUseCase {
	return &ArticleUseCase{
		locker:     locker,
		articles:   articles,
		categories: categories,
		stocks:     stocks,
		images:     images,
		log:        log,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func validate(designation string, price int64, rate pricing.TaxRate, pic *Picture) error {
	if err := entity.ValidateArticleFields(designation, price, rate); err != nil {
		return err
	}
	if pic != nil && (pic.Content == nil || !entity.ValidPictureName(pic.Filename)) {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create valida, y con la designación bloqueada comprueba unicidad y categoría, guarda la imagen
// y persiste el artículo activo.
func (uc *ArticleUseCase) Create(ctx context.Context, in CreateArticleInput) (*entity.Article, error) {
	a, _, err := uc.create(ctx, in)
	return a, err
}

// CreateView igual que Create pero devuelve la vista armada con lo recién persistido, sin releer:
// una baja concurrente posterior no altera la respuesta del alta. Un artículo nuevo tiene cantidad 0.
func (uc *ArticleUseCase) CreateView(ctx context.Context, in CreateArticleInput) (*ArticleView, error) {
	a, categoryName, err := uc.create(ctx, in)
	if err != nil {
		return nil, err
	}
	tax, err := pricing.ComputeTax(a.UnitPriceExcludingTax, a.TaxRate)
	if err != nil {
		return nil, err
	}
	return &ArticleView{Article: a, CategoryName: categoryName, Tax: tax}, nil
}

func (uc *ArticleUseCase) create(ctx context.Context, in CreateArticleInput) (*entity.Article, string, error) {
	designation := entity.NormalizeDesignation(in.Designation)
	if err := validate(designation, in.UnitPriceExcludingTax, in.TaxRate, in.Picture); err != nil {
		return nil, "", err
	}

	var (
		created      *entity.Article
		categoryName string
	)
	err := uc.locker.WithDesignationLock(ctx, designation, func(ctx context.Context) error {
		taken, err := uc.articles.ExistsActiveByDesignation(ctx, entity.DesignationKey(designation), "")
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrDuplicateDesignation
		}
		name, err := uc.checkCategory(ctx, in.CategoryID)
		if err != nil {
			return err
		}
		categoryName = name
		ref, err := uc.storePicture(ctx, in.Picture)
		if err != nil {
			return err
		}

		now := uc.now()
		a := &entity.Article{
			ID:                    uuid.New().String(),
			Designation:           designation,
			UnitPriceExcludingTax: in.UnitPriceExcludingTax,
			TaxRate:               in.TaxRate,
			PictureRef:            ref,
			CategoryID:            in.CategoryID,
			State:                 entity.LifecycleActive,
			CreatedAt:             now,
			UpdatedAt:             now,
		}
		if err := uc.articles.Create(ctx, a); err != nil {
			uc.discardPicture(ctx, ref)
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	uc.log.Info().Str("article_id", created.ID).Str("designation", created.Designation).Msg("artículo creado")
	return created, categoryName, nil
}

// Update reemplaza designación, precio, tasa y categoría; la imagen solo si se envía una nueva.
func (uc *ArticleUseCase) Update(ctx context.Context, id string, in UpdateArticleInput) error {
	designation := entity.NormalizeDesignation(in.Designation)
	if err := validate(designation, in.UnitPriceExcludingTax, in.TaxRate, in.Picture); err != nil {
		return err
	}

	return uc.locker.WithDesignationLock(ctx, designation, func(ctx context.Context) error {
		return uc.locker.WithArticleLock(ctx, id, func(ctx context.Context) error {
			a, err := uc.articles.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if a == nil {
				return domain.ErrNotFound
			}
			if a.IsDeleted() {
				return domain.ErrDeleted
			}
			taken, err := uc.articles.ExistsActiveByDesignation(ctx, entity.DesignationKey(designation), id)
			if err != nil {
				return err
			}
			if taken {
				return domain.ErrDuplicateDesignation
			}
			if _, err := uc.checkCategory(ctx, in.CategoryID); err != nil {
				return err
			}
			ref, err := uc.storePicture(ctx, in.Picture)
			if err != nil {
				return err
			}

			previous := a.PictureRef
			a.Designation = designation
			a.UnitPriceExcludingTax = in.UnitPriceExcludingTax
			a.TaxRate = in.TaxRate
			a.CategoryID = in.CategoryID
			if ref != "" {
				a.PictureRef = ref
			}
			a.UpdatedAt = uc.now()
			if err := uc.articles.Update(ctx, a); err != nil {
				uc.discardPicture(ctx, ref)
				return err
			}
			if ref != "" && previous != "" {
				uc.discardPicture(ctx, previous)
			}
			return nil
		})
	})
}

// FindActive devuelve el artículo activo; ErrNotFound si no existe, ErrDeleted si fue eliminado.
func (uc *ArticleUseCase) FindActive(ctx context.Context, id string) (*entity.Article, error) {
	a, err := uc.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if a.IsDeleted() {
		return nil, domain.ErrDeleted
	}
	return a, nil
}

// ListActive artículos activos en orden de creación.
func (uc *ArticleUseCase) ListActive(ctx context.Context) ([]*entity.Article, error) {
	return uc.articles.ListActive(ctx)
}

// SoftDelete marca el artículo como eliminado. Los movimientos y el stock se conservan.
// Repetir la baja devuelve ErrAlreadyDeleted.
func (uc *ArticleUseCase) SoftDelete(ctx context.Context, id string) error {
	err := uc.locker.WithArticleLock(ctx, id, func(ctx context.Context) error {
		a, err := uc.articles.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if a.IsDeleted() {
			return domain.ErrAlreadyDeleted
		}
		return uc.articles.MarkDeleted(ctx, id, uc.now())
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("article_id", id).Msg("artículo eliminado")
	return nil
}

// Get artículo activo con categoría, cantidad e IVA.
func (uc *ArticleUseCase) Get(ctx context.Context, id string) (*ArticleView, error) {
	a, err := uc.FindActive(ctx, id)
	if err != nil {
		return nil, err
	}
	var categoryName string
	if a.CategoryID != "" {
		c, err := uc.categories.GetByID(ctx, a.CategoryID)
		if err != nil {
			return nil, err
		}
		if c != nil {
			categoryName = c.Designation
		}
	}
	return uc.view(ctx, a, categoryName)
}

// List vistas de todos los artículos activos.
func (uc *ArticleUseCase) List(ctx context.Context) ([]*ArticleView, error) {
	articles, err := uc.articles.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Designation
	}
	out := make([]*ArticleView, 0, len(articles))
	for _, a := range articles {
		v, err := uc.view(ctx, a, names[a.CategoryID])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (uc *ArticleUseCase) view(ctx context.Context, a *entity.Article, categoryName string) (*ArticleView, error) {
	tax, err := a.Tax()
	if err != nil {
		return nil, err
	}
	var qty int64
	s, err := uc.stocks.Get(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if s != nil {
		qty = s.CurrentQuantity
	}
	return &ArticleView{Article: a, CategoryName: categoryName, Quantity: qty, Tax: tax}, nil
}

// checkCategory devuelve la designación de la categoría; "" si no se indicó ninguna.
func (uc *ArticleUseCase) checkCategory(ctx context.Context, categoryID string) (string, error) {
	if categoryID == "" {
		return "", nil
	}
	c, err := uc.categories.GetByID(ctx, categoryID)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", domain.ErrCategoryNotFound
	}
	return c.Designation, nil
}

func (uc *ArticleUseCase) storePicture(ctx context.Context, pic *Picture) (string, error) {
	if pic == nil {
		return "", nil
	}
	return uc.images.Store(ctx, pic.Content, pic.Filename)
}

// discardPicture borra una imagen que ya no referencia ningún artículo; si falla queda huérfana.
func (uc *ArticleUseCase) discardPicture(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := uc.images.Delete(ctx, ref); err != nil {
		uc.log.Warn().Err(err).Str("picture", ref).Msg("imagen huérfana: no se pudo borrar")
	}
}
