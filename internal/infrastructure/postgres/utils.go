package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
)

// Restricciones con error de dominio propio; el resto cae en el error genérico de su código.
const (
	constraintDesignationActive = "ux_articles_designation_active"
	constraintArticleCategory   = "fk_articles_category"
	constraintExternEmail       = "ux_externs_email"
)

// mapError traduce errores de pgx/pgconn a errores de dominio.
// Los errores de contexto se devuelven tal cual.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			switch pgErr.ConstraintName {
			case constraintDesignationActive:
				return fmt.Errorf("%s: %w", op, domain.ErrDuplicateDesignation)
			case constraintExternEmail:
				return fmt.Errorf("%s: %w", op, domain.ErrDuplicateEmail)
			}
			return fmt.Errorf("%s: %w: %s", op, domain.ErrConflict, pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			if pgErr.ConstraintName == constraintArticleCategory {
				return fmt.Errorf("%s: %w", op, domain.ErrCategoryNotFound)
			}
			return fmt.Errorf("%s: %w: %s", op, domain.ErrNotFound, pgErr.ConstraintName)
		case "23514": // check_violation
			return fmt.Errorf("%s: %w: %s", op, domain.ErrInvalidInput, pgErr.ConstraintName)
		case "22P02": // invalid_text_representation (uuid mal formado)
			return fmt.Errorf("%s: %w", op, domain.ErrInvalidInput)
		case "22003": // numeric_value_out_of_range
			return fmt.Errorf("%s: %w", op, domain.ErrOutOfRange)
		}
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
