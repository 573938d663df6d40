package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDeleted      = errors.New("el artículo fue eliminado")
	ErrConflict     = errors.New("conflicto con un registro existente")
	ErrLockTimeout  = errors.New("tiempo de espera agotado al adquirir el bloqueo")
	ErrStorage      = errors.New("fallo de almacenamiento")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Variantes específicas: errors.Is las reconoce también como su error base.
var (
	ErrInvalidRate          = fmt.Errorf("%w: tasa de IVA no reconocida", ErrInvalidInput)
	ErrInvalidQuantity      = fmt.Errorf("%w: la cantidad no puede ser negativa", ErrInvalidInput)
	ErrInvalidPrice         = fmt.Errorf("%w: el precio no puede ser negativo", ErrInvalidInput)
	ErrOutOfRange           = fmt.Errorf("%w: el valor excede el rango admitido", ErrInvalidInput)
	ErrCategoryNotFound     = fmt.Errorf("%w: categoría", ErrNotFound)
	ErrExternNotFound       = fmt.Errorf("%w: externo", ErrNotFound)
	ErrAlreadyDeleted       = fmt.Errorf("%w: ya estaba eliminado", ErrDeleted)
	ErrDuplicateDesignation = fmt.Errorf("%w: la designación ya existe", ErrConflict)
	ErrDuplicateEmail       = fmt.Errorf("%w: el email ya está registrado", ErrConflict)
)
