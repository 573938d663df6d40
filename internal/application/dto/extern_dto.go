package dto

import (
	"time"

	"github.com/jhoicas/stock-articulos-api/internal/domain/entity"
)

// AddressRequest dirección postal; municipality es opcional.
type AddressRequest struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	Municipality string `json:"municipality,omitempty"`
	Zip          string `json:"zip"`
}

// CreateExternRequest alta de un cliente o proveedor.
type CreateExternRequest struct {
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phone_number,omitempty"`
	ExternType  string         `json:"extern_type"` // CLIENT | SUPPLIER
	Address     AddressRequest `json:"address"`
}

// ExternResponse cliente o proveedor registrado.
type ExternResponse struct {
	ID          string         `json:"id"`
	ExternType  string         `json:"extern_type"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Email       string         `json:"email"`
	PhoneNumber string         `json:"phone_number,omitempty"`
	Address     AddressRequest `json:"address"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ToAddress convierte la dirección recibida.
func (r AddressRequest) ToAddress() entity.Address {
	return entity.Address{Street: r.Street, City: r.City, Municipality: r.Municipality, Zip: r.Zip}
}

// ToExternResponse convierte un externo de dominio.
func ToExternResponse(e *entity.Extern) ExternResponse {
	return ExternResponse{
		ID:          e.ID,
		ExternType:  string(e.Type),
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		PhoneNumber: e.PhoneNumber,
		Address: AddressRequest{
			Street:       e.Address.Street,
			City:         e.Address.City,
			Municipality: e.Address.Municipality,
			Zip:          e.Address.Zip,
		},
		CreatedAt: e.CreatedAt,
	}
}
