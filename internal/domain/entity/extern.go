package entity

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/stock-articulos-api/internal/domain"
)

// ExternType distingue clientes de proveedores.
type ExternType string

const (
	ExternTypeClient   ExternType = "CLIENT"
	ExternTypeSupplier ExternType = "SUPPLIER"
)

// Límites de longitud de los datos de contacto.
const (
	MaxFirstNameLength = 123
	MaxLastNameLength  = 80
	MaxEmailLength     = 320
	MaxPhoneLength     = 17
	MaxAddressLength   = 100
	MaxZipLength       = 10
)

// Valid indica si el tipo es CLIENT o SUPPLIER.
func (t ExternType) Valid() bool {
	return t == ExternTypeClient || t == ExternTypeSupplier
}

// ParseExternType acepta el tipo sin distinguir mayúsculas.
func ParseExternType(s string) (ExternType, error) {
	t := ExternType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", domain.ErrInvalidInput
	}
	return t, nil
}

// Address dirección postal de un externo. Municipality es opcional.
type Address struct {
	Street       string
	City         string
	Municipality string
	Zip          string
}

// Extern cliente o proveedor. El email es único sin distinguir mayúsculas.
type Extern struct {
	ID          string
	Type        ExternType
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Address     Address
	CreatedAt   time.Time
}

// EmailKey clave de unicidad del email.
func EmailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Normalize recorta espacios de todos los campos de texto.
func (e *Extern) Normalize() {
	e.FirstName = strings.TrimSpace(e.FirstName)
	e.LastName = strings.TrimSpace(e.LastName)
	e.Email = strings.TrimSpace(e.Email)
	e.PhoneNumber = strings.TrimSpace(e.PhoneNumber)
	e.Address.Street = strings.TrimSpace(e.Address.Street)
	e.Address.City = strings.TrimSpace(e.Address.City)
	e.Address.Municipality = strings.TrimSpace(e.Address.Municipality)
	e.Address.Zip = strings.TrimSpace(e.Address.Zip)
}

// Validate comprueba obligatorios, longitudes y formato del email.
func (e *Extern) Validate() error {
	if !e.Type.Valid() {
		return domain.ErrInvalidInput
	}
	required := []struct {
		value string
		max   int
	}{
		{e.FirstName, MaxFirstNameLength},
		{e.LastName, MaxLastNameLength},
		{e.Email, MaxEmailLength},
		{e.Address.Street, MaxAddressLength},
		{e.Address.City, MaxAddressLength},
		{e.Address.Zip, MaxZipLength},
	}
	for _, f := range required {
		if f.value == "" || utf8.RuneCountInString(f.value) > f.max {
			return domain.ErrInvalidInput
		}
	}
	if utf8.RuneCountInString(e.PhoneNumber) > MaxPhoneLength ||
		utf8.RuneCountInString(e.Address.Municipality) > MaxAddressLength {
		return domain.ErrInvalidInput
	}
	// Solo la dirección desnuda: "Nombre <a@b>" no es un email válido aquí.
	addr, err := mail.ParseAddress(e.Email)
	if err != nil || addr.Address != e.Email {
		return domain.ErrInvalidInput
	}
	return nil
}
