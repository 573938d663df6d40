package entity

import "time"

// Category categoría de artículos (tabla de consulta simple).
type Category struct {
	ID          string
	Designation string
	CreatedAt   time.Time
}
