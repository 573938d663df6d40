package ports

import (
	"context"
	"io"
)

// ImageStore guarda imágenes de artículos y devuelve la referencia persistida en el artículo.
type ImageStore interface {
	Store(ctx context.Context, content io.Reader, filename string) (string, error)
	Delete(ctx context.Context, ref string) error
}
