// Package storage guarda las imágenes de los artículos en el sistema de archivos local.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-articulos-api/internal/application/ports"
	"github.com/jhoicas/stock-articulos-api/internal/domain"
)

var _ ports.ImageStore = (*LocalImageStore)(nil)

// LocalImageStore escribe cada imagen como <uuid>_<nombre> dentro de dir.
type LocalImageStore struct {
	dir string
}

// NewLocalImageStore crea el directorio si no existe.
func NewLocalImageStore(dir string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear directorio %s: %w", dir, err)
	}
	return &LocalImageStore{dir: dir}, nil
}

// Dir directorio raíz de las imágenes (servido como estático).
func (s *LocalImageStore) Dir() string { return s.dir }

// Store copia content a un archivo nuevo y devuelve su nombre como referencia.
func (s *LocalImageStore) Store(ctx context.Context, content io.Reader, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "", domain.ErrInvalidInput
	}
	ref := uuid.New().String() + "_" + base

	f, err := os.OpenFile(filepath.Join(s.dir, ref), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: crear %s: %w: %w", ref, domain.ErrStorage, err)
	}
	if _, err := io.Copy(f, content); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("storage: escribir %s: %w: %w", ref, domain.ErrStorage, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("storage: cerrar %s: %w: %w", ref, domain.ErrStorage, err)
	}
	return ref, nil
}

// Delete borra la imagen; una referencia inexistente no es error.
func (s *LocalImageStore) Delete(_ context.Context, ref string) error {
	if ref == "" || ref != filepath.Base(ref) {
		return domain.ErrInvalidInput
	}
	if err := os.Remove(filepath.Join(s.dir, ref)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: borrar %s: %w: %w", ref, domain.ErrStorage, err)
	}
	return nil
}
