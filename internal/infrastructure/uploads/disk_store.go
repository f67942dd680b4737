// Package uploads guarda los documentos del registro en disco y devuelve su referencia pública.
// No se inspecciona el contenido: la referencia es opaca para el dominio.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PublicPrefix ruta bajo la cual el router sirve los archivos guardados.
const PublicPrefix = "/uploads"

// DiskStore escribe archivos en Dir con nombre único.
type DiskStore struct {
	dir string
	now func() time.Time
}

// NewDiskStore crea el directorio si no existe.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("uploads: crear directorio: %w", err)
	}
	return &DiskStore{dir: dir, now: time.Now}, nil
}

// Dir directorio físico.
func (s *DiskStore) Dir() string { return s.dir }

// Save copia el archivo subido y devuelve "/uploads/<nombre>".
func (s *DiskStore) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("uploads: abrir archivo: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString()[:8], safeExt(fh.Filename))
	dst, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("uploads: crear archivo: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("uploads: copiar archivo: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("uploads: cerrar archivo: %w", err)
	}
	return PublicPrefix + "/" + name, nil
}

// safeExt conserva la extensión original solo si es alfanumérica; si no, ".bin".
func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if len(ext) < 2 || len(ext) > 10 {
		return ".bin"
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return ".bin"
		}
	}
	return ext
}
