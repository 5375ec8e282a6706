// Package filesystem guarda en disco las imágenes subidas como base64.
package filesystem

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
)

var dataURLPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// ImageStorage es un adaptador outbound que escribe en <publicDir>/images/<kind>/.
type ImageStorage struct {
	dir string
	loc *time.Location
	now func() time.Time
	mu  sync.Mutex // Evita que dos subidas en el mismo segundo elijan el mismo nombre.
}

var _ sharedDomain.ImageStore = (*ImageStorage)(nil)

// NewImageStorage es el constructor. loc fija la zona horaria de los nombres de fichero.
func NewImageStorage(publicDir, kind string, loc *time.Location) *ImageStorage {
	if loc == nil {
		loc = time.UTC
	}
	return &ImageStorage{
		dir: filepath.Join(publicDir, "images", kind),
		loc: loc,
		now: time.Now,
	}
}

// Save decodifica la data URL y la escribe como <YYYYMMDDHHmmss>.<jpg|png>.
func (s *ImageStorage) Save(ctx context.Context, dataURL string) (string, error) {
	prefix := dataURLPrefix.FindString(dataURL)
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, prefix))
	if err != nil || len(raw) == 0 {
		return "", sharedDomain.ErrInvalidImage
	}

	ext := "png"
	if strings.Contains(prefix, "jpeg") {
		ext = "jpg"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}

	stamp := s.now().In(s.loc).Format("20060102150405")
	name := stamp + "." + ext
	for i := 1; s.exists(name); i++ {
		name = fmt.Sprintf("%s-%d.%s", stamp, i, ext)
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return name, nil
}

// Remove borra el fichero; si ya no existe no es un error.
func (s *ImageStorage) Remove(ctx context.Context, name string) error {
	if name == "" || filepath.Base(name) != name {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *ImageStorage) exists(name string) bool {
	_, err := os.Stat(filepath.Join(s.dir, name))
	return err == nil
}
