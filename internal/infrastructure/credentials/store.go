// Package credentials persiste el token del backend y el usuario autenticado en un archivo
// JSON bajo el directorio de configuración del usuario (permisos 0600).
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/sinv-console/internal/application/ports"
	"github.com/jhoicas/sinv-console/internal/domain"
)

// ErrNotFound no hay credenciales guardadas.
var ErrNotFound = fmt.Errorf("credentials: no hay credenciales guardadas: %w", domain.ErrNotFound)

var _ ports.CredentialStore = (*FileStore)(nil)

// FileStore almacén en archivo.
type FileStore struct {
	path string
}

// NewFileStore usa path; si está vacío usa $XDG_CONFIG_HOME/sinv-console/credentials.json
// o ~/.config/sinv-console/credentials.json.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = filepath.Join(configDir(), "credentials.json")
	}
	return &FileStore{path: path}
}

// Path ruta del archivo.
func (s *FileStore) Path() string { return s.path }

func configDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "sinv-console")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "sinv-console")
	}
	return filepath.Join(home, ".config", "sinv-console")
}

// Save escribe el registro de forma atómica (archivo temporal + rename).
func (s *FileStore) Save(rec ports.Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("credentials: crear directorio: %w", err)
	}
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("credentials: serializar: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("credentials: escribir: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("credentials: reemplazar: %w", err)
	}
	return nil
}

// Load lee el registro; ErrNotFound si no existe.
func (s *FileStore) Load() (ports.Credentials, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ports.Credentials{}, ErrNotFound
	}
	if err != nil {
		return ports.Credentials{}, fmt.Errorf("credentials: leer: %w", err)
	}
	var rec ports.Credentials
	if err := json.Unmarshal(b, &rec); err != nil {
		return ports.Credentials{}, fmt.Errorf("credentials: archivo corrupto: %w", err)
	}
	if rec.Token == "" {
		return ports.Credentials{}, ErrNotFound
	}
	return rec, nil
}

// Delete elimina el archivo; no falla si ya no existe.
func (s *FileStore) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("credentials: eliminar: %w", err)
	}
	return nil
}
