// Package flatfile implementa los puertos de persistencia sobre archivos
// JSON planos: una colección por archivo, cargada completa en memoria y
// reescrita completa en cada mutación. Un único mutex serializa el acceso;
// el despliegue asume un solo escritor por almacén.
package flatfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
)

// Archivos de colección dentro del directorio de datos.
const (
	usersFile      = "users.json"
	activitiesFile = "activities.json"
	followupsFile  = "followups.json"
	configFile     = "config.json"
)

// Store mantiene las cuatro colecciones en memoria y las persiste en disco.
type Store struct {
	mu  sync.Mutex
	dir string

	users      []*entity.User
	activities []*entity.Activity
	followups  []*entity.Followup
	config     *entity.AppConfig
}

// Open carga (o inicializa) el almacén en el directorio dado. Un archivo
// inexistente equivale a colección vacía; la configuración ausente toma
// los defaults.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}
	s := &Store{dir: dir, config: entity.DefaultAppConfig()}
	if err := loadJSON(filepath.Join(dir, usersFile), &s.users); err != nil {
		return nil, fmt.Errorf("cargar %s: %w", usersFile, err)
	}
	if err := loadJSON(filepath.Join(dir, activitiesFile), &s.activities); err != nil {
		return nil, fmt.Errorf("cargar %s: %w", activitiesFile, err)
	}
	if err := loadJSON(filepath.Join(dir, followupsFile), &s.followups); err != nil {
		return nil, fmt.Errorf("cargar %s: %w", followupsFile, err)
	}
	if err := loadJSON(filepath.Join(dir, configFile), &s.config); err != nil {
		return nil, fmt.Errorf("cargar %s: %w", configFile, err)
	}
	return s, nil
}

func loadJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// saveLocked reescribe un archivo de colección completo. Escribe a un
// temporal y renombra para no dejar un archivo a medias si el proceso cae
// en mitad de la escritura. Requiere s.mu tomado.
func (s *Store) saveLocked(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serializar %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renombrar %s: %w", name, err)
	}
	return nil
}

func (s *Store) saveUsersLocked() error      { return s.saveLocked(usersFile, s.users) }
func (s *Store) saveActivitiesLocked() error { return s.saveLocked(activitiesFile, s.activities) }
func (s *Store) saveFollowupsLocked() error  { return s.saveLocked(followupsFile, s.followups) }
func (s *Store) saveConfigLocked() error     { return s.saveLocked(configFile, s.config) }

// snapshot copia los encabezados de slice de las colecciones mutables por
// la transacción de follow-up. Los repos nunca mutan elementos in place
// (copian al insertar y al reemplazar), así que la copia superficial basta.
type snapshot struct {
	activities []*entity.Activity
	followups  []*entity.Followup
}

func (s *Store) takeSnapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		activities: append([]*entity.Activity(nil), s.activities...),
		followups:  append([]*entity.Followup(nil), s.followups...),
	}
}

func (s *Store) restoreSnapshot(sn snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = sn.activities
	s.followups = sn.followups
	if err := s.saveActivitiesLocked(); err != nil {
		return err
	}
	return s.saveFollowupsLocked()
}
