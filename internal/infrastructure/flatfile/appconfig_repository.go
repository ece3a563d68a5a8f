package flatfile

import (
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
)

var _ repository.AppConfigRepository = (*AppConfigRepo)(nil)

// AppConfigRepo implementación del puerto AppConfigRepository sobre el almacén plano.
type AppConfigRepo struct {
	store *Store
}

// NewAppConfigRepository construye el adaptador del registro singleton.
func NewAppConfigRepository(store *Store) *AppConfigRepo {
	return &AppConfigRepo{store: store}
}

// Get devuelve la configuración vigente; nunca nil (Open carga defaults).
func (r *AppConfigRepo) Get() (*entity.AppConfig, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *s.config
	return &cp, nil
}

// Save sobreescribe el registro completo.
func (r *AppConfigRepo) Save(cfg *entity.AppConfig) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *cfg
	s.config = &cp
	return s.saveConfigLocked()
}
