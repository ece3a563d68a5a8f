package repository

import "github.com/jhoicas/marketing-tracker/internal/domain/entity"

// AppConfigRepository define el puerto para el registro singleton de configuración.
type AppConfigRepository interface {
	// Get nunca devuelve nil: si el almacén no tiene registro, devuelve los defaults.
	Get() (*entity.AppConfig, error)
	// Save sobreescribe el registro completo.
	Save(cfg *entity.AppConfig) error
}
