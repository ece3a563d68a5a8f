package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
)

var _ repository.AppConfigRepository = (*AppConfigRepo)(nil)

// AppConfigRepo persiste el registro singleton de configuración en la fila id=1.
type AppConfigRepo struct {
	q Querier
}

// NewAppConfigRepository construye el adaptador de configuración de la app.
func NewAppConfigRepository(q Querier) *AppConfigRepo {
	return &AppConfigRepo{q: q}
}

// Get devuelve el registro de configuración; defaults si la fila aún no existe.
func (r *AppConfigRepo) Get() (*entity.AppConfig, error) {
	query := `
		SELECT app_name, company_name, theme, notifications_enabled
		FROM app_config WHERE id = 1`
	var cfg entity.AppConfig
	err := r.q.QueryRow(context.Background(), query).Scan(
		&cfg.AppName, &cfg.CompanyName, &cfg.Theme, &cfg.NotificationsEnabled,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.DefaultAppConfig(), nil
		}
		return nil, fmt.Errorf("get app config: %w", err)
	}
	return &cfg, nil
}

// Save sobreescribe el registro completo (upsert sobre la fila id=1).
func (r *AppConfigRepo) Save(cfg *entity.AppConfig) error {
	query := `
		INSERT INTO app_config (id, app_name, company_name, theme, notifications_enabled)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET app_name = EXCLUDED.app_name, company_name = EXCLUDED.company_name,
			theme = EXCLUDED.theme, notifications_enabled = EXCLUDED.notifications_enabled`
	_, err := r.q.Exec(context.Background(), query,
		cfg.AppName, cfg.CompanyName, cfg.Theme, cfg.NotificationsEnabled,
	)
	if err != nil {
		return fmt.Errorf("save app config: %w", err)
	}
	return nil
}
