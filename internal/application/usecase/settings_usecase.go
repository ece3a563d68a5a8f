package usecase

import (
	"strings"

	"github.com/jhoicas/marketing-tracker/internal/application/dto"
	"github.com/jhoicas/marketing-tracker/internal/domain"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
)

// SettingsUseCase lectura y sobreescritura del registro singleton AppConfig.
type SettingsUseCase struct {
	cfg   repository.AppConfigRepository
	users repository.UserRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(cfg repository.AppConfigRepository, users repository.UserRepository) *SettingsUseCase {
	return &SettingsUseCase{cfg: cfg, users: users}
}

// Get devuelve la configuración actual. Solo admin.
func (uc *SettingsUseCase) Get(actor dto.Actor) (*dto.SettingsResponse, error) {
	if err := ensureAdmin(uc.users, actor); err != nil {
		return nil, err
	}
	cfg, err := uc.cfg.Get()
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(cfg), nil
}

// Save sobreescribe la configuración completa. Solo admin.
func (uc *SettingsUseCase) Save(actor dto.Actor, in dto.SettingsRequest) (*dto.SettingsResponse, error) {
	if err := ensureAdmin(uc.users, actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.AppName) == "" {
		return nil, domain.NewValidationError("app_name")
	}
	cfg := &entity.AppConfig{
		AppName:              in.AppName,
		CompanyName:          in.CompanyName,
		Theme:                in.Theme,
		NotificationsEnabled: in.NotificationsEnabled,
	}
	if err := uc.cfg.Save(cfg); err != nil {
		return nil, err
	}
	return toSettingsResponse(cfg), nil
}

// ensureAdmin re-valida contra el almacén que el actor existe y es admin.
// Se consulta siempre, aunque el router ya filtre por rol del token.
func ensureAdmin(users repository.UserRepository, actor dto.Actor) error {
	user, err := users.GetByUsername(actor.Username)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !user.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

func toSettingsResponse(cfg *entity.AppConfig) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		AppName:              cfg.AppName,
		CompanyName:          cfg.CompanyName,
		Theme:                cfg.Theme,
		NotificationsEnabled: cfg.NotificationsEnabled,
	}
}
