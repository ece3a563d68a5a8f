package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketing-tracker/internal/application/dto"
	"github.com/jhoicas/marketing-tracker/internal/application/usecase"
	"github.com/jhoicas/marketing-tracker/internal/domain"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/infrastructure/flatfile"
)

func newSettingsUC(store *flatfile.Store) *usecase.SettingsUseCase {
	return usecase.NewSettingsUseCase(
		flatfile.NewAppConfigRepository(store),
		flatfile.NewUserRepository(store),
	)
}

// Get devuelve los defaults antes del primer guardado; ambas operaciones
// son de admin.
func TestSettings_GetDefaultsYSoloAdmin(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "root", entity.RoleAdmin)
	seedUser(t, store, "alice", entity.RoleStandard)
	uc := newSettingsUC(store)

	_, err := uc.Get(actorAlice)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := uc.Get(actorAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultAppConfig().AppName, got.AppName)
	assert.False(t, got.NotificationsEnabled)
}

// Save sobreescribe el registro completo y el siguiente Get lo refleja.
func TestSettings_SaveSobreescribe(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "root", entity.RoleAdmin)
	uc := newSettingsUC(store)

	in := dto.SettingsRequest{
		AppName:              "Tracker Renombrado",
		CompanyName:          "Mi Empresa",
		Theme:                "dark",
		NotificationsEnabled: true,
	}
	saved, err := uc.Save(actorAdmin, in)
	require.NoError(t, err)
	assert.Equal(t, in.AppName, saved.AppName)

	got, err := uc.Get(actorAdmin)
	require.NoError(t, err)
	assert.Equal(t, "Tracker Renombrado", got.AppName)
	assert.Equal(t, "dark", got.Theme)
	assert.True(t, got.NotificationsEnabled)
}

// AppName en blanco (incluyendo solo espacios) se rechaza con el campo
// app_name señalado; el registro guardado no se toca.
func TestSettings_SaveAppNameEnBlanco(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "root", entity.RoleAdmin)
	uc := newSettingsUC(store)

	_, err := uc.Save(actorAdmin, dto.SettingsRequest{AppName: "   "})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"app_name"}, verr.Fields)

	got, err := uc.Get(actorAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultAppConfig().AppName, got.AppName)
}
