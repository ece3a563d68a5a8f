package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/marketing-tracker/internal/application/dto"
	"github.com/jhoicas/marketing-tracker/internal/application/usecase"
	"github.com/jhoicas/marketing-tracker/internal/domain"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/infrastructure/flatfile"
)

func newUserUC(store *flatfile.Store) *usecase.UserUseCase {
	return usecase.NewUserUseCase(flatfile.NewUserRepository(store))
}

func validUserRequest(username string) dto.CreateUserRequest {
	return dto.CreateUserRequest{
		Username:        username,
		Password:        "clave-segura",
		ConfirmPassword: "clave-segura",
		Name:            "Usuario " + username,
		Email:           username + "@example.com",
		Role:            entity.RoleStandard,
	}
}

// Solo un admin (verificado contra el almacén, no solo por el claim) puede
// crear cuentas.
func TestUserCreate_SoloAdmin(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "root", entity.RoleAdmin)
	seedUser(t, store, "alice", entity.RoleStandard)
	uc := newUserUC(store)

	_, err := uc.Create(actorAlice, validUserRequest("carol"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Un token con rol admin cuyo usuario ya no existe en el almacén tampoco pasa.
	impostor := dto.Actor{Username: "borrado", Role: entity.RoleAdmin}
	_, err = uc.Create(impostor, validUserRequest("carol"))
	assert.Error(t, err)

	out, err := uc.Create(actorAdmin, validUserRequest("carol"))
	require.NoError(t, err)
	assert.Equal(t, "carol", out.Username)
	assert.Equal(t, entity.RoleStandard, out.Role)
}

// Username duplicado → ErrDuplicate.
func TestUserCreate_Duplicado(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "root", entity.RoleAdmin)
	uc := newUserUC(store)

	_, err := uc.Create(actorAdmin, validUserRequest("carol"))
	require.NoError(t, err)
	_, err = uc.Create(actorAdmin, validUserRequest("carol"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// La auto-eliminación está prohibida para cualquier rol, incluido admin.
func TestUserDelete_AutoEliminacionProhibida(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "root", entity.RoleAdmin)
	seedUser(t, store, "alice", entity.RoleStandard)
	uc := newUserUC(store)

	err := uc.Delete(actorAdmin, "root")
	assert.ErrorIs(t, err, domain.ErrSelfDeletion, "el admin no puede borrarse a sí mismo")

	err = uc.Delete(actorAlice, "alice")
	assert.Error(t, err, "un standard ni siquiera llega a la regla de auto-eliminación")

	err = uc.Delete(actorAdmin, "alice")
	require.NoError(t, err)

	err = uc.Delete(actorAdmin, "alice")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// Borrar un usuario no borra ni reasigna sus actividades: quedan con
// referencia colgante (comportamiento documentado).
func TestUserDelete_NoCascada(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "root", entity.RoleAdmin)
	seedUser(t, store, "alice", entity.RoleStandard)
	userUC := newUserUC(store)
	activityUC := newActivityUC(store, usecase.Capabilities{})

	created, err := activityUC.Create(actorAlice, validActivityRequest())
	require.NoError(t, err)

	require.NoError(t, userUC.Delete(actorAdmin, "alice"))

	got, err := activityUC.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.MarketerUsername, "la actividad conserva al propietario borrado")
}

// Cambio de contraseña: requiere la contraseña anterior correcta.
func TestUserChangePassword(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "alice", entity.RoleStandard) // password seed: secreto123
	uc := newUserUC(store)

	err := uc.ChangePassword(actorAlice, dto.ChangePasswordRequest{
		OldPassword: "incorrecta",
		NewPassword: "nueva-clave",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = uc.ChangePassword(actorAlice, dto.ChangePasswordRequest{
		OldPassword: "secreto123",
		NewPassword: "nueva-clave",
	})
	require.NoError(t, err)

	// La anterior deja de servir de inmediato.
	err = uc.ChangePassword(actorAlice, dto.ChangePasswordRequest{
		OldPassword: "secreto123",
		NewPassword: "otra-mas",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	err = uc.ChangePassword(actorAlice, dto.ChangePasswordRequest{
		OldPassword: "nueva-clave",
		NewPassword: "otra-mas",
	})
	require.NoError(t, err)
}

// Sobre un almacén recién creado nadie puede autenticarse ni crear cuentas;
// la siembra del admin inicial destraba el arranque. Sobre un almacén con
// usuarios no toca nada.
func TestEnsureDefaultAdmin(t *testing.T) {
	store := newStore(t)
	users := flatfile.NewUserRepository(store)
	uc := newUserUC(store)

	// Sin la siembra, ni siquiera un token con claim admin sirve.
	_, err := uc.Create(actorAdmin, validUserRequest("carol"))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	seeded, err := usecase.EnsureDefaultAdmin(users, "admin", "clave-inicial", "Administrador", "admin@example.com")
	require.NoError(t, err)
	assert.True(t, seeded)

	admin, err := users.GetByUsername("admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("clave-inicial")),
		"la contraseña configurada autentica")

	// Con la cuenta sembrada el flujo normal queda destrabado.
	_, err = uc.Create(dto.Actor{Username: "admin", Role: entity.RoleAdmin}, validUserRequest("carol"))
	require.NoError(t, err)

	// Una segunda siembra sobre un almacén poblado no hace nada.
	seeded, err = usecase.EnsureDefaultAdmin(users, "admin", "otra-clave", "Administrador", "admin@example.com")
	require.NoError(t, err)
	assert.False(t, seeded)
	same, err := users.GetByUsername("admin")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(same.PasswordHash), []byte("clave-inicial")),
		"la contraseña original no se pisa")
}

// Credenciales en blanco no siembran nada.
func TestEnsureDefaultAdmin_CredencialesEnBlanco(t *testing.T) {
	store := newStore(t)
	users := flatfile.NewUserRepository(store)

	seeded, err := usecase.EnsureDefaultAdmin(users, "admin", "  ", "Administrador", "admin@example.com")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, seeded)

	list, err := users.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

// List es solo de admin y nunca expone hashes.
func TestUserList_SoloAdmin(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "root", entity.RoleAdmin)
	seedUser(t, store, "alice", entity.RoleStandard)
	uc := newUserUC(store)

	_, err := uc.List(actorAlice)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := uc.List(actorAdmin)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
