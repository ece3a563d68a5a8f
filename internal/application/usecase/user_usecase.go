package usecase

import (
	"time"

	"github.com/jhoicas/marketing-tracker/internal/application/dto"
	"github.com/jhoicas/marketing-tracker/internal/domain"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase gestión de cuentas. Las operaciones privilegiadas re-validan
// el rol del actor contra el almacén en cada llamada; el claim del token no
// basta por sí solo.
type UserUseCase struct {
	users repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// Create registra un usuario nuevo. Solo admin. La confirmación de password
// es responsabilidad del caller; aquí llega ya verificada y solo se
// persiste el hash bcrypt, nunca el texto plano.
func (uc *UserUseCase) Create(actor dto.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := uc.requireAdmin(actor); err != nil {
		return nil, err
	}
	if missing := missingFields(map[string]string{
		"username": in.Username,
		"password": in.Password,
		"name":     in.Name,
		"email":    in.Email,
	}); len(missing) > 0 {
		return nil, domain.NewValidationError(missing...)
	}

	existing, err := uc.users.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleStandard
	}
	user := &entity.User{
		Username:     in.Username,
		Name:         in.Name,
		Email:        in.Email,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	out := toUserResponse(user)
	return &out, nil
}

// List devuelve todos los usuarios. Solo admin.
func (uc *UserUseCase) List(actor dto.Actor) ([]dto.UserResponse, error) {
	if err := uc.requireAdmin(actor); err != nil {
		return nil, err
	}
	list, err := uc.users.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Delete elimina una cuenta. Solo admin; la auto-eliminación está prohibida
// para cualquier rol. Las actividades y follow-ups del usuario eliminado no
// se reasignan ni se borran: quedan con referencia colgante, comportamiento
// documentado del tracker.
func (uc *UserUseCase) Delete(actor dto.Actor, targetUsername string) error {
	if err := uc.requireAdmin(actor); err != nil {
		return err
	}
	if targetUsername == actor.Username {
		return domain.ErrSelfDeletion
	}
	target, err := uc.users.GetByUsername(targetUsername)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrUserNotFound
	}
	return uc.users.Delete(targetUsername)
}

// ChangePassword cambia la contraseña del propio actor verificando la
// anterior. Es la única vía de escritura del hash: no existe un camino
// alterno que toque la colección de usuarios directamente.
func (uc *UserUseCase) ChangePassword(actor dto.Actor, in dto.ChangePasswordRequest) error {
	if missing := missingFields(map[string]string{
		"password": in.NewPassword,
	}); len(missing) > 0 {
		return domain.NewValidationError(missing...)
	}
	user, err := uc.users.GetByUsername(actor.Username)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return uc.users.Update(user)
}

// EnsureDefaultAdmin siembra la cuenta admin inicial cuando el almacén no
// tiene ningún usuario. Sin ella la API es inalcanzable en un arranque
// limpio: Login no encuentra cuentas y Create re-valida el actor contra el
// almacén vacío. Sobre un almacén con usuarios no hace nada. Devuelve true
// si sembró la cuenta.
func EnsureDefaultAdmin(users repository.UserRepository, username, password, name, email string) (bool, error) {
	list, err := users.List()
	if err != nil {
		return false, err
	}
	if len(list) > 0 {
		return false, nil
	}
	if missing := missingFields(map[string]string{
		"username": username,
		"password": password,
	}); len(missing) > 0 {
		return false, domain.NewValidationError(missing...)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	user := &entity.User{
		Username:     username,
		Name:         name,
		Email:        email,
		Role:         entity.RoleAdmin,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := users.Create(user); err != nil {
		return false, err
	}
	return true, nil
}

// requireAdmin re-valida contra el almacén que el actor existe y es admin.
func (uc *UserUseCase) requireAdmin(actor dto.Actor) error {
	return ensureAdmin(uc.users, actor)
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
