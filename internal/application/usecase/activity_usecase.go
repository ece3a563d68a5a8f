package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/marketing-tracker/internal/application/dto"
	"github.com/jhoicas/marketing-tracker/internal/domain"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
	"golang.org/x/text/cases"
)

// Capabilities banderas de la variante edit/delete. Con ambas en false el
// servicio se comporta como la variante base (las actividades nunca se
// editan ni eliminan).
type Capabilities struct {
	CanEdit   bool
	CanDelete bool
}

// ActivityUseCase reglas de negocio de actividades de contacto.
type ActivityUseCase struct {
	activities repository.ActivityRepository
	users      repository.UserRepository
	caps       Capabilities
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(activities repository.ActivityRepository, users repository.UserRepository, caps Capabilities) *ActivityUseCase {
	return &ActivityUseCase{activities: activities, users: users, caps: caps}
}

// Create registra una actividad nueva atribuida al actor. Valida que los
// campos obligatorios no queden en blanco después de recortar espacios y
// que el propietario exista en el almacén. El estado inicial siempre es "new".
func (uc *ActivityUseCase) Create(actor dto.Actor, in dto.CreateActivityRequest) (*dto.ActivityResponse, error) {
	if missing := missingFields(map[string]string{
		"prospect_name":     in.ProspectName,
		"prospect_location": in.ProspectLocation,
		"contact_person":    in.ContactPerson,
		"description":       in.Description,
	}); len(missing) > 0 {
		return nil, domain.NewValidationError(missing...)
	}

	owner, err := uc.users.GetByUsername(actor.Username)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	activityDate := in.ActivityDate
	if activityDate.IsZero() {
		activityDate = now
	}
	activityType := in.ActivityType
	if activityType == "" {
		activityType = entity.TypeOther
	}

	activity := &entity.Activity{
		ID:               uuid.New().String(),
		MarketerUsername: actor.Username,
		ProspectName:     strings.TrimSpace(in.ProspectName),
		ProspectLocation: strings.TrimSpace(in.ProspectLocation),
		ContactPerson:    strings.TrimSpace(in.ContactPerson),
		ContactPosition:  in.ContactPosition,
		ContactPhone:     in.ContactPhone,
		ContactEmail:     in.ContactEmail,
		ActivityDate:     activityDate,
		ActivityType:     activityType,
		Status:           entity.StatusNew,
		Description:      strings.TrimSpace(in.Description),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.activities.Create(activity); err != nil {
		return nil, err
	}
	return toActivityResponse(activity), nil
}

// List devuelve las actividades visibles para el actor: todas si es admin,
// solo las propias si es standard. Aplica el filtro de estado y la búsqueda
// case-insensitive sobre nombre o ubicación del prospecto.
func (uc *ActivityUseCase) List(actor dto.Actor, filter dto.ActivityFilter) ([]*dto.ActivityResponse, error) {
	var list []*entity.Activity
	var err error
	if actor.IsAdmin() {
		list, err = uc.activities.ListAll()
	} else {
		list, err = uc.activities.ListByMarketer(actor.Username)
	}
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(filter.Search))

	out := make([]*dto.ActivityResponse, 0, len(list))
	for _, a := range list {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if term != "" &&
			!strings.Contains(fold.String(a.ProspectName), term) &&
			!strings.Contains(fold.String(a.ProspectLocation), term) {
			continue
		}
		out = append(out, toActivityResponse(a))
	}
	return out, nil
}

// GetByID obtiene una actividad; domain.ErrNotFound si el id no existe.
func (uc *ActivityUseCase) GetByID(id string) (*dto.ActivityResponse, error) {
	activity, err := uc.activities.GetByID(id)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, domain.ErrNotFound
	}
	return toActivityResponse(activity), nil
}

// UpdateStatus fija el estado y refresca updated_at. El enum es plano:
// cualquier estado puede fijarse desde cualquier otro. Solo el propietario
// o un admin pueden cambiar el estado.
func (uc *ActivityUseCase) UpdateStatus(actor dto.Actor, id, status string) (*dto.ActivityResponse, error) {
	if !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	activity, err := uc.activities.GetByID(id)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.IsAdmin() && activity.MarketerUsername != actor.Username {
		return nil, domain.ErrForbidden
	}
	activity.Status = status
	activity.UpdatedAt = time.Now()
	if err := uc.activities.Update(activity); err != nil {
		return nil, err
	}
	return toActivityResponse(activity), nil
}

// Update edita una actividad existente. Requiere la capacidad CanEdit y que
// el actor sea el propietario o admin. Estado, propietario y created_at no
// se tocan por esta vía.
func (uc *ActivityUseCase) Update(actor dto.Actor, id string, in dto.UpdateActivityRequest) (*dto.ActivityResponse, error) {
	if !uc.caps.CanEdit {
		return nil, domain.ErrForbidden
	}
	activity, err := uc.activities.GetByID(id)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.IsAdmin() && activity.MarketerUsername != actor.Username {
		return nil, domain.ErrForbidden
	}
	if missing := missingFields(map[string]string{
		"prospect_name":     in.ProspectName,
		"prospect_location": in.ProspectLocation,
		"contact_person":    in.ContactPerson,
		"description":       in.Description,
	}); len(missing) > 0 {
		return nil, domain.NewValidationError(missing...)
	}

	activity.ProspectName = strings.TrimSpace(in.ProspectName)
	activity.ProspectLocation = strings.TrimSpace(in.ProspectLocation)
	activity.ContactPerson = strings.TrimSpace(in.ContactPerson)
	activity.ContactPosition = in.ContactPosition
	activity.ContactPhone = in.ContactPhone
	activity.ContactEmail = in.ContactEmail
	if !in.ActivityDate.IsZero() {
		activity.ActivityDate = in.ActivityDate
	}
	if in.ActivityType != "" {
		activity.ActivityType = in.ActivityType
	}
	activity.Description = strings.TrimSpace(in.Description)
	activity.UpdatedAt = time.Now()

	if err := uc.activities.Update(activity); err != nil {
		return nil, err
	}
	return toActivityResponse(activity), nil
}

// Delete elimina una actividad. Requiere la capacidad CanDelete y que el
// actor sea el propietario o admin. Los follow-ups asociados no se tocan
// (quedan con referencia colgante, igual que al borrar usuarios).
func (uc *ActivityUseCase) Delete(actor dto.Actor, id string) error {
	if !uc.caps.CanDelete {
		return domain.ErrForbidden
	}
	activity, err := uc.activities.GetByID(id)
	if err != nil {
		return err
	}
	if activity == nil {
		return domain.ErrNotFound
	}
	if !actor.IsAdmin() && activity.MarketerUsername != actor.Username {
		return domain.ErrForbidden
	}
	return uc.activities.Delete(id)
}

// missingFields devuelve los nombres de campos cuyo valor queda en blanco
// después de recortar espacios, en orden estable.
func missingFields(fields map[string]string) []string {
	order := []string{"prospect_name", "prospect_location", "contact_person", "description",
		"notes", "next_action", "username", "password", "name", "email"}
	var missing []string
	for _, name := range order {
		v, ok := fields[name]
		if ok && strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

func toActivityResponse(a *entity.Activity) *dto.ActivityResponse {
	if a == nil {
		return nil
	}
	return &dto.ActivityResponse{
		ID:               a.ID,
		MarketerUsername: a.MarketerUsername,
		ProspectName:     a.ProspectName,
		ProspectLocation: a.ProspectLocation,
		ContactPerson:    a.ContactPerson,
		ContactPosition:  a.ContactPosition,
		ContactPhone:     a.ContactPhone,
		ContactEmail:     a.ContactEmail,
		ActivityDate:     a.ActivityDate,
		ActivityType:     a.ActivityType,
		Status:           a.Status,
		Description:      a.Description,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
