// Package export agrupa las proyecciones de solo-ida del almacén: CSV,
// backup/restore en zip y el reporte de integridad referencial.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/jhoicas/marketing-tracker/internal/application/dto"
	"github.com/jhoicas/marketing-tracker/internal/domain"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
)

// Colecciones exportables a CSV.
const (
	KindActivities = "activities"
	KindFollowups  = "followups"
	KindUsers      = "users"
)

// ExportUseCase proyecciones del almacén completo. Todas las operaciones
// son de admin; el rol se re-valida contra el almacén en cada llamada.
type ExportUseCase struct {
	users      repository.UserRepository
	activities repository.ActivityRepository
	followups  repository.FollowupRepository
	cfg        repository.AppConfigRepository
}

// NewExportUseCase construye el caso de uso con los cuatro puertos.
func NewExportUseCase(
	users repository.UserRepository,
	activities repository.ActivityRepository,
	followups repository.FollowupRepository,
	cfg repository.AppConfigRepository,
) *ExportUseCase {
	return &ExportUseCase{users: users, activities: activities, followups: followups, cfg: cfg}
}

// ExportCSV proyecta una colección a texto separado por comas. Los usuarios
// se exportan sin hash de password. Kind desconocido → ErrInvalidInput.
func (uc *ExportUseCase) ExportCSV(actor dto.Actor, kind string) ([]byte, error) {
	if err := requireAdmin(uc.users, actor); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	switch kind {
	case KindActivities:
		if err := uc.writeActivities(w); err != nil {
			return nil, err
		}
	case KindFollowups:
		if err := uc.writeFollowups(w); err != nil {
			return nil, err
		}
	case KindUsers:
		if err := uc.writeUsers(w); err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (uc *ExportUseCase) writeActivities(w *csv.Writer) error {
	list, err := uc.activities.ListAll()
	if err != nil {
		return err
	}
	if err := w.Write([]string{
		"id", "marketer_username", "prospect_name", "prospect_location",
		"contact_person", "contact_position", "contact_phone", "contact_email",
		"activity_date", "activity_type", "status", "description",
		"created_at", "updated_at",
	}); err != nil {
		return err
	}
	for _, a := range list {
		if err := w.Write([]string{
			a.ID, a.MarketerUsername, a.ProspectName, a.ProspectLocation,
			a.ContactPerson, a.ContactPosition, a.ContactPhone, a.ContactEmail,
			a.ActivityDate.Format(time.RFC3339), a.ActivityType, a.Status, a.Description,
			a.CreatedAt.Format(time.RFC3339), a.UpdatedAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (uc *ExportUseCase) writeFollowups(w *csv.Writer) error {
	list, err := uc.followups.ListAll()
	if err != nil {
		return err
	}
	if err := w.Write([]string{
		"id", "activity_id", "marketer_username", "followup_date", "notes",
		"next_action", "next_followup_date", "interest_level", "status_update", "created_at",
	}); err != nil {
		return err
	}
	for _, f := range list {
		if err := w.Write([]string{
			f.ID, f.ActivityID, f.MarketerUsername, f.FollowupDate.Format(time.RFC3339), f.Notes,
			f.NextAction, f.NextFollowupDate.Format(time.RFC3339),
			strconv.Itoa(f.InterestLevel), f.StatusUpdate, f.CreatedAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (uc *ExportUseCase) writeUsers(w *csv.Writer) error {
	list, err := uc.users.List()
	if err != nil {
		return err
	}
	// Sin password_hash: el CSV es para consumo externo.
	if err := w.Write([]string{"username", "name", "email", "role", "created_at"}); err != nil {
		return err
	}
	for _, u := range list {
		if err := w.Write([]string{
			u.Username, u.Name, u.Email, u.Role, u.CreatedAt.Format(time.RFC3339),
		}); err != nil {
			return err
		}
	}
	return nil
}

// requireAdmin re-valida contra el almacén que el actor existe y es admin.
func requireAdmin(users repository.UserRepository, actor dto.Actor) error {
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
