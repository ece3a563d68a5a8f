package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/marketing-tracker/internal/application/dto"
	"github.com/jhoicas/marketing-tracker/internal/domain"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
)

// DefaultUpcomingHorizonDays ventana por defecto de follow-ups próximos.
const DefaultUpcomingHorizonDays = 7

// orphanProspectName marcador cuando la actividad padre de un follow-up ya no existe.
const orphanProspectName = "N/A"

// TxRunner ejecuta fn con repos de actividades y follow-ups atados a la
// misma unidad atómica: una transacción en PostgreSQL, la sección crítica
// del mutex en el almacén de archivos planos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		activities repository.ActivityRepository,
		followups repository.FollowupRepository,
	) error) error
}

// FollowupUseCase reglas de negocio de follow-ups. Registrar un follow-up
// siempre arrastra el cambio de estado de la actividad padre; ambos efectos
// viajan en la misma unidad atómica.
type FollowupUseCase struct {
	tx         TxRunner
	followups  repository.FollowupRepository
	activities repository.ActivityRepository
}

// NewFollowupUseCase construye el caso de uso.
func NewFollowupUseCase(tx TxRunner, followups repository.FollowupRepository, activities repository.ActivityRepository) *FollowupUseCase {
	return &FollowupUseCase{tx: tx, followups: followups, activities: activities}
}

// Create registra un follow-up y aplica StatusUpdate a la actividad padre.
// Valida notes y next_action no vacíos, que la actividad exista y que el
// estado pedido sea del enum; el nivel de interés se acota a [1,5]. Solo el
// propietario de la actividad o un admin pueden registrar follow-ups sobre
// ella: el cambio de estado que arrastra lo convierte en una escritura.
func (uc *FollowupUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateFollowupRequest) (*dto.FollowupResponse, error) {
	if missing := missingFields(map[string]string{
		"notes":       in.Notes,
		"next_action": in.NextAction,
	}); len(missing) > 0 {
		return nil, domain.NewValidationError(missing...)
	}
	if !entity.ValidStatus(in.StatusUpdate) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	followupDate := in.FollowupDate
	if followupDate.IsZero() {
		followupDate = now
	}
	followup := &entity.Followup{
		ID:               uuid.New().String(),
		ActivityID:       in.ActivityID,
		MarketerUsername: actor.Username,
		FollowupDate:     followupDate,
		Notes:            in.Notes,
		NextAction:       in.NextAction,
		NextFollowupDate: in.NextFollowupDate,
		InterestLevel:    entity.ClampInterest(in.InterestLevel),
		StatusUpdate:     in.StatusUpdate,
		CreatedAt:        now,
	}

	err := uc.tx.Run(ctx, func(activities repository.ActivityRepository, followups repository.FollowupRepository) error {
		activity, err := activities.GetByID(in.ActivityID)
		if err != nil {
			return err
		}
		if activity == nil {
			return domain.ErrNotFound
		}
		if !actor.IsAdmin() && activity.MarketerUsername != actor.Username {
			return domain.ErrForbidden
		}
		if err := followups.Create(followup); err != nil {
			return err
		}
		activity.Status = in.StatusUpdate
		activity.UpdatedAt = now
		return activities.Update(activity)
	})
	if err != nil {
		return nil, err
	}
	return toFollowupResponse(followup), nil
}

// ListByActivity devuelve los follow-ups de una actividad, más reciente
// primero. Un usuario standard solo accede al historial de sus propias
// actividades; las ajenas responden domain.ErrNotFound para no revelar su
// existencia. Si la actividad ya fue borrada, el historial huérfano se
// restringe a los follow-ups del propio actor.
func (uc *FollowupUseCase) ListByActivity(actor dto.Actor, activityID string) ([]*dto.FollowupResponse, error) {
	activity, err := uc.activities.GetByID(activityID)
	if err != nil {
		return nil, err
	}
	if activity != nil && !actor.IsAdmin() && activity.MarketerUsername != actor.Username {
		return nil, domain.ErrNotFound
	}
	list, err := uc.followups.ListByActivity(activityID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FollowupResponse, 0, len(list))
	for _, f := range list {
		if activity == nil && !actor.IsAdmin() && f.MarketerUsername != actor.Username {
			continue
		}
		out = append(out, toFollowupResponse(f))
	}
	return out, nil
}

// List devuelve los follow-ups visibles para el actor (misma regla de
// propiedad que las actividades).
func (uc *FollowupUseCase) List(actor dto.Actor) ([]*dto.FollowupResponse, error) {
	var list []*entity.Followup
	var err error
	if actor.IsAdmin() {
		list, err = uc.followups.ListAll()
	} else {
		list, err = uc.followups.ListByMarketer(actor.Username)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FollowupResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFollowupResponse(f))
	}
	return out, nil
}

// Upcoming devuelve los follow-ups cuyo next_followup_date cae en
// [ahora, ahora + horizonDays], ambos extremos incluidos, unidos con el
// nombre del prospecto de su actividad. Una actividad borrada no hace
// fallar la consulta: se sustituye el nombre por "N/A".
func (uc *FollowupUseCase) Upcoming(actor dto.Actor, horizonDays int) ([]*dto.UpcomingFollowupResponse, error) {
	if horizonDays <= 0 {
		horizonDays = DefaultUpcomingHorizonDays
	}
	now := time.Now()
	list, err := uc.followups.ListUpcoming(now, now.AddDate(0, 0, horizonDays))
	if err != nil {
		return nil, err
	}

	out := make([]*dto.UpcomingFollowupResponse, 0, len(list))
	for _, f := range list {
		if !actor.IsAdmin() && f.MarketerUsername != actor.Username {
			continue
		}
		prospect := orphanProspectName
		activity, err := uc.activities.GetByID(f.ActivityID)
		if err != nil {
			return nil, err
		}
		if activity != nil {
			prospect = activity.ProspectName
		}
		out = append(out, &dto.UpcomingFollowupResponse{
			ID:               f.ID,
			ActivityID:       f.ActivityID,
			MarketerUsername: f.MarketerUsername,
			ProspectName:     prospect,
			NextFollowupDate: f.NextFollowupDate,
			NextAction:       f.NextAction,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NextFollowupDate.Before(out[j].NextFollowupDate)
	})
	return out, nil
}

func toFollowupResponse(f *entity.Followup) *dto.FollowupResponse {
	if f == nil {
		return nil
	}
	return &dto.FollowupResponse{
		ID:               f.ID,
		ActivityID:       f.ActivityID,
		MarketerUsername: f.MarketerUsername,
		FollowupDate:     f.FollowupDate,
		Notes:            f.Notes,
		NextAction:       f.NextAction,
		NextFollowupDate: f.NextFollowupDate,
		InterestLevel:    f.InterestLevel,
		StatusUpdate:     f.StatusUpdate,
		CreatedAt:        f.CreatedAt,
	}
}
