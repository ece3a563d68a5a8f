// Package notify envía por correo los recordatorios de follow-ups próximos.
package notify

import (
	"github.com/jhoicas/marketing-tracker/internal/application/dto"
	"github.com/jhoicas/marketing-tracker/internal/application/usecase"
	"github.com/jhoicas/marketing-tracker/internal/domain"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
)

// Digest resumen de follow-ups próximos para un marketer.
type Digest struct {
	To      string
	Name    string
	AppName string
	Items   []*dto.UpcomingFollowupResponse
}

// MailSender puerto de envío de correo. Lo implementa infrastructure/mail.
type MailSender interface {
	SendFollowupDigest(d Digest) error
}

// Result resultado del barrido de recordatorios.
type Result struct {
	Enabled bool `json:"enabled"`
	Sent    int  `json:"sent"`
	Failed  int  `json:"failed"`
}

// ReminderUseCase arma y envía un digest por marketer con sus follow-ups de
// los próximos 7 días. Operación síncrona disparada por un admin; no hay
// tareas en segundo plano.
type ReminderUseCase struct {
	users      repository.UserRepository
	cfg        repository.AppConfigRepository
	followupUC *usecase.FollowupUseCase
	sender     MailSender
}

// NewReminderUseCase construye el caso de uso.
func NewReminderUseCase(
	users repository.UserRepository,
	cfg repository.AppConfigRepository,
	followupUC *usecase.FollowupUseCase,
	sender MailSender,
) *ReminderUseCase {
	return &ReminderUseCase{users: users, cfg: cfg, followupUC: followupUC, sender: sender}
}

// SendReminders recorre los marketers y envía a cada uno su digest de
// follow-ups próximos. Con las notificaciones deshabilitadas en AppConfig
// es un no-op (Enabled=false en el resultado). Un envío fallido no corta el
// barrido: se cuenta en Failed y se continúa con el resto.
func (uc *ReminderUseCase) SendReminders(actor dto.Actor) (*Result, error) {
	if err := uc.requireAdmin(actor); err != nil {
		return nil, err
	}

	cfg, err := uc.cfg.Get()
	if err != nil {
		return nil, err
	}
	if !cfg.NotificationsEnabled {
		return &Result{Enabled: false}, nil
	}

	users, err := uc.users.List()
	if err != nil {
		return nil, err
	}

	result := &Result{Enabled: true}
	for _, u := range users {
		if u.Role != entity.RoleStandard || u.Email == "" {
			continue
		}
		upcoming, err := uc.followupUC.Upcoming(
			dto.Actor{Username: u.Username, Role: u.Role},
			usecase.DefaultUpcomingHorizonDays,
		)
		if err != nil {
			return nil, err
		}
		if len(upcoming) == 0 {
			continue
		}
		digest := Digest{
			To:      u.Email,
			Name:    u.Name,
			AppName: cfg.AppName,
			Items:   upcoming,
		}
		if err := uc.sender.SendFollowupDigest(digest); err != nil {
			result.Failed++
			continue
		}
		result.Sent++
	}
	return result, nil
}

func (uc *ReminderUseCase) requireAdmin(actor dto.Actor) error {
	user, err := uc.users.GetByUsername(actor.Username)
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
