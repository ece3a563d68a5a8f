package notify_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketing-tracker/internal/application/dto"
	"github.com/jhoicas/marketing-tracker/internal/application/notify"
	"github.com/jhoicas/marketing-tracker/internal/application/usecase"
	"github.com/jhoicas/marketing-tracker/internal/domain"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/infrastructure/flatfile"
)

var (
	actorAdmin = dto.Actor{Username: "root", Role: entity.RoleAdmin}
	actorAlice = dto.Actor{Username: "alice", Role: entity.RoleStandard}
)

// fakeSender captura los digests en memoria; failFor simula fallos SMTP
// por destinatario.
type fakeSender struct {
	sent    []notify.Digest
	failFor map[string]bool
}

func (s *fakeSender) SendFollowupDigest(d notify.Digest) error {
	if s.failFor[d.To] {
		return errors.New("smtp: conexión rechazada")
	}
	s.sent = append(s.sent, d)
	return nil
}

type reminderEnv struct {
	uc     *notify.ReminderUseCase
	sender *fakeSender
	cfg    *flatfile.AppConfigRepo
}

func newReminderEnv(t *testing.T, notificationsEnabled bool) *reminderEnv {
	t.Helper()
	store, err := flatfile.Open(t.TempDir())
	require.NoError(t, err)
	users := flatfile.NewUserRepository(store)
	activities := flatfile.NewActivityRepository(store)
	followups := flatfile.NewFollowupRepository(store)
	cfgRepo := flatfile.NewAppConfigRepository(store)

	for _, u := range []struct{ username, role string }{
		{"root", entity.RoleAdmin},
		{"alice", entity.RoleStandard},
		{"bob", entity.RoleStandard},
	} {
		require.NoError(t, users.Create(&entity.User{
			Username: u.username, Name: "Usuario " + u.username,
			Email: u.username + "@example.com", Role: u.role,
			PasswordHash: "hash", CreatedAt: time.Now(),
		}))
	}

	cfg := entity.DefaultAppConfig()
	cfg.NotificationsEnabled = notificationsEnabled
	require.NoError(t, cfgRepo.Save(cfg))

	// alice tiene un follow-up dentro de la ventana; bob ninguno.
	now := time.Now()
	activity := &entity.Activity{
		ID: uuid.New().String(), MarketerUsername: "alice",
		ProspectName: "Acme Corp", ProspectLocation: "Jakarta",
		ContactPerson: "Budi", ActivityDate: now, ActivityType: entity.TypeMeeting,
		Status: entity.StatusInProgress, Description: "d", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, activities.Create(activity))
	require.NoError(t, followups.Create(&entity.Followup{
		ID: uuid.New().String(), ActivityID: activity.ID, MarketerUsername: "alice",
		FollowupDate: now, Notes: "n", NextAction: "Agendar demo",
		NextFollowupDate: now.AddDate(0, 0, 2), InterestLevel: 4,
		StatusUpdate: entity.StatusInProgress, CreatedAt: now,
	}))

	sender := &fakeSender{failFor: map[string]bool{}}
	followupUC := usecase.NewFollowupUseCase(flatfile.NewTxRunner(store), followups, activities)
	return &reminderEnv{
		uc:     notify.NewReminderUseCase(users, cfgRepo, followupUC, sender),
		sender: sender,
		cfg:    cfgRepo,
	}
}

// Solo los marketers con follow-ups próximos reciben digest.
func TestSendReminders_EnviaDigests(t *testing.T) {
	e := newReminderEnv(t, true)

	result, err := e.uc.SendReminders(actorAdmin)
	require.NoError(t, err)
	assert.True(t, result.Enabled)
	assert.Equal(t, 1, result.Sent)
	assert.Zero(t, result.Failed)

	require.Len(t, e.sender.sent, 1)
	digest := e.sender.sent[0]
	assert.Equal(t, "alice@example.com", digest.To)
	require.Len(t, digest.Items, 1)
	assert.Equal(t, "Acme Corp", digest.Items[0].ProspectName)
}

// Con las notificaciones apagadas el barrido es un no-op.
func TestSendReminders_Deshabilitado(t *testing.T) {
	e := newReminderEnv(t, false)

	result, err := e.uc.SendReminders(actorAdmin)
	require.NoError(t, err)
	assert.False(t, result.Enabled)
	assert.Zero(t, result.Sent)
	assert.Empty(t, e.sender.sent)
}

// Un fallo SMTP se cuenta y no corta el barrido.
func TestSendReminders_FalloNoCorta(t *testing.T) {
	e := newReminderEnv(t, true)
	e.sender.failFor["alice@example.com"] = true

	result, err := e.uc.SendReminders(actorAdmin)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Sent)
	assert.Equal(t, 1, result.Failed)
}

// El barrido es de admin.
func TestSendReminders_SoloAdmin(t *testing.T) {
	e := newReminderEnv(t, true)

	_, err := e.uc.SendReminders(actorAlice)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
