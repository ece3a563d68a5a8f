package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketing-tracker/internal/application/dto"
	"github.com/jhoicas/marketing-tracker/internal/application/usecase"
	"github.com/jhoicas/marketing-tracker/internal/domain"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/infrastructure/flatfile"
)

// newFollowupUC arma el caso de uso de follow-ups sobre el almacén dado.
func newFollowupUC(store *flatfile.Store) *usecase.FollowupUseCase {
	return usecase.NewFollowupUseCase(
		flatfile.NewTxRunner(store),
		flatfile.NewFollowupRepository(store),
		flatfile.NewActivityRepository(store),
	)
}

func validFollowupRequest(activityID string) dto.CreateFollowupRequest {
	return dto.CreateFollowupRequest{
		ActivityID:       activityID,
		Notes:            "Llamada de seguimiento, interesados en la demo",
		NextAction:       "Agendar demo del producto",
		NextFollowupDate: time.Now().AddDate(0, 0, 3),
		InterestLevel:    4,
		StatusUpdate:     entity.StatusInProgress,
	}
}

// El follow-up y el cambio de estado de la actividad viajan juntos:
// status_update "won" deja la actividad en won.
func TestFollowupCreate_PropagaEstado(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "alice", entity.RoleStandard)
	activityUC := newActivityUC(store, usecase.Capabilities{})
	followupUC := newFollowupUC(store)

	activity, err := activityUC.Create(actorAlice, validActivityRequest())
	require.NoError(t, err)

	in := validFollowupRequest(activity.ID)
	in.StatusUpdate = entity.StatusWon
	created, err := followupUC.Create(context.Background(), actorAlice, in)
	require.NoError(t, err)
	assert.Equal(t, "alice", created.MarketerUsername)
	assert.Equal(t, entity.StatusWon, created.StatusUpdate)

	got, err := activityUC.GetByID(activity.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusWon, got.Status, "la actividad refleja el status_update del follow-up")
}

// Actividad inexistente → ErrNotFound y no queda follow-up huérfano grabado.
func TestFollowupCreate_ActividadInexistente(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "alice", entity.RoleStandard)
	followupUC := newFollowupUC(store)

	_, err := followupUC.Create(context.Background(), actorAlice, validFollowupRequest("no-existe"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := followupUC.List(actorAdmin)
	require.NoError(t, err)
	assert.Empty(t, list, "la operación fallida no deja rastro")
}

// Validación de notes/next_action, enum de estado y acotado del interés.
func TestFollowupCreate_Validaciones(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "alice", entity.RoleStandard)
	activityUC := newActivityUC(store, usecase.Capabilities{})
	followupUC := newFollowupUC(store)

	activity, err := activityUC.Create(actorAlice, validActivityRequest())
	require.NoError(t, err)

	in := validFollowupRequest(activity.ID)
	in.Notes = "  "
	_, err = followupUC.Create(context.Background(), actorAlice, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validFollowupRequest(activity.ID)
	in.StatusUpdate = "pendiente"
	_, err = followupUC.Create(context.Background(), actorAlice, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Interés fuera de rango se acota, no se rechaza.
	in = validFollowupRequest(activity.ID)
	in.InterestLevel = 99
	created, err := followupUC.Create(context.Background(), actorAlice, in)
	require.NoError(t, err)
	assert.Equal(t, entity.InterestMax, created.InterestLevel)

	in = validFollowupRequest(activity.ID)
	in.InterestLevel = -3
	created, err = followupUC.Create(context.Background(), actorAlice, in)
	require.NoError(t, err)
	assert.Equal(t, entity.InterestMin, created.InterestLevel)
}

// Registrar un follow-up sobre una actividad ajena está prohibido para
// usuarios standard: arrastra un cambio de estado. El admin sí puede.
func TestFollowupCreate_SoloPropietarioOAdmin(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "alice", entity.RoleStandard)
	seedUser(t, store, "mallory", entity.RoleStandard)
	seedUser(t, store, "root", entity.RoleAdmin)
	activityUC := newActivityUC(store, usecase.Capabilities{})
	followupUC := newFollowupUC(store)

	activity, err := activityUC.Create(actorAlice, validActivityRequest())
	require.NoError(t, err)

	mallory := dto.Actor{Username: "mallory", Role: entity.RoleStandard}
	in := validFollowupRequest(activity.ID)
	in.StatusUpdate = entity.StatusLost
	_, err = followupUC.Create(context.Background(), mallory, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := activityUC.GetByID(activity.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusNew, got.Status, "el estado de la actividad no cambia en el intento rechazado")

	list, err := followupUC.List(actorAdmin)
	require.NoError(t, err)
	assert.Empty(t, list, "no queda follow-up grabado")

	_, err = followupUC.Create(context.Background(), actorAdmin, validFollowupRequest(activity.ID))
	require.NoError(t, err, "el admin sí puede registrar sobre actividades ajenas")
}

// Propiedad del horizonte: un follow-up a 7 días entra, a 8 días no.
func TestFollowupUpcoming_Horizonte(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "alice", entity.RoleStandard)
	activityUC := newActivityUC(store, usecase.Capabilities{})
	followupUC := newFollowupUC(store)

	activity, err := activityUC.Create(actorAlice, validActivityRequest())
	require.NoError(t, err)

	dentro := validFollowupRequest(activity.ID)
	dentro.NextFollowupDate = time.Now().AddDate(0, 0, 7)
	_, err = followupUC.Create(context.Background(), actorAlice, dentro)
	require.NoError(t, err)

	fuera := validFollowupRequest(activity.ID)
	fuera.NextFollowupDate = time.Now().AddDate(0, 0, 8)
	_, err = followupUC.Create(context.Background(), actorAlice, fuera)
	require.NoError(t, err)

	pasado := validFollowupRequest(activity.ID)
	pasado.NextFollowupDate = time.Now().AddDate(0, 0, -1)
	_, err = followupUC.Create(context.Background(), actorAlice, pasado)
	require.NoError(t, err)

	upcoming, err := followupUC.Upcoming(actorAlice, usecase.DefaultUpcomingHorizonDays)
	require.NoError(t, err)
	require.Len(t, upcoming, 1, "solo el follow-up del día 7 cae en la ventana")
	assert.Equal(t, "Acme Corp", upcoming[0].ProspectName)
}

// Alcance por propietario en Upcoming y orden ascendente por fecha.
func TestFollowupUpcoming_AlcanceYOrden(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "alice", entity.RoleStandard)
	seedUser(t, store, "bob", entity.RoleStandard)
	activityUC := newActivityUC(store, usecase.Capabilities{})
	followupUC := newFollowupUC(store)

	actAlice, err := activityUC.Create(actorAlice, validActivityRequest())
	require.NoError(t, err)
	inBob := validActivityRequest()
	inBob.ProspectName = "Beta Ltd"
	actBob, err := activityUC.Create(actorBob, inBob)
	require.NoError(t, err)

	tarde := validFollowupRequest(actAlice.ID)
	tarde.NextFollowupDate = time.Now().AddDate(0, 0, 5)
	_, err = followupUC.Create(context.Background(), actorAlice, tarde)
	require.NoError(t, err)

	pronto := validFollowupRequest(actAlice.ID)
	pronto.NextFollowupDate = time.Now().AddDate(0, 0, 2)
	_, err = followupUC.Create(context.Background(), actorAlice, pronto)
	require.NoError(t, err)

	deBob := validFollowupRequest(actBob.ID)
	deBob.NextFollowupDate = time.Now().AddDate(0, 0, 3)
	_, err = followupUC.Create(context.Background(), actorBob, deBob)
	require.NoError(t, err)

	propios, err := followupUC.Upcoming(actorAlice, 7)
	require.NoError(t, err)
	require.Len(t, propios, 2, "alice no ve los follow-ups de bob")
	assert.True(t, propios[0].NextFollowupDate.Before(propios[1].NextFollowupDate),
		"orden ascendente por next_followup_date")

	todos, err := followupUC.Upcoming(actorAdmin, 7)
	require.NoError(t, err)
	assert.Len(t, todos, 3, "el admin ve los follow-ups de todos")
}

// Una actividad borrada no rompe Upcoming: el prospecto se reporta como N/A.
func TestFollowupUpcoming_ActividadBorrada(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "alice", entity.RoleStandard)
	activityUC := newActivityUC(store, usecase.Capabilities{CanDelete: true})
	followupUC := newFollowupUC(store)

	activity, err := activityUC.Create(actorAlice, validActivityRequest())
	require.NoError(t, err)
	_, err = followupUC.Create(context.Background(), actorAlice, validFollowupRequest(activity.ID))
	require.NoError(t, err)

	require.NoError(t, activityUC.Delete(actorAlice, activity.ID))

	upcoming, err := followupUC.Upcoming(actorAlice, 7)
	require.NoError(t, err)
	require.Len(t, upcoming, 1, "el follow-up sobrevive al borrado de su actividad")
	assert.Equal(t, "N/A", upcoming[0].ProspectName)
}

// Historial por actividad: más reciente primero.
func TestFollowupListByActivity(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "alice", entity.RoleStandard)
	activityUC := newActivityUC(store, usecase.Capabilities{})
	followupUC := newFollowupUC(store)

	activity, err := activityUC.Create(actorAlice, validActivityRequest())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = followupUC.Create(context.Background(), actorAlice, validFollowupRequest(activity.ID))
		require.NoError(t, err)
	}

	list, err := followupUC.ListByActivity(actorAlice, activity.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i-1].CreatedAt.Before(list[i].CreatedAt),
			"orden descendente por created_at")
	}
}

// El historial de una actividad ajena responde ErrNotFound para usuarios
// standard; el admin accede a cualquiera.
func TestFollowupListByActivity_Alcance(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "alice", entity.RoleStandard)
	seedUser(t, store, "bob", entity.RoleStandard)
	seedUser(t, store, "root", entity.RoleAdmin)
	activityUC := newActivityUC(store, usecase.Capabilities{})
	followupUC := newFollowupUC(store)

	activity, err := activityUC.Create(actorAlice, validActivityRequest())
	require.NoError(t, err)
	_, err = followupUC.Create(context.Background(), actorAlice, validFollowupRequest(activity.ID))
	require.NoError(t, err)

	_, err = followupUC.ListByActivity(actorBob, activity.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "la actividad ajena no revela su existencia")

	propios, err := followupUC.ListByActivity(actorAlice, activity.ID)
	require.NoError(t, err)
	assert.Len(t, propios, 1)

	todos, err := followupUC.ListByActivity(actorAdmin, activity.ID)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}

// Escenario completo: alice registra Acme, hace follow-up con in_progress y
// el dashboard de su actividad refleja el estado final.
func TestFollowup_EscenarioAliceAcme(t *testing.T) {
	store := newStore(t)
	seedUser(t, store, "alice", entity.RoleStandard)
	activityUC := newActivityUC(store, usecase.Capabilities{})
	followupUC := newFollowupUC(store)

	activity, err := activityUC.Create(actorAlice, validActivityRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.StatusNew, activity.Status)

	in := validFollowupRequest(activity.ID)
	in.StatusUpdate = entity.StatusInProgress
	followup, err := followupUC.Create(context.Background(), actorAlice, in)
	require.NoError(t, err)

	got, err := activityUC.GetByID(activity.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, got.Status)

	historial, err := followupUC.ListByActivity(actorAlice, activity.ID)
	require.NoError(t, err)
	require.Len(t, historial, 1)
	assert.Equal(t, followup.ID, historial[0].ID)

	upcoming, err := followupUC.Upcoming(actorAlice, 7)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "Acme Corp", upcoming[0].ProspectName)
	assert.Equal(t, in.NextAction, upcoming[0].NextAction)
}
