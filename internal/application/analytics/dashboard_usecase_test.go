package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/marketing-tracker/internal/application/analytics"
	"github.com/jhoicas/marketing-tracker/internal/application/dto"
	"github.com/jhoicas/marketing-tracker/internal/application/usecase"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/infrastructure/flatfile"
)

var (
	actorAdmin = dto.Actor{Username: "root", Role: entity.RoleAdmin}
	actorAlice = dto.Actor{Username: "alice", Role: entity.RoleStandard}
)

func seedTracker(t *testing.T) (*flatfile.Store, *analytics.DashboardUseCase) {
	t.Helper()
	store, err := flatfile.Open(t.TempDir())
	require.NoError(t, err)
	users := flatfile.NewUserRepository(store)
	activities := flatfile.NewActivityRepository(store)
	followups := flatfile.NewFollowupRepository(store)

	for _, u := range []struct{ username, role string }{
		{"root", entity.RoleAdmin},
		{"alice", entity.RoleStandard},
		{"bob", entity.RoleStandard},
	} {
		require.NoError(t, users.Create(&entity.User{
			Username: u.username, Name: u.username, Email: u.username + "@example.com",
			Role: u.role, PasswordHash: "hash", CreatedAt: time.Now(),
		}))
	}

	addActivity := func(marketer, prospect, location, status string) string {
		now := time.Now()
		a := &entity.Activity{
			ID: uuid.New().String(), MarketerUsername: marketer,
			ProspectName: prospect, ProspectLocation: location,
			ContactPerson: "Contacto", ActivityDate: now,
			ActivityType: entity.TypeMeeting, Status: status,
			Description: "d", CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, activities.Create(a))
		return a.ID
	}

	// alice: 2 actividades (Acme x2, una ganada); bob: 1 actividad.
	aliceFirst := addActivity("alice", "Acme Corp", "Jakarta", entity.StatusWon)
	addActivity("alice", "Acme Corp", "Jakarta", entity.StatusNew)
	addActivity("bob", "Beta Ltd", "Surabaya", entity.StatusNew)

	require.NoError(t, followups.Create(&entity.Followup{
		ID: uuid.New().String(), ActivityID: aliceFirst, MarketerUsername: "alice",
		FollowupDate: time.Now(), Notes: "n", NextAction: "x",
		NextFollowupDate: time.Now().AddDate(0, 0, 2), InterestLevel: 4,
		StatusUpdate: entity.StatusWon, CreatedAt: time.Now(),
	}))

	followupUC := usecase.NewFollowupUseCase(flatfile.NewTxRunner(store), followups, activities)
	dashboardUC := analytics.NewDashboardUseCase(flatfile.NewAnalyticsRepository(store), followupUC)
	return store, dashboardUC
}

// Vista de admin: totales globales, distribución, desglose por marketer.
func TestDashboardSummary_Admin(t *testing.T) {
	_, uc := seedTracker(t)

	sum, err := uc.Summary(context.Background(), actorAdmin)
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Totals.Activities)
	assert.Equal(t, 2, sum.Totals.Prospects, "prospectos distintos por nombre")
	assert.Equal(t, 2, sum.Totals.Marketers, "solo cuentas standard")
	assert.Equal(t, 1, sum.Totals.Followups)

	assert.Equal(t, 1, sum.StatusDistribution[entity.StatusWon])
	assert.Equal(t, 2, sum.StatusDistribution[entity.StatusNew])
	assert.Equal(t, 3, sum.TypeDistribution[entity.TypeMeeting])

	require.Len(t, sum.ActivitiesPerMarketer, 2)
	assert.Equal(t, "alice", sum.ActivitiesPerMarketer[0].Username, "orden descendente por conteo")
	assert.Equal(t, 2, sum.ActivitiesPerMarketer[0].Count)

	require.NotEmpty(t, sum.TopLocations)
	assert.Equal(t, "Jakarta", sum.TopLocations[0].Location)

	assert.Len(t, sum.RecentActivities, 3)
	require.Len(t, sum.UpcomingFollowups, 1)
	assert.Equal(t, "Acme Corp", sum.UpcomingFollowups[0].ProspectName)
}

// Vista de standard: todo acotado a lo propio y sin desglose por marketer.
func TestDashboardSummary_Standard(t *testing.T) {
	_, uc := seedTracker(t)

	sum, err := uc.Summary(context.Background(), actorAlice)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Totals.Activities, "solo las actividades de alice")
	assert.Equal(t, 1, sum.Totals.Prospects)
	assert.Equal(t, 1, sum.Totals.Followups)
	assert.Empty(t, sum.ActivitiesPerMarketer, "el desglose por marketer es solo de admin")
	assert.Len(t, sum.RecentActivities, 2)
}
