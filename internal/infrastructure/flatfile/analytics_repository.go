package flatfile

import (
	"context"
	"sort"

	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregaciones del dashboard calculadas en memoria sobre el
// almacén plano. Read-only.
type AnalyticsRepo struct {
	store *Store
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(store *Store) *AnalyticsRepo {
	return &AnalyticsRepo{store: store}
}

// GetTotals devuelve los conteos principales del dashboard.
func (r *AnalyticsRepo) GetTotals(ctx context.Context, marketer string) (repository.TrackerTotals, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var totals repository.TrackerTotals
	prospects := make(map[string]bool)
	for _, a := range s.activities {
		if marketer != "" && a.MarketerUsername != marketer {
			continue
		}
		totals.Activities++
		prospects[a.ProspectName] = true
	}
	totals.Prospects = len(prospects)
	for _, f := range s.followups {
		if marketer != "" && f.MarketerUsername != marketer {
			continue
		}
		totals.Followups++
	}
	for _, u := range s.users {
		if u.Role == entity.RoleStandard {
			totals.Marketers++
		}
	}
	return totals, nil
}

// StatusDistribution devuelve cuántas actividades hay por estado.
func (r *AnalyticsRepo) StatusDistribution(ctx context.Context, marketer string) (map[string]int, error) {
	return r.distribution(marketer, func(a *entity.Activity) string { return a.Status }), nil
}

// TypeDistribution devuelve cuántas actividades hay por tipo.
func (r *AnalyticsRepo) TypeDistribution(ctx context.Context, marketer string) (map[string]int, error) {
	return r.distribution(marketer, func(a *entity.Activity) string { return a.ActivityType }), nil
}

func (r *AnalyticsRepo) distribution(marketer string, key func(*entity.Activity) string) map[string]int {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int)
	for _, a := range s.activities {
		if marketer != "" && a.MarketerUsername != marketer {
			continue
		}
		out[key(a)]++
	}
	return out
}

// ActivitiesPerMarketer devuelve el conteo por marketer, descendente.
func (r *AnalyticsRepo) ActivitiesPerMarketer(ctx context.Context) ([]repository.MarketerCount, error) {
	counts := r.distribution("", func(a *entity.Activity) string { return a.MarketerUsername })
	out := make([]repository.MarketerCount, 0, len(counts))
	for username, n := range counts {
		out = append(out, repository.MarketerCount{Username: username, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Username < out[j].Username
	})
	return out, nil
}

// TopLocations devuelve las `limit` ubicaciones con más actividades.
func (r *AnalyticsRepo) TopLocations(ctx context.Context, marketer string, limit int) ([]repository.LocationCount, error) {
	counts := r.distribution(marketer, func(a *entity.Activity) string { return a.ProspectLocation })
	out := make([]repository.LocationCount, 0, len(counts))
	for location, n := range counts {
		out = append(out, repository.LocationCount{Location: location, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Location < out[j].Location
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// RecentActivities devuelve las `limit` actividades más recientes por created_at.
func (r *AnalyticsRepo) RecentActivities(ctx context.Context, marketer string, limit int) ([]*entity.Activity, error) {
	s := r.store
	s.mu.Lock()
	recent := copySorted(s.activities, func(a *entity.Activity) bool {
		return marketer == "" || a.MarketerUsername == marketer
	})
	s.mu.Unlock()

	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}
