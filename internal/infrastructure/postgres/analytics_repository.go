package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
// Un marketer vacío significa "sin filtro de propietario" (vista de admin).
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetTotals devuelve los conteos principales del dashboard.
// Usa COALESCE-style filtros: $1 = '' desactiva el filtro por marketer.
func (r *AnalyticsRepo) GetTotals(ctx context.Context, marketer string) (repository.TrackerTotals, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM activities
	        WHERE $1 = '' OR marketer_username = $1)                  AS activities,
	    (SELECT COUNT(DISTINCT prospect_name) FROM activities
	        WHERE $1 = '' OR marketer_username = $1)                  AS prospects,
	    (SELECT COUNT(*) FROM users WHERE role = $2)                  AS marketers,
	    (SELECT COUNT(*) FROM followups
	        WHERE $1 = '' OR marketer_username = $1)                  AS followups`

	var totals repository.TrackerTotals
	err := r.pool.QueryRow(ctx, query, marketer, entity.RoleStandard).Scan(
		&totals.Activities, &totals.Prospects, &totals.Marketers, &totals.Followups,
	)
	if err != nil {
		return repository.TrackerTotals{}, fmt.Errorf("analytics.GetTotals: %w", err)
	}
	return totals, nil
}

// StatusDistribution devuelve cuántas actividades hay por estado.
func (r *AnalyticsRepo) StatusDistribution(ctx context.Context, marketer string) (map[string]int, error) {
	return r.distribution(ctx, "status", marketer)
}

// TypeDistribution devuelve cuántas actividades hay por tipo de actividad.
func (r *AnalyticsRepo) TypeDistribution(ctx context.Context, marketer string) (map[string]int, error) {
	return r.distribution(ctx, "activity_type", marketer)
}

// distribution agrupa actividades por la columna dada. La columna viene de un
// conjunto fijo de llamadas internas, nunca de entrada del usuario.
func (r *AnalyticsRepo) distribution(ctx context.Context, column, marketer string) (map[string]int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) FROM activities
		WHERE $1 = '' OR marketer_username = $1
		GROUP BY %s`, column, column)

	rows, err := r.pool.Query(ctx, query, marketer)
	if err != nil {
		return nil, fmt.Errorf("analytics.distribution(%s): %w", column, err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, fmt.Errorf("analytics.distribution(%s) scan: %w", column, err)
		}
		out[key] = count
	}
	return out, rows.Err()
}

// ActivitiesPerMarketer devuelve el conteo de actividades por marketer, descendente.
func (r *AnalyticsRepo) ActivitiesPerMarketer(ctx context.Context) ([]repository.MarketerCount, error) {
	const query = `
		SELECT marketer_username, COUNT(*) AS total
		FROM activities
		GROUP BY marketer_username
		ORDER BY total DESC, marketer_username ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.ActivitiesPerMarketer: %w", err)
	}
	defer rows.Close()

	var results []repository.MarketerCount
	for rows.Next() {
		var row repository.MarketerCount
		if err := rows.Scan(&row.Username, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.ActivitiesPerMarketer scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopLocations devuelve las `limit` ubicaciones con más actividades.
func (r *AnalyticsRepo) TopLocations(ctx context.Context, marketer string, limit int) ([]repository.LocationCount, error) {
	const query = `
		SELECT prospect_location, COUNT(*) AS total
		FROM activities
		WHERE $1 = '' OR marketer_username = $1
		GROUP BY prospect_location
		ORDER BY total DESC, prospect_location ASC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, marketer, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopLocations: %w", err)
	}
	defer rows.Close()

	var results []repository.LocationCount
	for rows.Next() {
		var row repository.LocationCount
		if err := rows.Scan(&row.Location, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.TopLocations scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// RecentActivities devuelve las `limit` actividades más recientes por created_at.
func (r *AnalyticsRepo) RecentActivities(ctx context.Context, marketer string, limit int) ([]*entity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities
		WHERE $1 = '' OR marketer_username = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, marketer, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.RecentActivities: %w", err)
	}
	defer rows.Close()

	var results []*entity.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("analytics.RecentActivities scan: %w", err)
		}
		results = append(results, a)
	}
	return results, rows.Err()
}
