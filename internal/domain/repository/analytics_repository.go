package repository

import (
	"context"

	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
)

// TrackerTotals conteos globales del dashboard.
type TrackerTotals struct {
	Activities int
	Prospects  int // nombres de prospecto distintos
	Marketers  int // usuarios con rol standard
	Followups  int
}

// LocationCount actividades agrupadas por ubicación del prospecto.
type LocationCount struct {
	Location string
	Count    int
}

// MarketerCount actividades agrupadas por marketer.
type MarketerCount struct {
	Username string
	Count    int
}

// AnalyticsRepository define las consultas de lectura para el dashboard.
// Un marketer vacío significa "sin filtro de propietario" (vista de admin).
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetTotals devuelve los conteos principales del dashboard.
	GetTotals(ctx context.Context, marketer string) (TrackerTotals, error)

	// StatusDistribution devuelve cuántas actividades hay por estado.
	StatusDistribution(ctx context.Context, marketer string) (map[string]int, error)

	// TypeDistribution devuelve cuántas actividades hay por tipo de actividad.
	TypeDistribution(ctx context.Context, marketer string) (map[string]int, error)

	// ActivitiesPerMarketer devuelve el conteo de actividades por marketer,
	// ordenado descendente. Solo tiene sentido en la vista de admin.
	ActivitiesPerMarketer(ctx context.Context) ([]MarketerCount, error)

	// TopLocations devuelve las `limit` ubicaciones con más actividades.
	TopLocations(ctx context.Context, marketer string, limit int) ([]LocationCount, error)

	// RecentActivities devuelve las `limit` actividades más recientes por created_at.
	RecentActivities(ctx context.Context, marketer string, limit int) ([]*entity.Activity, error)
}
