package dto

// DashboardTotalsDTO conteos principales del dashboard.
type DashboardTotalsDTO struct {
	Activities int `json:"activities"`
	Prospects  int `json:"prospects"`
	Marketers  int `json:"marketers"`
	Followups  int `json:"followups"`
}

// MarketerCountDTO actividades por marketer (solo vista de admin).
type MarketerCountDTO struct {
	Username string `json:"username"`
	Count    int    `json:"count"`
}

// LocationCountDTO actividades por ubicación de prospecto.
type LocationCountDTO struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// DashboardSummaryDTO resumen agregado del tracker, acotado al actor:
// un admin ve todos los registros, un marketer solo los suyos.
type DashboardSummaryDTO struct {
	Totals                DashboardTotalsDTO         `json:"totals"`
	StatusDistribution    map[string]int             `json:"status_distribution"`
	TypeDistribution      map[string]int             `json:"type_distribution"`
	ActivitiesPerMarketer []MarketerCountDTO         `json:"activities_per_marketer,omitempty"`
	TopLocations          []LocationCountDTO         `json:"top_locations"`
	RecentActivities      []ActivityResponse         `json:"recent_activities"`
	UpcomingFollowups     []UpcomingFollowupResponse `json:"upcoming_followups"`
}
