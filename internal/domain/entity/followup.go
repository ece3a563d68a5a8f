package entity

import "time"

// Límites del nivel de interés del prospecto.
const (
	InterestMin = 1
	InterestMax = 5
)

// Followup registra el resultado de un seguimiento sobre una actividad.
// Inmutable después de creado; nunca se elimina.
type Followup struct {
	ID               string    `json:"id"`
	ActivityID       string    `json:"activity_id"`
	MarketerUsername string    `json:"marketer_username"`
	FollowupDate     time.Time `json:"followup_date"`
	Notes            string    `json:"notes"`
	NextAction       string    `json:"next_action"`
	NextFollowupDate time.Time `json:"next_followup_date"`
	InterestLevel    int       `json:"interest_level"` // acotado a [InterestMin, InterestMax]
	StatusUpdate     string    `json:"status_update"`  // mismo enum que Activity.Status
	CreatedAt        time.Time `json:"created_at"`
}

// ClampInterest acota un nivel de interés al rango válido.
func ClampInterest(level int) int {
	if level < InterestMin {
		return InterestMin
	}
	if level > InterestMax {
		return InterestMax
	}
	return level
}
