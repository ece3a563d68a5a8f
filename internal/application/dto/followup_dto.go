package dto

import "time"

// CreateFollowupRequest entrada para registrar un follow-up sobre una actividad.
// StatusUpdate se aplica a la actividad padre como parte de la misma operación.
type CreateFollowupRequest struct {
	ActivityID       string    `json:"activity_id" validate:"required"`
	FollowupDate     time.Time `json:"followup_date"`
	Notes            string    `json:"notes" validate:"required"`
	NextAction       string    `json:"next_action" validate:"required"`
	NextFollowupDate time.Time `json:"next_followup_date"`
	InterestLevel    int       `json:"interest_level" validate:"min=1,max=5"`
	StatusUpdate     string    `json:"status_update" validate:"required,oneof=new in_progress won lost"`
}

// FollowupResponse salida de un follow-up.
type FollowupResponse struct {
	ID               string    `json:"id"`
	ActivityID       string    `json:"activity_id"`
	MarketerUsername string    `json:"marketer_username"`
	FollowupDate     time.Time `json:"followup_date"`
	Notes            string    `json:"notes"`
	NextAction       string    `json:"next_action"`
	NextFollowupDate time.Time `json:"next_followup_date"`
	InterestLevel    int       `json:"interest_level"`
	StatusUpdate     string    `json:"status_update"`
	CreatedAt        time.Time `json:"created_at"`
}

// UpcomingFollowupResponse follow-up próximo unido con el nombre del prospecto
// de su actividad padre. Si la actividad ya no existe, ProspectName es "N/A".
type UpcomingFollowupResponse struct {
	ID               string    `json:"id"`
	ActivityID       string    `json:"activity_id"`
	MarketerUsername string    `json:"marketer_username"`
	ProspectName     string    `json:"prospect_name"`
	NextFollowupDate time.Time `json:"next_followup_date"`
	NextAction       string    `json:"next_action"`
}
