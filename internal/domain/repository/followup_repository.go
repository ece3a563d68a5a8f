package repository

import (
	"time"

	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
)

// FollowupRepository define el puerto de persistencia para Followup.
// Los follow-ups son inmutables: no hay Update ni Delete individual.
type FollowupRepository interface {
	Create(followup *entity.Followup) error
	GetByID(id string) (*entity.Followup, error)
	ListAll() ([]*entity.Followup, error)
	// ListByActivity devuelve los follow-ups de una actividad ordenados por
	// created_at descendente (más reciente primero).
	ListByActivity(activityID string) ([]*entity.Followup, error)
	ListByMarketer(username string) ([]*entity.Followup, error)
	// ListUpcoming devuelve los follow-ups cuyo next_followup_date cae en
	// [from, to], ambos extremos incluidos.
	ListUpcoming(from, to time.Time) ([]*entity.Followup, error)
	ReplaceAll(followups []*entity.Followup) error
}
