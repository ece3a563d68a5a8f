package flatfile

import (
	"sort"
	"time"

	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
)

var _ repository.FollowupRepository = (*FollowupRepo)(nil)

// FollowupRepo implementación del puerto FollowupRepository sobre el almacén plano.
type FollowupRepo struct {
	store *Store
}

// NewFollowupRepository construye el adaptador de persistencia para follow-ups.
func NewFollowupRepository(store *Store) *FollowupRepo {
	return &FollowupRepo{store: store}
}

// Create persiste un nuevo follow-up.
func (r *FollowupRepo) Create(followup *entity.Followup) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *followup
	s.followups = append(s.followups, &cp)
	return s.saveFollowupsLocked()
}

// GetByID devuelve (nil, nil) si el follow-up no existe.
func (r *FollowupRepo) GetByID(id string) (*entity.Followup, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.followups {
		if f.ID == id {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

// ListAll devuelve todos los follow-ups, más reciente primero.
func (r *FollowupRepo) ListAll() ([]*entity.Followup, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyFiltered(s.followups, func(f *entity.Followup) bool { return true }), nil
}

// ListByActivity devuelve los follow-ups de una actividad, más reciente primero.
func (r *FollowupRepo) ListByActivity(activityID string) ([]*entity.Followup, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyFiltered(s.followups, func(f *entity.Followup) bool {
		return f.ActivityID == activityID
	}), nil
}

// ListByMarketer devuelve los follow-ups de un marketer, más reciente primero.
func (r *FollowupRepo) ListByMarketer(username string) ([]*entity.Followup, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyFiltered(s.followups, func(f *entity.Followup) bool {
		return f.MarketerUsername == username
	}), nil
}

// ListUpcoming devuelve los follow-ups con next_followup_date en [from, to],
// ambos extremos incluidos.
func (r *FollowupRepo) ListUpcoming(from, to time.Time) ([]*entity.Followup, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyFiltered(s.followups, func(f *entity.Followup) bool {
		d := f.NextFollowupDate
		return !d.Before(from) && !d.After(to)
	}), nil
}

// ReplaceAll sustituye la colección completa (restore de backup).
func (r *FollowupRepo) ReplaceAll(followups []*entity.Followup) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.followups = make([]*entity.Followup, 0, len(followups))
	for _, f := range followups {
		cp := *f
		s.followups = append(s.followups, &cp)
	}
	return s.saveFollowupsLocked()
}

// copyFiltered filtra y copia follow-ups ordenados por created_at descendente.
func copyFiltered(list []*entity.Followup, keep func(*entity.Followup) bool) []*entity.Followup {
	out := make([]*entity.Followup, 0, len(list))
	for _, f := range list {
		if keep(f) {
			cp := *f
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
