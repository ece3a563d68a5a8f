package flatfile

import (
	"sort"

	"github.com/jhoicas/marketing-tracker/internal/domain"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implementación del puerto ActivityRepository sobre el almacén plano.
type ActivityRepo struct {
	store *Store
}

// NewActivityRepository construye el adaptador de persistencia para actividades.
func NewActivityRepository(store *Store) *ActivityRepo {
	return &ActivityRepo{store: store}
}

// Create persiste una nueva actividad. El id lo genera el caso de uso (uuid).
func (r *ActivityRepo) Create(activity *entity.Activity) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *activity
	s.activities = append(s.activities, &cp)
	return s.saveActivitiesLocked()
}

// GetByID devuelve (nil, nil) si la actividad no existe.
func (r *ActivityRepo) GetByID(id string) (*entity.Activity, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.activities {
		if a.ID == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

// ListAll devuelve todas las actividades, más reciente primero.
func (r *ActivityRepo) ListAll() ([]*entity.Activity, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySorted(s.activities, func(a *entity.Activity) bool { return true }), nil
}

// ListByMarketer devuelve las actividades de un marketer, más reciente primero.
func (r *ActivityRepo) ListByMarketer(username string) ([]*entity.Activity, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySorted(s.activities, func(a *entity.Activity) bool {
		return a.MarketerUsername == username
	}), nil
}

// Update sobreescribe el registro completo; domain.ErrNotFound si el id no existe.
func (r *ActivityRepo) Update(activity *entity.Activity) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.activities {
		if a.ID == activity.ID {
			cp := *activity
			s.activities[i] = &cp
			return s.saveActivitiesLocked()
		}
	}
	return domain.ErrNotFound
}

// Delete elimina por id; domain.ErrNotFound si no existe.
func (r *ActivityRepo) Delete(id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.activities {
		if a.ID == id {
			s.activities = append(s.activities[:i], s.activities[i+1:]...)
			return s.saveActivitiesLocked()
		}
	}
	return domain.ErrNotFound
}

// ReplaceAll sustituye la colección completa (restore de backup).
func (r *ActivityRepo) ReplaceAll(activities []*entity.Activity) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = make([]*entity.Activity, 0, len(activities))
	for _, a := range activities {
		cp := *a
		s.activities = append(s.activities, &cp)
	}
	return s.saveActivitiesLocked()
}

// copySorted filtra y copia actividades ordenadas por created_at descendente.
func copySorted(list []*entity.Activity, keep func(*entity.Activity) bool) []*entity.Activity {
	out := make([]*entity.Activity, 0, len(list))
	for _, a := range list {
		if keep(a) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
