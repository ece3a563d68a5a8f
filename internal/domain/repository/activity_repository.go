package repository

import "github.com/jhoicas/marketing-tracker/internal/domain/entity"

// ActivityRepository define el puerto de persistencia para Activity.
type ActivityRepository interface {
	Create(activity *entity.Activity) error
	GetByID(id string) (*entity.Activity, error)
	ListAll() ([]*entity.Activity, error)
	ListByMarketer(username string) ([]*entity.Activity, error)
	// Update sobreescribe el registro completo; domain.ErrNotFound si el id no existe.
	Update(activity *entity.Activity) error
	Delete(id string) error
	ReplaceAll(activities []*entity.Activity) error
}
