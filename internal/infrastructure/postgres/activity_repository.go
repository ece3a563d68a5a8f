package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/marketing-tracker/internal/domain"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

const activityColumns = `id, marketer_username, prospect_name, prospect_location,
	contact_person, contact_position, contact_phone, contact_email,
	activity_date, activity_type, status, description, created_at, updated_at`

// ActivityRepo implementación del puerto ActivityRepository sobre PostgreSQL.
// Pasar pool o tx (Querier).
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador de persistencia para actividades.
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Create persiste una nueva actividad.
func (r *ActivityRepo) Create(a *entity.Activity) error {
	query := `
		INSERT INTO activities (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.MarketerUsername, a.ProspectName, a.ProspectLocation,
		a.ContactPerson, a.ContactPosition, a.ContactPhone, a.ContactEmail,
		a.ActivityDate, a.ActivityType, a.Status, a.Description, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// GetByID obtiene una actividad por ID. Devuelve (nil, nil) si no existe.
func (r *ActivityRepo) GetByID(id string) (*entity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1`
	a, err := scanActivity(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get activity by id: %w", err)
	}
	return a, nil
}

// ListAll lista todas las actividades, más recientes primero.
func (r *ActivityRepo) ListAll() ([]*entity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities ORDER BY created_at DESC`
	return r.list(query)
}

// ListByMarketer lista las actividades de un marketer, más recientes primero.
func (r *ActivityRepo) ListByMarketer(username string) ([]*entity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities
		WHERE marketer_username = $1 ORDER BY created_at DESC`
	return r.list(query, username)
}

func (r *ActivityRepo) list(query string, args ...any) ([]*entity.Activity, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()
	var list []*entity.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update sobreescribe el registro completo; domain.ErrNotFound si el id no existe.
func (r *ActivityRepo) Update(a *entity.Activity) error {
	query := `
		UPDATE activities SET
			marketer_username = $2, prospect_name = $3, prospect_location = $4,
			contact_person = $5, contact_position = $6, contact_phone = $7, contact_email = $8,
			activity_date = $9, activity_type = $10, status = $11, description = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		a.ID, a.MarketerUsername, a.ProspectName, a.ProspectLocation,
		a.ContactPerson, a.ContactPosition, a.ContactPhone, a.ContactEmail,
		a.ActivityDate, a.ActivityType, a.Status, a.Description, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una actividad por ID. Los follow-ups asociados quedan intactos.
func (r *ActivityRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceAll sustituye la colección completa (restore de backup).
func (r *ActivityRepo) ReplaceAll(activities []*entity.Activity) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM activities`); err != nil {
		return fmt.Errorf("replace activities: %w", err)
	}
	for _, a := range activities {
		if err := r.Create(a); err != nil {
			return err
		}
	}
	return nil
}

func scanActivity(row pgx.Row) (*entity.Activity, error) {
	var a entity.Activity
	err := row.Scan(
		&a.ID, &a.MarketerUsername, &a.ProspectName, &a.ProspectLocation,
		&a.ContactPerson, &a.ContactPosition, &a.ContactPhone, &a.ContactEmail,
		&a.ActivityDate, &a.ActivityType, &a.Status, &a.Description, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
