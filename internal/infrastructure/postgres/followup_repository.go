package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/marketing-tracker/internal/domain"
	"github.com/jhoicas/marketing-tracker/internal/domain/entity"
	"github.com/jhoicas/marketing-tracker/internal/domain/repository"
)

var _ repository.FollowupRepository = (*FollowupRepo)(nil)

const followupColumns = `id, activity_id, marketer_username, followup_date, notes,
	next_action, next_followup_date, interest_level, status_update, created_at`

// FollowupRepo implementación del puerto FollowupRepository sobre PostgreSQL.
// Pasar pool o tx (Querier).
type FollowupRepo struct {
	q Querier
}

// NewFollowupRepository construye el adaptador de persistencia para follow-ups.
func NewFollowupRepository(q Querier) *FollowupRepo {
	return &FollowupRepo{q: q}
}

// Create persiste un nuevo follow-up.
func (r *FollowupRepo) Create(f *entity.Followup) error {
	query := `
		INSERT INTO followups (` + followupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.ActivityID, f.MarketerUsername, f.FollowupDate, f.Notes,
		f.NextAction, f.NextFollowupDate, f.InterestLevel, f.StatusUpdate, f.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert followup: %w", err)
	}
	return nil
}

// GetByID obtiene un follow-up por ID. Devuelve (nil, nil) si no existe.
func (r *FollowupRepo) GetByID(id string) (*entity.Followup, error) {
	query := `SELECT ` + followupColumns + ` FROM followups WHERE id = $1`
	f, err := scanFollowup(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get followup by id: %w", err)
	}
	return f, nil
}

// ListAll lista todos los follow-ups, más recientes primero.
func (r *FollowupRepo) ListAll() ([]*entity.Followup, error) {
	query := `SELECT ` + followupColumns + ` FROM followups ORDER BY created_at DESC`
	return r.list(query)
}

// ListByActivity lista los follow-ups de una actividad, más recientes primero.
func (r *FollowupRepo) ListByActivity(activityID string) ([]*entity.Followup, error) {
	query := `SELECT ` + followupColumns + ` FROM followups
		WHERE activity_id = $1 ORDER BY created_at DESC`
	return r.list(query, activityID)
}

// ListByMarketer lista los follow-ups de un marketer, más recientes primero.
func (r *FollowupRepo) ListByMarketer(username string) ([]*entity.Followup, error) {
	query := `SELECT ` + followupColumns + ` FROM followups
		WHERE marketer_username = $1 ORDER BY created_at DESC`
	return r.list(query, username)
}

// ListUpcoming lista los follow-ups con next_followup_date en [from, to], inclusivo.
func (r *FollowupRepo) ListUpcoming(from, to time.Time) ([]*entity.Followup, error) {
	query := `SELECT ` + followupColumns + ` FROM followups
		WHERE next_followup_date BETWEEN $1 AND $2 ORDER BY next_followup_date ASC`
	return r.list(query, from, to)
}

// ReplaceAll sustituye la colección completa (restore de backup).
func (r *FollowupRepo) ReplaceAll(followups []*entity.Followup) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM followups`); err != nil {
		return fmt.Errorf("replace followups: %w", err)
	}
	for _, f := range followups {
		if err := r.Create(f); err != nil {
			return err
		}
	}
	return nil
}

func (r *FollowupRepo) list(query string, args ...any) ([]*entity.Followup, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list followups: %w", err)
	}
	defer rows.Close()
	var list []*entity.Followup
	for rows.Next() {
		f, err := scanFollowup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan followup: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func scanFollowup(row pgx.Row) (*entity.Followup, error) {
	var f entity.Followup
	err := row.Scan(
		&f.ID, &f.ActivityID, &f.MarketerUsername, &f.FollowupDate, &f.Notes,
		&f.NextAction, &f.NextFollowupDate, &f.InterestLevel, &f.StatusUpdate, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
