package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorlink/tutorlink/internal/app/models"
	"github.com/tutorlink/tutorlink/internal/pkg/apperrors"
)

// ISlotRepository defines the interface for time slot persistence
type ISlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) error
	GetByID(ctx context.Context, id int64) (*models.Slot, error)
	GetAll(ctx context.Context) ([]*models.Slot, error)
	Delete(ctx context.Context, id int64) error
}

// SlotRepository handles time slot database operations
type SlotRepository struct {
	db *pgxpool.Pool
}

// NewSlotRepository creates a new SlotRepository
func NewSlotRepository(db *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{db: db}
}

// Create inserts a new slot
func (r *SlotRepository) Create(ctx context.Context, slot *models.Slot) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO slots (name, time_start, time_end) VALUES ($1, $2, $3) RETURNING id`,
		slot.Name, slot.TimeStart, slot.TimeEnd).Scan(&slot.ID)
	if err != nil {
		return fmt.Errorf("error creating slot: %w", err)
	}
	return nil
}

// GetByID retrieves a slot by ID
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*models.Slot, error) {
	var s models.Slot
	err := r.db.QueryRow(ctx,
		`SELECT id, name, time_start, time_end FROM slots WHERE id = $1`,
		id).Scan(&s.ID, &s.Name, &s.TimeStart, &s.TimeEnd)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSlotNotFound
		}
		return nil, fmt.Errorf("error retrieving slot: %w", err)
	}
	return &s, nil
}

// GetAll retrieves every slot ordered by start time
func (r *SlotRepository) GetAll(ctx context.Context) ([]*models.Slot, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, time_start, time_end FROM slots ORDER BY time_start`)
	if err != nil {
		return nil, fmt.Errorf("error querying slots: %w", err)
	}
	defer rows.Close()

	var slots []*models.Slot
	for rows.Next() {
		var s models.Slot
		if err := rows.Scan(&s.ID, &s.Name, &s.TimeStart, &s.TimeEnd); err != nil {
			return nil, fmt.Errorf("error scanning slot row: %w", err)
		}
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slot rows: %w", err)
	}

	return slots, nil
}

// Delete removes a slot
func (r *SlotRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting slot: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSlotNotFound
	}

	return nil
}
