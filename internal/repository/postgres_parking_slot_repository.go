package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prohmpiriya/smart-parking/internal/domain"
)

// slotColumns defines columns for the parking_slots table
const slotColumns = `id, slot_number, building, floor, section, status, type,
	coord_x, coord_y, width, height, created_at, updated_at`

// PostgresParkingSlotRepository implements ParkingSlotRepository using PostgreSQL
type PostgresParkingSlotRepository struct {
	pool *pgxpool.Pool
}

var _ ParkingSlotRepository = (*PostgresParkingSlotRepository)(nil)

// NewPostgresParkingSlotRepository creates a new PostgresParkingSlotRepository
func NewPostgresParkingSlotRepository(pool *pgxpool.Pool) *PostgresParkingSlotRepository {
	return &PostgresParkingSlotRepository{pool: pool}
}

// scanSlot scans a row into a ParkingSlot struct
func (r *PostgresParkingSlotRepository) scanSlot(row pgx.Row) (*domain.ParkingSlot, error) {
	slot := &domain.ParkingSlot{}
	err := row.Scan(
		&slot.ID,
		&slot.SlotNumber,
		&slot.Building,
		&slot.Floor,
		&slot.Section,
		&slot.Status,
		&slot.Type,
		&slot.Coordinates.X,
		&slot.Coordinates.Y,
		&slot.Dimensions.Width,
		&slot.Dimensions.Height,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return slot, nil
}

// Create creates a new parking slot
func (r *PostgresParkingSlotRepository) Create(ctx context.Context, slot *domain.ParkingSlot) error {
	query := `
		INSERT INTO parking_slots (id, slot_number, building, floor, section, status, type,
			coord_x, coord_y, width, height, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.pool.Exec(ctx, query,
		slot.ID,
		slot.SlotNumber,
		slot.Building,
		slot.Floor,
		slot.Section,
		slot.Status,
		slot.Type,
		slot.Coordinates.X,
		slot.Coordinates.Y,
		slot.Dimensions.Width,
		slot.Dimensions.Height,
		slot.CreatedAt,
		slot.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateSlotNumber
		}
		return fmt.Errorf("failed to create parking slot: %w", err)
	}
	return nil
}

// GetByID retrieves a parking slot by ID
func (r *PostgresParkingSlotRepository) GetByID(ctx context.Context, id string) (*domain.ParkingSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM parking_slots WHERE id = $1`
	return r.scanSlot(r.pool.QueryRow(ctx, query, id))
}

// List retrieves parking slots matching the filter
func (r *PostgresParkingSlotRepository) List(ctx context.Context, filter *SlotFilter) ([]*domain.ParkingSlot, error) {
	if filter == nil {
		filter = &SlotFilter{}
	}

	// Build WHERE clause
	whereClause := "1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.Status != "" {
		whereClause += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.Floor != nil {
		whereClause += fmt.Sprintf(" AND floor = $%d", argIndex)
		args = append(args, *filter.Floor)
		argIndex++
	}
	if filter.Section != "" {
		whereClause += fmt.Sprintf(" AND section = $%d", argIndex)
		args = append(args, filter.Section)
		argIndex++
	}
	if filter.Type != "" {
		whereClause += fmt.Sprintf(" AND type = $%d", argIndex)
		args = append(args, filter.Type)
		argIndex++
	}
	if filter.Building != "" {
		whereClause += fmt.Sprintf(" AND building = $%d", argIndex)
		args = append(args, filter.Building)
		argIndex++
	}

	query := fmt.Sprintf(`SELECT %s FROM parking_slots
		WHERE %s
		ORDER BY floor ASC, section ASC, slot_number ASC`, slotColumns, whereClause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list parking slots: %w", err)
	}
	defer rows.Close()

	var slots []*domain.ParkingSlot
	for rows.Next() {
		slot := &domain.ParkingSlot{}
		err := rows.Scan(
			&slot.ID,
			&slot.SlotNumber,
			&slot.Building,
			&slot.Floor,
			&slot.Section,
			&slot.Status,
			&slot.Type,
			&slot.Coordinates.X,
			&slot.Coordinates.Y,
			&slot.Dimensions.Width,
			&slot.Dimensions.Height,
			&slot.CreatedAt,
			&slot.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// Update updates a parking slot
func (r *PostgresParkingSlotRepository) Update(ctx context.Context, slot *domain.ParkingSlot) error {
	query := `
		UPDATE parking_slots
		SET slot_number = $2, building = $3, floor = $4, section = $5, status = $6,
			type = $7, coord_x = $8, coord_y = $9, width = $10, height = $11, updated_at = $12
		WHERE id = $1
	`
	slot.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		slot.ID,
		slot.SlotNumber,
		slot.Building,
		slot.Floor,
		slot.Section,
		slot.Status,
		slot.Type,
		slot.Coordinates.X,
		slot.Coordinates.Y,
		slot.Dimensions.Width,
		slot.Dimensions.Height,
		slot.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateSlotNumber
		}
		return fmt.Errorf("failed to update parking slot: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrSlotNotFound
	}
	return nil
}

// Delete removes a parking slot by ID
func (r *PostgresParkingSlotRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM parking_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete parking slot: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrSlotNotFound
	}
	return nil
}

// TryReserve atomically transitions a slot from empty to booked.
// The conditional UPDATE is the arbiter under concurrent requests:
// exactly one caller wins.
func (r *PostgresParkingSlotRepository) TryReserve(ctx context.Context, id string) (bool, error) {
	query := `
		UPDATE parking_slots
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4
	`
	result, err := r.pool.Exec(ctx, query, id, domain.SlotStatusBooked, time.Now(), domain.SlotStatusEmpty)
	if err != nil {
		return false, fmt.Errorf("failed to reserve parking slot: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// ReleaseIfPresent transitions a slot back to empty. A missing slot is not
// an error: the booking outlives slot deletion.
func (r *PostgresParkingSlotRepository) ReleaseIfPresent(ctx context.Context, id string) error {
	query := `
		UPDATE parking_slots
		SET status = $2, updated_at = $3
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id, domain.SlotStatusEmpty, time.Now())
	if err != nil {
		return fmt.Errorf("failed to release parking slot: %w", err)
	}
	return nil
}
