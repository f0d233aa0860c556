package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prohmpiriya/smart-parking/internal/domain"
)

// bookingColumns defines columns for the bookings table
const bookingColumns = `id, user_id, parking_slot_id, vehicle_number, start_time, end_time,
	status, payment_status, amount, duration, created_at, updated_at`

// PostgresBookingRepository implements BookingRepository using PostgreSQL
type PostgresBookingRepository struct {
	pool *pgxpool.Pool
}

var _ BookingRepository = (*PostgresBookingRepository)(nil)

// NewPostgresBookingRepository creates a new PostgresBookingRepository
func NewPostgresBookingRepository(pool *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{pool: pool}
}

// scanBooking scans a row into a Booking struct
func (r *PostgresBookingRepository) scanBooking(row pgx.Row) (*domain.Booking, error) {
	booking := &domain.Booking{}
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ParkingSlotID,
		&booking.VehicleNumber,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.Amount,
		&booking.Duration,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return booking, nil
}

// Create creates a new booking
func (r *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, parking_slot_id, vehicle_number, start_time, end_time,
			status, payment_status, amount, duration, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.ParkingSlotID,
		booking.VehicleNumber,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.PaymentStatus,
		booking.Amount,
		booking.Duration,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by ID
func (r *PostgresBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanBooking(r.pool.QueryRow(ctx, query, id))
}

// recordColumns selects booking columns plus slot and user references.
// LEFT JOINs keep historical bookings readable after the slot or user row
// is gone.
const recordColumns = `b.id, b.user_id, b.parking_slot_id, b.vehicle_number, b.start_time, b.end_time,
	b.status, b.payment_status, b.amount, b.duration, b.created_at, b.updated_at,
	s.id, s.slot_number, s.floor, s.section,
	u.id, u.name, u.email`

const recordJoins = `FROM bookings b
	LEFT JOIN parking_slots s ON s.id = b.parking_slot_id
	LEFT JOIN users u ON u.id = b.user_id`

// scanRecord scans a joined row into a BookingRecord
func (r *PostgresBookingRepository) scanRecord(row pgx.Row) (*domain.BookingRecord, error) {
	record := &domain.BookingRecord{}
	var slotID, slotNumber, slotSection *string
	var slotFloor *int
	var userID, userName, userEmail *string

	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.ParkingSlotID,
		&record.VehicleNumber,
		&record.StartTime,
		&record.EndTime,
		&record.Status,
		&record.PaymentStatus,
		&record.Amount,
		&record.Duration,
		&record.CreatedAt,
		&record.UpdatedAt,
		&slotID,
		&slotNumber,
		&slotFloor,
		&slotSection,
		&userID,
		&userName,
		&userEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if slotID != nil {
		record.Slot = &domain.SlotSummary{
			ID:         *slotID,
			SlotNumber: derefString(slotNumber),
			Floor:      derefInt(slotFloor),
			Section:    derefString(slotSection),
		}
	}
	if userID != nil {
		record.User = &domain.UserSummary{
			ID:    *userID,
			Name:  derefString(userName),
			Email: derefString(userEmail),
		}
	}
	return record, nil
}

// GetRecordByID retrieves a booking with slot and user references populated
func (r *PostgresBookingRepository) GetRecordByID(ctx context.Context, id string) (*domain.BookingRecord, error) {
	query := `SELECT ` + recordColumns + ` ` + recordJoins + ` WHERE b.id = $1`
	return r.scanRecord(r.pool.QueryRow(ctx, query, id))
}

// List retrieves bookings matching the filter, newest first
func (r *PostgresBookingRepository) List(ctx context.Context, filter *BookingFilter) ([]*domain.BookingRecord, error) {
	if filter == nil {
		filter = &BookingFilter{}
	}

	whereClause := "1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.UserID != "" {
		whereClause += fmt.Sprintf(" AND b.user_id = $%d", argIndex)
		args = append(args, filter.UserID)
		argIndex++
	}
	if filter.Status != "" {
		whereClause += fmt.Sprintf(" AND b.status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}

	query := fmt.Sprintf(`SELECT %s %s
		WHERE %s
		ORDER BY b.created_at DESC`, recordColumns, recordJoins, whereClause)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var records []*domain.BookingRecord
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Finalize atomically transitions an active booking to a terminal status.
// The conditional UPDATE guards against concurrent transitions; on zero
// rows affected the current status is re-read to diagnose the loser.
func (r *PostgresBookingRepository) Finalize(ctx context.Context, id string, status domain.BookingStatus, at time.Time) (*domain.Booking, error) {
	query := `
		UPDATE bookings
		SET status = $2,
			end_time = $3,
			duration = CASE WHEN $2 = 'completed'
				THEN CEIL(EXTRACT(EPOCH FROM ($3::timestamptz - start_time)) / 60)::int
				ELSE duration END,
			updated_at = $3
		WHERE id = $1 AND status = $4
		RETURNING ` + bookingColumns

	booking, err := r.scanBooking(r.pool.QueryRow(ctx, query, id, status, at, domain.BookingStatusActive))
	if err != nil {
		return nil, fmt.Errorf("failed to finalize booking: %w", err)
	}
	if booking != nil {
		return booking, nil
	}

	// No row updated: either missing or already finalized
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrBookingNotFound
	}
	return nil, &domain.AlreadyFinalizedError{Status: current.Status}
}

// Update updates a booking
func (r *PostgresBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET vehicle_number = $2, start_time = $3, end_time = $4, status = $5,
			payment_status = $6, amount = $7, duration = $8, updated_at = $9
		WHERE id = $1
	`
	booking.UpdatedAt = time.Now()
	result, err := r.pool.Exec(ctx, query,
		booking.ID,
		booking.VehicleNumber,
		booking.StartTime,
		booking.EndTime,
		booking.Status,
		booking.PaymentStatus,
		booking.Amount,
		booking.Duration,
		booking.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
