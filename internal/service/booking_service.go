package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/prohmpiriya/smart-parking/internal/domain"
	"github.com/prohmpiriya/smart-parking/internal/dto"
	"github.com/prohmpiriya/smart-parking/internal/metrics"
	"github.com/prohmpiriya/smart-parking/internal/repository"
	"github.com/prohmpiriya/smart-parking/pkg/logger"
	"github.com/prohmpiriya/smart-parking/pkg/telemetry"
)

// BookingService defines the interface for booking business logic
type BookingService interface {
	// CreateBooking reserves a slot and opens an active booking for the user
	CreateBooking(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)

	// GetBooking retrieves a booking with slot and user references populated.
	// Non-admin callers may only read their own bookings.
	GetBooking(ctx context.Context, bookingID, userID string, isAdmin bool) (*dto.BookingResponse, error)

	// ListUserBookings retrieves the caller's bookings, newest first
	ListUserBookings(ctx context.Context, userID string, query *dto.BookingListQuery) ([]*dto.BookingResponse, error)

	// ListAllBookings retrieves every booking, newest first
	ListAllBookings(ctx context.Context, query *dto.BookingListQuery) ([]*dto.BookingResponse, error)

	// CompleteBooking closes an active booking, computing the parked
	// duration and releasing the slot
	CompleteBooking(ctx context.Context, bookingID, userID string, isAdmin bool) (*dto.BookingResponse, error)

	// CancelBooking cancels an active booking and releases the slot.
	// No duration is recorded for cancelled bookings.
	CancelBooking(ctx context.Context, bookingID, userID string, isAdmin bool) (*dto.BookingResponse, error)

	// UpdateBookingStatus force-sets a booking's status. Unlike complete
	// and cancel it carries no active precondition; terminal statuses
	// still stamp the end time and release the slot, and completed
	// computes the duration.
	UpdateBookingStatus(ctx context.Context, bookingID string, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error)
}

// bookingService implements BookingService
type bookingService struct {
	bookingRepo    repository.BookingRepository
	slotRepo       repository.ParkingSlotRepository
	eventPublisher EventPublisher
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repository.BookingRepository,
	slotRepo repository.ParkingSlotRepository,
	eventPublisher EventPublisher,
) BookingService {
	if eventPublisher == nil {
		eventPublisher = NewNoOpEventPublisher()
	}
	return &bookingService{
		bookingRepo:    bookingRepo,
		slotRepo:       slotRepo,
		eventPublisher: eventPublisher,
	}
}

// CreateBooking reserves a slot and opens an active booking
func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.create")
	defer span.End()

	if userID == "" {
		span.SetStatus(codes.Error, "invalid user_id")
		return nil, domain.ErrInvalidUserID
	}

	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("parking_slot_id", req.ParkingSlotID),
	)

	slot, err := s.slotRepo.GetByID(ctx, req.ParkingSlotID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if slot == nil {
		span.SetStatus(codes.Error, "slot not found")
		return nil, domain.ErrSlotNotFound
	}

	// The conditional UPDATE is the single arbiter: under concurrent
	// requests exactly one caller gets the slot.
	reserved, err := s.slotRepo.TryReserve(ctx, slot.ID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !reserved {
		span.SetStatus(codes.Error, "slot unavailable")
		metrics.BookingsRejected.Inc(ctx)
		return nil, domain.ErrSlotUnavailable
	}
	metrics.SlotsReserved.Inc(ctx)

	now := time.Now()
	booking := &domain.Booking{
		ID:            uuid.New().String(),
		UserID:        userID,
		ParkingSlotID: slot.ID,
		VehicleNumber: req.VehicleNumber,
		StartTime:     now,
		Status:        domain.BookingStatusActive,
		PaymentStatus: domain.PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := booking.Validate(); err != nil {
		s.compensateReservation(ctx, slot.ID)
		return nil, err
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		// Compensate: give the slot back so a failed insert cannot
		// leave it stuck in booked
		s.compensateReservation(ctx, slot.ID)
		span.RecordError(err)
		return nil, err
	}

	metrics.BookingsCreated.Inc(ctx)
	if err := s.eventPublisher.PublishBookingCreated(ctx, booking); err != nil {
		logger.Get().Warn("failed to publish booking created event",
			zap.String("booking_id", booking.ID),
			zap.Error(err))
	}

	span.SetAttributes(attribute.String("booking_id", booking.ID))
	return dto.BookingFromDomain(booking), nil
}

// GetBooking retrieves a booking with references populated
func (s *bookingService) GetBooking(ctx context.Context, bookingID, userID string, isAdmin bool) (*dto.BookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.get")
	defer span.End()

	span.SetAttributes(attribute.String("booking_id", bookingID))

	record, err := s.bookingRepo.GetRecordByID(ctx, bookingID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if record == nil {
		span.SetStatus(codes.Error, "booking not found")
		return nil, domain.ErrBookingNotFound
	}
	if !isAdmin && !record.BelongsToUser(userID) {
		span.SetStatus(codes.Error, "not booking owner")
		return nil, domain.ErrNotBookingOwner
	}

	return dto.BookingFromRecord(record), nil
}

// ListUserBookings retrieves the caller's bookings, newest first
func (s *bookingService) ListUserBookings(ctx context.Context, userID string, query *dto.BookingListQuery) ([]*dto.BookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.list_user")
	defer span.End()

	span.SetAttributes(attribute.String("user_id", userID))

	filter := &repository.BookingFilter{UserID: userID}
	if query != nil {
		filter.Status = query.Status
	}

	records, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return dto.BookingsFromRecords(records), nil
}

// ListAllBookings retrieves every booking, newest first
func (s *bookingService) ListAllBookings(ctx context.Context, query *dto.BookingListQuery) ([]*dto.BookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.list_all")
	defer span.End()

	filter := &repository.BookingFilter{}
	if query != nil {
		filter.Status = query.Status
	}

	records, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return dto.BookingsFromRecords(records), nil
}

// CompleteBooking closes an active booking
func (s *bookingService) CompleteBooking(ctx context.Context, bookingID, userID string, isAdmin bool) (*dto.BookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.complete")
	defer span.End()

	booking, err := s.finalize(ctx, span, bookingID, userID, isAdmin, domain.BookingStatusCompleted)
	if err != nil {
		return nil, err
	}

	metrics.BookingsCompleted.Inc(ctx)
	metrics.BookingDuration.Record(ctx, float64(booking.Duration))
	if err := s.eventPublisher.PublishBookingCompleted(ctx, booking); err != nil {
		logger.Get().Warn("failed to publish booking completed event",
			zap.String("booking_id", booking.ID),
			zap.Error(err))
	}

	return dto.BookingFromDomain(booking), nil
}

// CancelBooking cancels an active booking
func (s *bookingService) CancelBooking(ctx context.Context, bookingID, userID string, isAdmin bool) (*dto.BookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.cancel")
	defer span.End()

	booking, err := s.finalize(ctx, span, bookingID, userID, isAdmin, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}

	metrics.BookingsCancelled.Inc(ctx)
	if err := s.eventPublisher.PublishBookingCancelled(ctx, booking); err != nil {
		logger.Get().Warn("failed to publish booking cancelled event",
			zap.String("booking_id", booking.ID),
			zap.Error(err))
	}

	return dto.BookingFromDomain(booking), nil
}

// finalize runs the shared complete/cancel path: ownership check, atomic
// transition out of active, slot release.
func (s *bookingService) finalize(ctx context.Context, span trace.Span, bookingID, userID string, isAdmin bool, status domain.BookingStatus) (*domain.Booking, error) {
	span.SetAttributes(
		attribute.String("booking_id", bookingID),
		attribute.String("target_status", string(status)),
	)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if booking == nil {
		span.SetStatus(codes.Error, "booking not found")
		return nil, domain.ErrBookingNotFound
	}
	if !isAdmin && !booking.BelongsToUser(userID) {
		span.SetStatus(codes.Error, "not booking owner")
		return nil, domain.ErrNotBookingOwner
	}

	finalized, err := s.bookingRepo.Finalize(ctx, bookingID, status, time.Now())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := s.releaseSlot(ctx, finalized.ParkingSlotID); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return finalized, nil
}

// UpdateBookingStatus force-sets a booking's status
func (s *bookingService) UpdateBookingStatus(ctx context.Context, bookingID string, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.update_status")
	defer span.End()

	status := domain.BookingStatus(req.Status)
	if !status.IsValid() {
		span.SetStatus(codes.Error, "invalid status")
		return nil, domain.ErrInvalidStatus
	}

	span.SetAttributes(
		attribute.String("booking_id", bookingID),
		attribute.String("target_status", string(status)),
	)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if booking == nil {
		span.SetStatus(codes.Error, "booking not found")
		return nil, domain.ErrBookingNotFound
	}

	now := time.Now()
	if status.IsTerminal() {
		// Forced terminal transitions behave like the regular ones:
		// end time stamped, duration computed for completed
		booking.Finalize(status, now)
	} else {
		booking.Status = status
		booking.UpdatedAt = now
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if status.IsTerminal() {
		if err := s.releaseSlot(ctx, booking.ParkingSlotID); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	return dto.BookingFromDomain(booking), nil
}

// releaseSlot frees a slot. A missing slot is not an error: the booking
// record outlives slot deletion and ReleaseIfPresent no-ops. A storage
// failure is returned so the caller can surface it, even though the
// booking transition already committed.
func (s *bookingService) releaseSlot(ctx context.Context, slotID string) error {
	if err := s.slotRepo.ReleaseIfPresent(ctx, slotID); err != nil {
		return fmt.Errorf("failed to release parking slot %s: %w", slotID, err)
	}
	metrics.SlotsReleased.Inc(ctx)
	return nil
}

// compensateReservation frees a slot after a failed booking insert. The
// request is already failing with the insert error, so a release failure
// here is only logged.
func (s *bookingService) compensateReservation(ctx context.Context, slotID string) {
	if err := s.releaseSlot(ctx, slotID); err != nil {
		logger.Get().Warn("failed to compensate slot reservation",
			zap.String("slot_id", slotID),
			zap.Error(err))
	}
}
