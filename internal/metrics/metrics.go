package metrics

import (
	"sync"

	"github.com/prohmpiriya/smart-parking/pkg/telemetry"
)

var (
	// Booking counters
	BookingsCreated   *telemetry.Counter
	BookingsCompleted *telemetry.Counter
	BookingsCancelled *telemetry.Counter
	BookingsRejected  *telemetry.Counter

	// Slot counters
	SlotsReserved *telemetry.Counter
	SlotsReleased *telemetry.Counter

	// Histograms
	BookingDuration *telemetry.Histogram

	initOnce sync.Once
	initErr  error
)

// Init initializes all parking metrics
func Init() error {
	initOnce.Do(func() {
		initErr = initMetrics()
	})
	return initErr
}

func initMetrics() error {
	var err error

	BookingsCreated, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "parking_bookings_created_total",
		Description: "Total number of bookings created",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	BookingsCompleted, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "parking_bookings_completed_total",
		Description: "Total number of bookings completed",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	BookingsCancelled, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "parking_bookings_cancelled_total",
		Description: "Total number of bookings cancelled",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	BookingsRejected, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "parking_bookings_rejected_total",
		Description: "Total number of booking attempts rejected because the slot was taken",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	SlotsReserved, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "parking_slots_reserved_total",
		Description: "Total number of slot reservations",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	SlotsReleased, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "parking_slots_released_total",
		Description: "Total number of slot releases",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	BookingDuration, err = telemetry.NewHistogram(telemetry.MetricOpts{
		Name:        "parking_booking_duration_minutes",
		Description: "Parked duration of completed bookings in minutes",
		Unit:        "min",
	})
	if err != nil {
		return err
	}

	return nil
}
