package application

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/karansingh008/Tourizio/domain"
	"github.com/karansingh008/Tourizio/errors"
	"github.com/karansingh008/Tourizio/pricing"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Cancellation is allowed within a day of placing the booking.
const cancellationWindow = 24 * time.Hour

type BookingService struct {
	bookings domain.BookingStore
	tracer   trace.Tracer
}

func NewBookingService(bookings domain.BookingStore, tracer trace.Tracer) *BookingService {
	return &BookingService{
		bookings: bookings,
		tracer:   tracer,
	}
}

// Submit validates the submission payload and persists a confirmed booking.
func (service *BookingService) Submit(ctx context.Context, session *domain.Session, request *domain.BookingRequest) (*domain.Booking, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.Submit")
	defer span.End()

	if request.Destination == "" || request.CheckIn == "" || request.CheckOut == "" {
		return nil, fmt.Errorf(errors.MissingBookingDetails)
	}

	guestsCount, err := strconv.Atoi(request.GuestsCount)
	if err != nil || guestsCount < 1 {
		return nil, fmt.Errorf(errors.GuestCountError)
	}

	if len(request.Guests) != guestsCount {
		return nil, fmt.Errorf(errors.GuestListMismatchError)
	}

	checkIn := pricing.ParseDate(request.CheckIn)
	checkOut := pricing.ParseDate(request.CheckOut)
	if checkIn.IsZero() || checkOut.IsZero() || !checkOut.After(checkIn) {
		return nil, fmt.Errorf(errors.InvalidDateRangeError)
	}

	guests := make([]domain.Guest, 0, len(request.Guests))
	for _, g := range request.Guests {
		age, _ := strconv.Atoi(g.Age)
		guests = append(guests, domain.Guest{
			FirstName: g.FirstName,
			LastName:  g.LastName,
			Age:       age,
			Gender:    g.Gender,
		})
	}

	booking := &domain.Booking{
		UserID:      session.UserID,
		Destination: request.Destination,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		GuestsCount: guestsCount,
		TotalCost:   request.Total,
		Guests:      guests,
		Status:      domain.BookingStatusConfirmed,
		CreatedAt:   time.Now(),
	}

	if err := service.bookings.Insert(ctx, booking); err != nil {
		span.SetStatus(codes.Error, "Error inserting booking")
		log.Println("Error inserting booking:", err)
		return nil, err
	}

	return booking, nil
}

func (service *BookingService) GetAllByUser(ctx context.Context, session *domain.Session) ([]*domain.Booking, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.GetAllByUser")
	defer span.End()

	return service.bookings.GetAllByUser(ctx, session.UserID)
}

// Cancel marks a confirmed booking as cancelled. Only the owner may cancel,
// only once, and only within the cancellation window.
func (service *BookingService) Cancel(ctx context.Context, session *domain.Session, bookingID string) error {
	ctx, span := service.tracer.Start(ctx, "BookingService.Cancel")
	defer span.End()

	id, err := primitive.ObjectIDFromHex(bookingID)
	if err != nil {
		return fmt.Errorf(errors.InvalidRequestFormatError)
	}

	booking, err := service.bookings.Get(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, "Error fetching booking")
		return err
	}
	if booking == nil || booking.UserID != session.UserID {
		return fmt.Errorf(errors.UnauthorizedError)
	}

	if booking.Status != domain.BookingStatusConfirmed {
		return fmt.Errorf(errors.BookingAlreadyCancelled)
	}

	if time.Since(booking.CreatedAt) > cancellationWindow {
		return fmt.Errorf(errors.CancellationExpired)
	}

	return service.bookings.UpdateStatus(ctx, id, domain.BookingStatusCancelled)
}
