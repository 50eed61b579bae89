package service

import (
	"log"
	"time"

	"stayspot/internal/apperr"
	"stayspot/internal/db"
	"stayspot/internal/entities"
	"stayspot/internal/repository"
)

// BookingNotifier delivers guest-facing confirmations. Delivery is
// best-effort and never blocks or fails a booking.
type BookingNotifier interface {
	BookingConfirmed(guest *db.User, spot *db.Spot, booking *db.Booking)
}

type BookingService struct {
	Repo     repository.BookingRepository
	Spots    repository.SpotRepository
	Users    repository.UserRepository
	Notifier BookingNotifier
}

func NewBookingService(repo repository.BookingRepository, spots repository.SpotRepository, users repository.UserRepository, notifier BookingNotifier) *BookingService {
	return &BookingService{Repo: repo, Spots: spots, Users: users, Notifier: notifier}
}

// ListForSpot returns full booking rows to the spot's owner and a reduced
// dates-only shape to anyone else.
func (s *BookingService) ListForSpot(userID, spotID int) (*entities.BookingFeed, error) {
	spot, err := s.Spots.GetRow(spotID)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, apperr.NotFound("Spot")
	}

	bookings, err := s.Repo.ListForSpot(spotID)
	if err != nil {
		return nil, err
	}

	if spot.OwnerID == userID {
		if bookings == nil {
			bookings = []entities.OwnerBooking{}
		}
		return &entities.BookingFeed{Bookings: bookings}, nil
	}

	reduced := make([]entities.GuestBooking, 0, len(bookings))
	for _, b := range bookings {
		reduced = append(reduced, entities.GuestBooking{
			SpotID:    b.SpotID,
			StartDate: b.StartDate,
			EndDate:   b.EndDate,
		})
	}
	return &entities.BookingFeed{Bookings: reduced}, nil
}

func (s *BookingService) Create(userID, spotID int, input entities.BookingInput) (*entities.BookingResponse, error) {
	start, end, err := validateBookingDates(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	spot, err := s.Spots.GetRow(spotID)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, apperr.NotFound("Spot")
	}
	if spot.OwnerID == userID {
		// Hosts cannot book their own spot.
		return nil, apperr.Forbidden()
	}

	booking := &db.Booking{
		SpotID:    spotID,
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
	}
	check, err := s.Repo.CreateIfAvailable(booking)
	if err != nil {
		return nil, err
	}
	if check.Conflicts() {
		fields := map[string]string{}
		if check.StartConflict {
			fields["startDate"] = "Start date conflicts with an existing booking"
		}
		if check.EndConflict {
			fields["endDate"] = "End date conflicts with an existing booking"
		}
		return nil, apperr.ForbiddenWithFields(
			"Sorry, this spot is already booked for the specified dates", fields)
	}

	if s.Notifier != nil {
		guest, err := s.Users.GetByID(userID)
		if err != nil || guest == nil {
			log.Printf("Booking %d created but guest %d could not be loaded for notification: %v", booking.ID, userID, err)
		} else {
			s.Notifier.BookingConfirmed(guest, spot, booking)
		}
	}

	return &entities.BookingResponse{
		ID:        booking.ID,
		SpotID:    booking.SpotID,
		UserID:    booking.UserID,
		StartDate: entities.NewDate(booking.StartDate),
		EndDate:   entities.NewDate(booking.EndDate),
		CreatedAt: booking.CreatedAt,
		UpdatedAt: booking.UpdatedAt,
	}, nil
}

// validateBookingDates checks parseability first, then the range rules,
// reporting each failing field separately.
func validateBookingDates(startStr, endStr string) (time.Time, time.Time, error) {
	fields := map[string]string{}

	start, startErr := entities.ParseDate(startStr)
	if startStr == "" || startErr != nil {
		fields["startDate"] = "Invalid or missing startDate"
	}
	end, endErr := entities.ParseDate(endStr)
	if endStr == "" || endErr != nil {
		fields["endDate"] = "Invalid or missing endDate"
	}
	if len(fields) > 0 {
		return time.Time{}, time.Time{}, apperr.Validation(fields)
	}

	if start.Time.Before(entities.Today().Time) {
		fields["startDate"] = "startDate cannot be in the past"
	}
	if !end.Time.After(start.Time) {
		fields["endDate"] = "endDate cannot be on or before startDate"
	}
	if len(fields) > 0 {
		return time.Time{}, time.Time{}, apperr.Validation(fields)
	}
	return start.Time, end.Time, nil
}
