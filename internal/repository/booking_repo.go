package repository

import (
	"database/sql"
	"fmt"

	"stayspot/internal/db"
	"stayspot/internal/entities"
)

// ConflictCheck reports which end of a requested range falls inside an
// existing booking for the same spot.
type ConflictCheck struct {
	StartConflict bool
	EndConflict   bool
}

func (c ConflictCheck) Conflicts() bool {
	return c.StartConflict || c.EndConflict
}

type BookingRepository interface {
	ListForSpot(spotID int) ([]entities.OwnerBooking, error)
	// CreateIfAvailable runs the conflict check and the insert in one
	// transaction with the spot row locked, so two concurrent requests
	// for the same spot cannot both pass the check.
	CreateIfAvailable(booking *db.Booking) (ConflictCheck, error)
}

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(database *sql.DB) BookingRepository {
	return &bookingRepository{db: database}
}

func (r *bookingRepository) ListForSpot(spotID int) ([]entities.OwnerBooking, error) {
	query := `
		SELECT b.id, b.spot_id, b.user_id, b.start_date, b.end_date,
		       b.created_at, b.updated_at, u.id, u.first_name, u.last_name
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.spot_id = $1
		ORDER BY b.start_date`

	rows, err := r.db.Query(query, spotID)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	var bookings []entities.OwnerBooking
	for rows.Next() {
		var b entities.OwnerBooking
		var start, end sql.NullTime
		err := rows.Scan(
			&b.ID, &b.SpotID, &b.UserID, &start, &end,
			&b.CreatedAt, &b.UpdatedAt,
			&b.User.ID, &b.User.FirstName, &b.User.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		b.StartDate = entities.NewDate(start.Time)
		b.EndDate = entities.NewDate(end.Time)
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating booking rows: %w", err)
	}
	return bookings, nil
}

// The overlap test checks each endpoint of the requested range
// independently: a date conflicts when an existing booking's range
// contains it. A request that strictly contains an existing booking with
// neither endpoint inside it passes the check; see DESIGN.md.
const endpointConflictQuery = `
	SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE spot_id = $1 AND start_date <= $2 AND end_date >= $2
	)`

func (r *bookingRepository) CreateIfAvailable(booking *db.Booking) (ConflictCheck, error) {
	var check ConflictCheck

	tx, err := r.db.Begin()
	if err != nil {
		return check, fmt.Errorf("error starting booking transaction: %w", err)
	}
	defer tx.Rollback()

	// Serialize bookings per spot.
	var spotID int
	if err := tx.QueryRow(`SELECT id FROM spots WHERE id = $1 FOR UPDATE`, booking.SpotID).Scan(&spotID); err != nil {
		return check, fmt.Errorf("error locking spot row: %w", err)
	}

	if err := tx.QueryRow(endpointConflictQuery, booking.SpotID, booking.StartDate).Scan(&check.StartConflict); err != nil {
		return check, fmt.Errorf("error checking start date conflict: %w", err)
	}
	if err := tx.QueryRow(endpointConflictQuery, booking.SpotID, booking.EndDate).Scan(&check.EndConflict); err != nil {
		return check, fmt.Errorf("error checking end date conflict: %w", err)
	}
	if check.Conflicts() {
		return check, nil
	}

	query := `
		INSERT INTO bookings (spot_id, user_id, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	err = tx.QueryRow(query,
		booking.SpotID,
		booking.UserID,
		booking.StartDate,
		booking.EndDate,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return check, fmt.Errorf("error inserting booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return check, fmt.Errorf("error committing booking: %w", err)
	}
	return check, nil
}
