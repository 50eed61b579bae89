package entities

import "time"

type BookingInput struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// BookingResponse is the shape returned when a booking is created.
type BookingResponse struct {
	ID        int       `json:"id"`
	SpotID    int       `json:"spotId"`
	UserID    int       `json:"userId"`
	StartDate Date      `json:"startDate"`
	EndDate   Date      `json:"endDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BookingUser struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// OwnerBooking is the full booking row the spot owner sees.
type OwnerBooking struct {
	User      BookingUser `json:"User"`
	ID        int         `json:"id"`
	SpotID    int         `json:"spotId"`
	UserID    int         `json:"userId"`
	StartDate Date        `json:"startDate"`
	EndDate   Date        `json:"endDate"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// GuestBooking is the reduced shape shown to everyone but the owner.
type GuestBooking struct {
	SpotID    int  `json:"spotId"`
	StartDate Date `json:"startDate"`
	EndDate   Date `json:"endDate"`
}

// BookingFeed wraps either []OwnerBooking or []GuestBooking depending on
// who is asking.
type BookingFeed struct {
	Bookings any `json:"Bookings"`
}
