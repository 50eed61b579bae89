package db

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int
	FirstName    string
	LastName     string
	Email        string
	Phone        sql.NullString
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Spot struct {
	ID          int
	OwnerID     int
	Address     string
	City        string
	State       string
	Country     string
	Lat         float64
	Lng         float64
	Name        string
	Description string
	Price       float64
	AvgRating   sql.NullFloat64
	NumReviews  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type SpotImage struct {
	ID      int
	SpotID  int
	URL     string
	Preview bool
}

type Booking struct {
	ID        int
	SpotID    int
	UserID    int
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Review struct {
	ID        int
	SpotID    int
	UserID    int
	Review    string
	Stars     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ReviewImage struct {
	ID       int
	ReviewID int
	URL      string
}
