package entities

import "time"

type ReviewInput struct {
	Review string `json:"review"`
	Stars  *int   `json:"stars"`
}

type ReviewUser struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type ReviewImage struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// ReviewDetail is a review enriched with its author and images.
type ReviewDetail struct {
	ID           int           `json:"id"`
	UserID       int           `json:"userId"`
	SpotID       int           `json:"spotId"`
	Review       string        `json:"review"`
	Stars        int           `json:"stars"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
	User         ReviewUser    `json:"User"`
	ReviewImages []ReviewImage `json:"ReviewImages"`
}

type ReviewListResponse struct {
	Reviews []ReviewDetail `json:"Reviews"`
}

type ReviewCreated struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	SpotID    int       `json:"spotId"`
	Review    string    `json:"review"`
	Stars     int       `json:"stars"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SpotAggregates reports the recomputed review cache on the spot.
type SpotAggregates struct {
	ID         int     `json:"id"`
	NumReviews int     `json:"numReviews"`
	AvgRating  float64 `json:"avgRating"`
}

type ReviewCreateResponse struct {
	NewReview ReviewCreated  `json:"newReview"`
	Spot      SpotAggregates `json:"spot"`
}
