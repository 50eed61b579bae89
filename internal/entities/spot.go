package entities

import "time"

// SpotFilter narrows the public listing. A nil bound imposes no constraint;
// all comparisons are inclusive.
type SpotFilter struct {
	MinLat   *float64
	MaxLat   *float64
	MinLng   *float64
	MaxLng   *float64
	MinPrice *float64
	MaxPrice *float64
	Page     int
	Size     int
}

// SpotSummary is a listing row: the spot plus its average rating and the
// url of its preview image, when one exists.
type SpotSummary struct {
	ID           int       `json:"id"`
	OwnerID      int       `json:"ownerId"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Country      string    `json:"country"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	AvgRating    *float64  `json:"avgRating"`
	PreviewImage *string   `json:"previewImage"`
}

type SpotListResponse struct {
	Spots []SpotSummary `json:"Spots"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
}

type OwnerSpotsResponse struct {
	Spots []SpotSummary `json:"Spots"`
}

type SpotOwner struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type SpotImage struct {
	ID      int    `json:"id"`
	URL     string `json:"url"`
	Preview bool   `json:"preview"`
}

// SpotDetail is the single-spot view with images, owner and review
// aggregates computed from the reviews table.
type SpotDetail struct {
	ID           int         `json:"id"`
	OwnerID      int         `json:"ownerId"`
	Address      string      `json:"address"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	Country      string      `json:"country"`
	Lat          float64     `json:"lat"`
	Lng          float64     `json:"lng"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Price        float64     `json:"price"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	NumReviews   int         `json:"numReviews"`
	AvgRating    *float64    `json:"avgRating"`
	SpotImages   []SpotImage `json:"SpotImages"`
	PreviewImage *string     `json:"previewImage"`
	Owner        SpotOwner   `json:"Owner"`
}

// Spot is the shape returned by create and update.
type Spot struct {
	ID          int       `json:"id"`
	OwnerID     int       `json:"ownerId"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Country     string    `json:"country"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SpotInput carries the mutable spot fields for create and update.
// Numeric fields are pointers so a missing value can be told apart from
// zero during validation.
type SpotInput struct {
	Address     string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Country     string   `json:"country"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
}

type SpotImageInput struct {
	URL     string `json:"url"`
	Preview bool   `json:"preview"`
}
