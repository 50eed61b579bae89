package service

import (
	"database/sql"
	"time"

	"stayspot/internal/db"
	"stayspot/internal/entities"
	"stayspot/internal/repository"
)

type fakeSpotRepo struct {
	spots      map[int]*db.Spot
	summaries  []entities.SpotSummary
	images     []db.SpotImage
	nextID     int
	lastFilter entities.SpotFilter
	lastLimit  int
	lastOffset int

	aggSpotID     int
	aggNumReviews int
	aggAvgRating  sql.NullFloat64
}

func newFakeSpotRepo() *fakeSpotRepo {
	return &fakeSpotRepo{spots: map[int]*db.Spot{}, nextID: 1}
}

func (f *fakeSpotRepo) add(spot db.Spot) *db.Spot {
	if spot.ID == 0 {
		spot.ID = f.nextID
	}
	if spot.ID >= f.nextID {
		f.nextID = spot.ID + 1
	}
	f.spots[spot.ID] = &spot
	return f.spots[spot.ID]
}

func (f *fakeSpotRepo) List(filter entities.SpotFilter, limit, offset int) ([]entities.SpotSummary, error) {
	f.lastFilter = filter
	f.lastLimit = limit
	f.lastOffset = offset
	return f.summaries, nil
}

func (f *fakeSpotRepo) ListByOwner(ownerID int) ([]entities.SpotSummary, error) {
	var out []entities.SpotSummary
	for _, s := range f.summaries {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSpotRepo) GetDetail(id int) (*entities.SpotDetail, error) {
	spot, ok := f.spots[id]
	if !ok {
		return nil, nil
	}
	return &entities.SpotDetail{
		ID:         spot.ID,
		OwnerID:    spot.OwnerID,
		Name:       spot.Name,
		SpotImages: []entities.SpotImage{},
	}, nil
}

func (f *fakeSpotRepo) GetRow(id int) (*db.Spot, error) {
	spot, ok := f.spots[id]
	if !ok {
		return nil, nil
	}
	copied := *spot
	return &copied, nil
}

func (f *fakeSpotRepo) Create(spot *db.Spot) error {
	spot.ID = f.nextID
	f.nextID++
	spot.CreatedAt = time.Now().UTC()
	spot.UpdatedAt = spot.CreatedAt
	stored := *spot
	f.spots[spot.ID] = &stored
	return nil
}

func (f *fakeSpotRepo) Update(spot *db.Spot) error {
	spot.UpdatedAt = time.Now().UTC()
	stored := *spot
	f.spots[spot.ID] = &stored
	return nil
}

func (f *fakeSpotRepo) Delete(id int) error {
	delete(f.spots, id)
	return nil
}

func (f *fakeSpotRepo) AddImage(image *db.SpotImage) error {
	image.ID = len(f.images) + 1
	f.images = append(f.images, *image)
	return nil
}

func (f *fakeSpotRepo) UpdateAggregates(spotID, numReviews int, avgRating sql.NullFloat64) error {
	f.aggSpotID = spotID
	f.aggNumReviews = numReviews
	f.aggAvgRating = avgRating
	if spot, ok := f.spots[spotID]; ok {
		spot.NumReviews = numReviews
		spot.AvgRating = avgRating
	}
	return nil
}

type fakeBookingRepo struct {
	bookings []db.Booking
	listed   []entities.OwnerBooking
	nextID   int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1}
}

func (f *fakeBookingRepo) ListForSpot(spotID int) ([]entities.OwnerBooking, error) {
	return f.listed, nil
}

func dateWithin(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

func (f *fakeBookingRepo) CreateIfAvailable(booking *db.Booking) (repository.ConflictCheck, error) {
	var check repository.ConflictCheck
	for _, existing := range f.bookings {
		if existing.SpotID != booking.SpotID {
			continue
		}
		if dateWithin(booking.StartDate, existing.StartDate, existing.EndDate) {
			check.StartConflict = true
		}
		if dateWithin(booking.EndDate, existing.StartDate, existing.EndDate) {
			check.EndConflict = true
		}
	}
	if check.Conflicts() {
		return check, nil
	}
	booking.ID = f.nextID
	f.nextID++
	booking.CreatedAt = time.Now().UTC()
	booking.UpdatedAt = booking.CreatedAt
	f.bookings = append(f.bookings, *booking)
	return check, nil
}

type fakeReviewRepo struct {
	reviews []db.Review
	listed  []entities.ReviewDetail
	nextID  int
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{nextID: 1}
}

func (f *fakeReviewRepo) ListForSpot(spotID int) ([]entities.ReviewDetail, error) {
	return f.listed, nil
}

func (f *fakeReviewRepo) ExistsForUser(spotID, userID int) (bool, error) {
	for _, r := range f.reviews {
		if r.SpotID == spotID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewRepo) Create(review *db.Review) error {
	for _, r := range f.reviews {
		if r.SpotID == review.SpotID && r.UserID == review.UserID {
			return repository.ErrDuplicateReview
		}
	}
	review.ID = f.nextID
	f.nextID++
	review.CreatedAt = time.Now().UTC()
	review.UpdatedAt = review.CreatedAt
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewRepo) Aggregates(spotID int) (int, sql.NullFloat64, error) {
	var count, sum int
	for _, r := range f.reviews {
		if r.SpotID == spotID {
			count++
			sum += r.Stars
		}
	}
	var avg sql.NullFloat64
	if count > 0 {
		avg = sql.NullFloat64{Float64: float64(sum) / float64(count), Valid: true}
	}
	return count, avg, nil
}

type fakeUserRepo struct {
	users  map[int]*db.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*db.User{}, nextID: 1}
}

func (f *fakeUserRepo) add(user db.User) *db.User {
	if user.ID == 0 {
		user.ID = f.nextID
	}
	if user.ID >= f.nextID {
		f.nextID = user.ID + 1
	}
	f.users[user.ID] = &user
	return f.users[user.ID]
}

func (f *fakeUserRepo) GetByEmail(email string) (*db.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(id int) (*db.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) Create(user *db.User) error {
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users[user.ID] = &stored
	return nil
}
