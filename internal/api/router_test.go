package api

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gorilla/mux"

	"stayspot/internal/auth"
	"stayspot/internal/db"
	"stayspot/internal/entities"
	"stayspot/internal/repository"
	"stayspot/internal/service"
)

const testSecret = "handler-test-secret"

// In-memory repositories backing full services, so handler tests cover
// routing, auth and response envelopes end to end.

type memSpotRepo struct {
	spots     map[int]*db.Spot
	summaries []entities.SpotSummary
	images    []db.SpotImage
	nextID    int
}

func (m *memSpotRepo) List(filter entities.SpotFilter, limit, offset int) ([]entities.SpotSummary, error) {
	var out []entities.SpotSummary
	for _, s := range m.summaries {
		if filter.MinPrice != nil && s.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && s.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, s)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memSpotRepo) ListByOwner(ownerID int) ([]entities.SpotSummary, error) {
	var out []entities.SpotSummary
	for _, s := range m.summaries {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSpotRepo) GetDetail(id int) (*entities.SpotDetail, error) {
	spot, ok := m.spots[id]
	if !ok {
		return nil, nil
	}
	return &entities.SpotDetail{
		ID:         spot.ID,
		OwnerID:    spot.OwnerID,
		Name:       spot.Name,
		Price:      spot.Price,
		SpotImages: []entities.SpotImage{},
	}, nil
}

func (m *memSpotRepo) GetRow(id int) (*db.Spot, error) {
	spot, ok := m.spots[id]
	if !ok {
		return nil, nil
	}
	copied := *spot
	return &copied, nil
}

func (m *memSpotRepo) Create(spot *db.Spot) error {
	spot.ID = m.nextID
	m.nextID++
	spot.CreatedAt = time.Now().UTC()
	spot.UpdatedAt = spot.CreatedAt
	stored := *spot
	m.spots[spot.ID] = &stored
	return nil
}

func (m *memSpotRepo) Update(spot *db.Spot) error {
	stored := *spot
	m.spots[spot.ID] = &stored
	return nil
}

func (m *memSpotRepo) Delete(id int) error {
	delete(m.spots, id)
	return nil
}

func (m *memSpotRepo) AddImage(image *db.SpotImage) error {
	image.ID = len(m.images) + 1
	m.images = append(m.images, *image)
	return nil
}

func (m *memSpotRepo) UpdateAggregates(spotID, numReviews int, avgRating sql.NullFloat64) error {
	if spot, ok := m.spots[spotID]; ok {
		spot.NumReviews = numReviews
		spot.AvgRating = avgRating
	}
	return nil
}

type memBookingRepo struct {
	bookings []db.Booking
	nextID   int
}

func (m *memBookingRepo) ListForSpot(spotID int) ([]entities.OwnerBooking, error) {
	var out []entities.OwnerBooking
	for _, b := range m.bookings {
		if b.SpotID == spotID {
			out = append(out, entities.OwnerBooking{
				ID:        b.ID,
				SpotID:    b.SpotID,
				UserID:    b.UserID,
				StartDate: entities.NewDate(b.StartDate),
				EndDate:   entities.NewDate(b.EndDate),
			})
		}
	}
	return out, nil
}

func (m *memBookingRepo) CreateIfAvailable(booking *db.Booking) (repository.ConflictCheck, error) {
	var check repository.ConflictCheck
	within := func(d, s, e time.Time) bool { return !d.Before(s) && !d.After(e) }
	for _, existing := range m.bookings {
		if existing.SpotID != booking.SpotID {
			continue
		}
		if within(booking.StartDate, existing.StartDate, existing.EndDate) {
			check.StartConflict = true
		}
		if within(booking.EndDate, existing.StartDate, existing.EndDate) {
			check.EndConflict = true
		}
	}
	if check.Conflicts() {
		return check, nil
	}
	booking.ID = m.nextID
	m.nextID++
	booking.CreatedAt = time.Now().UTC()
	booking.UpdatedAt = booking.CreatedAt
	m.bookings = append(m.bookings, *booking)
	return check, nil
}

type memReviewRepo struct {
	reviews []db.Review
	nextID  int
}

func (m *memReviewRepo) ListForSpot(spotID int) ([]entities.ReviewDetail, error) {
	var out []entities.ReviewDetail
	for _, r := range m.reviews {
		if r.SpotID == spotID {
			out = append(out, entities.ReviewDetail{
				ID: r.ID, UserID: r.UserID, SpotID: r.SpotID,
				Review: r.Review, Stars: r.Stars,
				ReviewImages: []entities.ReviewImage{},
			})
		}
	}
	return out, nil
}

func (m *memReviewRepo) ExistsForUser(spotID, userID int) (bool, error) {
	for _, r := range m.reviews {
		if r.SpotID == spotID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memReviewRepo) Create(review *db.Review) error {
	for _, r := range m.reviews {
		if r.SpotID == review.SpotID && r.UserID == review.UserID {
			return repository.ErrDuplicateReview
		}
	}
	review.ID = m.nextID
	m.nextID++
	review.CreatedAt = time.Now().UTC()
	review.UpdatedAt = review.CreatedAt
	m.reviews = append(m.reviews, *review)
	return nil
}

func (m *memReviewRepo) Aggregates(spotID int) (int, sql.NullFloat64, error) {
	var count, sum int
	for _, r := range m.reviews {
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

type memUserRepo struct {
	users  map[int]*db.User
	nextID int
}

func (m *memUserRepo) GetByEmail(email string) (*db.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetByID(id int) (*db.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (m *memUserRepo) Create(user *db.User) error {
	user.ID = m.nextID
	m.nextID++
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

type testEnv struct {
	router   *mux.Router
	spots    *memSpotRepo
	bookings *memBookingRepo
	reviews  *memReviewRepo
	users    *memUserRepo
}

func newTestEnv() *testEnv {
	env := &testEnv{
		spots:    &memSpotRepo{spots: map[int]*db.Spot{}, nextID: 1},
		bookings: &memBookingRepo{nextID: 1},
		reviews:  &memReviewRepo{nextID: 1},
		users:    &memUserRepo{users: map[int]*db.User{}, nextID: 1},
	}

	authSvc := service.NewAuthService(env.users, testSecret, time.Hour)
	spotSvc := service.NewSpotService(env.spots)
	bookingSvc := service.NewBookingService(env.bookings, env.spots, env.users, nil)
	reviewSvc := service.NewReviewService(env.reviews, env.spots)

	authHandler := NewAuthHandler(authSvc)
	spotHandler := NewSpotHandler(spotSvc)
	bookingHandler := NewBookingHandler(bookingSvc)
	reviewHandler := NewReviewHandler(reviewSvc)

	requireAuth := auth.RequireUser(testSecret)

	r := mux.NewRouter()
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/users", authHandler.Signup).Methods("POST")
	apiRouter.HandleFunc("/session", authHandler.Login).Methods("POST")
	apiRouter.HandleFunc("/session", requireAuth(authHandler.CurrentUser)).Methods("GET")
	apiRouter.HandleFunc("/spots", spotHandler.ListSpots).Methods("GET")
	apiRouter.HandleFunc("/spots/current", requireAuth(spotHandler.ListOwnSpots)).Methods("GET")
	apiRouter.HandleFunc("/spots/{id}", spotHandler.GetSpot).Methods("GET")
	apiRouter.HandleFunc("/spots", requireAuth(spotHandler.CreateSpot)).Methods("POST")
	apiRouter.HandleFunc("/spots/{id}", requireAuth(spotHandler.UpdateSpot)).Methods("PUT")
	apiRouter.HandleFunc("/spots/{id}", requireAuth(spotHandler.DeleteSpot)).Methods("DELETE")
	apiRouter.HandleFunc("/spots/{id}/images", requireAuth(spotHandler.AddSpotImage)).Methods("POST")
	apiRouter.HandleFunc("/spots/{id}/reviews", reviewHandler.ListSpotReviews).Methods("GET")
	apiRouter.HandleFunc("/spots/{id}/reviews", requireAuth(reviewHandler.CreateReview)).Methods("POST")
	apiRouter.HandleFunc("/spots/{id}/bookings", requireAuth(bookingHandler.ListSpotBookings)).Methods("GET")
	apiRouter.HandleFunc("/spots/{id}/bookings", requireAuth(bookingHandler.CreateBooking)).Methods("POST")

	env.router = r
	return env
}

func (env *testEnv) seedUser(id int, firstName, lastName, email string) string {
	env.users.users[id] = &db.User{
		ID: id, FirstName: firstName, LastName: lastName, Email: email,
		PasswordHash: "x",
	}
	if id >= env.users.nextID {
		env.users.nextID = id + 1
	}
	token, err := auth.MintToken(testSecret, id, email, time.Hour)
	if err != nil {
		panic(err)
	}
	return token
}

func (env *testEnv) seedSpot(spot db.Spot) {
	env.spots.spots[spot.ID] = &spot
	if spot.ID >= env.spots.nextID {
		env.spots.nextID = spot.ID + 1
	}
}

func (env *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}
