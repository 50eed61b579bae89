package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"stayspot/internal/db"
	"stayspot/internal/entities"
)

// ErrDuplicateReview is returned when the reviews unique constraint
// rejects a second review from the same user on the same spot.
var ErrDuplicateReview = errors.New("user already reviewed this spot")

type ReviewRepository interface {
	ListForSpot(spotID int) ([]entities.ReviewDetail, error)
	ExistsForUser(spotID, userID int) (bool, error)
	Create(review *db.Review) error
	Aggregates(spotID int) (numReviews int, avgRating sql.NullFloat64, err error)
}

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(database *sql.DB) ReviewRepository {
	return &reviewRepository{db: database}
}

func (r *reviewRepository) ListForSpot(spotID int) ([]entities.ReviewDetail, error) {
	query := `
		SELECT r.id, r.user_id, r.spot_id, r.review, r.stars, r.created_at, r.updated_at,
		       u.id, u.first_name, u.last_name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.spot_id = $1
		ORDER BY r.id`

	rows, err := r.db.Query(query, spotID)
	if err != nil {
		return nil, fmt.Errorf("error querying reviews: %w", err)
	}
	defer rows.Close()

	var reviews []entities.ReviewDetail
	var reviewIDs []int
	for rows.Next() {
		var rv entities.ReviewDetail
		err := rows.Scan(
			&rv.ID, &rv.UserID, &rv.SpotID, &rv.Review, &rv.Stars,
			&rv.CreatedAt, &rv.UpdatedAt,
			&rv.User.ID, &rv.User.FirstName, &rv.User.LastName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning review row: %w", err)
		}
		rv.ReviewImages = []entities.ReviewImage{}
		reviews = append(reviews, rv)
		reviewIDs = append(reviewIDs, rv.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating review rows: %w", err)
	}
	if len(reviews) == 0 {
		return reviews, nil
	}

	imgRows, err := r.db.Query(
		`SELECT id, review_id, url FROM review_images WHERE review_id = ANY($1) ORDER BY id`,
		pq.Array(reviewIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("error querying review images: %w", err)
	}
	defer imgRows.Close()

	byReview := make(map[int]*entities.ReviewDetail, len(reviews))
	for i := range reviews {
		byReview[reviews[i].ID] = &reviews[i]
	}
	for imgRows.Next() {
		var img entities.ReviewImage
		var reviewID int
		if err := imgRows.Scan(&img.ID, &reviewID, &img.URL); err != nil {
			return nil, fmt.Errorf("error scanning review image: %w", err)
		}
		if rv, ok := byReview[reviewID]; ok {
			rv.ReviewImages = append(rv.ReviewImages, img)
		}
	}
	if err := imgRows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating review images: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) ExistsForUser(spotID, userID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE spot_id = $1 AND user_id = $2)`,
		spotID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking existing review: %w", err)
	}
	return exists, nil
}

func (r *reviewRepository) Create(review *db.Review) error {
	query := `
		INSERT INTO reviews (spot_id, user_id, review, stars, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		review.SpotID,
		review.UserID,
		review.Review,
		review.Stars,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateReview
		}
		return fmt.Errorf("error inserting review: %w", err)
	}
	return nil
}

func (r *reviewRepository) Aggregates(spotID int) (int, sql.NullFloat64, error) {
	var count int
	var avg sql.NullFloat64
	err := r.db.QueryRow(
		`SELECT COUNT(id), AVG(stars) FROM reviews WHERE spot_id = $1`,
		spotID,
	).Scan(&count, &avg)
	if err != nil {
		return 0, avg, fmt.Errorf("error aggregating reviews: %w", err)
	}
	return count, avg, nil
}
