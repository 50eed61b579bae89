package service

import (
	"errors"
	"net/http"

	"stayspot/internal/apperr"
	"stayspot/internal/db"
	"stayspot/internal/entities"
	"stayspot/internal/repository"
)

type ReviewService struct {
	Repo  repository.ReviewRepository
	Spots repository.SpotRepository
}

func NewReviewService(repo repository.ReviewRepository, spots repository.SpotRepository) *ReviewService {
	return &ReviewService{Repo: repo, Spots: spots}
}

func (s *ReviewService) ListForSpot(spotID int) (*entities.ReviewListResponse, error) {
	spot, err := s.Spots.GetRow(spotID)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, apperr.NotFound("Spot")
	}

	reviews, err := s.Repo.ListForSpot(spotID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []entities.ReviewDetail{}
	}
	return &entities.ReviewListResponse{Reviews: reviews}, nil
}

// Create inserts the review, then recomputes the spot's cached counters
// from the reviews table and persists them.
func (s *ReviewService) Create(userID, spotID int, input entities.ReviewInput) (*entities.ReviewCreateResponse, error) {
	fields := map[string]string{}
	if input.Review == "" {
		fields["review"] = "Review text is required"
	}
	if input.Stars == nil || *input.Stars < 1 || *input.Stars > 5 {
		fields["stars"] = "Stars must be an integer from 1 to 5"
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields)
	}

	spot, err := s.Spots.GetRow(spotID)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, apperr.NotFound("Spot")
	}

	exists, err := s.Repo.ExistsForUser(spotID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.New(http.StatusForbidden, "User already has a review for this spot")
	}

	review := &db.Review{
		SpotID: spotID,
		UserID: userID,
		Review: input.Review,
		Stars:  *input.Stars,
	}
	if err := s.Repo.Create(review); err != nil {
		// The unique constraint catches requests that raced past the
		// pre-check; report the same 403.
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, apperr.New(http.StatusForbidden, "User already has a review for this spot")
		}
		return nil, err
	}

	numReviews, avgRating, err := s.Repo.Aggregates(spotID)
	if err != nil {
		return nil, err
	}
	if err := s.Spots.UpdateAggregates(spotID, numReviews, avgRating); err != nil {
		return nil, err
	}

	return &entities.ReviewCreateResponse{
		NewReview: entities.ReviewCreated{
			ID:        review.ID,
			UserID:    review.UserID,
			SpotID:    review.SpotID,
			Review:    review.Review,
			Stars:     review.Stars,
			CreatedAt: review.CreatedAt,
			UpdatedAt: review.UpdatedAt,
		},
		Spot: entities.SpotAggregates{
			ID:         spotID,
			NumReviews: numReviews,
			AvgRating:  avgRating.Float64,
		},
	}, nil
}
