package service

import (
	"stayspot/internal/apperr"
	"stayspot/internal/db"
	"stayspot/internal/entities"
	"stayspot/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 20
)

type SpotService struct {
	Repo repository.SpotRepository
}

func NewSpotService(repo repository.SpotRepository) *SpotService {
	return &SpotService{Repo: repo}
}

// List returns one page of the public listing. Out-of-range page and size
// values are clamped rather than rejected.
func (s *SpotService) List(filter entities.SpotFilter) (*entities.SpotListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Size < 1 || filter.Size > maxPageSize {
		filter.Size = defaultPageSize
	}
	offset := (filter.Page - 1) * filter.Size

	spots, err := s.Repo.List(filter, filter.Size, offset)
	if err != nil {
		return nil, err
	}
	if spots == nil {
		spots = []entities.SpotSummary{}
	}
	// The list view shows 0 instead of null for unreviewed spots.
	for i := range spots {
		if spots[i].AvgRating == nil {
			zero := 0.0
			spots[i].AvgRating = &zero
		}
	}
	return &entities.SpotListResponse{
		Spots: spots,
		Page:  filter.Page,
		Size:  filter.Size,
	}, nil
}

func (s *SpotService) ListByOwner(userID int) (*entities.OwnerSpotsResponse, error) {
	spots, err := s.Repo.ListByOwner(userID)
	if err != nil {
		return nil, err
	}
	if spots == nil {
		spots = []entities.SpotSummary{}
	}
	return &entities.OwnerSpotsResponse{Spots: spots}, nil
}

func (s *SpotService) Get(spotID int) (*entities.SpotDetail, error) {
	detail, err := s.Repo.GetDetail(spotID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, apperr.NotFound("Spot")
	}
	return detail, nil
}

func (s *SpotService) Create(userID int, input entities.SpotInput) (*entities.Spot, error) {
	if err := validateSpotInput(input); err != nil {
		return nil, err
	}
	spot := &db.Spot{
		OwnerID:     userID,
		Address:     input.Address,
		City:        input.City,
		State:       input.State,
		Country:     input.Country,
		Lat:         *input.Lat,
		Lng:         *input.Lng,
		Name:        input.Name,
		Description: input.Description,
		Price:       *input.Price,
	}
	if err := s.Repo.Create(spot); err != nil {
		return nil, err
	}
	return spotResponse(spot), nil
}

func (s *SpotService) Update(userID, spotID int, input entities.SpotInput) (*entities.Spot, error) {
	if err := validateSpotInput(input); err != nil {
		return nil, err
	}
	spot, err := s.Repo.GetRow(spotID)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, apperr.NotFound("Spot")
	}
	if err := authorizeOwner(spot.OwnerID, userID); err != nil {
		return nil, err
	}

	spot.Address = input.Address
	spot.City = input.City
	spot.State = input.State
	spot.Country = input.Country
	spot.Lat = *input.Lat
	spot.Lng = *input.Lng
	spot.Name = input.Name
	spot.Description = input.Description
	spot.Price = *input.Price

	if err := s.Repo.Update(spot); err != nil {
		return nil, err
	}
	return spotResponse(spot), nil
}

func (s *SpotService) Delete(userID, spotID int) error {
	spot, err := s.Repo.GetRow(spotID)
	if err != nil {
		return err
	}
	if spot == nil {
		return apperr.NotFound("Spot")
	}
	if err := authorizeOwner(spot.OwnerID, userID); err != nil {
		return err
	}
	return s.Repo.Delete(spotID)
}

func (s *SpotService) AddImage(userID, spotID int, input entities.SpotImageInput) (*entities.SpotImage, error) {
	spot, err := s.Repo.GetRow(spotID)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, apperr.NotFound("Spot")
	}
	if err := authorizeOwner(spot.OwnerID, userID); err != nil {
		return nil, err
	}

	image := &db.SpotImage{
		SpotID:  spotID,
		URL:     input.URL,
		Preview: input.Preview,
	}
	if err := s.Repo.AddImage(image); err != nil {
		return nil, err
	}
	return &entities.SpotImage{ID: image.ID, URL: image.URL, Preview: image.Preview}, nil
}

func validateSpotInput(input entities.SpotInput) error {
	fields := map[string]string{}
	if input.Name == "" {
		fields["name"] = "Name is required"
	}
	if input.Address == "" {
		fields["address"] = "Street address is required"
	}
	if input.City == "" {
		fields["city"] = "City is required"
	}
	if input.State == "" {
		fields["state"] = "State is required"
	}
	if input.Country == "" {
		fields["country"] = "Country is required"
	}
	if input.Lat == nil || *input.Lat < -90 || *input.Lat > 90 {
		fields["lat"] = "Latitude must be within -90 and 90"
	}
	if input.Lng == nil || *input.Lng < -180 || *input.Lng > 180 {
		fields["lng"] = "Longitude must be within -180 and 180"
	}
	if input.Description == "" {
		fields["description"] = "Description is required"
	}
	if input.Price == nil || *input.Price <= 0 {
		fields["price"] = "Price per day must be a positive number"
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}
	return nil
}

func spotResponse(spot *db.Spot) *entities.Spot {
	return &entities.Spot{
		ID:          spot.ID,
		OwnerID:     spot.OwnerID,
		Address:     spot.Address,
		City:        spot.City,
		State:       spot.State,
		Country:     spot.Country,
		Lat:         spot.Lat,
		Lng:         spot.Lng,
		Name:        spot.Name,
		Description: spot.Description,
		Price:       spot.Price,
		CreatedAt:   spot.CreatedAt,
		UpdatedAt:   spot.UpdatedAt,
	}
}
