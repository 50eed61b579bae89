package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"stayspot/internal/db"
	"stayspot/internal/entities"
)

type SpotRepository interface {
	List(filter entities.SpotFilter, limit, offset int) ([]entities.SpotSummary, error)
	ListByOwner(ownerID int) ([]entities.SpotSummary, error)
	GetDetail(id int) (*entities.SpotDetail, error)
	GetRow(id int) (*db.Spot, error)
	Create(spot *db.Spot) error
	Update(spot *db.Spot) error
	Delete(id int) error
	AddImage(image *db.SpotImage) error
	UpdateAggregates(spotID, numReviews int, avgRating sql.NullFloat64) error
}

type spotRepository struct {
	db *sql.DB
}

func NewSpotRepository(database *sql.DB) SpotRepository {
	return &spotRepository{db: database}
}

// summaryQuery enriches each spot row with the live average rating and
// the url of its first preview image.
const summaryColumns = `
	s.id, s.owner_id, s.address, s.city, s.state, s.country, s.lat, s.lng,
	s.name, s.description, s.price, s.created_at, s.updated_at,
	(SELECT AVG(r.stars) FROM reviews r WHERE r.spot_id = s.id) AS avg_rating,
	(SELECT si.url FROM spot_images si
	 WHERE si.spot_id = s.id AND si.preview
	 ORDER BY si.id LIMIT 1) AS preview_image`

func (r *spotRepository) List(filter entities.SpotFilter, limit, offset int) ([]entities.SpotSummary, error) {
	query := `
		SELECT ` + summaryColumns + `
		FROM spots s
		WHERE ($1::float8 IS NULL OR s.lat >= $1)
		  AND ($2::float8 IS NULL OR s.lat <= $2)
		  AND ($3::float8 IS NULL OR s.lng >= $3)
		  AND ($4::float8 IS NULL OR s.lng <= $4)
		  AND ($5::float8 IS NULL OR s.price >= $5)
		  AND ($6::float8 IS NULL OR s.price <= $6)
		ORDER BY s.id
		LIMIT $7 OFFSET $8`

	rows, err := r.db.Query(query,
		filter.MinLat, filter.MaxLat,
		filter.MinLng, filter.MaxLng,
		filter.MinPrice, filter.MaxPrice,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying spots: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func (r *spotRepository) ListByOwner(ownerID int) ([]entities.SpotSummary, error) {
	query := `
		SELECT ` + summaryColumns + `
		FROM spots s
		WHERE s.owner_id = $1
		ORDER BY s.id`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying spots by owner: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func scanSummaries(rows *sql.Rows) ([]entities.SpotSummary, error) {
	var spots []entities.SpotSummary
	for rows.Next() {
		var s entities.SpotSummary
		var avgRating sql.NullFloat64
		var preview sql.NullString
		err := rows.Scan(
			&s.ID, &s.OwnerID, &s.Address, &s.City, &s.State, &s.Country,
			&s.Lat, &s.Lng, &s.Name, &s.Description, &s.Price,
			&s.CreatedAt, &s.UpdatedAt, &avgRating, &preview,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning spot row: %w", err)
		}
		if avgRating.Valid {
			s.AvgRating = &avgRating.Float64
		}
		if preview.Valid {
			s.PreviewImage = &preview.String
		}
		spots = append(spots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating spot rows: %w", err)
	}
	return spots, nil
}

func (r *spotRepository) GetDetail(id int) (*entities.SpotDetail, error) {
	var d entities.SpotDetail
	var avgRating sql.NullFloat64
	query := `
		SELECT s.id, s.owner_id, s.address, s.city, s.state, s.country, s.lat, s.lng,
		       s.name, s.description, s.price, s.created_at, s.updated_at,
		       (SELECT COUNT(r.id) FROM reviews r WHERE r.spot_id = s.id) AS num_reviews,
		       (SELECT AVG(r.stars) FROM reviews r WHERE r.spot_id = s.id) AS avg_rating,
		       u.id, u.first_name, u.last_name
		FROM spots s
		JOIN users u ON u.id = s.owner_id
		WHERE s.id = $1`

	err := r.db.QueryRow(query, id).Scan(
		&d.ID, &d.OwnerID, &d.Address, &d.City, &d.State, &d.Country,
		&d.Lat, &d.Lng, &d.Name, &d.Description, &d.Price,
		&d.CreatedAt, &d.UpdatedAt, &d.NumReviews, &avgRating,
		&d.Owner.ID, &d.Owner.FirstName, &d.Owner.LastName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying spot detail: %w", err)
	}
	if avgRating.Valid {
		d.AvgRating = &avgRating.Float64
	}

	rows, err := r.db.Query(`SELECT id, url, preview FROM spot_images WHERE spot_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("error querying spot images: %w", err)
	}
	defer rows.Close()

	d.SpotImages = []entities.SpotImage{}
	for rows.Next() {
		var img entities.SpotImage
		if err := rows.Scan(&img.ID, &img.URL, &img.Preview); err != nil {
			return nil, fmt.Errorf("error scanning spot image: %w", err)
		}
		d.SpotImages = append(d.SpotImages, img)
		if d.PreviewImage == nil && img.Preview {
			url := img.URL
			d.PreviewImage = &url
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating spot images: %w", err)
	}
	return &d, nil
}

func (r *spotRepository) GetRow(id int) (*db.Spot, error) {
	var s db.Spot
	query := `
		SELECT id, owner_id, address, city, state, country, lat, lng,
		       name, description, price, avg_rating, num_reviews, created_at, updated_at
		FROM spots WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(
		&s.ID, &s.OwnerID, &s.Address, &s.City, &s.State, &s.Country,
		&s.Lat, &s.Lng, &s.Name, &s.Description, &s.Price,
		&s.AvgRating, &s.NumReviews, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying spot: %w", err)
	}
	return &s, nil
}

func (r *spotRepository) Create(spot *db.Spot) error {
	query := `
		INSERT INTO spots
		(owner_id, address, city, state, country, lat, lng, name, description, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at`
	return r.db.QueryRow(query,
		spot.OwnerID,
		spot.Address,
		spot.City,
		spot.State,
		spot.Country,
		spot.Lat,
		spot.Lng,
		spot.Name,
		spot.Description,
		spot.Price,
	).Scan(&spot.ID, &spot.CreatedAt, &spot.UpdatedAt)
}

func (r *spotRepository) Update(spot *db.Spot) error {
	query := `
		UPDATE spots
		SET address = $2, city = $3, state = $4, country = $5, lat = $6, lng = $7,
		    name = $8, description = $9, price = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	return r.db.QueryRow(query,
		spot.ID,
		spot.Address,
		spot.City,
		spot.State,
		spot.Country,
		spot.Lat,
		spot.Lng,
		spot.Name,
		spot.Description,
		spot.Price,
	).Scan(&spot.UpdatedAt)
}

func (r *spotRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM spots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting spot: %w", err)
	}
	return nil
}

func (r *spotRepository) AddImage(image *db.SpotImage) error {
	query := `
		INSERT INTO spot_images (spot_id, url, preview)
		VALUES ($1, $2, $3)
		RETURNING id`
	return r.db.QueryRow(query, image.SpotID, image.URL, image.Preview).Scan(&image.ID)
}

func (r *spotRepository) UpdateAggregates(spotID, numReviews int, avgRating sql.NullFloat64) error {
	_, err := r.db.Exec(`
		UPDATE spots SET num_reviews = $2, avg_rating = $3, updated_at = NOW()
		WHERE id = $1`, spotID, numReviews, avgRating)
	if err != nil {
		return fmt.Errorf("error updating spot aggregates: %w", err)
	}
	return nil
}
