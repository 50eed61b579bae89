package repository

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/lib/pq"
)

type MaintenanceRepository interface {
	SpotIDsWithStaleAggregates() ([]int, error)
	ResyncAggregates(spotIDs []int) (int64, error)
}

type maintenanceRepository struct {
	db *sql.DB
}

func NewMaintenanceRepository(database *sql.DB) MaintenanceRepository {
	return &maintenanceRepository{db: database}
}

// SpotIDsWithStaleAggregates finds spots whose cached num_reviews or
// avg_rating no longer match the reviews table.
func (r *maintenanceRepository) SpotIDsWithStaleAggregates() ([]int, error) {
	query := `
		WITH live AS (
			SELECT spot_id, COUNT(id) AS n, AVG(stars) AS a
			FROM reviews
			GROUP BY spot_id
		)
		SELECT s.id
		FROM spots s
		LEFT JOIN live l ON l.spot_id = s.id
		WHERE s.num_reviews <> COALESCE(l.n, 0)
		   OR s.avg_rating IS DISTINCT FROM l.a`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying stale spot aggregates: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning spot ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// ResyncAggregates rewrites the cached aggregates from the reviews table
// for the given spots.
func (r *maintenanceRepository) ResyncAggregates(spotIDs []int) (int64, error) {
	if len(spotIDs) == 0 {
		return 0, nil
	}
	query := `
		UPDATE spots SET
			num_reviews = sub.n,
			avg_rating = sub.a,
			updated_at = NOW()
		FROM (
			SELECT s2.id, COUNT(r.id) AS n, AVG(r.stars) AS a
			FROM spots s2
			LEFT JOIN reviews r ON r.spot_id = s2.id
			WHERE s2.id = ANY($1)
			GROUP BY s2.id
		) sub
		WHERE spots.id = sub.id`

	result, err := r.db.Exec(query, pq.Array(spotIDs))
	if err != nil {
		return 0, fmt.Errorf("error resyncing spot aggregates: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
		return 0, nil
	}
	return rowsAffected, nil
}
