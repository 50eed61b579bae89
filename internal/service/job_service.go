package service

import (
	"fmt"
	"log"

	"stayspot/internal/repository"
)

type JobService struct {
	Repo repository.MaintenanceRepository
}

func NewJobService(repo repository.MaintenanceRepository) *JobService {
	return &JobService{Repo: repo}
}

// ResyncSpotAggregates repairs spots whose cached avg_rating/num_reviews
// drifted from the reviews table. Normal writes keep the caches current;
// out-of-band review changes do not.
func (s *JobService) ResyncSpotAggregates() error {
	log.Println("Cron Job: Checking for spots with stale review aggregates...")

	spotIDs, err := s.Repo.SpotIDsWithStaleAggregates()
	if err != nil {
		return fmt.Errorf("cron job: failed to find stale spot aggregates: %w", err)
	}

	if len(spotIDs) == 0 {
		log.Println("Cron Job: No stale spot aggregates found.")
		return nil
	}

	log.Printf("Cron Job: Found %d spots with stale aggregates. IDs: %v", len(spotIDs), spotIDs)

	updated, err := s.Repo.ResyncAggregates(spotIDs)
	if err != nil {
		return fmt.Errorf("cron job: failed to resync spot aggregates: %w", err)
	}

	log.Printf("Cron Job: Successfully resynced aggregates for %d spots.", updated)
	return nil
}
