package policy

import (
	"fmt"

	"github.com/google/uuid"
)

// MaxTeamsPerCohort is the fixed per-cohort capacity.
const MaxTeamsPerCohort = 5

// CheckCohortCapacity validates that teamCount teams fit into n cohorts.
func CheckCohortCapacity(teamCount, n int) error {
	if n <= 0 {
		return fmt.Errorf("number of cohorts must be positive, got %d", n)
	}
	if teamCount == 0 {
		return fmt.Errorf("no teams to assign")
	}
	if teamCount > n*MaxTeamsPerCohort {
		return fmt.Errorf("too many teams (%d) for %d cohorts, max allowed is %d (%d per cohort)",
			teamCount, n, n*MaxTeamsPerCohort, MaxTeamsPerCohort)
	}
	return nil
}

// PartitionRoundRobin distributes team IDs across n buckets in input order:
// team i goes to bucket i mod n. Bucket sizes differ by at most one.
func PartitionRoundRobin(teamIDs []uuid.UUID, n int) [][]uuid.UUID {
	buckets := make([][]uuid.UUID, n)
	for i, id := range teamIDs {
		idx := i % n
		buckets[idx] = append(buckets[idx], id)
	}
	return buckets
}
