package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCohortCapacity(t *testing.T) {
	tests := []struct {
		name      string
		teamCount int
		cohorts   int
		wantErr   bool
	}{
		{"exact fit", 10, 2, false},
		{"under capacity", 7, 2, false},
		{"one over capacity", 11, 2, true},
		{"single cohort full", 5, 1, false},
		{"single cohort overflow", 6, 1, true},
		{"zero cohorts", 5, 0, true},
		{"negative cohorts", 5, -1, true},
		{"no teams", 0, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCohortCapacity(tt.teamCount, tt.cohorts)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPartitionRoundRobin(t *testing.T) {
	ids := make([]uuid.UUID, 7)
	for i := range ids {
		ids[i] = uuid.New()
	}

	t.Run("seven teams across three cohorts", func(t *testing.T) {
		buckets := PartitionRoundRobin(ids, 3)
		require.Len(t, buckets, 3)
		assert.Len(t, buckets[0], 3)
		assert.Len(t, buckets[1], 2)
		assert.Len(t, buckets[2], 2)

		// Round-robin order: team i lands in bucket i mod n.
		assert.Equal(t, ids[0], buckets[0][0])
		assert.Equal(t, ids[1], buckets[1][0])
		assert.Equal(t, ids[2], buckets[2][0])
		assert.Equal(t, ids[3], buckets[0][1])
	})

	t.Run("every team assigned exactly once", func(t *testing.T) {
		buckets := PartitionRoundRobin(ids, 3)
		seen := make(map[uuid.UUID]int)
		for _, b := range buckets {
			for _, id := range b {
				seen[id]++
			}
		}
		require.Len(t, seen, len(ids))
		for _, count := range seen {
			assert.Equal(t, 1, count)
		}
	})

	t.Run("more cohorts than teams leaves empties", func(t *testing.T) {
		buckets := PartitionRoundRobin(ids[:2], 4)
		require.Len(t, buckets, 4)
		assert.Len(t, buckets[0], 1)
		assert.Len(t, buckets[1], 1)
		assert.Empty(t, buckets[2])
		assert.Empty(t, buckets[3])
	})
}
