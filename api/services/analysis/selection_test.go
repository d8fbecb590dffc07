package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/surfyhou/Dota2Analyzer/api/dto"
)

func TestSelectDesired(t *testing.T) {
	results := []*dto.MatchAnalysisResult{
		{MatchID: 1, Position1: true},
		{MatchID: 2, Position1: false},
		{MatchID: 3, Position1: true},
		{MatchID: 4, Position1: true},
	}

	tests := []struct {
		name         string
		desiredCount int
		onlyPos1     bool
		expectedIDs  []int64
	}{
		{
			name:         "First N without filter",
			desiredCount: 2,
			expectedIDs:  []int64{1, 2},
		},
		{
			name:         "Position 1 filter keeps order",
			desiredCount: 2,
			onlyPos1:     true,
			expectedIDs:  []int64{1, 3},
		},
		{
			name:         "Fewer matches than desired",
			desiredCount: 10,
			onlyPos1:     true,
			expectedIDs:  []int64{1, 3, 4},
		},
		{
			name:         "Zero desired returns empty",
			desiredCount: 0,
			expectedIDs:  []int64{},
		},
		{
			name:         "Negative desired returns empty",
			desiredCount: -1,
			expectedIDs:  []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selected := SelectDesired(results, tt.desiredCount, tt.onlyPos1)

			ids := make([]int64, 0, len(selected))
			for _, r := range selected {
				ids = append(ids, r.MatchID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
		})
	}
}

func TestSelectDesiredDoesNotReorder(t *testing.T) {
	results := []*dto.MatchAnalysisResult{
		{MatchID: 5, Position1: false},
		{MatchID: 6, Position1: true},
		{MatchID: 7, Position1: false},
		{MatchID: 8, Position1: true},
	}

	selected := SelectDesired(results, 2, true)

	assert.Len(t, selected, 2)
	assert.Equal(t, int64(6), selected[0].MatchID)
	assert.Equal(t, int64(8), selected[1].MatchID)
}
