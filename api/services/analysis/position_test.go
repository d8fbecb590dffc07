package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func standardTeam() []TeamEconomy {
	return []TeamEconomy{
		{AccountID: 100, PlayerSlot: 0, GoldPerMin: 620, LastHits: 280},
		{AccountID: 101, PlayerSlot: 1, GoldPerMin: 540, LastHits: 230},
		{AccountID: 102, PlayerSlot: 2, GoldPerMin: 430, LastHits: 160},
		{AccountID: 103, PlayerSlot: 3, GoldPerMin: 310, LastHits: 60},
		{AccountID: 104, PlayerSlot: 4, GoldPerMin: 260, LastHits: 30},
		{AccountID: 200, PlayerSlot: 128, GoldPerMin: 700, LastHits: 320},
		{AccountID: 201, PlayerSlot: 129, GoldPerMin: 500, LastHits: 200},
	}
}

func TestIsPosition1(t *testing.T) {
	team := standardTeam()

	tests := []struct {
		name       string
		laneRole   int
		playerSlot int
		goldPerMin int
		lastHits   int
		accountID  int64
		expected   bool
	}{
		{
			name:       "Top on gold and last hits",
			laneRole:   1,
			playerSlot: 0,
			goldPerMin: 620,
			lastHits:   280,
			accountID:  100,
			expected:   true,
		},
		{
			name:       "Role 4 never qualifies",
			laneRole:   4,
			playerSlot: 0,
			goldPerMin: 620,
			lastHits:   280,
			accountID:  100,
			expected:   false,
		},
		{
			name:       "Role 5 never qualifies",
			laneRole:   5,
			playerSlot: 4,
			goldPerMin: 260,
			lastHits:   30,
			accountID:  104,
			expected:   false,
		},
		{
			name:       "Second on both with strong economy",
			laneRole:   2,
			playerSlot: 1,
			goldPerMin: 540,
			lastHits:   230,
			accountID:  101,
			expected:   true,
		},
		{
			name:       "Third place with average economy",
			laneRole:   3,
			playerSlot: 2,
			goldPerMin: 430,
			lastHits:   160,
			accountID:  102,
			expected:   false,
		},
		{
			name:       "Support-like economy rejected",
			laneRole:   -1,
			playerSlot: 3,
			goldPerMin: 310,
			lastHits:   60,
			accountID:  103,
			expected:   false,
		},
		{
			name:       "Enemy side ignored in ranking",
			laneRole:   1,
			playerSlot: 128,
			goldPerMin: 700,
			lastHits:   320,
			accountID:  200,
			expected:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsPosition1(tt.laneRole, tt.playerSlot, 2400, tt.goldPerMin, tt.lastHits, tt.accountID, team)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsPosition1Deterministic(t *testing.T) {
	team := standardTeam()

	first := IsPosition1(1, 0, 2400, 620, 280, 100, team)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, IsPosition1(1, 0, 2400, 620, 280, 100, team))
	}
}

func TestEconomyRankMissingSubjectRanksLast(t *testing.T) {
	side := []TeamEconomy{
		{AccountID: 1, GoldPerMin: 500},
		{AccountID: 2, GoldPerMin: 400},
	}

	rank := economyRank(side, 99, func(p TeamEconomy) int { return p.GoldPerMin })
	assert.Equal(t, 2, rank)
}
