package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/surfyhou/Dota2Analyzer/fetcher/opendota"
)

// cleanMistakeInput is a 30 minute game that trips no rule.
func cleanMistakeInput() *mistakeInput {
	return &mistakeInput{
		match: &opendota.RecentMatch{
			Duration:    1800,
			Kills:       10,
			Deaths:      2,
			Assists:     5,
			LastHits:    180,
			GoldPerMin:  500,
			HeroDamage:  600000,
			TowerDamage: 3000,
		},
		player: &opendota.PlayerDetail{
			LaneRole:    intPtr(1),
			TowerDamage: 3000,
		},
		enemyHeroes:     []string{"Juggernaut", "Sniper"},
		laneDiff10:      0,
		laneContext:     &laningContext{},
		teamTowerDamage: 10000,
	}
}

func TestDetectMistakesNeutralFallback(t *testing.T) {
	mistakes, suggestions := detectMistakes(cleanMistakeInput())

	assert.Equal(t, []string{"No significant mistakes"}, mistakes)
	assert.Len(t, suggestions, 1)
}

func TestDetectMistakesRules(t *testing.T) {
	tests := []struct {
		name            string
		mutate          func(in *mistakeInput)
		expectedMistake string
	}{
		{
			name: "Lost lane with stalled economy",
			mutate: func(in *mistakeInput) {
				in.laneDiff10 = -800
				in.match.GoldPerMin = 400
			},
			expectedMistake: "Economy kept falling behind after losing the lane",
		},
		{
			name: "Suppressed early lane",
			mutate: func(in *mistakeInput) {
				in.laneContext.netWorthDiff5 = -400
				in.laneContext.netWorthDiff10 = -800
			},
			expectedMistake: "Suppressed in the first 5 minutes of the lane (net worth -400 at 5 min)",
		},
		{
			name: "Advantage thrown away",
			mutate: func(in *mistakeInput) {
				in.laneContext.netWorthDiff5 = 500
				in.laneContext.netWorthDiff10 = -350
			},
			expectedMistake: "Lane advantage thrown away between 5 and 10 minutes",
		},
		{
			name: "Behind on last hits and experience",
			mutate: func(in *mistakeInput) {
				in.laneContext.lastHitsDiff10 = -10
				in.laneContext.xpDiff10 = -500
			},
			expectedMistake: "Behind on both last hits and experience during the lane",
		},
		{
			name: "Deaths broke the farming windows",
			mutate: func(in *mistakeInput) {
				in.match.Deaths = 7
				in.match.LastHits = 90
			},
			expectedMistake: "Too many deaths broke the key farming windows",
		},
		{
			name: "Low damage contribution",
			mutate: func(in *mistakeInput) {
				in.match.HeroDamage = 1800 * 250
			},
			expectedMistake: "Low damage contribution in fights",
		},
		{
			name: "Low push contribution from a core",
			mutate: func(in *mistakeInput) {
				in.player.TowerDamage = 500
			},
			expectedMistake: "Not enough push contribution",
		},
		{
			name: "Late BKB against disables",
			mutate: func(in *mistakeInput) {
				in.enemyHeroes = []string{"Axe", "Lion", "Juggernaut"}
				in.player.PurchaseLog = []opendota.PurchaseLogEntry{
					{Time: 1600, Key: "black_king_bar"},
				}
			},
			expectedMistake: "BKB came too late (minute 26)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := cleanMistakeInput()
			tt.mutate(in)

			mistakes, suggestions := detectMistakes(in)

			assert.Contains(t, mistakes, tt.expectedMistake)
			assert.Equal(t, len(mistakes), len(suggestions))
		})
	}
}

func TestDetectMistakesLatePushRuleSkipsShortGames(t *testing.T) {
	in := cleanMistakeInput()
	in.match.Duration = 20 * 60
	in.player.TowerDamage = 0

	mistakes, _ := detectMistakes(in)

	assert.NotContains(t, mistakes, "Not enough push contribution")
}

func TestDetectMistakesBKBOnTimeNotFlagged(t *testing.T) {
	in := cleanMistakeInput()
	in.enemyHeroes = []string{"Axe", "Lion", "Juggernaut"}
	in.player.PurchaseLog = []opendota.PurchaseLogEntry{
		{Time: 1200, Key: "black_king_bar"},
	}

	mistakes, _ := detectMistakes(in)

	assert.Equal(t, []string{"No significant mistakes"}, mistakes)
}

func TestIsSupportLike(t *testing.T) {
	tests := []struct {
		name     string
		player   *opendota.PlayerDetail
		match    *opendota.RecentMatch
		expected bool
	}{
		{
			name:     "Role 5 is support",
			player:   &opendota.PlayerDetail{LaneRole: intPtr(5)},
			match:    &opendota.RecentMatch{Duration: 1800, GoldPerMin: 600, LastHits: 200},
			expected: true,
		},
		{
			name:   "Support shaped economy without role",
			player: &opendota.PlayerDetail{},
			match: &opendota.RecentMatch{
				Duration: 1800, GoldPerMin: 300, LastHits: 40,
				Kills: 2, Assists: 18,
			},
			expected: true,
		},
		{
			name:   "Core economy without role",
			player: &opendota.PlayerDetail{},
			match: &opendota.RecentMatch{
				Duration: 1800, GoldPerMin: 550, LastHits: 200,
				Kills: 8, Assists: 4,
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isSupportLike(tt.player, tt.match))
		})
	}
}

func TestItemPurchaseTime(t *testing.T) {
	player := &opendota.PlayerDetail{
		PurchaseLog: []opendota.PurchaseLogEntry{
			{Time: 900, Key: "Black_King_Bar"},
			{Time: 600, Key: "black_king_bar"},
			{Time: 300, Key: "ogre_axe"},
		},
	}

	assert.Equal(t, 600, itemPurchaseTime(player, "black_king_bar"))
	assert.Equal(t, -1, itemPurchaseTime(player, "radiance"))
}
