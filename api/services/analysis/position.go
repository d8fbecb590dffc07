package analysis

import (
	"sort"

	"github.com/surfyhou/Dota2Analyzer/fetcher/opendota"
)

// TeamEconomy is the economy row of one player used by the classifier.
type TeamEconomy struct {
	AccountID  int64
	PlayerSlot int
	GoldPerMin int
	LastHits   int
}

// IsPosition1 decides whether the subject played as the primary farm-priority
// carry. Pure and stateless: same inputs always yield the same answer.
//
// Roles 4 and 5 are never position 1. A support-like economy (GPM below 380
// and under 3 last hits per minute) forces a negative answer regardless of
// rank. Otherwise the subject qualifies by ranking first on both gold and last
// hits among same-side teammates, by ranking first on gold with GPM >= 480 and
// at least 4 last hits per minute, or by ranking top two on both with
// GPM >= 450.
func IsPosition1(laneRole int, playerSlot int, durationSeconds int, goldPerMin int, lastHits int, accountID int64, team []TeamEconomy) bool {
	if laneRole == 4 || laneRole == 5 {
		return false
	}

	isRadiant := playerSlot < 128
	var side []TeamEconomy
	for _, p := range team {
		if (p.PlayerSlot < 128) == isRadiant {
			side = append(side, p)
		}
	}

	gpmRank := economyRank(side, accountID, func(p TeamEconomy) int { return p.GoldPerMin })
	lhRank := economyRank(side, accountID, func(p TeamEconomy) int { return p.LastHits })

	csPerMin := float64(lastHits) / float64(matchMinutes(durationSeconds))

	if goldPerMin < 380 && csPerMin < 3.0 {
		return false
	}

	if gpmRank == 0 && lhRank == 0 {
		return true
	}
	if gpmRank == 0 && goldPerMin >= 480 && csPerMin >= 4.0 {
		return true
	}
	if gpmRank <= 1 && lhRank <= 1 && goldPerMin >= 450 {
		return true
	}
	return false
}

// economyRank returns the 0-indexed rank of the subject on the given metric,
// descending, ties broken by stable order. A subject missing from the side
// ranks last.
func economyRank(side []TeamEconomy, accountID int64, metric func(TeamEconomy) int) int {
	sorted := make([]TeamEconomy, len(side))
	copy(sorted, side)
	sort.SliceStable(sorted, func(i, j int) bool {
		return metric(sorted[i]) > metric(sorted[j])
	})

	for i, p := range sorted {
		if p.AccountID == accountID {
			return i
		}
	}
	return len(sorted)
}

// isLikelyPosition1 adapts the match roster to the classifier inputs.
func isLikelyPosition1(player *opendota.PlayerDetail, roster []opendota.PlayerDetail, durationSeconds int) bool {
	team := make([]TeamEconomy, 0, len(roster))
	for i := range roster {
		p := &roster[i]
		var accountID int64
		if p.AccountID != nil {
			accountID = *p.AccountID
		}
		team = append(team, TeamEconomy{
			AccountID:  accountID,
			PlayerSlot: p.PlayerSlot,
			GoldPerMin: p.GoldPerMin,
			LastHits:   p.LastHits,
		})
	}

	var subjectAccount int64
	if player.AccountID != nil {
		subjectAccount = *player.AccountID
	}

	return IsPosition1(laneRoleOrUnknown(player), player.PlayerSlot, durationSeconds,
		player.GoldPerMin, player.LastHits, subjectAccount, team)
}
