package analysis

import (
	"fmt"
	"strings"

	"github.com/surfyhou/Dota2Analyzer/fetcher/opendota"
)

// Lane phase boundary used for kill/death accounting.
const laneEndSeconds = 600

// laningContext carries the early-game deltas against the resolved opponent.
type laningContext struct {
	netWorthDiff5    int
	netWorthDiff10   int
	lastHitsDiff5    int
	lastHitsDiff10   int
	xpDiff5          int
	xpDiff10         int
	playerLastHits10 int
	trend            string
}

// laningResult is the full output of the lane analysis.
type laningResult struct {
	result             string
	netWorthDiff       int
	laneOpponentHero   string
	laneOpponentHeroID int
	laningDetails      []string
	benchmarkNotes     []string
	context            *laningContext
	laneAllyHeroes     []string
	laneEnemyHeroes    []string
	laneAllyHeroIDs    []int
	laneEnemyHeroIDs   []int
	laneMatchup        string
	laneKills          int
	laneDeaths         int
	playerDenies10     int
	enemyDenies10      int
}

// analyzeLaning resolves the lane opponent and computes the early-game
// checkpoint deltas, trend and verdict.
func (s *AnalysisService) analyzeLaning(player *opendota.PlayerDetail, detail *opendota.MatchDetail, isRadiant bool) *laningResult {
	laneAllies, laneEnemies := findLaneParticipants(player, detail.Players, isRadiant)
	opponent := resolveLaneOpponent(player, enemiesOf(detail.Players, isRadiant))

	// The resolved opponent leads the enemy side even when lane grouping
	// found nobody on the subject's lane.
	if len(laneEnemies) == 0 && opponent != nil {
		laneEnemies = []*opendota.PlayerDetail{opponent}
	}

	playerNetWorth10 := netWorthAt(player, 10)
	enemyNetWorth10 := 0
	if opponent != nil {
		enemyNetWorth10 = netWorthAt(opponent, 10)
	}
	diff := playerNetWorth10 - enemyNetWorth10

	var verdict string
	switch {
	case diff >= 700:
		verdict = fmt.Sprintf("Won lane (net worth +%d at 10 min)", diff)
	case diff <= -700:
		verdict = fmt.Sprintf("Lost lane (net worth %d at 10 min)", diff)
	default:
		verdict = fmt.Sprintf("Even lane (net worth %s at 10 min)", formatDiff(diff))
	}

	opponentHero := "Unknown"
	opponentHeroID := 0
	if opponent != nil {
		opponentHero = s.catalog.HeroName(opponent.HeroID)
		opponentHeroID = opponent.HeroID
	}

	var laneAllyHeroes, laneEnemyHeroes []string
	var laneAllyHeroIDs, laneEnemyHeroIDs []int
	for _, a := range laneAllies {
		laneAllyHeroes = append(laneAllyHeroes, s.catalog.HeroName(a.HeroID))
		laneAllyHeroIDs = append(laneAllyHeroIDs, a.HeroID)
	}
	for _, e := range laneEnemies {
		laneEnemyHeroes = append(laneEnemyHeroes, s.catalog.HeroName(e.HeroID))
		laneEnemyHeroIDs = append(laneEnemyHeroIDs, e.HeroID)
	}

	allySide := strings.Join(append([]string{s.catalog.HeroName(player.HeroID)}, laneAllyHeroes...), " + ")
	enemySide := "Unknown"
	if len(laneEnemyHeroes) > 0 {
		enemySide = strings.Join(laneEnemyHeroes, " + ")
	}
	laneMatchup := allySide + " vs " + enemySide

	// Kills onto lane enemies and deaths to them, lane phase only.
	laneKills := s.countLaneKills(player, laneEnemies, laneEndSeconds)
	laneDeaths := s.countLaneDeaths(player, laneEnemies, laneEndSeconds)
	for _, ally := range laneAllies {
		laneKills += s.countLaneKills(ally, laneEnemies, laneEndSeconds)
		laneDeaths += s.countLaneDeaths(ally, laneEnemies, laneEndSeconds)
	}

	playerDenies10 := deniesAt(player, 10)
	for _, ally := range laneAllies {
		playerDenies10 += deniesAt(ally, 10)
	}
	enemyDenies10 := 0
	for _, enemy := range laneEnemies {
		enemyDenies10 += deniesAt(enemy, 10)
	}

	ctx := buildLaningContext(player, opponent, detail.Duration)

	laningDetails := []string{
		"Lane matchup: " + laneMatchup,
		fmt.Sprintf("5 min: net worth %s, last hits %s, experience %s",
			formatDiff(ctx.netWorthDiff5), formatDiff(ctx.lastHitsDiff5), formatDiff(ctx.xpDiff5)),
		fmt.Sprintf("10 min: net worth %s, last hits %s, experience %s",
			formatDiff(ctx.netWorthDiff10), formatDiff(ctx.lastHitsDiff10), formatDiff(ctx.xpDiff10)),
		fmt.Sprintf("Denies at 10 min: own side %d vs opponents %d", playerDenies10, enemyDenies10),
		fmt.Sprintf("Lane kills: %d scored, %d conceded", laneKills, laneDeaths),
		"Trend: " + ctx.trend,
	}

	var benchmarkNotes []string
	if target, ok := roleLastHitTarget(player.LaneRole); ok {
		if ctx.playerLastHits10 < target {
			benchmarkNotes = append(benchmarkNotes,
				fmt.Sprintf("Estimated benchmark: %d last hits by 10 min, currently %d", target, ctx.playerLastHits10))
		} else {
			benchmarkNotes = append(benchmarkNotes,
				fmt.Sprintf("Estimated benchmark: %d last hits by 10 min, target met", target))
		}
	}

	return &laningResult{
		result:             verdict,
		netWorthDiff:       diff,
		laneOpponentHero:   opponentHero,
		laneOpponentHeroID: opponentHeroID,
		laningDetails:      laningDetails,
		benchmarkNotes:     benchmarkNotes,
		context:            ctx,
		laneAllyHeroes:     laneAllyHeroes,
		laneEnemyHeroes:    laneEnemyHeroes,
		laneAllyHeroIDs:    laneAllyHeroIDs,
		laneEnemyHeroIDs:   laneEnemyHeroIDs,
		laneMatchup:        laneMatchup,
		laneKills:          laneKills,
		laneDeaths:         laneDeaths,
		playerDenies10:     playerDenies10,
		enemyDenies10:      enemyDenies10,
	}
}

// resolveLaneOpponent picks the most likely direct opponent:
// the highest-gold enemy on the mirrored lane role (1<->3, 2<->2), else the
// highest-gold enemy on the same numeric lane, else the highest-gold enemy.
func resolveLaneOpponent(player *opendota.PlayerDetail, enemies []*opendota.PlayerDetail) *opendota.PlayerDetail {
	if len(enemies) == 0 {
		return nil
	}

	if mirrored, ok := mirroredLaneRole(player.LaneRole); ok {
		if best := highestGold(enemies, func(e *opendota.PlayerDetail) bool {
			return e.LaneRole != nil && *e.LaneRole == mirrored
		}); best != nil {
			return best
		}
	}

	if player.Lane > 0 {
		if best := highestGold(enemies, func(e *opendota.PlayerDetail) bool {
			return e.Lane == player.Lane
		}); best != nil {
			return best
		}
	}

	return highestGold(enemies, func(*opendota.PlayerDetail) bool { return true })
}

// mirroredLaneRole maps a role onto the enemy role it laned against.
func mirroredLaneRole(laneRole *int) (int, bool) {
	if laneRole == nil {
		return 0, false
	}
	switch *laneRole {
	case 1:
		return 3, true
	case 2:
		return 2, true
	case 3:
		return 1, true
	}
	return 0, false
}

// highestGold returns the highest-GPM player matching the filter.
func highestGold(players []*opendota.PlayerDetail, match func(*opendota.PlayerDetail) bool) *opendota.PlayerDetail {
	var best *opendota.PlayerDetail
	for _, p := range players {
		if !match(p) {
			continue
		}
		if best == nil || p.GoldPerMin > best.GoldPerMin {
			best = p
		}
	}
	return best
}

// findLaneParticipants groups same-lane allies and enemies around the subject.
func findLaneParticipants(player *opendota.PlayerDetail, roster []opendota.PlayerDetail, isRadiant bool) ([]*opendota.PlayerDetail, []*opendota.PlayerDetail) {
	var laneAllies, laneEnemies []*opendota.PlayerDetail
	if player.Lane <= 0 {
		return nil, nil
	}

	for i := range roster {
		p := &roster[i]
		if p.Lane != player.Lane {
			continue
		}
		if p.IsRadiant() == isRadiant {
			if p.PlayerSlot != player.PlayerSlot {
				laneAllies = append(laneAllies, p)
			}
		} else {
			laneEnemies = append(laneEnemies, p)
		}
	}
	return laneAllies, laneEnemies
}

// enemiesOf returns the players on the other side.
func enemiesOf(roster []opendota.PlayerDetail, isRadiant bool) []*opendota.PlayerDetail {
	var enemies []*opendota.PlayerDetail
	for i := range roster {
		if roster[i].IsRadiant() != isRadiant {
			enemies = append(enemies, &roster[i])
		}
	}
	return enemies
}

// buildLaningContext computes the checkpoint deltas and the trend label.
func buildLaningContext(player *opendota.PlayerDetail, opponent *opendota.PlayerDetail, durationSeconds int) *laningContext {
	ctx := &laningContext{}
	if opponent == nil {
		ctx.playerLastHits10 = lastHitsAt(player, 10, durationSeconds)
		ctx.trend = "Unknown"
		return ctx
	}

	ctx.netWorthDiff5 = netWorthAt(player, 5) - netWorthAt(opponent, 5)
	ctx.netWorthDiff10 = netWorthAt(player, 10) - netWorthAt(opponent, 10)
	ctx.lastHitsDiff5 = lastHitsAt(player, 5, durationSeconds) - lastHitsAt(opponent, 5, durationSeconds)
	ctx.lastHitsDiff10 = lastHitsAt(player, 10, durationSeconds) - lastHitsAt(opponent, 10, durationSeconds)
	ctx.xpDiff5 = xpAt(player, 5, durationSeconds) - xpAt(opponent, 5, durationSeconds)
	ctx.xpDiff10 = xpAt(player, 10, durationSeconds) - xpAt(opponent, 10, durationSeconds)
	ctx.playerLastHits10 = lastHitsAt(player, 10, durationSeconds)
	ctx.trend = describeLaningTrend(ctx.netWorthDiff5, ctx.netWorthDiff10)
	return ctx
}

// Every per-minute metric getter has two branches: read the real series when
// present (clamped to its bounds), otherwise extrapolate from the final rate.

// netWorthAt returns the gold total at the given minute.
func netWorthAt(player *opendota.PlayerDetail, minute int) int {
	if len(player.GoldT) > 0 {
		return player.GoldT[clampIndex(minute, len(player.GoldT))]
	}
	return player.GoldPerMin * minute
}

// lastHitsAt returns the last hit count at the given minute.
func lastHitsAt(player *opendota.PlayerDetail, minute int, durationSeconds int) int {
	if len(player.LastHitsT) > 0 {
		return player.LastHitsT[clampIndex(minute, len(player.LastHitsT))]
	}
	perMinute := float64(player.LastHits) / float64(matchMinutes(durationSeconds))
	return int(perMinute*float64(minute) + 0.5)
}

// xpAt returns the experience total at the given minute.
func xpAt(player *opendota.PlayerDetail, minute int, durationSeconds int) int {
	if len(player.XpT) > 0 {
		return player.XpT[clampIndex(minute, len(player.XpT))]
	}
	return player.XpPerMin * minute
}

// deniesAt returns the deny count at the given minute, zero without a series.
func deniesAt(player *opendota.PlayerDetail, minute int) int {
	if len(player.DeniesT) > 0 {
		return player.DeniesT[clampIndex(minute, len(player.DeniesT))]
	}
	return 0
}

func clampIndex(minute int, length int) int {
	if minute < 0 {
		return 0
	}
	if minute > length-1 {
		return length - 1
	}
	return minute
}

// describeLaningTrend labels how the lane developed between the checkpoints.
func describeLaningTrend(netDiff5 int, netDiff10 int) string {
	switch {
	case netDiff5 >= 400 && netDiff10 <= -300:
		return "Advantage reversed between 5 and 10 minutes"
	case netDiff5 <= -400 && netDiff10 >= 200:
		return "Recovered between 5 and 10 minutes"
	case netDiff10 >= 700:
		return "Sustained advantage"
	case netDiff10 <= -700:
		return "Sustained disadvantage"
	}
	return "Mostly even"
}

// countLaneKills counts the subject's kills onto lane enemies before maxTime.
// Victim keys match canonical hero keys with or without the unit prefix.
func (s *AnalysisService) countLaneKills(player *opendota.PlayerDetail, laneEnemies []*opendota.PlayerDetail, maxTime int) int {
	if len(player.KillsLog) == 0 {
		return 0
	}

	enemyKeys := make(map[string]bool)
	for _, enemy := range laneEnemies {
		key := s.catalog.HeroKey(enemy.HeroID)
		if key == "" {
			continue
		}
		enemyKeys[strings.ToLower(key)] = true
		enemyKeys[strings.ToLower("npc_dota_hero_"+key)] = true
	}

	kills := 0
	for _, entry := range player.KillsLog {
		if entry.Time <= maxTime && enemyKeys[strings.ToLower(entry.Key)] {
			kills++
		}
	}
	return kills
}

// countLaneDeaths counts the subject's deaths to lane enemies before maxTime.
func (s *AnalysisService) countLaneDeaths(player *opendota.PlayerDetail, laneEnemies []*opendota.PlayerDetail, maxTime int) int {
	playerKey := s.catalog.HeroKey(player.HeroID)
	if playerKey == "" {
		return 0
	}

	playerKeys := make(map[string]bool)
	playerKeys[strings.ToLower(playerKey)] = true
	playerKeys[strings.ToLower("npc_dota_hero_"+playerKey)] = true

	deaths := 0
	for _, enemy := range laneEnemies {
		for _, entry := range enemy.KillsLog {
			if entry.Time <= maxTime && playerKeys[strings.ToLower(entry.Key)] {
				deaths++
			}
		}
	}
	return deaths
}

// roleLastHitTarget returns the static 10 minute last hit goal per lane role.
func roleLastHitTarget(laneRole *int) (int, bool) {
	if laneRole == nil {
		return 0, false
	}
	switch *laneRole {
	case 1:
		return 45, true
	case 2:
		return 50, true
	case 3:
		return 35, true
	case 4, 5:
		return 15, true
	}
	return 0, false
}

// formatDiff renders a signed delta.
func formatDiff(value int) string {
	if value >= 0 {
		return fmt.Sprintf("+%d", value)
	}
	return fmt.Sprintf("%d", value)
}
