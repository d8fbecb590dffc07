package analysis

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/surfyhou/Dota2Analyzer/api/cache"
	"github.com/surfyhou/Dota2Analyzer/api/dto"
	"github.com/surfyhou/Dota2Analyzer/fetcher/opendota"
	"github.com/surfyhou/Dota2Analyzer/pkg/logger"
)

// Age ceilings per cached entity kind. Freshness is decided on read, so these
// belong to the caller, not the store.
const (
	recentMatchesMaxAge = 30 * time.Minute
	matchDetailMaxAge   = 7 * 24 * time.Hour
	benchmarkMaxAge     = 24 * time.Hour
)

const (
	fetchPageSize   = 100
	rankedLobbyType = 7
)

// AnalysisService is the top level coordinator of the analysis pipeline.
type AnalysisService struct {
	client  opendota.Client
	cache   cache.FreshnessCache
	catalog cache.Catalog
	log     *logger.Logger

	cacheOnly               bool
	disableBenchmarks       bool
	avoidExternalWhenCached bool
}

// AnalysisServiceDeps is the dependency list for the analysis service.
type AnalysisServiceDeps struct {
	Client  opendota.Client
	Cache   cache.FreshnessCache
	Catalog cache.Catalog
	Logger  *logger.Logger

	CacheOnly               bool
	DisableBenchmarks       bool
	AvoidExternalWhenCached bool
}

// NewAnalysisService creates an analysis service.
func NewAnalysisService(deps *AnalysisServiceDeps) *AnalysisService {
	return &AnalysisService{
		client:                  deps.Client,
		cache:                   deps.Cache,
		catalog:                 deps.Catalog,
		log:                     deps.Logger,
		cacheOnly:               deps.CacheOnly,
		disableBenchmarks:       deps.DisableBenchmarks,
		avoidExternalWhenCached: deps.AvoidExternalWhenCached,
	}
}

// AnalyzeRecentMatches analyzes the newest matches of the account and returns
// up to desiredCount results. Provider failures degrade to whatever the cache
// holds; only cancellation aborts the batch.
func (s *AnalysisService) AnalyzeRecentMatches(ctx context.Context, accountID int64, desiredCount int, fetchLimit int, requestParse bool, onlyPos1 bool) ([]*dto.MatchAnalysisResult, error) {
	s.catalog.EnsureLoaded(ctx)

	matches, _ := s.cache.GetRecentMatches(ctx, accountID, recentMatchesMaxAge)

	if s.cacheOnly {
		if len(matches) == 0 {
			s.log.Warnf("Recent matches cache empty and cache-only enabled.")
		}
	} else if len(matches) == 0 {
		s.log.Infof("Recent matches cache empty. Fetching from OpenDota AccountId=%d Target=%d", accountID, fetchLimit)
		matches = s.fetchRecentMatchesWithPaging(ctx, accountID, fetchLimit)
		if len(matches) > 0 {
			s.cache.SaveRecentMatches(ctx, accountID, matches)
		}
	} else if s.shouldRefreshRecentMatches(ctx, accountID, matches) {
		s.log.Infof("Recent matches cache outdated. Fetching from OpenDota AccountId=%d Target=%d", accountID, fetchLimit)
		matches = s.fetchRecentMatchesWithPaging(ctx, accountID, fetchLimit)
		if len(matches) > 0 {
			s.cache.SaveRecentMatches(ctx, accountID, matches)
		}
	} else {
		s.log.Infof("Recent matches cache is up-to-date for %d (%d)", accountID, len(matches))
	}

	// Newest first.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].StartTime > matches[j].StartTime
	})

	var results []*dto.MatchAnalysisResult
	for i := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outcome := s.AnalyzeMatch(ctx, &matches[i], accountID, requestParse, onlyPos1)
		if outcome.Status == dto.OutcomeExcluded {
			continue
		}
		results = append(results, outcome.Result)
	}

	selected := SelectDesired(results, desiredCount, onlyPos1)
	if onlyPos1 && len(selected) < desiredCount {
		s.log.Warnf("Position-1 filter desired %d but only %d found in last %d matches.",
			desiredCount, len(selected), len(matches))
	}

	return selected, nil
}

// shouldRefreshRecentMatches probes the provider for the single newest match
// and treats the cache as stale when that match is not in it.
// A probe failure keeps the cache.
func (s *AnalysisService) shouldRefreshRecentMatches(ctx context.Context, accountID int64, cached []opendota.RecentMatch) bool {
	if s.avoidExternalWhenCached {
		return false
	}

	latest, err := s.client.GetRecentMatches(ctx, accountID, 1)
	if err != nil {
		s.log.Warnf("Failed to check latest match for %d. Using cache: %v", accountID, err)
		return false
	}
	if len(latest) == 0 {
		s.log.Warnf("OpenDota returned no recent matches for %d", accountID)
		return false
	}

	latestID := latest[0].MatchID
	for _, m := range cached {
		if m.MatchID == latestID {
			return false
		}
	}
	return true
}

// fetchRecentMatchesWithPaging collects up to fetchLimit matches page by page,
// stopping on a short page, and de-duplicates by match id keeping the first
// occurrence.
func (s *AnalysisService) fetchRecentMatchesWithPaging(ctx context.Context, accountID int64, fetchLimit int) []opendota.RecentMatch {
	var collected []opendota.RecentMatch
	offset := 0

	for len(collected) < fetchLimit {
		take := fetchPageSize
		if remaining := fetchLimit - len(collected); remaining < take {
			take = remaining
		}

		batch, err := s.client.GetPlayerMatches(ctx, accountID, take, offset, rankedLobbyType)
		if err != nil {
			s.log.Warnf("Failed to fetch match page for %d at offset %d: %v", accountID, offset, err)
			break
		}
		if len(batch) == 0 {
			break
		}

		collected = append(collected, batch...)
		offset += len(batch)
		if len(batch) < take {
			break
		}
	}

	seen := make(map[int64]bool, len(collected))
	deduped := collected[:0]
	for _, m := range collected {
		if seen[m.MatchID] {
			continue
		}
		seen[m.MatchID] = true
		deduped = append(deduped, m)
	}
	return deduped
}

// AnalyzeMatch produces the analysis outcome for one match of the account.
func (s *AnalysisService) AnalyzeMatch(ctx context.Context, match *opendota.RecentMatch, accountID int64, requestParse bool, onlyPos1 bool) dto.MatchOutcome {
	s.catalog.EnsureLoaded(ctx)

	detail, fromCache := s.cache.GetMatchDetail(ctx, match.MatchID, matchDetailMaxAge)
	if !fromCache {
		if s.cacheOnly {
			s.log.Warnf("Match cache miss for %d and cache-only enabled. Skipping OpenDota.", match.MatchID)
			if onlyPos1 {
				return dto.Excluded()
			}
			return dto.Unparsed(s.buildUnparsedResult(match))
		}

		if requestParse {
			if _, err := s.client.RequestParse(ctx, match.MatchID); err != nil {
				s.log.Warnf("Failed to request parse for match %d: %v", match.MatchID, err)
			}
		}

		s.log.Infof("Match cache miss for %d, fetching from OpenDota", match.MatchID)
		fetched, err := s.client.GetMatchDetail(ctx, match.MatchID)
		if err != nil {
			s.log.Warnf("Failed to fetch match detail for %d: %v", match.MatchID, err)
		} else if fetched != nil {
			detail = fetched
			s.cache.SaveMatchDetail(ctx, match.MatchID, detail)
		}
	} else {
		s.log.Infof("Match cache hit for %d", match.MatchID)
	}

	if detail == nil || len(detail.Players) == 0 {
		s.log.Warnf("Match detail missing or unparsed for %d", match.MatchID)
		if onlyPos1 {
			return dto.Excluded()
		}
		return dto.Unparsed(s.buildUnparsedResult(match))
	}

	player := findPlayer(detail, accountID)
	if player == nil {
		s.log.Warnf("Player %d not found in match %d", accountID, match.MatchID)
		if onlyPos1 {
			return dto.Excluded()
		}
		return dto.Unparsed(s.buildUnparsedResult(match))
	}

	isPos1 := isLikelyPosition1(player, detail.Players, match.Duration)
	if onlyPos1 && !isPos1 {
		return dto.Excluded()
	}

	isRadiant := match.IsRadiant()
	pickRound, pickIndex := analyzePickRound(detail, player, isRadiant)
	laning := s.analyzeLaning(player, detail, isRadiant)

	benchmarkNotes := append([]string{}, laning.benchmarkNotes...)
	if !s.disableBenchmarks && !s.cacheOnly && (!s.avoidExternalWhenCached || !fromCache) {
		benchmarkNotes = append(benchmarkNotes, s.heroBenchmarkNotes(ctx, match, player.HeroID)...)
	}

	var allyHeroes, enemyHeroes []string
	var allyHeroIDs, enemyHeroIDs []int
	teamTowerDamage := 0
	for i := range detail.Players {
		p := &detail.Players[i]
		if p.IsRadiant() == isRadiant {
			allyHeroes = append(allyHeroes, s.catalog.HeroName(p.HeroID))
			allyHeroIDs = append(allyHeroIDs, p.HeroID)
			teamTowerDamage += p.TowerDamage
		} else {
			enemyHeroes = append(enemyHeroes, s.catalog.HeroName(p.HeroID))
			enemyHeroIDs = append(enemyHeroIDs, p.HeroID)
		}
	}

	mistakes, suggestions := detectMistakes(&mistakeInput{
		match:           match,
		player:          player,
		enemyHeroes:     enemyHeroes,
		laneDiff10:      laning.netWorthDiff,
		laneContext:     laning.context,
		teamTowerDamage: teamTowerDamage,
	})

	result := &dto.MatchAnalysisResult{
		MatchID:            match.MatchID,
		HeroID:             match.HeroID,
		HeroName:           s.catalog.HeroName(match.HeroID),
		Won:                match.Won(),
		ResultText:         resultText(match.Won()),
		LaneRole:           laneRoleOrUnknown(player),
		Position1:          isPos1,
		PickRound:          pickRound,
		PickIndex:          pickIndex,
		LaneResult:         laning.result,
		LaneNetWorthDiff10: laning.netWorthDiff,
		LaneOpponentHero:   laning.laneOpponentHero,
		LaneOpponentHeroID: laning.laneOpponentHeroID,
		LaneAllyHeroes:     laning.laneAllyHeroes,
		LaneEnemyHeroes:    laning.laneEnemyHeroes,
		LaneAllyHeroIDs:    laning.laneAllyHeroIDs,
		LaneEnemyHeroIDs:   laning.laneEnemyHeroIDs,
		LaneMatchup:        laning.laneMatchup,
		LaneKills:          laning.laneKills,
		LaneDeaths:         laning.laneDeaths,
		PlayerDenies10:     laning.playerDenies10,
		EnemyDenies10:      laning.enemyDenies10,
		LaningDetails:      laning.laningDetails,
		BenchmarkNotes:     benchmarkNotes,
		PerformanceRating:  evaluatePerformance(match),
		Mistakes:           mistakes,
		Suggestions:        suggestions,
		Statistics:         buildStatistics(match),
		AllyHeroes:         allyHeroes,
		AllyHeroIDs:        allyHeroIDs,
		EnemyHeroes:        enemyHeroes,
		EnemyHeroIDs:       enemyHeroIDs,
		InventoryTimeline:  s.BuildInventoryTimeline(player, match.Duration),
	}

	return dto.Analyzed(result)
}

// heroBenchmarkNotes resolves the hero percentile curves, preferring the
// cached copy, and renders the comparison notes.
func (s *AnalysisService) heroBenchmarkNotes(ctx context.Context, match *opendota.RecentMatch, heroID int) []string {
	benchmarks, ok := s.cache.GetBenchmark(ctx, heroID, benchmarkMaxAge)
	if !ok {
		fetched, err := s.client.GetHeroBenchmarks(ctx, heroID)
		if err != nil {
			s.log.Warnf("Failed to fetch benchmarks for hero %d: %v", heroID, err)
			return nil
		}
		benchmarks = fetched
		if benchmarks != nil {
			s.cache.SaveBenchmark(ctx, heroID, benchmarks)
		}
	}
	return buildHeroBenchmarkNotes(match, benchmarks)
}

// findPlayer locates the subject inside the roster by account id.
// Account id matching is the only way: a missing id means not-for-this-account.
func findPlayer(detail *opendota.MatchDetail, accountID int64) *opendota.PlayerDetail {
	for i := range detail.Players {
		p := &detail.Players[i]
		if p.AccountID != nil && *p.AccountID == accountID {
			return p
		}
	}
	return nil
}

// buildUnparsedResult builds the sentinel artifact for a match the provider
// has no player breakdown for yet.
func (s *AnalysisService) buildUnparsedResult(match *opendota.RecentMatch) *dto.MatchAnalysisResult {
	return &dto.MatchAnalysisResult{
		MatchID:            match.MatchID,
		HeroID:             match.HeroID,
		HeroName:           s.catalog.HeroName(match.HeroID),
		Won:                match.Won(),
		ResultText:         resultText(match.Won()),
		LaneRole:           -1,
		Position1:          false,
		PickRound:          "Unknown",
		PickIndex:          -1,
		LaneResult:         "Match not parsed yet",
		LaneNetWorthDiff10: 0,
		LaneOpponentHero:   "Unknown",
		LaningDetails:      []string{"Match not parsed yet, no laning details available"},
		BenchmarkNotes:     []string{"Match not parsed yet, no benchmark comparison available"},
		PerformanceRating:  evaluatePerformance(match),
		Mistakes:           []string{"Match not parsed yet, try again later"},
		Suggestions:        []string{"OpenDota needs time to parse the replay file"},
		Statistics:         buildStatistics(match),
		AllyHeroes:         []string{},
		AllyHeroIDs:        []int{},
		EnemyHeroes:        []string{},
		EnemyHeroIDs:       []int{},
		LaneAllyHeroIDs:    []int{},
		LaneEnemyHeroIDs:   []int{},
		InventoryTimeline:  []dto.InventorySnapshot{},
	}
}

// analyzePickRound locates the subject's pick among the ordered picks of the
// team and labels the draft round it landed in.
func analyzePickRound(detail *opendota.MatchDetail, player *opendota.PlayerDetail, isRadiant bool) (string, int) {
	if len(detail.PicksBans) == 0 {
		return "Unknown", -1
	}

	var picks []opendota.PickBan
	for _, pb := range detail.PicksBans {
		if pb.IsPick {
			picks = append(picks, pb)
		}
	}
	sort.SliceStable(picks, func(i, j int) bool { return picks[i].Order < picks[j].Order })

	team := 1
	if isRadiant {
		team = 0
	}
	pickIndex := -1
	for i, pick := range picks {
		if pick.HeroID == player.HeroID && pick.Team == team {
			pickIndex = i
			break
		}
	}
	if pickIndex < 0 {
		return "Unknown", -1
	}

	var round string
	switch {
	case pickIndex <= 1:
		round = "Round 1"
	case pickIndex <= 5:
		round = "Round 2"
	default:
		round = "Round 3"
	}
	return round, pickIndex + 1
}

// evaluatePerformance scores KDA, farm and damage into a rating text.
func evaluatePerformance(match *opendota.RecentMatch) string {
	kda := float64(match.Kills + match.Assists)
	if match.Deaths > 0 {
		kda = float64(match.Kills+match.Assists) / float64(match.Deaths)
	}
	csPerMin := float64(match.LastHits) / float64(matchMinutes(match.Duration))

	score := 0
	if kda >= 3 {
		score += 2
	} else if kda >= 2 {
		score += 1
	}
	if csPerMin >= 6 {
		score += 2
	} else if csPerMin >= 4 {
		score += 1
	}
	if match.HeroDamage > match.Duration*350 {
		score += 1
	}

	if score >= 4 {
		return "Excellent performance"
	}
	if score >= 2 {
		return "Good performance"
	}
	return "Needs improvement"
}

// buildStatistics renders the box score lines shown with every result.
func buildStatistics(match *opendota.RecentMatch) map[string]string {
	return map[string]string{
		"KDA":      fmt.Sprintf("%d/%d/%d", match.Kills, match.Deaths, match.Assists),
		"CS/DN":    fmt.Sprintf("%d/%d", match.LastHits, match.Denies),
		"GPM/XPM":  fmt.Sprintf("%d/%d", match.GoldPerMin, match.XpPerMin),
		"Duration": fmt.Sprintf("%d min", match.Duration/60),
		"Level":    fmt.Sprintf("%d", match.Level),
	}
}

func resultText(won bool) string {
	if won {
		return "Victory"
	}
	return "Defeat"
}

func laneRoleOrUnknown(player *opendota.PlayerDetail) int {
	if player.LaneRole != nil {
		return *player.LaneRole
	}
	return -1
}

// matchMinutes floors the duration to minutes with a minimum of one, so
// per-minute rates never divide by zero.
func matchMinutes(durationSeconds int) int {
	minutes := durationSeconds / 60
	if minutes < 1 {
		return 1
	}
	return minutes
}
