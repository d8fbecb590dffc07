package dto

// OutcomeStatus tags what a single-match analysis produced.
type OutcomeStatus int

const (
	// OutcomeAnalyzed carries a full analysis result.
	OutcomeAnalyzed OutcomeStatus = iota
	// OutcomeUnparsed carries a sentinel result for a match the provider has
	// not parsed yet, or where the subject player is missing from the roster.
	OutcomeUnparsed
	// OutcomeExcluded carries nothing: the match was deliberately filtered.
	OutcomeExcluded
)

// MatchOutcome separates "no data" from "deliberately filtered" so callers
// cannot confuse the two.
type MatchOutcome struct {
	Status OutcomeStatus
	Result *MatchAnalysisResult
}

// Analyzed wraps a full result.
func Analyzed(result *MatchAnalysisResult) MatchOutcome {
	return MatchOutcome{Status: OutcomeAnalyzed, Result: result}
}

// Unparsed wraps a sentinel result.
func Unparsed(result *MatchAnalysisResult) MatchOutcome {
	return MatchOutcome{Status: OutcomeUnparsed, Result: result}
}

// Excluded marks a filtered-out match.
func Excluded() MatchOutcome {
	return MatchOutcome{Status: OutcomeExcluded}
}

// MatchAnalysisResult is the per-match artifact returned to the API layer.
// Produced fresh on every analysis call, never persisted.
type MatchAnalysisResult struct {
	MatchID            int64               `json:"matchId"`
	HeroID             int                 `json:"heroId"`
	HeroName           string              `json:"heroName"`
	Won                bool                `json:"won"`
	ResultText         string              `json:"resultText"`
	LaneRole           int                 `json:"laneRole"`
	Position1          bool                `json:"position1"`
	PickRound          string              `json:"pickRound"`
	PickIndex          int                 `json:"pickIndex"`
	LaneResult         string              `json:"laneResult"`
	LaneNetWorthDiff10 int                 `json:"laneNetWorthDiff10"`
	LaneOpponentHero   string              `json:"laneOpponentHero"`
	LaneOpponentHeroID int                 `json:"laneOpponentHeroId"`
	LaneAllyHeroes     []string            `json:"laneAllyHeroes"`
	LaneEnemyHeroes    []string            `json:"laneEnemyHeroes"`
	LaneAllyHeroIDs    []int               `json:"laneAllyHeroIds"`
	LaneEnemyHeroIDs   []int               `json:"laneEnemyHeroIds"`
	LaneMatchup        string              `json:"laneMatchup"`
	LaneKills          int                 `json:"laneKills"`
	LaneDeaths         int                 `json:"laneDeaths"`
	PlayerDenies10     int                 `json:"playerDenies10"`
	EnemyDenies10      int                 `json:"enemyDenies10"`
	LaningDetails      []string            `json:"laningDetails"`
	BenchmarkNotes     []string            `json:"benchmarkNotes"`
	PerformanceRating  string              `json:"performanceRating"`
	Mistakes           []string            `json:"mistakes"`
	Suggestions        []string            `json:"suggestions"`
	Statistics         map[string]string   `json:"statistics"`
	AllyHeroes         []string            `json:"allyHeroes"`
	AllyHeroIDs        []int               `json:"allyHeroIds"`
	EnemyHeroes        []string            `json:"enemyHeroes"`
	EnemyHeroIDs       []int               `json:"enemyHeroIds"`
	InventoryTimeline  []InventorySnapshot `json:"inventoryTimeline"`
}

// InventoryItem is one resolved item in a snapshot.
type InventoryItem struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// InventorySnapshot is the owned-item set at one checkpoint time.
type InventorySnapshot struct {
	Time  int             `json:"time"`
	Items []InventoryItem `json:"items"`
}
