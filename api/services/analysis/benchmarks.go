package analysis

import (
	"fmt"
	"sort"

	"github.com/surfyhou/Dota2Analyzer/fetcher/opendota"
)

// estimatePercentile maps an observed value onto the percentile of the
// greatest sample not exceeding it. A value below every sample reports the
// lowest sample's percentile; an empty curve reports nothing.
func estimatePercentile(value float64, entries []opendota.BenchmarkEntry) (float64, bool) {
	if len(entries) == 0 {
		return 0, false
	}

	sorted := make([]opendota.BenchmarkEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })

	best := -1
	for i, entry := range sorted {
		if value >= entry.Value {
			best = i
		} else {
			break
		}
	}

	if best < 0 {
		return sorted[0].Percentile * 100, true
	}
	return sorted[best].Percentile * 100, true
}

// percentileValue returns the sample value nearest the given percentile mark.
func percentileValue(entries []opendota.BenchmarkEntry, percentile float64) (float64, bool) {
	if len(entries) == 0 {
		return 0, false
	}

	best := entries[0]
	bestDist := absFloat(best.Percentile - percentile)
	for _, entry := range entries[1:] {
		if dist := absFloat(entry.Percentile - percentile); dist < bestDist {
			best = entry
			bestDist = dist
		}
	}
	return best.Value, true
}

// buildHeroBenchmarkNotes renders one comparison line per metric the provider
// has a curve for. Metrics without a curve are omitted rather than guessed.
func buildHeroBenchmarkNotes(match *opendota.RecentMatch, benchmarks *opendota.BenchmarksResponse) []string {
	if benchmarks == nil || len(benchmarks.Result) == 0 {
		return nil
	}

	minutes := float64(matchMinutes(match.Duration))
	comparisons := []struct {
		label string
		value float64
		key   string
	}{
		{"GPM", float64(match.GoldPerMin), "gold_per_min"},
		{"XPM", float64(match.XpPerMin), "xp_per_min"},
		{"Kills/min", float64(match.Kills) / minutes, "kills_per_min"},
		{"Last hits/min", float64(match.LastHits) / minutes, "last_hits_per_min"},
		{"Hero damage/min", float64(match.HeroDamage) / minutes, "hero_damage_per_min"},
		{"Healing/min", float64(match.HeroHealing) / minutes, "hero_healing_per_min"},
		{"Tower damage", float64(match.TowerDamage), "tower_damage"},
	}

	var notes []string
	for _, comp := range comparisons {
		entries := benchmarks.Result[comp.key]
		if len(entries) == 0 {
			continue
		}

		percentileText := "unknown"
		if percentile, ok := estimatePercentile(comp.value, entries); ok {
			percentileText = fmt.Sprintf("%.0f%%", percentile)
		}
		typicalText := "unknown"
		if typical, ok := percentileValue(entries, 0.5); ok {
			typicalText = fmt.Sprintf("%.0f", typical)
		}
		strongText := "unknown"
		if strong, ok := percentileValue(entries, 0.8); ok {
			strongText = fmt.Sprintf("%.0f", strong)
		}

		notes = append(notes, fmt.Sprintf("%s: %.0f (hero percentile ~%s, typical(50%%)~%s, strong(80%%)~%s)",
			comp.label, comp.value, percentileText, typicalText, strongText))
	}

	return notes
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
