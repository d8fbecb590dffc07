package analysis

import "github.com/surfyhou/Dota2Analyzer/api/dto"

// SelectDesired takes the first desiredCount results in order, optionally
// restricted to likely position 1 games. Filtering never reorders.
func SelectDesired(results []*dto.MatchAnalysisResult, desiredCount int, onlyPos1 bool) []*dto.MatchAnalysisResult {
	if desiredCount <= 0 {
		return []*dto.MatchAnalysisResult{}
	}

	selected := make([]*dto.MatchAnalysisResult, 0, desiredCount)
	for _, result := range results {
		if onlyPos1 && !result.Position1 {
			continue
		}
		selected = append(selected, result)
		if len(selected) == desiredCount {
			break
		}
	}
	return selected
}
