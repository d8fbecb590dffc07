package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/surfyhou/Dota2Analyzer/fetcher/opendota"
)

func gpmCurve() []opendota.BenchmarkEntry {
	return []opendota.BenchmarkEntry{
		{Percentile: 0.1, Value: 300},
		{Percentile: 0.5, Value: 450},
		{Percentile: 0.8, Value: 560},
		{Percentile: 0.99, Value: 720},
	}
}

func TestEstimatePercentile(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected float64
	}{
		{name: "Exact sample", value: 450, expected: 50},
		{name: "Between samples uses lower", value: 500, expected: 50},
		{name: "Above all samples", value: 900, expected: 99},
		{name: "Below all samples uses lowest", value: 100, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percentile, ok := estimatePercentile(tt.value, gpmCurve())
			assert.True(t, ok)
			assert.InDelta(t, tt.expected, percentile, 0.001)
		})
	}
}

func TestEstimatePercentileEmptyCurve(t *testing.T) {
	_, ok := estimatePercentile(500, nil)
	assert.False(t, ok)
}

func TestPercentileValue(t *testing.T) {
	typical, ok := percentileValue(gpmCurve(), 0.5)
	assert.True(t, ok)
	assert.Equal(t, 450.0, typical)

	strong, ok := percentileValue(gpmCurve(), 0.8)
	assert.True(t, ok)
	assert.Equal(t, 560.0, strong)

	_, ok = percentileValue(nil, 0.5)
	assert.False(t, ok)
}

func TestBuildHeroBenchmarkNotesSkipsAbsentMetrics(t *testing.T) {
	match := &opendota.RecentMatch{
		Duration:   2400,
		GoldPerMin: 500,
		XpPerMin:   550,
	}
	benchmarks := &opendota.BenchmarksResponse{
		HeroID: 1,
		Result: map[string][]opendota.BenchmarkEntry{
			"gold_per_min": gpmCurve(),
		},
	}

	notes := buildHeroBenchmarkNotes(match, benchmarks)

	assert.Len(t, notes, 1)
	assert.Contains(t, notes[0], "GPM: 500")
	assert.Contains(t, notes[0], "typical(50%)~450")
	assert.Contains(t, notes[0], "strong(80%)~560")
}

func TestBuildHeroBenchmarkNotesNilResponse(t *testing.T) {
	match := &opendota.RecentMatch{Duration: 2400}

	assert.Nil(t, buildHeroBenchmarkNotes(match, nil))
	assert.Nil(t, buildHeroBenchmarkNotes(match, &opendota.BenchmarksResponse{}))
}
