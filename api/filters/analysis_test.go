package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalysisQueryParamsNormalize(t *testing.T) {
	tests := []struct {
		name     string
		params   AnalysisQueryParams
		expected AnalysisQueryParams
	}{
		{
			name:     "Defaults untouched",
			params:   AnalysisQueryParams{Count: 2, FetchLimit: 20},
			expected: AnalysisQueryParams{Count: 2, FetchLimit: 20},
		},
		{
			name:     "Count capped",
			params:   AnalysisQueryParams{Count: 500, FetchLimit: 20},
			expected: AnalysisQueryParams{Count: 50, FetchLimit: 50},
		},
		{
			name:     "Fetch limit capped",
			params:   AnalysisQueryParams{Count: 10, FetchLimit: 5000},
			expected: AnalysisQueryParams{Count: 10, FetchLimit: 100},
		},
		{
			name:     "Fetch limit raised to count",
			params:   AnalysisQueryParams{Count: 30, FetchLimit: 5},
			expected: AnalysisQueryParams{Count: 30, FetchLimit: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.params.Normalize()
			assert.Equal(t, tt.expected, tt.params)
		})
	}
}
