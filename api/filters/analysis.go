package filters

// Query parameters for the recent match analysis endpoint.
type AnalysisQueryParams struct {
	Count        int  `form:"count,default=2" binding:"omitempty,min=1"`
	FetchLimit   int  `form:"fetch_limit,default=20" binding:"omitempty,min=1"`
	RequestParse bool `form:"request_parse"`
	OnlyPos1     bool `form:"only_pos1"`
}

// Normalize clamps the parameters to sane bounds before they reach the
// service. The fetch window can never be smaller than the desired count.
func (q *AnalysisQueryParams) Normalize() {
	if q.Count > 50 {
		q.Count = 50
	}
	if q.FetchLimit > 100 {
		q.FetchLimit = 100
	}
	if q.FetchLimit < q.Count {
		q.FetchLimit = q.Count
	}
}
