package logrank

const (
	// The cut-point search only considers the central part of the
	// value distribution so that neither side of a candidate split
	// gets pathologically small.
	SearchLowPercentile  = 20
	SearchHighPercentile = 80

	// Below this cohort size the search degenerates to the median.
	MinSearchObservations = 3
)

func getSearchPercentiles() (int, int) {
	return SearchLowPercentile, SearchHighPercentile
}

func getMinSearchObservations() int {
	return MinSearchObservations
}
