package common

import "errors"

var (
	ErrorInvalidValue    = errors.New("invalid value")
	ErrorEmptyCohort     = errors.New("empty cohort")
	ErrorColumnNotFound  = errors.New("column not found")
	ErrorMissingBoundary = errors.New("missing gene boundary column")
)
