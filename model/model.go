package model

import "math"

type VariableKind string

const (
	KindNumerical   VariableKind = "numerical"
	KindCategorical VariableKind = "categorical"
)

// Observation is one subject's time-to-event record.
// Event is true when the event was observed, false when the subject
// was censored. Group is the label of the partition cell the subject
// falls in for the analysis at hand.
type Observation struct {
	Duration float64
	Event    bool
	Group    string
}

// RiskSet holds the per-group and aggregate counts at one distinct
// event time. Slices are indexed by group in sorted label order.
type RiskSet struct {
	Time        float64
	AtRisk      []float64
	Events      []float64
	TotalAtRisk float64
	TotalEvents float64
}

// TestResult is the outcome of one log-rank test.
// A degenerate partition (fewer than two groups, or a singular
// variance matrix) yields ChiSquare 0 and PValue 1.
type TestResult struct {
	ChiSquare float64
	DF        int
	PValue    float64
}

// ThresholdResult is a binary cut-point for a continuous variable:
// Groups[i] is 1 when the i-th value exceeds Threshold, 0 otherwise.
type ThresholdResult struct {
	Threshold float64
	Groups    []int
	Result    TestResult
}

type CurvePoint struct {
	Time        float64
	Probability float64
}

// SurvivalCurve is one group's product-limit step function.
// Steps start at (0, 1) and are non-increasing in probability;
// Censored marks the curve height at each censoring time.
type SurvivalCurve struct {
	Group    string
	N        int
	Steps    []CurvePoint
	Censored []CurvePoint
}

// VariableResult is the reported outcome for one scanned grouping
// variable. Threshold is NaN for categorical variables.
type VariableResult struct {
	Variable  string
	Kind      VariableKind
	Threshold float64
	DF        int
	PValue    float64
}

type GeneResult struct {
	Gene           string  `json:"gene"`
	Threshold      float64 `json:"threshold"`
	PValue         float64 `json:"p_value"`
	AdjustedPValue float64 `json:"adjusted_p_value"`
}

func NewCategoricalResult(variable string, df int, pvalue float64) VariableResult {
	return VariableResult{
		Variable:  variable,
		Kind:      KindCategorical,
		Threshold: math.NaN(),
		DF:        df,
		PValue:    pvalue,
	}
}

func NewNumericalResult(variable string, threshold float64, df int, pvalue float64) VariableResult {
	return VariableResult{
		Variable:  variable,
		Kind:      KindNumerical,
		Threshold: threshold,
		DF:        df,
		PValue:    pvalue,
	}
}
