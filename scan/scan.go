// Package scan drives survival analysis over a cohort dataset:
// clinical/categorical variables one by one, and optionally the
// whole gene-expression block at genome scale.
package scan

import (
	"context"
	"math"
	"sort"

	"github.com/uyouii/survival-analysis/common"
	"github.com/uyouii/survival-analysis/fdr"
	"github.com/uyouii/survival-analysis/km"
	"github.com/uyouii/survival-analysis/logrank"
	"github.com/uyouii/survival-analysis/model"
	"github.com/uyouii/survival-analysis/utils"
	"go.uber.org/zap"
)

const (
	// GenesSentinel in a variable list requests the genome-scale
	// scan instead of naming a literal column.
	GenesSentinel = "GENES"

	// Genes are split at the sample median; a full threshold search
	// per gene is cost-prohibitive at genome scale.
	GeneSplitQuantile = 0.5

	numericalLowLabel  = "Low"
	numericalHighLabel = "High"
)

// VariableOutput is the per-variable scan outcome: the reported
// statistic plus the per-group curves for display.
type VariableOutput struct {
	Result model.VariableResult
	Curves []model.SurvivalCurve
}

type GeneScan struct {
	Results     []model.GeneResult
	Significant int
}

type Report struct {
	Variables []VariableOutput
	Genes     *GeneScan
}

type Scanner struct {
	ds        *model.Dataset
	durations []float64
	events    []float64
	progress  func(done, total int)
}

// New validates that the time and event columns exist and are
// numeric; anything else about the table is checked per variable.
func New(ds *model.Dataset, timeColumn, eventColumn string) (*Scanner, error) {
	tc, ok := ds.Column(timeColumn)
	if !ok || !tc.IsNumeric() {
		return nil, common.ErrorColumnNotFound
	}
	ec, ok := ds.Column(eventColumn)
	if !ok || !ec.IsNumeric() {
		return nil, common.ErrorColumnNotFound
	}
	return &Scanner{
		ds:        ds,
		durations: tc.Numeric,
		events:    ec.Numeric,
	}, nil
}

// SetProgress registers a callback fired after each gene during the
// genome-scale scan.
func (s *Scanner) SetProgress(fn func(done, total int)) {
	s.progress = fn
}

// Run scans every named variable and, when the GENES sentinel is
// requested, the gene block as well. Per-variable failures are
// logged and skipped; whatever succeeded is always reported.
func (s *Scanner) Run(ctx context.Context, names []string) *Report {
	logger := utils.GetLogger(ctx)
	defer func() {
		if err := recover(); err != nil {
			logger.Error("survival scan recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()), zap.Strings("variables", names))
		}
	}()

	report := &Report{
		Variables: s.ScanVariables(ctx, names),
	}
	for _, name := range names {
		if name == GenesSentinel {
			report.Genes = s.ScanGenes(ctx)
			break
		}
	}
	return report
}

func (s *Scanner) ScanVariables(ctx context.Context, names []string) []VariableOutput {
	logger := utils.GetLogger(ctx)

	outputs := []VariableOutput{}
	for _, name := range names {
		if name == GenesSentinel {
			continue
		}
		col, ok := s.ds.Column(name)
		if !ok {
			logger.Warn("column not found, skip variable", zap.String("column", name))
			continue
		}

		var out VariableOutput
		if col.IsNumeric() {
			out, ok = s.analyzeNumerical(ctx, col)
		} else {
			out, ok = s.analyzeCategorical(ctx, col)
		}
		if !ok {
			continue
		}
		outputs = append(outputs, out)
	}
	return outputs
}

func (s *Scanner) analyzeNumerical(ctx context.Context, col *model.Column) (VariableOutput, bool) {
	logger := utils.GetLogger(ctx)

	durations, events, values := s.cleanNumeric(col)
	if len(values) == 0 {
		logger.Warn("no complete observations, skip variable", zap.String("column", col.Name))
		return VariableOutput{}, false
	}

	tr := logrank.OptimalThreshold(values, durations, events)
	if singleGroup(tr.Groups) {
		logger.Warn("partition left a single group, skip variable",
			zap.String("column", col.Name), zap.Float64("threshold", tr.Threshold))
		return VariableOutput{}, false
	}

	obs := make([]model.Observation, len(values))
	for i := range values {
		group := numericalLowLabel
		if tr.Groups[i] == 1 {
			group = numericalHighLabel
		}
		obs[i] = model.Observation{Duration: durations[i], Event: events[i], Group: group}
	}

	logger.Info("variable analyzed", zap.String("column", col.Name),
		zap.Float64("threshold", utils.FormatFloat(tr.Threshold, 3)),
		zap.Float64("p_value", tr.Result.PValue))

	return VariableOutput{
		Result: model.NewNumericalResult(col.Name, tr.Threshold, tr.Result.DF, tr.Result.PValue),
		Curves: km.Curves(obs),
	}, true
}

func (s *Scanner) analyzeCategorical(ctx context.Context, col *model.Column) (VariableOutput, bool) {
	logger := utils.GetLogger(ctx)

	obs, labels := s.cleanLabels(col)
	if len(obs) == 0 {
		logger.Warn("no complete observations, skip variable", zap.String("column", col.Name))
		return VariableOutput{}, false
	}

	groups := map[string]bool{}
	for _, l := range labels {
		groups[l] = true
	}
	if len(groups) < 2 {
		logger.Warn("fewer than two groups, skip variable",
			zap.String("column", col.Name), zap.Int("groups", len(groups)))
		return VariableOutput{}, false
	}

	durations := make([]float64, len(obs))
	events := make([]bool, len(obs))
	for i, o := range obs {
		durations[i] = o.Duration
		events[i] = o.Event
	}
	res := logrank.Test(durations, events, labels)

	logger.Info("variable analyzed", zap.String("column", col.Name),
		zap.Int("groups", len(groups)), zap.Float64("p_value", res.PValue))

	return VariableOutput{
		Result: model.NewCategoricalResult(col.Name, res.DF, res.PValue),
		Curves: km.Curves(obs),
	}, true
}

// ScanGenes median-splits every gene column, tests each split, then
// adjusts the whole family of p-values for the false discovery rate.
// Results come back sorted by ascending raw p-value.
func (s *Scanner) ScanGenes(ctx context.Context) *GeneScan {
	logger := utils.GetLogger(ctx)

	genes := s.ds.Genes()
	total := len(genes)
	results := []model.GeneResult{}

	for i := range genes {
		col := &genes[i]
		durations, events, values := s.cleanNumeric(col)
		if len(values) > 0 {
			threshold := utils.Quantile(values, GeneSplitQuantile)
			if res, ok := logrank.SplitTest(durations, events, values, threshold); ok {
				results = append(results, model.GeneResult{
					Gene:      col.Name,
					Threshold: threshold,
					PValue:    res.PValue,
				})
			}
		}
		if s.progress != nil {
			s.progress(i+1, total)
		}
	}

	raw := make([]float64, len(results))
	for i := range results {
		raw[i] = results[i].PValue
	}
	adjusted := fdr.BenjaminiHochberg(raw)
	for i := range results {
		results[i].AdjustedPValue = adjusted[i]
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].PValue < results[b].PValue
	})

	significant := fdr.CountSignificant(adjusted, fdr.DefaultAlpha)
	logger.Info("gene scan complete",
		zap.Int("tested", len(results)), zap.Int("significant", significant))

	return &GeneScan{Results: results, Significant: significant}
}

// cleanNumeric drops rows missing duration, event, or the value
// under test.
func (s *Scanner) cleanNumeric(col *model.Column) (durations []float64, events []bool, values []float64) {
	for i := 0; i < s.ds.Rows(); i++ {
		if missingAt(s.durations, i) || missingAt(s.events, i) || col.Missing(i) {
			continue
		}
		durations = append(durations, s.durations[i])
		events = append(events, s.events[i] != 0)
		values = append(values, col.Numeric[i])
	}
	return durations, events, values
}

func (s *Scanner) cleanLabels(col *model.Column) ([]model.Observation, []string) {
	obs := []model.Observation{}
	labels := []string{}
	for i := 0; i < s.ds.Rows(); i++ {
		if missingAt(s.durations, i) || missingAt(s.events, i) || col.Missing(i) {
			continue
		}
		obs = append(obs, model.Observation{
			Duration: s.durations[i],
			Event:    s.events[i] != 0,
			Group:    col.Labels[i],
		})
		labels = append(labels, col.Labels[i])
	}
	return obs, labels
}

func missingAt(values []float64, i int) bool {
	return math.IsNaN(values[i])
}

func singleGroup(groups []int) bool {
	if len(groups) == 0 {
		return true
	}
	first := groups[0]
	for _, g := range groups {
		if g != first {
			return false
		}
	}
	return true
}
