package model

import (
	"math"

	"github.com/uyouii/survival-analysis/common"
)

// Column is one named column of a cohort table. Exactly one of
// Numeric or Labels is set: numeric columns mark missing entries
// with NaN, label columns with the empty string.
type Column struct {
	Name    string
	Numeric []float64
	Labels  []string
}

func (c *Column) IsNumeric() bool {
	return c.Labels == nil
}

func (c *Column) Len() int {
	if c.IsNumeric() {
		return len(c.Numeric)
	}
	return len(c.Labels)
}

// Missing reports whether the i-th entry holds no usable value.
func (c *Column) Missing(i int) bool {
	if c.IsNumeric() {
		return math.IsNaN(c.Numeric[i])
	}
	return c.Labels[i] == ""
}

// Dataset is an in-memory cohort table: subject metadata columns
// followed by a block of per-gene expression columns. The two blocks
// are split at a boundary marker column, which stays on the metadata
// side.
type Dataset struct {
	metadata []Column
	genes    []Column
	rows     int
}

// NewDataset splits columns at the boundary marker. A table without
// the marker, or with unevenly sized columns, cannot be scanned at
// all and is rejected.
func NewDataset(columns []Column, boundary string) (*Dataset, error) {
	split := -1
	for i := range columns {
		if columns[i].Name == boundary {
			split = i
			break
		}
	}
	if split < 0 {
		return nil, common.ErrorMissingBoundary
	}

	rows := 0
	if len(columns) > 0 {
		rows = columns[0].Len()
	}
	for i := range columns {
		if columns[i].Len() != rows {
			return nil, common.ErrorInvalidValue
		}
	}

	return &Dataset{
		metadata: columns[:split+1],
		genes:    columns[split+1:],
		rows:     rows,
	}, nil
}

func (d *Dataset) Rows() int {
	return d.rows
}

// Column resolves a name against the metadata columns first, then
// the gene block.
func (d *Dataset) Column(name string) (*Column, bool) {
	for i := range d.metadata {
		if d.metadata[i].Name == name {
			return &d.metadata[i], true
		}
	}
	for i := range d.genes {
		if d.genes[i].Name == name {
			return &d.genes[i], true
		}
	}
	return nil, false
}

func (d *Dataset) Genes() []Column {
	return d.genes
}
