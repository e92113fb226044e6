package model

import (
	"slices"

	"github.com/kailas-cloud/fieldmodel/internal/domain/field"
)

// Model is the compiled field model: an ordered, immutable sequence of
// descriptors plus the classifier's bias placeholder. Safe for concurrent reads.
type Model struct {
	bias   float64
	fields []field.Descriptor
}

// ComparatorRange is where a comparator writes its scores: [Start, Stop).
type ComparatorRange struct {
	Field      string
	Name       string
	Comparator field.Comparator
	Start      int
	Stop       int
}

// CategoricalGroup locates a categorical descriptor and its dummy count.
type CategoricalGroup struct {
	Position   int `json:"position" yaml:"position"`
	DummyCount int `json:"dummy_count" yaml:"dummy_count"`
}

// New freezes a fully expanded descriptor sequence into a Model.
func New(fields []field.Descriptor) *Model {
	return &Model{fields: slices.Clone(fields)}
}

// Bias returns the intercept placeholder (always 0).
func (m *Model) Bias() float64 { return m.bias }

// TotalFields returns the length of the expanded model.
func (m *Model) TotalFields() int { return len(m.fields) }

// Fields returns a copy of the descriptor sequence.
func (m *Model) Fields() []field.Descriptor { return slices.Clone(m.fields) }

// At returns the descriptor at position i.
func (m *Model) At(i int) field.Descriptor { return m.fields[i] }

// Index returns the position of the first descriptor with the given name.
func (m *Model) Index(name string) (int, bool) {
	for i, d := range m.fields {
		if d.Name() == name {
			return i, true
		}
	}
	return -1, false
}

// ComparatorRanges assigns contiguous slot ranges to comparator-bearing
// descriptors in model order. The second result is the primary feature count.
func (m *Model) ComparatorRanges() ([]ComparatorRange, int) {
	var ranges []ComparatorRange
	start := 0
	for _, d := range m.fields {
		if !d.HasComparator() {
			continue
		}
		stop := start + d.Slots()
		ranges = append(ranges, ComparatorRange{
			Field:      d.Field(),
			Name:       d.Name(),
			Comparator: d.Comparator(),
			Start:      start,
			Stop:       stop,
		})
		start = stop
	}
	return ranges, start
}

// PrimaryFieldCount returns the slots occupied by comparator-bearing descriptors.
func (m *Model) PrimaryFieldCount() int {
	n := 0
	for _, d := range m.fields {
		if d.HasComparator() {
			n += d.Slots()
		}
	}
	return n
}

// MissingFieldIndices returns positions of descriptors that track missing data.
func (m *Model) MissingFieldIndices() []int {
	indices := []int{}
	for i, d := range m.fields {
		if d.HasMissing() {
			indices = append(indices, i)
		}
	}
	return indices
}

// InteractionGroups returns, per interaction term, the positions of its operands.
func (m *Model) InteractionGroups() [][]int {
	groups := [][]int{}
	for _, d := range m.fields {
		if d.Kind() == field.KindInteractionTerm {
			groups = append(groups, d.OperandPositions())
		}
	}
	return groups
}

// CategoricalGroups returns the position and dummy count of each categorical descriptor.
func (m *Model) CategoricalGroups() []CategoricalGroup {
	groups := []CategoricalGroup{}
	for i, d := range m.fields {
		if d.Kind() == field.KindCategorical {
			groups = append(groups, CategoricalGroup{Position: i, DummyCount: d.DummyCount()})
		}
	}
	return groups
}
