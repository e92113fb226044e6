package model

import "github.com/kailas-cloud/fieldmodel/internal/domain/field"

// Layout is a serializable snapshot of a Model and its views.
type Layout struct {
	Bias              float64            `json:"bias" yaml:"bias"`
	TotalFields       int                `json:"total_fields" yaml:"total_fields"`
	PrimaryFieldCount int                `json:"primary_field_count" yaml:"primary_field_count"`
	Fields            []LayoutField      `json:"fields" yaml:"fields"`
	MissingFields     []int              `json:"missing_field_indices" yaml:"missing_field_indices"`
	Interactions      [][]int            `json:"interactions" yaml:"interactions"`
	Categoricals      []CategoricalGroup `json:"categorical_indices" yaml:"categorical_indices"`
}

// LayoutField describes one descriptor. Start and Stop are -1 when the
// descriptor has no comparator range.
type LayoutField struct {
	Position   int    `json:"position" yaml:"position"`
	Kind       string `json:"kind" yaml:"kind"`
	Type       string `json:"type,omitempty" yaml:"type,omitempty"`
	Name       string `json:"name" yaml:"name"`
	Field      string `json:"field,omitempty" yaml:"field,omitempty"`
	Slots      int    `json:"slots" yaml:"slots"`
	Start      int    `json:"start" yaml:"start"`
	Stop       int    `json:"stop" yaml:"stop"`
	HasMissing bool   `json:"has_missing" yaml:"has_missing"`
	Operands   []int  `json:"operands,omitempty" yaml:"operands,omitempty"`
	Dummies    int    `json:"dummies,omitempty" yaml:"dummies,omitempty"`
	Source     string `json:"source,omitempty" yaml:"source,omitempty"`
	// SourcePosition is set for dummies and missing indicators.
	SourcePosition *int `json:"source_position,omitempty" yaml:"source_position,omitempty"`
}

// Layout renders the model for export.
func (m *Model) Layout() Layout {
	out := Layout{
		Bias:          m.bias,
		TotalFields:   m.TotalFields(),
		Fields:        make([]LayoutField, len(m.fields)),
		MissingFields: m.MissingFieldIndices(),
		Interactions:  m.InteractionGroups(),
		Categoricals:  m.CategoricalGroups(),
	}

	start := 0
	for i, d := range m.fields {
		lf := LayoutField{
			Position:   i,
			Kind:       d.Kind().String(),
			Type:       string(d.Type()),
			Name:       d.Name(),
			Field:      d.Field(),
			Slots:      d.Slots(),
			Start:      -1,
			Stop:       -1,
			HasMissing: d.HasMissing(),
			Dummies:    d.DummyCount(),
			Source:     d.Source(),
		}
		if d.HasComparator() {
			lf.Start = start
			lf.Stop = start + d.Slots()
			start = lf.Stop
		}
		if pos, ok := d.SourcePosition(); ok {
			lf.SourcePosition = &pos
		}
		if d.Kind() == field.KindInteractionTerm {
			lf.Operands = d.OperandPositions()
		}
		out.Fields[i] = lf
	}
	out.PrimaryFieldCount = start
	return out
}
