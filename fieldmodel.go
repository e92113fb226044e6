// Package fieldmodel compiles record-matching field specifications into a
// feature layout.
//
// A field specification names a record key and a comparison type:
//
//	specs := []any{
//		map[string]any{"field": "name", "type": "String", "has missing": true},
//		map[string]any{"field": "city", "type": "Categorical", "categories": []any{"NY", "CA"}},
//		map[string]any{"type": "Interaction", "interaction fields": []any{"name", "city"}},
//	}
//	m, err := fieldmodel.Compile(fieldmodel.NewRegistry(), specs)
//
// The resulting Model is immutable and exposes the views a comparison
// engine and a classifier need: comparator ranges, missing-field positions,
// interaction groups and categorical dummy groups.
package fieldmodel

import (
	"github.com/kailas-cloud/fieldmodel/internal/domain"
	"github.com/kailas-cloud/fieldmodel/internal/domain/field"
	"github.com/kailas-cloud/fieldmodel/internal/domain/model"
	"github.com/kailas-cloud/fieldmodel/internal/specfile"
	"github.com/kailas-cloud/fieldmodel/internal/usecase/compile"
)

type (
	// Spec is one field specification.
	Spec = field.Spec
	// Type is a registry type name.
	Type = field.Type
	// Kind tags the descriptor variant.
	Kind = field.Kind
	// Descriptor is one compiled field.
	Descriptor = field.Descriptor
	// Comparator writes a pair's scores into its slot range.
	Comparator = field.Comparator
	// Model is a compiled field model.
	Model = model.Model
	// Layout is a serializable Model snapshot.
	Layout = model.Layout
	// ComparatorRange is a comparator's [Start, Stop) slot range.
	ComparatorRange = model.ComparatorRange
	// CategoricalGroup is a categorical position and dummy count.
	CategoricalGroup = model.CategoricalGroup
	// Registry resolves type names and holds comparators.
	Registry = compile.Registry
	// Option configures a Registry.
	Option = compile.Option
	// UnknownTypeError reports a type outside the registry.
	UnknownTypeError = domain.UnknownTypeError
	// SpecError locates the failing specification.
	SpecError = domain.SpecError
)

// Field types.
const (
	String      = field.String
	ShortString = field.ShortString
	LatLong     = field.LatLong
	Set         = field.Set
	Text        = field.Text
	Categorical = field.Categorical
	Exists      = field.Exists
	Custom      = field.Custom
	Exact       = field.Exact
	Interaction = field.Interaction
)

// Descriptor kinds.
const (
	KindAtomic          = field.KindAtomic
	KindCustom          = field.KindCustom
	KindCategorical     = field.KindCategorical
	KindDummy           = field.KindDummy
	KindExists          = field.KindExists
	KindInteraction     = field.KindInteraction
	KindInteractionTerm = field.KindInteractionTerm
	KindMissing         = field.KindMissing
)

// Compilation errors.
var (
	ErrMalformedSpec    = domain.ErrMalformedSpec
	ErrMissingType      = domain.ErrMissingType
	ErrUnknownType      = domain.ErrUnknownType
	ErrUnknownOperand   = domain.ErrUnknownOperand
	ErrInvalidParameter = domain.ErrInvalidParameter
)

// NewRegistry creates a Registry over the built-in types.
func NewRegistry(opts ...Option) *Registry { return compile.NewRegistry(opts...) }

// WithComparator attaches cmp to every descriptor of type t.
func WithComparator(t Type, cmp Comparator) Option { return compile.WithComparator(t, cmp) }

// WithCustomComparator registers a named comparator for Custom specs.
func WithCustomComparator(name string, cmp Comparator) Option {
	return compile.WithCustomComparator(name, cmp)
}

// Scalar adapts a single-score function to a Comparator.
func Scalar(fn func(a, b any) float64) Comparator { return field.Scalar(fn) }

// Compile compiles a specification list. Entries must be maps; anything
// else is reported as ErrMalformedSpec.
func Compile(r *Registry, specs []any) (*Model, error) { return compile.Compile(r, specs) }

// CompileSpecs compiles a typed specification list.
func CompileSpecs(r *Registry, specs []Spec) (*Model, error) { return compile.CompileSpecs(r, specs) }

// LoadSpecs reads a YAML or JSON specification document (by file extension).
func LoadSpecs(path string) ([]any, error) { return specfile.LoadFile(path) }
