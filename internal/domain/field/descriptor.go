package field

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/fieldmodel/internal/domain"
)

// OperandSeparator joins operand names into an interaction name.
const OperandSeparator = ":"

// Descriptor is an immutable compiled field. The Kind tag decides which of
// the optional capabilities (comparator, dummies, operands, source) apply.
type Descriptor struct {
	kind       Kind
	fieldType  Type
	name       string
	field      string
	slots      int
	hasMissing bool
	comparator Comparator

	categories []string
	dummies    []Descriptor
	corpus     []string

	operands     []string
	positions    []int
	missingTerms bool

	source    string
	sourcePos int
}

// NewAtomic creates a single-slot comparator-bearing descriptor for an atomic type.
func NewAtomic(t Type, name, fieldName string, hasMissing bool, cmp Comparator) (Descriptor, error) {
	if !t.IsAtomic() {
		return Descriptor{}, fmt.Errorf("%w: %q is not an atomic type", domain.ErrInvalidParameter, t)
	}
	if fieldName == "" {
		return Descriptor{}, fmt.Errorf("%w: %q is required", domain.ErrInvalidParameter, KeyField)
	}
	return Descriptor{
		kind:       KindAtomic,
		fieldType:  t,
		name:       orDefault(name, fieldName),
		field:      fieldName,
		slots:      1,
		hasMissing: hasMissing,
		comparator: cmp,
	}, nil
}

// WithCorpus returns a copy carrying a text corpus for the comparator.
func (d Descriptor) WithCorpus(corpus []string) Descriptor {
	d.corpus = slices.Clone(corpus)
	return d
}

// NewCustom creates a descriptor for a user-supplied comparator writing slots scores.
func NewCustom(name, fieldName string, slots int, hasMissing bool, cmp Comparator) (Descriptor, error) {
	if fieldName == "" {
		return Descriptor{}, fmt.Errorf("%w: %q is required", domain.ErrInvalidParameter, KeyField)
	}
	if slots < 1 {
		return Descriptor{}, fmt.Errorf("%w: %q must be at least 1, got %d", domain.ErrInvalidParameter, KeySlots, slots)
	}
	return Descriptor{
		kind:       KindCustom,
		fieldType:  Custom,
		name:       orDefault(name, fieldName),
		field:      fieldName,
		slots:      slots,
		hasMissing: hasMissing,
		comparator: cmp,
	}, nil
}

// NewCategorical creates a categorical descriptor and its one-hot dummies.
// Duplicate categories collapse to their first occurrence.
func NewCategorical(name, fieldName string, categories []string, hasMissing bool, cmp Comparator) (Descriptor, error) {
	if fieldName == "" {
		return Descriptor{}, fmt.Errorf("%w: %q is required", domain.ErrInvalidParameter, KeyField)
	}
	distinct := make([]string, 0, len(categories))
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		if seen[c] {
			continue
		}
		seen[c] = true
		distinct = append(distinct, c)
	}
	if len(distinct) == 0 {
		return Descriptor{}, fmt.Errorf("%w: %q must list at least one value", domain.ErrInvalidParameter, KeyCategories)
	}

	d := Descriptor{
		kind:       KindCategorical,
		fieldType:  Categorical,
		name:       orDefault(name, fieldName),
		field:      fieldName,
		slots:      1,
		hasMissing: hasMissing,
		comparator: cmp,
		categories: distinct,
	}
	d.dummies = make([]Descriptor, len(distinct))
	for i, c := range distinct {
		d.dummies[i] = Descriptor{
			kind:      KindDummy,
			fieldType: Categorical,
			name:      d.name + ": " + c,
			field:     fieldName,
			slots:     1,
			source:    d.name,
			sourcePos: -1,
		}
	}
	return d, nil
}

// NewExists creates a presence indicator. It never tracks missing data.
func NewExists(name, fieldName string, cmp Comparator) (Descriptor, error) {
	if fieldName == "" {
		return Descriptor{}, fmt.Errorf("%w: %q is required", domain.ErrInvalidParameter, KeyField)
	}
	return Descriptor{
		kind:       KindExists,
		fieldType:  Exists,
		name:       orDefault(name, fieldName),
		field:      fieldName,
		slots:      1,
		comparator: cmp,
	}, nil
}

// NewInteraction creates an interaction declaration over named operands.
// An empty name defaults to the operand names joined by OperandSeparator.
// missingTerms applies to the expanded terms; the declaration itself is never tracked.
func NewInteraction(name string, operands []string, missingTerms bool) (Descriptor, error) {
	if len(operands) < 2 {
		return Descriptor{}, fmt.Errorf("%w: %q needs at least two field names, got %d",
			domain.ErrInvalidParameter, KeyInteractionFields, len(operands))
	}
	for _, op := range operands {
		if op == "" {
			return Descriptor{}, fmt.Errorf("%w: %q contains an empty name", domain.ErrInvalidParameter, KeyInteractionFields)
		}
	}
	return Descriptor{
		kind:         KindInteraction,
		fieldType:    Interaction,
		name:         orDefault(name, strings.Join(operands, OperandSeparator)),
		operands:     slices.Clone(operands),
		missingTerms: missingTerms,
	}, nil
}

// NewInteractionTerm creates one expanded product term over model positions.
func NewInteractionTerm(name string, positions []int, hasMissing bool) Descriptor {
	return Descriptor{
		kind:       KindInteractionTerm,
		fieldType:  Interaction,
		name:       name,
		slots:      1,
		hasMissing: hasMissing,
		positions:  slices.Clone(positions),
	}
}

// NewMissingIndicator creates the "not missing" flag for the descriptor
// named source at model position pos.
func NewMissingIndicator(source string, pos int) Descriptor {
	return Descriptor{
		kind:      KindMissing,
		name:      source + ": not missing",
		slots:     1,
		source:    source,
		sourcePos: pos,
	}
}

// WithSourcePosition returns a copy of a dummy pointing at its parent's
// model position.
func (d Descriptor) WithSourcePosition(pos int) Descriptor {
	d.sourcePos = pos
	return d
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Kind returns the variant tag.
func (d Descriptor) Kind() Kind { return d.kind }

// Type returns the registry type the descriptor was compiled from (empty for missing indicators).
func (d Descriptor) Type() Type { return d.fieldType }

// Name returns the descriptor name, unique among base fields by convention.
func (d Descriptor) Name() string { return d.name }

// Field returns the record key compared by this descriptor.
func (d Descriptor) Field() string { return d.field }

// Slots returns the number of feature-vector slots the descriptor fills.
// Interaction declarations fill none; their expanded terms do.
func (d Descriptor) Slots() int { return d.slots }

// HasMissing reports whether a missing indicator is derived from this descriptor.
func (d Descriptor) HasMissing() bool { return d.hasMissing }

// HasComparator reports whether the descriptor occupies a comparator range.
func (d Descriptor) HasComparator() bool { return d.kind.HasComparator() }

// Comparator returns the comparator, which may be nil when none was registered.
func (d Descriptor) Comparator() Comparator { return d.comparator }

// Categories returns the distinct category values of a categorical field.
func (d Descriptor) Categories() []string { return slices.Clone(d.categories) }

// Dummies returns the one-hot siblings spliced after a categorical field.
func (d Descriptor) Dummies() []Descriptor { return slices.Clone(d.dummies) }

// DummyCount returns len(Dummies()).
func (d Descriptor) DummyCount() int { return len(d.dummies) }

// Corpus returns the text corpus for Text fields.
func (d Descriptor) Corpus() []string { return slices.Clone(d.corpus) }

// Operands returns the operand names of an interaction declaration.
func (d Descriptor) Operands() []string { return slices.Clone(d.operands) }

// TermsTrackMissing reports whether an interaction declaration asked its terms to track missing data.
func (d Descriptor) TermsTrackMissing() bool { return d.missingTerms }

// OperandPositions returns the model positions an interaction term multiplies.
func (d Descriptor) OperandPositions() []int { return slices.Clone(d.positions) }

// Source returns the originating descriptor name of a dummy or missing indicator.
// Names may repeat (an interaction declaration and its only term share one),
// so use SourcePosition to find the descriptor itself.
func (d Descriptor) Source() string { return d.source }

// SourcePosition returns the model position of the originating descriptor.
// ok is false for descriptors that derive from nothing or were never placed.
func (d Descriptor) SourcePosition() (pos int, ok bool) {
	if (d.kind != KindDummy && d.kind != KindMissing) || d.sourcePos < 0 {
		return -1, false
	}
	return d.sourcePos, true
}
