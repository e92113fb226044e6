package compile

import (
	"fmt"

	"github.com/kailas-cloud/fieldmodel/internal/domain"
	"github.com/kailas-cloud/fieldmodel/internal/domain/field"
)

// builder turns one field specification into a descriptor.
type builder func(r *Registry, spec field.Spec) (field.Descriptor, error)

var builders = map[field.Type]builder{
	field.String:      buildAtomic(field.String),
	field.ShortString: buildAtomic(field.ShortString),
	field.LatLong:     buildAtomic(field.LatLong),
	field.Set:         buildAtomic(field.Set),
	field.Text:        buildText,
	field.Categorical: buildCategorical,
	field.Exists:      buildExists,
	field.Custom:      buildCustom,
	field.Exact:       buildAtomic(field.Exact),
	field.Interaction: buildInteraction,
}

// Registry maps type names to descriptor builders and holds the comparators
// handed to compiled descriptors. It is immutable once built.
type Registry struct {
	comparators map[field.Type]field.Comparator
	custom      map[string]field.Comparator
}

// Option configures a Registry.
type Option func(*Registry)

// WithComparator sets the comparator attached to every descriptor of type t.
func WithComparator(t field.Type, cmp field.Comparator) Option {
	return func(r *Registry) { r.comparators[t] = cmp }
}

// WithCustomComparator registers a named comparator that Custom specs may
// reference by string. A nil comparator still makes the name valid, which
// is enough to compile a layout without scoring records.
func WithCustomComparator(name string, cmp field.Comparator) Option {
	return func(r *Registry) { r.custom[name] = cmp }
}

// NewRegistry creates a Registry over the built-in type set.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		comparators: make(map[field.Type]field.Comparator),
		custom:      make(map[string]field.Comparator),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Types returns the valid type names in registry order.
func (r *Registry) Types() []string {
	types := field.Types()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

// Build resolves the spec's type and instantiates it.
func (r *Registry) Build(spec field.Spec) (field.Descriptor, error) {
	name, ok := spec.TypeName()
	if !ok {
		return field.Descriptor{}, domain.NewMissingType()
	}
	b, ok := builders[field.Type(name)]
	if !ok {
		return field.Descriptor{}, &domain.UnknownTypeError{Type: name, Valid: r.Types()}
	}
	return b(r, spec)
}

func baseParams(spec field.Spec) (name, fieldName string, hasMissing bool, err error) {
	if fieldName, err = spec.Field(); err != nil {
		return "", "", false, err
	}
	if name, err = spec.Name(fieldName); err != nil {
		return "", "", false, err
	}
	if hasMissing, err = spec.HasMissing(); err != nil {
		return "", "", false, err
	}
	return name, fieldName, hasMissing, nil
}

func buildAtomic(t field.Type) builder {
	return func(r *Registry, spec field.Spec) (field.Descriptor, error) {
		name, fieldName, hasMissing, err := baseParams(spec)
		if err != nil {
			return field.Descriptor{}, err
		}
		return field.NewAtomic(t, name, fieldName, hasMissing, r.comparators[t])
	}
}

func buildText(r *Registry, spec field.Spec) (field.Descriptor, error) {
	d, err := buildAtomic(field.Text)(r, spec)
	if err != nil {
		return field.Descriptor{}, err
	}
	corpus, ok, err := spec.OptStrings(field.KeyCorpus)
	if err != nil {
		return field.Descriptor{}, err
	}
	if ok {
		d = d.WithCorpus(corpus)
	}
	return d, nil
}

func buildCategorical(r *Registry, spec field.Spec) (field.Descriptor, error) {
	name, fieldName, hasMissing, err := baseParams(spec)
	if err != nil {
		return field.Descriptor{}, err
	}
	categories, ok, err := spec.OptCategories(field.KeyCategories)
	if err != nil {
		return field.Descriptor{}, err
	}
	if !ok {
		return field.Descriptor{}, fmt.Errorf("%w: %q is required", domain.ErrInvalidParameter, field.KeyCategories)
	}
	return field.NewCategorical(name, fieldName, categories, hasMissing, r.comparators[field.Categorical])
}

func buildExists(r *Registry, spec field.Spec) (field.Descriptor, error) {
	fieldName, err := spec.Field()
	if err != nil {
		return field.Descriptor{}, err
	}
	name, err := spec.Name(fieldName)
	if err != nil {
		return field.Descriptor{}, err
	}
	return field.NewExists(name, fieldName, r.comparators[field.Exists])
}

func buildCustom(r *Registry, spec field.Spec) (field.Descriptor, error) {
	name, fieldName, hasMissing, err := baseParams(spec)
	if err != nil {
		return field.Descriptor{}, err
	}
	slots, ok, err := spec.OptInt(field.KeySlots)
	if err != nil {
		return field.Descriptor{}, err
	}
	if !ok {
		slots = 1
	}
	cmp, err := r.customComparator(spec)
	if err != nil {
		return field.Descriptor{}, err
	}
	return field.NewCustom(name, fieldName, slots, hasMissing, cmp)
}

// customComparator accepts a Comparator, a plain scoring func, or the name
// of a comparator registered with WithCustomComparator.
func (r *Registry) customComparator(spec field.Spec) (field.Comparator, error) {
	v, ok := spec[field.KeyComparator]
	if !ok || v == nil {
		return nil, fmt.Errorf("%w: %q is required for %s fields",
			domain.ErrInvalidParameter, field.KeyComparator, field.Custom)
	}
	switch c := v.(type) {
	case field.Comparator:
		if c == nil {
			break
		}
		return c, nil
	case func(a, b any, dst []float64):
		if c == nil {
			break
		}
		return c, nil
	case func(a, b any) float64:
		if c == nil {
			break
		}
		return field.Scalar(c), nil
	case string:
		cmp, found := r.custom[c]
		if !found {
			return nil, fmt.Errorf("%w: unknown custom comparator %q", domain.ErrInvalidParameter, c)
		}
		return cmp, nil
	}
	return nil, fmt.Errorf("%w: %q must be a comparator function or a registered name, got %T",
		domain.ErrInvalidParameter, field.KeyComparator, v)
}

func buildInteraction(_ *Registry, spec field.Spec) (field.Descriptor, error) {
	operands, ok, err := spec.OptStrings(field.KeyInteractionFields)
	if err != nil {
		return field.Descriptor{}, err
	}
	if !ok {
		operands, ok, err = spec.OptStrings(field.KeyInteractionVars)
		if err != nil {
			return field.Descriptor{}, err
		}
	}
	if !ok {
		return field.Descriptor{}, fmt.Errorf("%w: %q is required", domain.ErrInvalidParameter, field.KeyInteractionFields)
	}
	name, err := spec.Name("")
	if err != nil {
		return field.Descriptor{}, err
	}
	hasMissing, err := spec.HasMissing()
	if err != nil {
		return field.Descriptor{}, err
	}
	return field.NewInteraction(name, operands, hasMissing)
}
