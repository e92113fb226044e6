package compile

import (
	"github.com/kailas-cloud/fieldmodel/internal/domain"
	"github.com/kailas-cloud/fieldmodel/internal/domain/field"
)

// Resolve maps each field specification to a descriptor. Categorical
// dummies are spliced directly after their parent.
func Resolve(r *Registry, specs []any) ([]field.Descriptor, error) {
	out := make([]field.Descriptor, 0, len(specs))
	for i, raw := range specs {
		spec, ok := field.AsSpec(raw)
		if !ok {
			return nil, &domain.SpecError{Index: i, Err: domain.NewMalformedSpec(raw)}
		}
		d, err := r.Build(spec)
		if err != nil {
			fieldName, _, _ := spec.OptString(field.KeyField)
			return nil, &domain.SpecError{Index: i, Field: fieldName, Err: err}
		}
		parent := len(out)
		out = append(out, d)
		for _, dummy := range d.Dummies() {
			out = append(out, dummy.WithSourcePosition(parent))
		}
	}
	return out, nil
}
