package compile

import (
	"slices"

	"github.com/kailas-cloud/fieldmodel/internal/domain/field"
)

// AppendMissing appends one missing indicator per descriptor that tracks
// missing data. Only descriptors present on entry are scanned, so the new
// indicators are never themselves considered.
func AppendMissing(fields []field.Descriptor) []field.Descriptor {
	out := slices.Clone(fields)
	for i, d := range fields {
		if d.HasMissing() {
			out = append(out, field.NewMissingIndicator(d.Name(), i))
		}
	}
	return out
}
