package compile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/fieldmodel/internal/domain"
	"github.com/kailas-cloud/fieldmodel/internal/domain/field"
)

// ExpandInteractions appends the product terms of every interaction
// declaration to the end of fields, in declaration order. Operands resolve
// by name against the descriptors present on entry; a later duplicate name
// shadows an earlier one.
func ExpandInteractions(fields []field.Descriptor) ([]field.Descriptor, error) {
	byName := make(map[string]int, len(fields))
	for i, d := range fields {
		byName[d.Name()] = i
	}

	out := slices.Clone(fields)
	for _, d := range fields {
		if d.Kind() != field.KindInteraction {
			continue
		}
		terms, err := expandTerms(d, fields, byName)
		if err != nil {
			return nil, fmt.Errorf("interaction %q: %w", d.Name(), err)
		}
		out = append(out, terms...)
	}
	return out, nil
}

// expandTerms builds one term per combination of operand slots. Categorical
// operands contribute their dummies; the first operand varies slowest.
func expandTerms(decl field.Descriptor, fields []field.Descriptor, byName map[string]int) ([]field.Descriptor, error) {
	atoms, err := atomicOperands(decl.Operands(), fields, byName, map[string]bool{decl.Name(): true})
	if err != nil {
		return nil, err
	}

	hasMissing := decl.TermsTrackMissing()
	choices := make([][]int, len(atoms))
	for k, i := range atoms {
		op := fields[i]
		hasMissing = hasMissing || op.HasMissing()
		switch {
		case op.Kind() == field.KindCategorical:
			dummies := make([]int, op.DummyCount())
			for j := range dummies {
				dummies[j] = i + 1 + j
			}
			choices[k] = dummies
		case op.Slots() != 1:
			return nil, fmt.Errorf("%w: operand %q occupies %d slots, interactions need single-slot or categorical operands",
				domain.ErrInvalidParameter, op.Name(), op.Slots())
		default:
			choices[k] = []int{i}
		}
	}

	var terms []field.Descriptor
	for _, positions := range product(choices) {
		names := make([]string, len(positions))
		for j, p := range positions {
			names[j] = fields[p].Name()
		}
		terms = append(terms, field.NewInteractionTerm(strings.Join(names, field.OperandSeparator), positions, hasMissing))
	}
	return terms, nil
}

// atomicOperands resolves names to positions, flattening operands that are
// themselves interaction declarations.
func atomicOperands(names []string, fields []field.Descriptor, byName map[string]int, visiting map[string]bool) ([]int, error) {
	var out []int
	for _, name := range names {
		i, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownOperand, name)
		}
		op := fields[i]
		if op.Kind() != field.KindInteraction {
			out = append(out, i)
			continue
		}
		if visiting[name] {
			return nil, fmt.Errorf("%w: interaction %q refers to itself", domain.ErrInvalidParameter, name)
		}
		visiting[name] = true
		nested, err := atomicOperands(op.Operands(), fields, byName, visiting)
		delete(visiting, name)
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}

// product returns the cartesian product of choices in odometer order.
func product(choices [][]int) [][]int {
	combos := [][]int{{}}
	for _, options := range choices {
		next := make([][]int, 0, len(combos)*len(options))
		for _, prefix := range combos {
			for _, o := range options {
				combo := make([]int, len(prefix), len(prefix)+1)
				copy(combo, prefix)
				next = append(next, append(combo, o))
			}
		}
		combos = next
	}
	return combos
}
