package field

import (
	"fmt"
	"math"
	"strconv"

	"github.com/kailas-cloud/fieldmodel/internal/domain"
)

// Spec keys understood by the built-in types.
const (
	KeyField             = "field"
	KeyType              = "type"
	KeyName              = "name"
	KeyVariableName      = "variable name"
	KeyHasMissing        = "has missing"
	KeyCategories        = "categories"
	KeyInteractionFields = "interaction fields"
	KeyInteractionVars   = "interaction variables"
	KeyComparator        = "comparator"
	KeySlots             = "slots"
	KeyCorpus            = "corpus"
)

// Spec is one user-declared field specification.
type Spec map[string]any

// AsSpec converts a decoded list entry into a Spec. YAML mappings with a
// non-string key decode to map[any]any; their keys are stringified.
func AsSpec(v any) (Spec, bool) {
	switch s := v.(type) {
	case Spec:
		return s, s != nil
	case map[string]any:
		return Spec(s), s != nil
	case map[any]any:
		if s == nil {
			return nil, false
		}
		out := make(Spec, len(s))
		for k, val := range s {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// TypeName returns the raw type value and whether the key is present.
func (s Spec) TypeName() (string, bool) {
	v, ok := s[KeyType]
	if !ok {
		return "", false
	}
	if str, isStr := v.(string); isStr {
		return str, true
	}
	return fmt.Sprint(v), true
}

// Field returns the record key, or an error when it is absent or not a string.
func (s Spec) Field() (string, error) {
	name, ok, err := s.OptString(KeyField)
	if err != nil {
		return "", err
	}
	if !ok || name == "" {
		return "", fmt.Errorf("%w: %q is required", domain.ErrInvalidParameter, KeyField)
	}
	return name, nil
}

// Name returns the descriptor name: "name", then "variable name", then fallback.
func (s Spec) Name(fallback string) (string, error) {
	for _, key := range []string{KeyName, KeyVariableName} {
		name, ok, err := s.OptString(key)
		if err != nil {
			return "", err
		}
		if ok && name != "" {
			return name, nil
		}
	}
	return fallback, nil
}

// HasMissing returns the "has missing" flag (default false).
func (s Spec) HasMissing() (bool, error) {
	v, ok := s[KeyHasMissing]
	if !ok || v == nil {
		return false, nil
	}
	b, isBool := v.(bool)
	if !isBool {
		return false, fmt.Errorf("%w: %q must be a boolean, got %T", domain.ErrInvalidParameter, KeyHasMissing, v)
	}
	return b, nil
}

// OptString reads an optional string parameter.
func (s Spec) OptString(key string) (string, bool, error) {
	v, ok := s[key]
	if !ok || v == nil {
		return "", false, nil
	}
	str, isStr := v.(string)
	if !isStr {
		return "", false, fmt.Errorf("%w: %q must be a string, got %T", domain.ErrInvalidParameter, key, v)
	}
	return str, true, nil
}

// OptStrings reads an optional list parameter. Scalar items are stringified
// so numeric category values from YAML or JSON are accepted.
func (s Spec) OptStrings(key string) ([]string, bool, error) {
	v, ok := s[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...), true, nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			label, _, ok := formatScalar(item)
			if !ok {
				return nil, false, fmt.Errorf("%w: %q item %d must be a scalar, got %T",
					domain.ErrInvalidParameter, key, i, item)
			}
			out = append(out, label)
		}
		return out, true, nil
	default:
		return nil, false, fmt.Errorf("%w: %q must be a list, got %T", domain.ErrInvalidParameter, key, v)
	}
}

// OptCategories reads a list of category values. Duplicates are detected
// on the decoded value: 1 and 1.0 are one category, 1 and "1" are two.
// Distinct values that print the same would produce clashing dummy names
// and are rejected.
func (s Spec) OptCategories(key string) ([]string, bool, error) {
	v, ok := s[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	var items []any
	switch list := v.(type) {
	case []string:
		items = make([]any, len(list))
		for i, c := range list {
			items[i] = c
		}
	case []any:
		items = list
	default:
		return nil, false, fmt.Errorf("%w: %q must be a list, got %T", domain.ErrInvalidParameter, key, v)
	}

	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	labels := make(map[string]int, len(items))
	for i, item := range items {
		label, class, ok := formatScalar(item)
		if !ok {
			return nil, false, fmt.Errorf("%w: %q item %d must be a scalar, got %T",
				domain.ErrInvalidParameter, key, i, item)
		}
		if seen[class+label] {
			continue
		}
		seen[class+label] = true
		if j, clash := labels[label]; clash {
			return nil, false, fmt.Errorf("%w: %q items %d and %d are different values that both read %q",
				domain.ErrInvalidParameter, key, j, i, label)
		}
		labels[label] = i
		out = append(out, label)
	}
	return out, true, nil
}

// formatScalar renders a decoded scalar and reports its value class
// ("s" string, "b" bool, "n" number). Numbers print in plain decimal.
func formatScalar(v any) (label, class string, ok bool) {
	switch x := v.(type) {
	case string:
		return x, "s", true
	case bool:
		return strconv.FormatBool(x), "b", true
	case int:
		return strconv.Itoa(x), "n", true
	case int64:
		return strconv.FormatInt(x, 10), "n", true
	case uint64:
		return strconv.FormatUint(x, 10), "n", true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), "n", true
	default:
		return "", "", false
	}
}

// OptInt reads an optional integer parameter. Integral float64 values
// (JSON numbers) are accepted.
func (s Spec) OptInt(key string) (int, bool, error) {
	v, ok := s[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return n, true, nil
	case int64:
		return int(n), true, nil
	case uint64:
		return int(n), true, nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false, fmt.Errorf("%w: %q must be an integer, got %v", domain.ErrInvalidParameter, key, n)
		}
		return int(n), true, nil
	default:
		return 0, false, fmt.Errorf("%w: %q must be an integer, got %T", domain.ErrInvalidParameter, key, v)
	}
}
