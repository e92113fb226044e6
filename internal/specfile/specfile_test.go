package specfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/fieldmodel/internal/domain"
	"github.com/kailas-cloud/fieldmodel/internal/usecase/compile"
)

func TestDecode_YAMLList(t *testing.T) {
	doc := `
- field: name
  type: String
  has missing: true
- field: city_state
  type: Categorical
  categories: [NY, CA, TX]
- type: Interaction
  interaction fields: [name, city_state]
`
	specs, err := Decode([]byte(doc), YAML)
	require.NoError(t, err)
	require.Len(t, specs, 3)

	m, err := compile.Compile(compile.NewRegistry(), specs)
	require.NoError(t, err)
	// name, city_state, 3 dummies, declaration, 3 terms, missing for name + 3 terms
	assert.Equal(t, 13, m.TotalFields())
	assert.Len(t, m.InteractionGroups(), 3)
}

func TestDecode_YAMLFieldsKey(t *testing.T) {
	doc := `
fields:
  - {field: zip, type: ShortString}
  - {field: addr, type: Custom, comparator: address, slots: 2}
`
	specs, err := Decode([]byte(doc), YAML)
	require.NoError(t, err)

	r := compile.NewRegistry(compile.WithCustomComparator("address", nil))
	m, err := compile.Compile(r, specs)
	require.NoError(t, err)
	assert.Equal(t, 3, m.PrimaryFieldCount())
}

func TestDecode_JSON(t *testing.T) {
	doc := `{"fields": [
		{"field": "name", "type": "String"},
		{"field": "age", "type": "Exact"},
		{"type": "Interaction", "interaction fields": ["name", "age"]}
	]}`
	specs, err := Decode([]byte(doc), JSON)
	require.NoError(t, err)

	m, err := compile.Compile(compile.NewRegistry(), specs)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1}}, m.InteractionGroups())
}

func TestDecode_JSONNumbers(t *testing.T) {
	doc := `[{"field": "addr", "type": "Custom", "comparator": "address", "slots": 3},
	         {"field": "code", "type": "Categorical", "categories": [1, 2]}]`
	specs, err := Decode([]byte(doc), JSON)
	require.NoError(t, err)

	r := compile.NewRegistry(compile.WithCustomComparator("address", nil))
	m, err := compile.Compile(r, specs)
	require.NoError(t, err)
	assert.Equal(t, 4, m.PrimaryFieldCount())
	assert.Equal(t, "code: 1", m.At(2).Name())
}

func TestDecode_MalformedEntryReachesCompiler(t *testing.T) {
	specs, err := Decode([]byte("- name\n- {field: a, type: String}\n"), YAML)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	_, err = compile.Compile(compile.NewRegistry(), specs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incorrect field specification")
}

func TestDecode_NonStringKeyIsStillAMapping(t *testing.T) {
	specs, err := Decode([]byte("- {field: name, type: String, 1: x}\n- {field: age, 2: y}\n"), YAML)
	require.NoError(t, err)
	require.Len(t, specs, 2)

	m, err := compile.Compile(compile.NewRegistry(), specs[:1])
	require.NoError(t, err)
	assert.Equal(t, "name", m.At(0).Name())

	_, err = compile.Compile(compile.NewRegistry(), specs)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingType)
	assert.NotErrorIs(t, err, domain.ErrMalformedSpec)
}

func TestDecode_TopLevelNonStringKey(t *testing.T) {
	specs, err := Decode([]byte("version: 1\n1: extra\nfields:\n  - {field: a, type: String}\n"), YAML)
	require.NoError(t, err)
	assert.Len(t, specs, 1)
}

func TestDecode_JSONCategoryNames(t *testing.T) {
	doc := `[{"field": "zip", "type": "Categorical", "categories": [1000000, 2.5, "1000000"]}]`
	specs, err := Decode([]byte(doc), JSON)
	require.NoError(t, err)

	_, err = compile.Compile(compile.NewRegistry(), specs)
	require.Error(t, err, "1000000 and \"1000000\" are different values with one name")
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	specs, err = Decode([]byte(`[{"field": "zip", "type": "Categorical", "categories": [1000000, 2.5, 1000000.0]}]`), JSON)
	require.NoError(t, err)
	m, err := compile.Compile(compile.NewRegistry(), specs)
	require.NoError(t, err)
	assert.Equal(t, "zip: 1000000", m.At(1).Name())
	assert.Equal(t, "zip: 2.5", m.At(2).Name())
	assert.Equal(t, 2, m.CategoricalGroups()[0].DummyCount)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		format Format
	}{
		{"invalid yaml", "- [unclosed", YAML},
		{"invalid json", "[{", JSON},
		{"empty", "", YAML},
		{"scalar", "42", YAML},
		{"mapping without fields", "other: []", YAML},
		{"fields not a list", `{"fields": "x"}`, JSON},
		{"unknown format", "[]", Format("toml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.doc), tt.format)
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fields.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"field": "a", "type": "String"}]`), 0o600))

	specs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, specs, 1)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, JSON, FormatFromPath("a/b.JSON"))
	assert.Equal(t, YAML, FormatFromPath("a/b.yml"))
	assert.Equal(t, YAML, FormatFromPath("fields"))
}
