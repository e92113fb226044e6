package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/fieldmodel/internal/domain/model"
)

const sampleSpec = `
- {field: name, type: String, has missing: true}
- {field: city, type: Categorical, categories: [NY, CA]}
- {field: addr, type: Custom, comparator: address}
- {type: Interaction, interaction fields: [name, city]}
`

func writeSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fields.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSpec), 0o600))
	return path
}

func TestRunCompile_JSON(t *testing.T) {
	var out bytes.Buffer
	err := runCompile([]string{"-comparator", "address", writeSpec(t)}, &out)
	require.NoError(t, err)

	var layout model.Layout
	require.NoError(t, json.Unmarshal(out.Bytes(), &layout))
	// name, city, 2 dummies, addr, declaration, 2 terms, 3 indicators
	assert.Equal(t, 11, layout.TotalFields)
	assert.Equal(t, 3, layout.PrimaryFieldCount)
	assert.Equal(t, [][]int{{0, 2}, {0, 3}}, layout.Interactions)
}

func TestRunCompile_YAML(t *testing.T) {
	var out bytes.Buffer
	err := runCompile([]string{"-output", "yaml", "-comparator", "address", writeSpec(t)}, &out)
	require.NoError(t, err)

	var layout model.Layout
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &layout))
	assert.Equal(t, 11, layout.TotalFields)
	assert.Equal(t, []model.CategoricalGroup{{Position: 1, DummyCount: 2}}, layout.Categoricals)
}

func TestRunCompile_Errors(t *testing.T) {
	path := writeSpec(t)
	tests := []struct {
		name string
		args []string
	}{
		{"no file", nil},
		{"unregistered comparator", []string{path}},
		{"bad output", []string{"-output", "xml", "-comparator", "address", path}},
		{"too many fields", []string{"-max-fields", "2", "-comparator", "address", path}},
		{"missing file", []string{filepath.Join(t.TempDir(), "nope.yaml")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Error(t, runCompile(tt.args, &out))
		})
	}
}
