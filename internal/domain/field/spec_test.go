package field

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/fieldmodel/internal/domain"
)

func TestAsSpec(t *testing.T) {
	if _, ok := AsSpec(map[string]any{"type": "String"}); !ok {
		t.Error("map[string]any should convert")
	}
	if _, ok := AsSpec(Spec{"type": "String"}); !ok {
		t.Error("Spec should convert")
	}
	s, ok := AsSpec(map[any]any{"field": "a", "type": "String", 1: "x"})
	if !ok {
		t.Fatal("map[any]any should convert")
	}
	if s["field"] != "a" || s["1"] != "x" {
		t.Errorf("AsSpec(map[any]any) = %v", s)
	}
	for _, v := range []any{"String", 3, []any{"a"}, nil, map[string]any(nil), map[any]any(nil)} {
		if _, ok := AsSpec(v); ok {
			t.Errorf("AsSpec(%#v) should fail", v)
		}
	}
}

func TestSpec_TypeName(t *testing.T) {
	if _, ok := (Spec{"field": "x"}).TypeName(); ok {
		t.Error("missing type key reported as present")
	}
	name, ok := Spec{"type": 7}.TypeName()
	if !ok || name != "7" {
		t.Errorf("TypeName() = %q, %v", name, ok)
	}
}

func TestSpec_Name(t *testing.T) {
	tests := []struct {
		spec Spec
		want string
	}{
		{Spec{"field": "a"}, "a"},
		{Spec{"field": "a", "name": "b"}, "b"},
		{Spec{"field": "a", "variable name": "c"}, "c"},
		{Spec{"field": "a", "name": "b", "variable name": "c"}, "b"},
	}
	for _, tt := range tests {
		got, err := tt.spec.Name("a")
		if err != nil {
			t.Errorf("Name(%v) unexpected error: %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Name(%v) = %q, want %q", tt.spec, got, tt.want)
		}
	}
}

func TestSpec_HasMissing(t *testing.T) {
	got, err := Spec{"has missing": true}.HasMissing()
	if err != nil || !got {
		t.Errorf("HasMissing() = %v, %v", got, err)
	}
	if _, err := (Spec{"has missing": "yes"}).HasMissing(); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Errorf("non-bool error = %v, want ErrInvalidParameter", err)
	}
}

func TestSpec_OptStrings(t *testing.T) {
	got, ok, err := Spec{"categories": []any{"NY", 1, 2.5, true}}.OptStrings("categories")
	if err != nil || !ok {
		t.Fatalf("OptStrings() ok=%v err=%v", ok, err)
	}
	want := []string{"NY", "1", "2.5", "true"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("item %d = %q, want %q", i, got[i], want[i])
		}
	}
	if _, _, err := (Spec{"categories": "NY"}).OptStrings("categories"); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Errorf("scalar error = %v, want ErrInvalidParameter", err)
	}
	if _, _, err := (Spec{"categories": []any{map[string]any{}}}).OptStrings("categories"); err == nil {
		t.Error("nested map item should fail")
	}
}

func TestSpec_OptStrings_PlainNumbers(t *testing.T) {
	got, _, err := Spec{"corpus": []any{1e6, int64(7)}}.OptStrings("corpus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != "1000000" || got[1] != "7" {
		t.Errorf("OptStrings() = %v, want [1000000 7]", got)
	}
}

func TestSpec_OptCategories(t *testing.T) {
	tests := []struct {
		name    string
		values  any
		want    []string
		wantErr bool
	}{
		{"strings", []string{"NY", "CA", "NY"}, []string{"NY", "CA"}, false},
		{"int and float are one value", []any{1, 1.0, 2}, []string{"1", "2"}, false},
		{"large json number", []any{1e6}, []string{"1000000"}, false},
		{"bool", []any{true, false, true}, []string{"true", "false"}, false},
		{"number and string clash", []any{1, 1.0, "1"}, nil, true},
		{"bool and string clash", []any{true, "true"}, nil, true},
		{"not a list", "NY", nil, true},
		{"nested", []any{[]any{1}}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Spec{"categories": tt.values}.OptCategories("categories")
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidParameter) {
					t.Errorf("error = %v, want ErrInvalidParameter", err)
				}
				return
			}
			if err != nil || !ok {
				t.Fatalf("OptCategories() ok=%v err=%v", ok, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("OptCategories() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("item %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
	if _, ok, err := (Spec{}).OptCategories("categories"); ok || err != nil {
		t.Errorf("absent key: ok=%v err=%v", ok, err)
	}
}

func TestSpec_OptInt(t *testing.T) {
	tests := []struct {
		v       any
		want    int
		wantErr bool
	}{
		{3, 3, false},
		{int64(4), 4, false},
		{float64(5), 5, false},
		{2.5, 0, true},
		{"3", 0, true},
	}
	for _, tt := range tests {
		got, _, err := Spec{"slots": tt.v}.OptInt("slots")
		if (err != nil) != tt.wantErr {
			t.Errorf("OptInt(%v) err = %v, wantErr %v", tt.v, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("OptInt(%v) = %d, want %d", tt.v, got, tt.want)
		}
	}
}

func TestSpec_Field(t *testing.T) {
	if _, err := (Spec{"type": "String"}).Field(); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Errorf("error = %v, want ErrInvalidParameter", err)
	}
	got, err := Spec{"field": "phone"}.Field()
	if err != nil || got != "phone" {
		t.Errorf("Field() = %q, %v", got, err)
	}
}
