// Package compile turns field specification lists into field models.
//
// Compilation is a pipeline of pure stages over the descriptor sequence:
//
//	Resolve -> ExpandInteractions -> AppendMissing
//
// Each stage returns a new slice; earlier positions never move.
package compile

import (
	"github.com/kailas-cloud/fieldmodel/internal/domain/field"
	"github.com/kailas-cloud/fieldmodel/internal/domain/model"
)

// Compile runs every stage and freezes the result. On error no model is returned.
func Compile(r *Registry, specs []any) (*model.Model, error) {
	fields, err := Resolve(r, specs)
	if err != nil {
		return nil, err
	}
	fields, err = ExpandInteractions(fields)
	if err != nil {
		return nil, err
	}
	return model.New(AppendMissing(fields)), nil
}

// CompileSpecs is Compile for callers holding typed specs.
func CompileSpecs(r *Registry, specs []field.Spec) (*model.Model, error) {
	raw := make([]any, len(specs))
	for i, s := range specs {
		raw[i] = s
	}
	return Compile(r, raw)
}
