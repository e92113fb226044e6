package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ExpectedShape is the field specification shape reported back to callers.
const ExpectedShape = "{'field': 'Phone', 'type': 'String'}"

var (
	// ErrMalformedSpec signals a field entry that is not a key-value mapping.
	ErrMalformedSpec = errors.New("incorrect field specification")
	// ErrMissingType signals a field mapping without a type key.
	ErrMissingType = errors.New("missing field type")
	// ErrUnknownType signals a type name outside the registry.
	ErrUnknownType = errors.New("unknown field type")
	// ErrUnknownOperand signals an interaction operand that names no resolved field.
	ErrUnknownOperand = errors.New("unknown interaction operand")
	// ErrInvalidParameter signals a missing or ill-typed type-specific parameter.
	ErrInvalidParameter = errors.New("invalid field parameter")
)

// UnknownTypeError wraps ErrUnknownType with the rejected name and the valid set.
type UnknownTypeError struct {
	Type  string
	Valid []string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("field type %s not valid. Valid types include %s",
		e.Type, strings.Join(e.Valid, ", "))
}

func (e *UnknownTypeError) Unwrap() error { return ErrUnknownType }

// SpecError locates a compilation failure in the field specification list.
type SpecError struct {
	Index int
	Field string
	Err   error
}

func (e *SpecError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("field specification #%d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("field specification #%d (%s): %v", e.Index, e.Field, e.Err)
}

func (e *SpecError) Unwrap() error { return e.Err }

// NewMalformedSpec reports an entry that is not a mapping.
func NewMalformedSpec(got any) error {
	return fmt.Errorf("%w: field specifications are dictionaries that must include a type definition, ex. %s (got %T)",
		ErrMalformedSpec, ExpectedShape, got)
}

// NewMissingType reports a mapping without a type key.
func NewMissingType() error {
	return fmt.Errorf("%w: fields specifications are dictionaries that must include a type definition, ex. %s",
		ErrMissingType, ExpectedShape)
}
