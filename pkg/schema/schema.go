// Package schema validates loosely-typed values against declared record
// shapes. A shape is any struct implementing the Record marker; values that
// are not already instances of the shape are coerced from their field-value
// pairs before tag validation runs.
package schema

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// Record is the capability marker for structured-record shapes. Declared
// parameter and return types that do not implement it are never validated.
type Record interface {
	RecordName() string
}

// Validator checks a candidate value against a declared shape.
// A nil or empty slice means the value was accepted.
type Validator interface {
	Validate(value interface{}, shape Record) []string
}

// RecordValidator is the default Validator, backed by struct tag validation.
type RecordValidator struct {
	validate *validator.Validate
}

// New creates a RecordValidator
func New() *RecordValidator {
	return &RecordValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate accepts the value outright if it already has the shape's type.
// Otherwise it coerces the value (a mapping, or another struct's exported
// fields) into a fresh instance of the shape and runs tag validation on it.
func (rv *RecordValidator) Validate(value interface{}, shape Record) []string {
	if shape == nil {
		return nil
	}

	shapeType := baseType(reflect.TypeOf(shape))
	if shapeType == nil || shapeType.Kind() != reflect.Struct {
		return []string{fmt.Sprintf("shape %s is not a struct type", shape.RecordName())}
	}

	if value != nil && baseType(reflect.TypeOf(value)) == shapeType {
		return nil
	}

	instance, err := coerce(value, shapeType)
	if err != nil {
		return []string{fmt.Sprintf("cannot convert %s to %s: %v", describe(value), shape.RecordName(), err)}
	}

	if err := rv.validate.Struct(instance); err != nil {
		return violations(shape, err)
	}
	return nil
}

// coerce builds a fresh shape instance from the value's field-value pairs
func coerce(value interface{}, shapeType reflect.Type) (interface{}, error) {
	if value == nil {
		return nil, errors.New("value is nil")
	}

	target := reflect.New(shapeType).Interface()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      target,
		ErrorUnused: false,
		ErrorUnset:  false,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(value); err != nil {
		return nil, err
	}
	return reflect.ValueOf(target).Elem().Interface(), nil
}

// violations flattens validator errors into human-readable strings
func violations(shape Record, err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fmt.Sprintf("%s: field %s failed on the '%s' rule",
			shape.RecordName(), fe.Field(), fe.Tag()))
	}
	return out
}

func baseType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func describe(value interface{}) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}
