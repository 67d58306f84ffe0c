package monitor

import (
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/psantana5/fnmon/pkg/schema"
)

// Param declares one parameter of a wrapped function. Shape is nil for
// parameters whose type is not a structured record; those pass through
// unchecked. Params with HasDefault set may be omitted at the call site.
type Param struct {
	Name       string
	Shape      schema.Record
	Default    interface{}
	HasDefault bool
}

// Target describes a callable to be wrapped: its name, its ordered
// parameters, its optional return shape, and the closure that invokes it.
// Targets are built once at wrap time; nothing is discovered per call.
type Target struct {
	Name   string
	Params []Param
	Return schema.Record
	Invoke func(args []interface{}) (interface{}, error)
}

// boundArg pairs a parameter with the value it received for one call
type boundArg struct {
	param Param
	value interface{}
}

// bind resolves positional and keyword arguments against the declared
// parameters, applying defaults for omitted optional parameters. It never
// rewrites values; coercion later only gatekeeps.
func (t Target) bind(args []interface{}, kwargs map[string]interface{}) ([]boundArg, error) {
	if len(args) > len(t.Params) {
		return nil, fmt.Errorf("%s takes %d argument(s) but %d were given",
			t.Name, len(t.Params), len(args))
	}

	bound := make([]boundArg, 0, len(t.Params))
	used := make(map[string]bool, len(kwargs))

	for i, p := range t.Params {
		switch {
		case i < len(args):
			if _, dup := kwargs[p.Name]; dup {
				return nil, fmt.Errorf("%s got multiple values for argument %q", t.Name, p.Name)
			}
			bound = append(bound, boundArg{param: p, value: args[i]})
		default:
			if v, ok := kwargs[p.Name]; ok {
				used[p.Name] = true
				bound = append(bound, boundArg{param: p, value: v})
				continue
			}
			if !p.HasDefault {
				return nil, fmt.Errorf("%s missing required argument %q", t.Name, p.Name)
			}
			bound = append(bound, boundArg{param: p, value: p.Default})
		}
	}

	for name := range kwargs {
		if !used[name] {
			if _, known := indexOf(t.Params, name); !known {
				return nil, fmt.Errorf("%s got an unexpected argument %q", t.Name, name)
			}
		}
	}

	return bound, nil
}

func indexOf(params []Param, name string) (int, bool) {
	for i, p := range params {
		if p.Name == name {
			return i, true
		}
	}
	return 0, false
}

// shapeOf resolves the declared shape for a type parameter: the type's
// zero value is checked against the Record marker exactly once, at
// target-construction time.
func shapeOf[T any]() schema.Record {
	var zero T
	if r, ok := any(zero).(schema.Record); ok {
		return r
	}
	return nil
}

// argAs materializes a bound value at the invoke closure's static type.
// A value that is not already a T but carries compatible field-value pairs
// (a mapping, or another struct) goes through the generic from-mapping
// constructor; anything else surfaces as an execution error.
func argAs[T any](name string, v interface{}) (T, error) {
	if t, ok := v.(T); ok {
		return t, nil
	}
	if reflect.TypeOf((*T)(nil)).Elem().Kind() == reflect.Struct {
		var out T
		if err := mapstructure.Decode(v, &out); err == nil {
			return out, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("argument %q: expected %T, got %T", name, zero, v)
}

// Func1 builds a Target for a one-parameter function
func Func1[A, R any](name, param string, fn func(A) (R, error)) Target {
	return Target{
		Name:   name,
		Params: []Param{{Name: param, Shape: shapeOf[A]()}},
		Return: shapeOf[R](),
		Invoke: func(args []interface{}) (interface{}, error) {
			a, err := argAs[A](param, args[0])
			if err != nil {
				return nil, err
			}
			return fn(a)
		},
	}
}

// Func2 builds a Target for a two-parameter function
func Func2[A, B, R any](name, paramA, paramB string, fn func(A, B) (R, error)) Target {
	return Target{
		Name: name,
		Params: []Param{
			{Name: paramA, Shape: shapeOf[A]()},
			{Name: paramB, Shape: shapeOf[B]()},
		},
		Return: shapeOf[R](),
		Invoke: func(args []interface{}) (interface{}, error) {
			a, err := argAs[A](paramA, args[0])
			if err != nil {
				return nil, err
			}
			b, err := argAs[B](paramB, args[1])
			if err != nil {
				return nil, err
			}
			return fn(a, b)
		},
	}
}

// Func3 builds a Target for a three-parameter function
func Func3[A, B, C, R any](name, paramA, paramB, paramC string, fn func(A, B, C) (R, error)) Target {
	return Target{
		Name: name,
		Params: []Param{
			{Name: paramA, Shape: shapeOf[A]()},
			{Name: paramB, Shape: shapeOf[B]()},
			{Name: paramC, Shape: shapeOf[C]()},
		},
		Return: shapeOf[R](),
		Invoke: func(args []interface{}) (interface{}, error) {
			a, err := argAs[A](paramA, args[0])
			if err != nil {
				return nil, err
			}
			b, err := argAs[B](paramB, args[1])
			if err != nil {
				return nil, err
			}
			c, err := argAs[C](paramC, args[2])
			if err != nil {
				return nil, err
			}
			return fn(a, b, c)
		},
	}
}

// WithDefault marks the named parameter optional with the given default
func (t Target) WithDefault(param string, value interface{}) Target {
	i, ok := indexOf(t.Params, param)
	if !ok {
		return t
	}
	params := make([]Param, len(t.Params))
	copy(params, t.Params)
	params[i].Default = value
	params[i].HasDefault = true
	t.Params = params
	return t
}

// validate rejects malformed targets at wrap time
func (t Target) validate() error {
	if t.Name == "" {
		return fmt.Errorf("target has no name")
	}
	if t.Invoke == nil {
		return fmt.Errorf("target %s has no invoke closure", t.Name)
	}
	seen := make(map[string]bool, len(t.Params))
	for _, p := range t.Params {
		if p.Name == "" {
			return fmt.Errorf("target %s has an unnamed parameter", t.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("target %s declares parameter %q twice", t.Name, p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}
