package object

import (
	"fmt"
	"sort"
)

// UndefinedError is returned when a name is read or assigned before it is defined.
type UndefinedError struct {
	Name string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("variable %s not defined", e.Name)
}

// Environment is the single, flat variable store of one program run.
type Environment struct {
	store map[string]Value
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Value)}
}

// Define inserts or overwrites name unconditionally.
func (e *Environment) Define(name string, val Value) {
	e.store[name] = val
}

// Assign updates an existing name. It leaves the environment untouched and
// returns an *UndefinedError if name has not been defined.
func (e *Environment) Assign(name string, val Value) error {
	if _, ok := e.store[name]; !ok {
		return &UndefinedError{Name: name}
	}
	e.store[name] = val
	return nil
}

// Get looks up name. Undefined names return ZERO together with an *UndefinedError,
// so callers that only want the placeholder can ignore the error.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.store[name]; ok {
		return v, nil
	}
	return ZERO, &UndefinedError{Name: name}
}

// Lookup is Get without the error.
func (e *Environment) Lookup(name string) (Value, bool) {
	v, ok := e.store[name]
	return v, ok
}

// Names returns the defined names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.store))
	for name := range e.store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
