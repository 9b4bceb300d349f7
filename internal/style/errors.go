package style

import "fmt"

// UnknownFunctionError reports a computed rule whose function name is not a
// supported scale function. This is a configuration problem and is always
// surfaced to the caller rather than defaulted, unlike incomplete rules.
type UnknownFunctionError struct {
	Name string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown style function %q", e.Name)
}

// UnknownPropertyError reports a resolve call against a property name that
// is not one of the defined style properties.
type UnknownPropertyError struct {
	Name string
}

func (e *UnknownPropertyError) Error() string {
	return fmt.Sprintf("unknown style property %q", e.Name)
}
