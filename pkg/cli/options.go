package cli

import "fmt"

// Source records where a value came from.
type Source int

const (
	// SourceDefault is a schema default; the user did not type it.
	SourceDefault Source = iota
	// SourceFlag was given on the command line.
	SourceFlag
	// SourceMode was injected by a mode flag such as --os.
	SourceMode
)

func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceFlag:
		return "flag"
	case SourceMode:
		return "mode"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Value is a resolved option value: bool, string, int or float64.
type Value struct {
	V      any
	Source Source
}

// ResetKind distinguishes the three --reset_profile states.
type ResetKind int

const (
	ResetNone ResetKind = iota
	ResetAll
	ResetNamed
)

// ResetRequest is the parsed --reset_profile flag.
type ResetRequest struct {
	Kind ResetKind
	Name string
}

// Options holds parsed values. Options that were neither given nor
// defaulted have no entry.
type Options struct {
	values map[string]Value
	Reset  ResetRequest
}

// NewOptions returns an empty set.
func NewOptions() *Options {
	return &Options{values: make(map[string]Value)}
}

// Get returns the value for name.
func (o *Options) Get(name string) (Value, bool) {
	v, ok := o.values[name]
	return v, ok
}

// Set stores a value.
func (o *Options) Set(name string, v Value) {
	if o.values == nil {
		o.values = make(map[string]Value)
	}
	o.values[name] = v
}

// Has reports whether name is present from any source.
func (o *Options) Has(name string) bool {
	_, ok := o.values[name]
	return ok
}

// Explicit reports whether name was given on the command line.
func (o *Options) Explicit(name string) bool {
	v, ok := o.values[name]
	return ok && v.Source == SourceFlag
}

// Bool returns a boolean option; absent options are false.
func (o *Options) Bool(name string) bool {
	v, ok := o.values[name]
	if !ok {
		return false
	}
	b, _ := v.V.(bool)
	return b
}

// String returns a string option and whether it is present.
func (o *Options) String(name string) (string, bool) {
	v, ok := o.values[name]
	if !ok {
		return "", false
	}
	s, ok := v.V.(string)
	return s, ok
}

// Len returns the number of present options.
func (o *Options) Len() int { return len(o.values) }
