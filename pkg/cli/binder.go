package cli

import (
	"fmt"
	"io"

	"github.com/odvcencio/interpreter/pkg/agent"
	oierrors "github.com/odvcencio/interpreter/pkg/errors"
)

// BindMode selects which values a binder pass writes.
type BindMode int

const (
	// BindAll writes every present value. Used before the profile loads.
	BindAll BindMode = iota
	// BindExplicit writes only values typed on the command line. Used after
	// the profile loads so flags win over the profile without defaults
	// clobbering it.
	BindExplicit
)

type fieldKey struct {
	target Target
	field  string
}

type setter func(i *agent.Interpreter, v any) error

// Binder writes option values onto an interpreter through a setter table
// keyed by binding.
type Binder struct {
	schema  *Schema
	setters map[fieldKey]setter
	out     io.Writer
}

// NewBinder returns a binder for schema. Verbose diagnostics go to out.
func NewBinder(schema *Schema, out io.Writer) *Binder {
	if out == nil {
		out = io.Discard
	}
	return &Binder{schema: schema, setters: defaultSetters(), out: out}
}

// Apply writes values onto interp in schema order. Absent options never
// touch their field. A binding with no setter, or a value of the wrong
// type, is a CONFIG_INVALID error.
func (b *Binder) Apply(opts *Options, interp *agent.Interpreter, mode BindMode) error {
	if interp == nil || interp.LLM == nil {
		return oierrors.New(oierrors.ErrCodeConfigInvalid, "binding target is not initialised")
	}
	verbose := opts.Bool(OptVerbose) || interp.Verbose

	for _, d := range b.schema.descriptors {
		if d.Binding == nil {
			continue
		}
		v, ok := opts.Get(d.Name)
		if !ok {
			continue
		}
		if mode == BindExplicit && v.Source != SourceFlag {
			continue
		}

		set, ok := b.setters[fieldKey{d.Binding.Target, d.Binding.Field}]
		if !ok {
			return oierrors.Newf(oierrors.ErrCodeConfigInvalid, "no attribute %s on %s", d.Binding.Field, d.Binding.Target).
				WithContext("option", d.Name)
		}
		if err := set(interp, v.V); err != nil {
			return oierrors.Wrap(err, oierrors.ErrCodeConfigInvalid, "cannot set "+d.Binding.Field).
				WithContext("option", d.Name).
				WithContext("target", d.Binding.Target.String())
		}
		if verbose {
			fmt.Fprintf(b.out, "Setting attribute %s on %s to '%v'...\n", d.Binding.Field, d.Binding.Target, v.V)
		}
	}
	return nil
}

func defaultSetters() map[fieldKey]setter {
	in := func(f string) fieldKey { return fieldKey{TargetInterpreter, f} }
	lm := func(f string) fieldKey { return fieldKey{TargetLLM, f} }

	return map[fieldKey]setter{
		in("custom_instructions"):   setString(func(i *agent.Interpreter) *string { return &i.CustomInstructions }),
		in("system_message"):        setString(func(i *agent.Interpreter) *string { return &i.SystemMessage }),
		in("auto_run"):              setBool(func(i *agent.Interpreter) *bool { return &i.AutoRun }),
		in("verbose"):               setBool(func(i *agent.Interpreter) *bool { return &i.Verbose }),
		in("max_output"):            setInt(func(i *agent.Interpreter) *int { return &i.MaxOutput }),
		in("force_task_completion"): setBool(func(i *agent.Interpreter) *bool { return &i.ForceTaskCompletion }),
		in("disable_telemetry"):     setBool(func(i *agent.Interpreter) *bool { return &i.DisableTelemetry }),
		in("offline"):               setBool(func(i *agent.Interpreter) *bool { return &i.Offline }),
		in("speak_messages"):        setBool(func(i *agent.Interpreter) *bool { return &i.SpeakMessages }),
		in("safe_mode"):             setString(func(i *agent.Interpreter) *string { return &i.SafeMode }),
		in("debug"):                 setBool(func(i *agent.Interpreter) *bool { return &i.Debug }),
		in("multi_line"):            setBool(func(i *agent.Interpreter) *bool { return &i.MultiLine }),

		lm("model"):              setString(func(i *agent.Interpreter) *string { return &i.LLM.Model }),
		lm("temperature"):        setFloat(func(i *agent.Interpreter) *float64 { return &i.LLM.Temperature }),
		lm("supports_vision"):    setBool(func(i *agent.Interpreter) *bool { return &i.LLM.SupportsVision }),
		lm("supports_functions"): setOptional(func(i *agent.Interpreter) **bool { return &i.LLM.SupportsFunctions }),
		lm("context_window"):     setOptional(func(i *agent.Interpreter) **int { return &i.LLM.ContextWindow }),
		lm("max_tokens"):         setOptional(func(i *agent.Interpreter) **int { return &i.LLM.MaxTokens }),
		lm("max_budget"):         setOptional(func(i *agent.Interpreter) **float64 { return &i.LLM.MaxBudget }),
		lm("api_base"):           setString(func(i *agent.Interpreter) *string { return &i.LLM.APIBase }),
		lm("api_key"):            setString(func(i *agent.Interpreter) *string { return &i.LLM.APIKey }),
		lm("api_version"):        setString(func(i *agent.Interpreter) *string { return &i.LLM.APIVersion }),
	}
}

func typed[T any](v any) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("expected %T, got %T", zero, v)
	}
	return t, nil
}

func setField[T any](field func(*agent.Interpreter) *T) setter {
	return func(i *agent.Interpreter, v any) error {
		t, err := typed[T](v)
		if err != nil {
			return err
		}
		*field(i) = t
		return nil
	}
}

func setString(field func(*agent.Interpreter) *string) setter { return setField(field) }
func setBool(field func(*agent.Interpreter) *bool) setter { return setField(field) }
func setInt(field func(*agent.Interpreter) *int) setter { return setField(field) }
func setFloat(field func(*agent.Interpreter) *float64) setter { return setField(field) }

// setOptional stores a copy so the option value and the field never alias.
func setOptional[T any](field func(*agent.Interpreter) **T) setter {
	return func(i *agent.Interpreter, v any) error {
		t, err := typed[T](v)
		if err != nil {
			return err
		}
		*field(i) = &t
		return nil
	}
}
