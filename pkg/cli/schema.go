// Package cli declares the launcher's options, parses arguments against
// them and binds the resulting values onto the interpreter.
package cli

import (
	"fmt"
	"slices"
)

// Kind is the value type of an option.
type Kind int

const (
	KindBool Kind = iota
	KindString
	KindInt
	KindFloat
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindChoice:
		return "choice"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Arity is how many value tokens an option consumes.
type Arity int

const (
	// ArityOne takes exactly one value (ignored for booleans).
	ArityOne Arity = iota
	// ArityOptional takes the next token only when it is not a flag.
	ArityOptional
)

// Target is the object a binding writes to.
type Target int

const (
	TargetInterpreter Target = iota + 1
	TargetLLM
)

func (t Target) String() string {
	switch t {
	case TargetInterpreter:
		return "interpreter"
	case TargetLLM:
		return "llm"
	default:
		return fmt.Sprintf("Target(%d)", int(t))
	}
}

// Binding names the field an option is written to.
type Binding struct {
	Target Target
	Field  string
}

// Descriptor declares one option.
type Descriptor struct {
	Name      string
	Short     string
	Kind      Kind
	Help      string
	Default   any
	Choices   []string
	Binding   *Binding
	Arity     Arity
	Negatable bool
}

// HasDefault reports whether the option is present even when not given.
func (d Descriptor) HasDefault() bool { return d.Default != nil }

// Option names.
const (
	OptProfile             = "profile"
	OptCustomInstructions  = "custom_instructions"
	OptSystemMessage       = "system_message"
	OptAutoRun             = "auto_run"
	OptVerbose             = "verbose"
	OptModel               = "model"
	OptTemperature         = "temperature"
	OptSupportsVision      = "llm_supports_vision"
	OptSupportsFunctions   = "llm_supports_functions"
	OptContextWindow       = "context_window"
	OptMaxTokens           = "max_tokens"
	OptMaxBudget           = "max_budget"
	OptAPIBase             = "api_base"
	OptAPIKey              = "api_key"
	OptAPIVersion          = "api_version"
	OptMaxOutput           = "max_output"
	OptForceTaskCompletion = "force_task_completion"
	OptDisableTelemetry    = "disable_telemetry"
	OptOffline             = "offline"
	OptSpeakMessages       = "speak_messages"
	OptSafeMode            = "safe_mode"
	OptDebug               = "debug"
	OptFast                = "fast"
	OptMultiLine           = "multi_line"
	OptLocal               = "local"
	OptVision              = "vision"
	OptOS                  = "os"
	OptResetProfile        = "reset_profile"
	OptProfiles            = "profiles"
	OptLocalModels         = "local_models"
	OptConversations       = "conversations"
	OptServer              = "server"
	OptVersion             = "version"
)

func interp(field string) *Binding { return &Binding{Target: TargetInterpreter, Field: field} }
func llm(field string) *Binding    { return &Binding{Target: TargetLLM, Field: field} }

var defaultDescriptors = []Descriptor{
	{Name: OptProfile, Short: "p", Kind: KindString, Default: "default.yaml",
		Help: "name of profile. run `--profiles` to open profile directory"},
	{Name: OptCustomInstructions, Short: "ci", Kind: KindString, Binding: interp("custom_instructions"),
		Help: "custom instructions for the language model. will be appended to the system_message"},
	{Name: OptSystemMessage, Short: "s", Kind: KindString, Binding: interp("system_message"),
		Help: "(we don't recommend changing this) base prompt for the language model"},
	{Name: OptAutoRun, Short: "y", Kind: KindBool, Binding: interp("auto_run"),
		Help: "automatically run generated code"},
	{Name: OptVerbose, Short: "v", Kind: KindBool, Binding: interp("verbose"),
		Help: "print detailed logs"},
	{Name: OptModel, Short: "m", Kind: KindString, Binding: llm("model"),
		Help: "language model to use"},
	{Name: OptTemperature, Short: "t", Kind: KindFloat, Binding: llm("temperature"),
		Help: "optional temperature setting for the language model"},
	{Name: OptSupportsVision, Short: "lsv", Kind: KindBool, Binding: llm("supports_vision"), Negatable: true,
		Help: "inform OI that your model supports vision, and can receive vision inputs"},
	{Name: OptSupportsFunctions, Short: "lsf", Kind: KindBool, Binding: llm("supports_functions"), Negatable: true,
		Help: "inform OI that your model supports OpenAI-style functions, and can make function calls"},
	{Name: OptContextWindow, Short: "cw", Kind: KindInt, Binding: llm("context_window"),
		Help: "optional context window size for the language model"},
	{Name: OptMaxTokens, Short: "x", Kind: KindInt, Binding: llm("max_tokens"),
		Help: "optional maximum number of tokens for the language model"},
	{Name: OptMaxBudget, Short: "b", Kind: KindFloat, Binding: llm("max_budget"),
		Help: "optionally set the max budget (in USD) for your llm calls"},
	{Name: OptAPIBase, Short: "ab", Kind: KindString, Binding: llm("api_base"),
		Help: "optionally set the API base URL for your llm calls (this will override environment variables)"},
	{Name: OptAPIKey, Short: "ak", Kind: KindString, Binding: llm("api_key"),
		Help: "optionally set the API key for your llm calls (this will override environment variables)"},
	{Name: OptAPIVersion, Short: "av", Kind: KindString, Binding: llm("api_version"),
		Help: "optionally set the API version for your llm calls (this will override environment variables)"},
	{Name: OptMaxOutput, Short: "xo", Kind: KindInt, Binding: interp("max_output"),
		Help: "optional maximum number of characters for code outputs"},
	{Name: OptForceTaskCompletion, Short: "fc", Kind: KindBool, Binding: interp("force_task_completion"),
		Help: "runs OI in a loop, requiring it to admit to completing/failing task"},
	{Name: OptDisableTelemetry, Short: "dt", Kind: KindBool, Default: false, Binding: interp("disable_telemetry"),
		Help: "disables sending of basic anonymous usage stats"},
	{Name: OptOffline, Short: "o", Kind: KindBool, Binding: interp("offline"),
		Help: "turns off all online features (except the language model, if it's hosted)"},
	{Name: OptSpeakMessages, Short: "sm", Kind: KindBool, Binding: interp("speak_messages"),
		Help: "(Mac only, experimental) use the applescript `say` command to read messages aloud"},
	{Name: OptSafeMode, Short: "safe", Kind: KindChoice, Default: "off", Choices: []string{"off", "ask", "auto"},
		Binding: interp("safe_mode"),
		Help:    "optionally enable safety mechanisms like code scanning; valid options are off, ask, and auto"},
	{Name: OptDebug, Short: "debug", Kind: KindBool, Binding: interp("debug"),
		Help: "debug mode for open interpreter developers"},
	{Name: OptFast, Short: "f", Kind: KindBool,
		Help: "runs `interpreter --model gpt-3.5-turbo` and asks OI to be extremely concise"},
	{Name: OptMultiLine, Short: "ml", Kind: KindBool, Binding: interp("multi_line"),
		Help: "enable multi-line inputs starting and ending with ```"},
	{Name: OptLocal, Short: "l", Kind: KindBool,
		Help: "experimentally run the LLM locally via Llamafile (this changes many more settings than `--offline`)"},
	{Name: OptVision, Short: "vi", Kind: KindBool,
		Help: "experimentally use vision for supported languages"},
	{Name: OptOS, Short: "os", Kind: KindBool,
		Help: "experimentally let Open Interpreter control your mouse and keyboard"},
	{Name: OptResetProfile, Kind: KindString, Arity: ArityOptional,
		Help: "reset a profile file. run `--reset_profile` without an argument to reset all default profiles"},
	{Name: OptProfiles, Kind: KindBool, Help: "opens profiles directory"},
	{Name: OptLocalModels, Kind: KindBool, Help: "opens local models directory"},
	{Name: OptConversations, Kind: KindBool, Help: "list conversations to resume"},
	{Name: OptServer, Kind: KindBool, Help: "start open interpreter as a server"},
	{Name: OptVersion, Kind: KindBool, Help: "get Open Interpreter's version number"},
}

// Schema is an ordered, validated set of descriptors.
type Schema struct {
	descriptors []Descriptor
	byName      map[string]int
	byShort     map[string]int
}

// NewSchema validates descriptors: names and short forms are unique,
// choice options list their choices and choice defaults are members.
func NewSchema(descriptors []Descriptor) (*Schema, error) {
	s := &Schema{
		descriptors: slices.Clone(descriptors),
		byName:      make(map[string]int, len(descriptors)),
		byShort:     make(map[string]int, len(descriptors)),
	}
	for i, d := range s.descriptors {
		if d.Name == "" {
			return nil, fmt.Errorf("descriptor %d has no name", i)
		}
		if _, dup := s.byName[d.Name]; dup {
			return nil, fmt.Errorf("duplicate option %q", d.Name)
		}
		s.byName[d.Name] = i
		if d.Short != "" {
			if _, dup := s.byShort[d.Short]; dup {
				return nil, fmt.Errorf("duplicate short form -%s", d.Short)
			}
			s.byShort[d.Short] = i
		}
		if d.Kind == KindChoice {
			if len(d.Choices) == 0 {
				return nil, fmt.Errorf("choice option %q has no choices", d.Name)
			}
			if d.HasDefault() {
				def, ok := d.Default.(string)
				if !ok || !slices.Contains(d.Choices, def) {
					return nil, fmt.Errorf("default %v of %q is not a valid choice", d.Default, d.Name)
				}
			}
		}
		if d.Negatable && d.Kind != KindBool {
			return nil, fmt.Errorf("only boolean options can be negated (%q)", d.Name)
		}
		if d.Arity == ArityOptional && d.Kind == KindBool {
			return nil, fmt.Errorf("boolean option %q cannot take an optional value", d.Name)
		}
	}
	return s, nil
}

var defaultSchema = mustSchema(defaultDescriptors)

func mustSchema(descriptors []Descriptor) *Schema {
	s, err := NewSchema(descriptors)
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultSchema returns the launcher's option schema.
func DefaultSchema() *Schema { return defaultSchema }

// Descriptors returns the descriptors in declaration order.
func (s *Schema) Descriptors() []Descriptor { return slices.Clone(s.descriptors) }

// Lookup finds a descriptor by long name.
func (s *Schema) Lookup(name string) (Descriptor, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return s.descriptors[i], true
}

// LookupShort finds a descriptor by short form (without the dash).
func (s *Schema) LookupShort(short string) (Descriptor, bool) {
	i, ok := s.byShort[short]
	if !ok {
		return Descriptor{}, false
	}
	return s.descriptors[i], true
}
