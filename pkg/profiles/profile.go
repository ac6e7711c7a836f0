package profiles

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/interpreter/pkg/agent"
	oierrors "github.com/odvcencio/interpreter/pkg/errors"
)

// Profile is a bundle of settings. Nil fields are absent from the file and
// leave the interpreter untouched.
type Profile struct {
	CustomInstructions  *string     `yaml:"custom_instructions,omitempty"`
	SystemMessage       *string     `yaml:"system_message,omitempty"`
	AutoRun             *bool       `yaml:"auto_run,omitempty"`
	Verbose             *bool       `yaml:"verbose,omitempty"`
	MaxOutput           *int        `yaml:"max_output,omitempty"`
	ForceTaskCompletion *bool       `yaml:"force_task_completion,omitempty"`
	DisableTelemetry    *bool       `yaml:"disable_telemetry,omitempty"`
	Offline             *bool       `yaml:"offline,omitempty"`
	SpeakMessages       *bool       `yaml:"speak_messages,omitempty"`
	SafeMode            *string     `yaml:"safe_mode,omitempty"`
	MultiLine           *bool       `yaml:"multi_line,omitempty"`
	LLM                 *LLMProfile `yaml:"llm,omitempty"`
	Version             string      `yaml:"version,omitempty"`
}

// LLMProfile holds language-model settings.
type LLMProfile struct {
	Model             *string  `yaml:"model,omitempty"`
	Temperature       *float64 `yaml:"temperature,omitempty"`
	SupportsVision    *bool    `yaml:"supports_vision,omitempty"`
	SupportsFunctions *bool    `yaml:"supports_functions,omitempty"`
	ContextWindow     *int     `yaml:"context_window,omitempty"`
	MaxTokens         *int     `yaml:"max_tokens,omitempty"`
	MaxBudget         *float64 `yaml:"max_budget,omitempty"`
	APIBase           *string  `yaml:"api_base,omitempty"`
	APIKey            *string  `yaml:"api_key,omitempty"`
	APIVersion        *string  `yaml:"api_version,omitempty"`
}

// Parse decodes a profile, rejecting unknown keys.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if p.SafeMode != nil {
		switch *p.SafeMode {
		case agent.SafeModeOff, agent.SafeModeAsk, agent.SafeModeAuto:
		default:
			return nil, fmt.Errorf("safe_mode must be one of off, ask, auto (got %q)", *p.SafeMode)
		}
	}
	return &p, nil
}

// ApplyTo writes every present setting onto interp.
func (p *Profile) ApplyTo(interp *agent.Interpreter) error {
	if interp == nil || interp.LLM == nil {
		return oierrors.New(oierrors.ErrCodeConfigInvalid, "profile target has no language model settings")
	}
	setString(&interp.CustomInstructions, p.CustomInstructions)
	setString(&interp.SystemMessage, p.SystemMessage)
	setBool(&interp.AutoRun, p.AutoRun)
	setBool(&interp.Verbose, p.Verbose)
	setInt(&interp.MaxOutput, p.MaxOutput)
	setBool(&interp.ForceTaskCompletion, p.ForceTaskCompletion)
	setBool(&interp.DisableTelemetry, p.DisableTelemetry)
	setBool(&interp.Offline, p.Offline)
	setBool(&interp.SpeakMessages, p.SpeakMessages)
	setString(&interp.SafeMode, p.SafeMode)
	setBool(&interp.MultiLine, p.MultiLine)

	if l := p.LLM; l != nil {
		llm := interp.LLM
		setString(&llm.Model, l.Model)
		if l.Temperature != nil {
			llm.Temperature = *l.Temperature
		}
		setBool(&llm.SupportsVision, l.SupportsVision)
		if l.SupportsFunctions != nil {
			v := *l.SupportsFunctions
			llm.SupportsFunctions = &v
		}
		if l.ContextWindow != nil {
			v := *l.ContextWindow
			llm.ContextWindow = &v
		}
		if l.MaxTokens != nil {
			v := *l.MaxTokens
			llm.MaxTokens = &v
		}
		if l.MaxBudget != nil {
			v := *l.MaxBudget
			llm.MaxBudget = &v
		}
		setString(&llm.APIBase, l.APIBase)
		setString(&llm.APIKey, l.APIKey)
		setString(&llm.APIVersion, l.APIVersion)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
