package startup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/interpreter/pkg/agent"
	"github.com/odvcencio/interpreter/pkg/cli"
)

func parseArgs(t *testing.T, args ...string) *cli.Options {
	t.Helper()
	opts, err := cli.NewParser(cli.DefaultSchema(), "").Parse(args)
	require.NoError(t, err)
	return opts
}

func TestSelectProfile(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default", nil, "default.yaml"},
		{"explicit profile", []string{"--profile", "custom.yaml"}, "custom.yaml"},
		{"fast beats explicit profile", []string{"--profile", "custom.yaml", "--fast"}, "fast.yaml"},
		{"fast after profile flag order irrelevant", []string{"--fast", "-p", "custom.yaml"}, "fast.yaml"},
		{"vision", []string{"--vision"}, "vision.yaml"},
		{"vision beats fast", []string{"--fast", "--vision"}, "vision.yaml"},
		{"os", []string{"--os"}, "os.yaml"},
		{"local beats os", []string{"--os", "--local"}, "local.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectProfile(parseArgs(t, tt.args...)))
		})
	}
}

func TestSelectProfileEmptyOptionsFallsBackToSchemaDefault(t *testing.T) {
	assert.Equal(t, "default.yaml", SelectProfile(cli.NewOptions()))
}

func TestOSSystemMessage(t *testing.T) {
	online := OSSystemMessage(false)
	require.NotEmpty(t, online)
	assert.Contains(t, online, iconClickLine)
	assert.Contains(t, online, "# Critical Routine Procedure for Multi-Step Tasks")

	offline := OSSystemMessage(true)
	assert.NotContains(t, offline, `click(icon="gear icon")`)
	assert.Equal(t, len(online)-len(iconClickLine), len(offline))
}

func TestApplyOSMode(t *testing.T) {
	opts := parseArgs(t, "--os")
	interp := agent.New(nil)

	ApplyOSMode(opts, interp, DefaultOSModel)

	assert.True(t, interp.OS)
	assert.True(t, interp.AutoRun)
	assert.True(t, interp.ForceTaskCompletion)
	assert.True(t, interp.LLM.SupportsVision)
	require.NotNil(t, interp.LLM.SupportsFunctions)
	assert.False(t, *interp.LLM.SupportsFunctions)
	assert.Equal(t, OSContextWindow, *interp.LLM.ContextWindow)
	assert.Equal(t, OSMaxTokens, *interp.LLM.MaxTokens)
	assert.Equal(t, OSSystemMessage(false), interp.SystemMessage)

	v, ok := opts.Get(cli.OptModel)
	require.True(t, ok)
	assert.Equal(t, cli.Value{V: DefaultOSModel, Source: cli.SourceMode}, v)
}

func TestApplyOSModeKeepsExplicitModel(t *testing.T) {
	opts := parseArgs(t, "--os", "-m", "gpt-4o", "--offline")
	interp := agent.New(nil)

	ApplyOSMode(opts, interp, DefaultOSModel)

	v, _ := opts.Get(cli.OptModel)
	assert.Equal(t, cli.Value{V: "gpt-4o", Source: cli.SourceFlag}, v)
	assert.Equal(t, OSSystemMessage(true), interp.SystemMessage)
}

func TestApplyOSModeConfigurableDefaultModel(t *testing.T) {
	opts := parseArgs(t, "--os")
	ApplyOSMode(opts, agent.New(nil), "claude-3-opus")
	m, _ := opts.String(cli.OptModel)
	assert.Equal(t, "claude-3-opus", m)
}
