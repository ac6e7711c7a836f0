// Package startup resolves the launcher's configuration: it parses the
// command line, expands mode flags, applies the profile with flags taking
// precedence, fills model defaults and hands off to chat, server or the
// conversation navigator.
package startup

import (
	"context"

	"github.com/odvcencio/interpreter/pkg/agent"
	"github.com/odvcencio/interpreter/pkg/setup"
)

//go:generate mockgen -package=startup -destination=mock_collaborators_test.go github.com/odvcencio/interpreter/pkg/startup ProfileStore,DirOpener,UpdateChecker,ConversationNavigator,Runner

// ProfileStore applies and resets profiles.
type ProfileStore interface {
	Apply(interp *agent.Interpreter, nameOrPath string) error
	Reset(name string) error
	ResetAll() error
}

// DirOpener opens a directory in the platform file browser.
type DirOpener interface {
	OpenDir(dir string) error
}

// UpdateChecker reports whether a newer release exists.
type UpdateChecker interface {
	Check(ctx context.Context) (bool, error)
}

// ConversationNavigator lets the user pick a saved conversation and resume it.
type ConversationNavigator interface {
	Navigate(ctx context.Context, interp *agent.Interpreter) error
}

// Runner is what the launcher hands off to once configuration is resolved.
// *agent.Interpreter implements it.
type Runner interface {
	ValidateLLMSettings(ctx context.Context) error
	Chat(ctx context.Context) error
	Serve(ctx context.Context) error
}

// Provisioner installs the OS-control packages.
type Provisioner interface {
	Run(ctx context.Context) setup.Result
}

var _ Runner = (*agent.Interpreter)(nil)
