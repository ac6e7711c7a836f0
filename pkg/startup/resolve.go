package startup

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/odvcencio/interpreter/pkg/agent"
	"github.com/odvcencio/interpreter/pkg/cli"
	"github.com/odvcencio/interpreter/pkg/logging"
	"github.com/odvcencio/interpreter/pkg/model"
)

// Resolve writes configuration onto interp so that library defaults lose to
// the profile and the profile loses to flags typed on the command line.
// Modes run first, flags are bound once so the profile can see them, the
// profile is applied, and explicit flags are bound again on top. Safe-mode
// reconciliation and model defaults follow.
func (l *Launcher) Resolve(ctx context.Context, opts *cli.Options, interp *agent.Interpreter) (err error) {
	ctx, span := logging.StartSpan(ctx, "startup.resolve")
	defer func() { logging.EndSpan(span, err) }()

	binder := cli.NewBinder(l.schema(), l.term())

	profile, err := l.expandModes(ctx, opts, interp)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("profile", profile))

	if err := binder.Apply(opts, interp, cli.BindAll); err != nil {
		return err
	}
	l.log().Debug("applying profile", "profile", profile)
	if err := l.profiles().Apply(interp, profile); err != nil {
		return err
	}
	if err := binder.Apply(opts, interp, cli.BindExplicit); err != nil {
		return err
	}

	if interp.ReconcileSafeMode() {
		l.log().Info("safe mode disabled auto run", "safe_mode", interp.SafeMode)
	}
	if model.InferDefaults(interp.LLM) {
		l.log().Debug("inferred model defaults", "model", interp.LLM.Model)
	}
	return nil
}
