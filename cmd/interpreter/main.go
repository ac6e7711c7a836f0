package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/odvcencio/interpreter/pkg/agent"
	"github.com/odvcencio/interpreter/pkg/computer"
	"github.com/odvcencio/interpreter/pkg/conversation"
	oierrors "github.com/odvcencio/interpreter/pkg/errors"
	"github.com/odvcencio/interpreter/pkg/logging"
	"github.com/odvcencio/interpreter/pkg/paths"
	"github.com/odvcencio/interpreter/pkg/profiles"
	"github.com/odvcencio/interpreter/pkg/startup"
	"github.com/odvcencio/interpreter/pkg/terminal"
	"github.com/odvcencio/interpreter/pkg/update"
)

// Version information - set via ldflags during build
var (
	version   = "0.2.0"
	commit    = "unknown"
	buildDate = "unknown"
)

// EnvServerAddr overrides where --server listens.
const EnvServerAddr = "INTERPRETER_SERVER_ADDR"

// EnvTrace turns on span export to <data>/logs/traces.jsonl when set to a
// true value.
const EnvTrace = "INTERPRETER_TRACE"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := terminal.New()

	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger, closeLog := openLogger(level)
	defer closeLog()
	logger.Debug("starting", "version", version, "commit", commit, "build_date", buildDate)

	closeTracing := openTracing(logger)
	defer closeTracing()

	comp := computer.New(os.Stdout, logger.WithComponent("computer"))
	defer comp.Terminate()

	interp := agent.New(comp)
	interp.Terminal = term
	interp.Logger = logger.WithComponent("agent")
	if addr := strings.TrimSpace(os.Getenv(EnvServerAddr)); addr != "" {
		interp.ServerAddr = addr
	}

	launcher, err := newLauncher(interp, term, logger, level)
	if err == nil {
		err = launcher.Run(ctx, interp, args)
	}

	reported, err := classify(err)
	if err != nil && !reported {
		reportError(term, err)
	}
	return exitCodeForError(err)
}

func newLauncher(interp *agent.Interpreter, term *terminal.Writer, logger *logging.Logger, level *slog.LevelVar) (*startup.Launcher, error) {
	profilesDir, err := paths.Sub(paths.ProfilesDir)
	if err != nil {
		return nil, oierrors.Wrap(err, oierrors.ErrCodeConfigInvalid, "locating data directory").
			WithRemediation("set " + paths.EnvDataDir + " to a writable directory")
	}
	modelsDir, _ := paths.Sub(paths.ModelsDir)
	conversationsDir, _ := paths.Sub(paths.ConversationsDir)

	store := conversation.NewStore(conversationsDir)
	interp.Conversations = store

	l := startup.New(startup.DefaultConfig(version))
	l.Dirs = startup.Dirs{Profiles: profilesDir, Models: modelsDir}
	l.Profiles = profiles.NewStore(profilesDir)
	l.Opener = paths.NewOpener()
	l.Updates = update.NewChecker(version)
	l.Conversations = conversation.NewNavigator(store, term)
	l.Terminal = term
	l.Logger = logger.WithComponent("startup")
	l.LogLevel = level
	return l, nil
}

// openLogger writes to <data>/logs/interpreter.log, or nowhere when the
// directory is unusable.
func openLogger(level slog.Leveler) (*logging.Logger, func()) {
	dir, err := paths.Sub(paths.LogsDir)
	if err != nil {
		return logging.Discard(), func() {}
	}
	logger, closer, err := logging.OpenFile(dir, level, "interpreter")
	if err != nil {
		return logging.Discard(), func() {}
	}
	return logger, func() { _ = closer.Close() }
}

// openTracing exports spans next to the log file when EnvTrace is set.
func openTracing(logger *logging.Logger) func() {
	if on, _ := strconv.ParseBool(os.Getenv(EnvTrace)); !on {
		return func() {}
	}
	dir, err := paths.EnsureSub(paths.LogsDir)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
		return func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "traces.jsonl"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
		return func() {}
	}
	tracing, err := logging.SetupTracing(f, "interpreter", version)
	if err != nil {
		_ = f.Close()
		logger.Warn("tracing disabled", "error", err)
		return func() {}
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx); err != nil {
			logger.Warn("flushing traces failed", "error", err)
		}
		_ = f.Close()
	}
}

func reportError(term *terminal.Writer, err error) {
	var coded *oierrors.Error
	if errors.As(err, &coded) {
		term.Error("%s", coded.Display())
		return
	}
	term.Error("%v", err)
}
