package startup

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/odvcencio/interpreter/pkg/agent"
	"github.com/odvcencio/interpreter/pkg/setup"
	"github.com/odvcencio/interpreter/pkg/terminal"
)

type recordingComputer struct {
	mu    sync.Mutex
	calls []string
	// displays records the display argument of each call.
	displays []bool
}

func (c *recordingComputer) Run(_ context.Context, language, code string, display bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, language+": "+code)
	c.displays = append(c.displays, display)
	return "", nil
}

func (c *recordingComputer) Terminate() {}

type fakeProvisioner struct {
	runs   int
	result setup.Result
}

func (p *fakeProvisioner) Run(context.Context) setup.Result {
	p.runs++
	return p.result
}

type testLauncher struct {
	*Launcher
	out         *bytes.Buffer
	profiles    *MockProfileStore
	opener      *MockDirOpener
	updates     *MockUpdateChecker
	navigator   *MockConversationNavigator
	runner      *MockRunner
	provisioner *fakeProvisioner
	slept       []time.Duration
}

func newTestLauncher(t *testing.T, input string) *testLauncher {
	t.Helper()
	ctrl := gomock.NewController(t)

	tl := &testLauncher{
		out:         &bytes.Buffer{},
		profiles:    NewMockProfileStore(ctrl),
		opener:      NewMockDirOpener(ctrl),
		updates:     NewMockUpdateChecker(ctrl),
		navigator:   NewMockConversationNavigator(ctrl),
		runner:      NewMockRunner(ctrl),
		provisioner: &fakeProvisioner{},
	}
	l := New(DefaultConfig("0.2.0"))
	l.Dirs = Dirs{Profiles: "/data/profiles", Models: "/data/models"}
	l.Profiles = tl.profiles
	l.Opener = tl.opener
	l.Updates = tl.updates
	l.Conversations = tl.navigator
	l.Runner = tl.runner
	l.NewProvisioner = func(*agent.Interpreter) Provisioner { return tl.provisioner }
	l.Terminal = terminal.NewWithIO(strings.NewReader(input), tl.out)
	l.Sleep = func(d time.Duration) { tl.slept = append(tl.slept, d) }
	tl.Launcher = l
	return tl
}

func newInterp() (*agent.Interpreter, *recordingComputer) {
	c := &recordingComputer{}
	return agent.New(c), c
}
