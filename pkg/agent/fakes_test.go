package agent

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"github.com/odvcencio/interpreter/pkg/model"
	"github.com/odvcencio/interpreter/pkg/terminal"
)

type fakeClient struct {
	mu       sync.Mutex
	replies  []string
	usage    model.Usage
	err      error
	requests []model.ChatRequest
}

func (f *fakeClient) ChatCompletion(_ context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	reply := "ok"
	if len(f.replies) > 0 {
		reply = f.replies[0]
		f.replies = f.replies[1:]
	}
	return &model.ChatResponse{
		Choices: []model.Choice{{Message: model.Message{Role: "assistant", Content: reply}}},
		Usage:   f.usage,
	}, nil
}

type runCall struct {
	Language string
	Code     string
	Display  bool
}

type fakeComputer struct {
	mu         sync.Mutex
	calls      []runCall
	output     string
	terminated bool
}

func (f *fakeComputer) Run(_ context.Context, language, code string, display bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, runCall{language, code, display})
	return f.output, nil
}

func (f *fakeComputer) Terminate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.terminated = true
}

type fakeSaver struct {
	saved map[string][]model.Message
}

func (f *fakeSaver) Save(id string, messages []model.Message) error {
	if f.saved == nil {
		f.saved = make(map[string][]model.Message)
	}
	f.saved[id] = append([]model.Message(nil), messages...)
	return nil
}

// newTestInterpreter wires fakes and a terminal reading input.
func newTestInterpreter(input string, client *fakeClient) (*Interpreter, *bytes.Buffer) {
	var out bytes.Buffer
	i := New(&fakeComputer{})
	i.Terminal = terminal.NewWithIO(strings.NewReader(input), &out)
	i.NewClient = func(*model.Config) ChatClient { return client }
	return i, &out
}
