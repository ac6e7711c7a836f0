// Package agent holds the interpreter: the long-lived configuration object
// the launcher binds options onto, plus the chat loop and server that run
// once configuration is resolved.
package agent

import (
	"context"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/interpreter/pkg/logging"
	"github.com/odvcencio/interpreter/pkg/model"
	"github.com/odvcencio/interpreter/pkg/terminal"
)

// Safe mode levels.
const (
	SafeModeOff  = "off"
	SafeModeAsk  = "ask"
	SafeModeAuto = "auto"
)

// DefaultMaxOutput is the character cap on code output fed back to the model.
const DefaultMaxOutput = 2800

// DefaultServerAddr is where server mode listens when nothing else is set.
const DefaultServerAddr = "127.0.0.1:8000"

// DefaultSystemMessage is the base instruction sent with every request.
const DefaultSystemMessage = `You are Open Interpreter, a world-class programmer that can complete any goal by executing code.
First, write a plan. **Always recap the plan between each code block.**
When you execute code, it will be executed **on the user's machine**. The user has given you **full and complete permission** to execute any code necessary to complete the task.
Write code in fenced blocks tagged with the language, for example ` + "```python" + ` or ` + "```shell" + `.
If you want to send data between programming languages, save the data to a txt or json.
You can access the internet. Run **any code** to achieve the goal, and if at first you don't succeed, try again and again.
In general, try to **make plans** with as few steps as possible.
You are capable of **any** task.`

// Computer runs code on the user's machine.
type Computer interface {
	Run(ctx context.Context, language, code string, display bool) (string, error)
	Terminate()
}

// ChatClient issues completion requests.
type ChatClient interface {
	ChatCompletion(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error)
}

// ConversationSaver persists a conversation after each turn.
type ConversationSaver interface {
	Save(id string, messages []model.Message) error
}

// Interpreter is the agent's mutable configuration and conversation state.
// The launcher builds one, writes resolved settings onto it, and threads it
// by pointer through every startup step.
type Interpreter struct {
	CustomInstructions  string
	SystemMessage       string
	AutoRun             bool
	Verbose             bool
	MaxOutput           int
	ForceTaskCompletion bool
	DisableTelemetry    bool
	Offline             bool
	SpeakMessages       bool
	SafeMode            string
	Debug               bool
	MultiLine           bool
	OS                  bool
	InTerminalInterface bool
	ServerAddr          string

	Messages       []model.Message
	ConversationID string

	LLM           *model.Config
	Computer      Computer
	Conversations ConversationSaver
	Terminal      *terminal.Writer
	Logger        *logging.Logger

	// NewClient builds the completion client from LLM settings.
	NewClient func(*model.Config) ChatClient
	// CountTokens sizes history against the context window. Nil uses
	// model.CountTokens, or model.EstimateTokens when offline.
	CountTokens func(string) int

	budgetMu sync.Mutex
	budget   *model.Budget
}

// New returns an interpreter with library defaults.
func New(computer Computer) *Interpreter {
	return &Interpreter{
		SystemMessage: DefaultSystemMessage,
		MaxOutput:     DefaultMaxOutput,
		SafeMode:      SafeModeOff,
		ServerAddr:    DefaultServerAddr,
		LLM:           model.NewConfig(),
		Computer:      computer,
		Logger:        logging.Discard(),
		NewClient: func(cfg *model.Config) ChatClient {
			return model.NewClient(cfg)
		},
	}
}

// ReconcileSafeMode turns auto-run off when safe mode asks for review.
// Reports whether AutoRun changed.
func (i *Interpreter) ReconcileSafeMode() bool {
	if i.SafeMode == SafeModeOff || i.SafeMode == "" || !i.AutoRun {
		return false
	}
	i.AutoRun = false
	return true
}

// Reset clears the conversation and starts a fresh conversation id.
func (i *Interpreter) Reset() {
	i.Messages = nil
	i.ConversationID = NewConversationID()
}

// NewConversationID returns a sortable unique id for a conversation.
func NewConversationID() string {
	return strings.ToLower(ulid.Make().String())
}

func (i *Interpreter) systemPrompt() string {
	prompt := strings.TrimSpace(i.SystemMessage)
	if extra := strings.TrimSpace(i.CustomInstructions); extra != "" {
		prompt += "\n\n" + extra
	}
	return prompt
}

func (i *Interpreter) log() *logging.Logger {
	if i.Logger == nil {
		return logging.Discard()
	}
	return i.Logger
}

func (i *Interpreter) term() *terminal.Writer {
	if i.Terminal == nil {
		i.Terminal = terminal.New()
	}
	return i.Terminal
}

// chargeBudget records usage and reports whether the budget is spent.
func (i *Interpreter) chargeBudget(usage model.Usage) bool {
	i.budgetMu.Lock()
	defer i.budgetMu.Unlock()
	if i.budget == nil {
		i.budget = &model.Budget{Limit: i.LLM.MaxBudget}
	}
	return i.budget.Add(i.LLM.Model, usage)
}

// Spent returns the estimated USD spent this session.
func (i *Interpreter) Spent() float64 {
	i.budgetMu.Lock()
	defer i.budgetMu.Unlock()
	if i.budget == nil {
		return 0
	}
	return i.budget.Spent
}
