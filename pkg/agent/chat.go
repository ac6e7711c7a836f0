package agent

import (
	"context"
	"errors"
	"strings"

	oierrors "github.com/odvcencio/interpreter/pkg/errors"
	"github.com/odvcencio/interpreter/pkg/terminal"
)

const (
	promptPrimary  = "> "
	promptContinue = "... "
	fence          = "```"
)

// Chat runs the terminal conversation until the user exits, input ends,
// the budget runs out, or ctx is cancelled. The conversation is saved after
// every turn.
func (i *Interpreter) Chat(ctx context.Context) error {
	if i.ConversationID == "" {
		i.ConversationID = NewConversationID()
	}
	i.InTerminalInterface = true
	out := i.term()

	for {
		input, err := i.readMessage(ctx)
		if err != nil {
			if errors.Is(err, terminal.ErrNoInput) || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		switch strings.ToLower(strings.TrimSpace(input)) {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "%reset":
			i.Reset()
			out.Info("Reset the conversation.")
			continue
		}

		history, _, err := i.respond(ctx, i.Messages, input, true)
		i.Messages = history
		i.save()

		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			if oierrors.IsCode(err, oierrors.ErrCodeBudget) {
				out.Warn("%s", displayError(err))
				return nil
			}
			out.Error("%s", displayError(err))
		}
	}
}

// readMessage reads one message. With multi-line on, a line holding only
// ``` starts a block that runs until the closing ```.
func (i *Interpreter) readMessage(ctx context.Context) (string, error) {
	line, err := i.readLine(ctx, promptPrimary)
	if err != nil {
		return "", err
	}
	if !i.MultiLine || strings.TrimSpace(line) != fence {
		return line, nil
	}

	var lines []string
	for {
		next, err := i.readLine(ctx, promptContinue)
		if err != nil {
			if errors.Is(err, terminal.ErrNoInput) && len(lines) > 0 {
				break
			}
			return "", err
		}
		if strings.TrimSpace(next) == fence {
			break
		}
		lines = append(lines, next)
	}
	return strings.Join(lines, "\n"), nil
}

// readLine reads from the terminal without blocking cancellation.
func (i *Interpreter) readLine(ctx context.Context, prompt string) (string, error) {
	return i.term().ReadLineContext(ctx, prompt)
}

func (i *Interpreter) save() {
	if i.Conversations == nil || len(i.Messages) == 0 {
		return
	}
	if err := i.Conversations.Save(i.ConversationID, i.Messages); err != nil {
		i.log().Warn("saving conversation failed", "id", i.ConversationID, "error", err)
	}
}

func displayError(err error) string {
	var coded *oierrors.Error
	if errors.As(err, &coded) {
		return coded.Display()
	}
	return err.Error()
}
