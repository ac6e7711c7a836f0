package conversation

import (
	"context"
	"fmt"
	"strconv"

	"github.com/odvcencio/interpreter/pkg/agent"
	"github.com/odvcencio/interpreter/pkg/terminal"
)

// Navigator lets the user pick a saved conversation and resume it.
type Navigator struct {
	store *Store
	out   *terminal.Writer
	// resume runs the chat after the messages are loaded.
	resume func(ctx context.Context, interp *agent.Interpreter) error
}

// NewNavigator returns a navigator over store printing to out.
func NewNavigator(store *Store, out *terminal.Writer) *Navigator {
	return &Navigator{
		store: store,
		out:   out,
		resume: func(ctx context.Context, interp *agent.Interpreter) error {
			return interp.Chat(ctx)
		},
	}
}

// Navigate lists conversations, loads the chosen one into interp and
// resumes the chat. Picking Cancel returns without chatting; an interrupt
// at the menu returns ctx.Err().
func (n *Navigator) Navigate(ctx context.Context, interp *agent.Interpreter) error {
	convs, err := n.store.List()
	if err != nil {
		return err
	}
	if len(convs) == 0 {
		n.out.DisplayMarkdown("> No conversations found.")
		return nil
	}

	items := make([]terminal.MenuItem, 0, len(convs)+1)
	for _, c := range convs {
		items = append(items, terminal.MenuItem{
			Label:       c.Title,
			Description: c.UpdatedAt.Local().Format("Jan 2 15:04"),
		})
	}
	items = append(items, terminal.MenuItem{Key: "q", Label: "Cancel"})

	choice, err := n.out.MenuContext(ctx, "Resume which conversation?", items)
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(convs) {
		return nil
	}

	picked := convs[idx-1]
	interp.ConversationID = picked.ID
	interp.Messages = picked.Messages
	for _, m := range picked.Messages {
		if m.Role == "assistant" || m.Role == "user" {
			n.out.DisplayMarkdown(fmt.Sprintf("**%s:** %s", m.Role, m.Content))
		}
	}
	return n.resume(ctx, interp)
}
