package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatSavesEachTurnAndExits(t *testing.T) {
	client := &fakeClient{replies: []string{"Hello!", "Bye!"}}
	i, out := newTestInterpreter("hi\n\nagain\nexit\n", client)
	saver := &fakeSaver{}
	i.Conversations = saver

	require.NoError(t, i.Chat(context.Background()))

	assert.True(t, i.InTerminalInterface)
	require.NotEmpty(t, i.ConversationID)
	saved := saver.saved[i.ConversationID]
	require.Len(t, saved, 4)
	assert.Equal(t, "hi", saved[0].Content)
	assert.Equal(t, "Bye!", saved[3].Content)
	assert.Contains(t, out.String(), "Hello!")
	assert.Len(t, client.requests, 2)
}

func TestChatEndsOnEOF(t *testing.T) {
	client := &fakeClient{}
	i, _ := newTestInterpreter("", client)
	require.NoError(t, i.Chat(context.Background()))
	assert.Empty(t, client.requests)
}

func TestChatMultiLine(t *testing.T) {
	client := &fakeClient{}
	i, _ := newTestInterpreter("```\nline one\nline two\n```\n", client)
	i.MultiLine = true

	require.NoError(t, i.Chat(context.Background()))
	require.Len(t, client.requests, 1)
	msgs := client.requests[0].Messages
	assert.Equal(t, "line one\nline two", msgs[len(msgs)-1].Content)
}

func TestChatResetCommand(t *testing.T) {
	client := &fakeClient{}
	i, out := newTestInterpreter("hi\n%reset\n", client)
	require.NoError(t, i.Chat(context.Background()))
	assert.Empty(t, i.Messages)
	assert.Contains(t, out.String(), "Reset the conversation.")
}

func TestChatReportsModelErrorsAndContinues(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}
	i, out := newTestInterpreter("hi\nhello\n", client)

	require.NoError(t, i.Chat(context.Background()))
	assert.Contains(t, out.String(), "error: connection refused")
	assert.Len(t, client.requests, 2)
}

func TestChatStopsWhenBudgetSpent(t *testing.T) {
	client := &fakeClient{}
	client.usage.TotalTokens = 100000
	i, out := newTestInterpreter("hi\nhello\n", client)
	i.LLM.Model = "gpt-4"
	max := 0.5
	i.LLM.MaxBudget = &max

	require.NoError(t, i.Chat(context.Background()))
	assert.Len(t, client.requests, 1)
	assert.Contains(t, out.String(), "warning: max budget of $0.50 reached")
}

func TestChatCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	i, _ := newTestInterpreter("hi\n", &fakeClient{})
	assert.NoError(t, i.Chat(ctx))
}
