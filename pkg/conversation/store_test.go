package conversation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/interpreter/pkg/model"
)

func msgs(contents ...string) []model.Message {
	out := make([]model.Message, 0, len(contents))
	for i, c := range contents {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		out = append(out, model.Message{Role: role, Content: c})
	}
	return out
}

func TestSaveAndLoad(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "conversations"))

	require.NoError(t, store.Save("abc", msgs("plot   the\nstock price", "sure")))

	conv, err := store.Load("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", conv.ID)
	assert.Equal(t, "plot the stock price", conv.Title)
	assert.Len(t, conv.Messages, 2)
	assert.False(t, conv.CreatedAt.IsZero())
}

func TestSaveKeepsCreatedAt(t *testing.T) {
	store := NewStore(t.TempDir())
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return first }
	require.NoError(t, store.Save("abc", msgs("one")))

	store.now = func() time.Time { return first.Add(time.Hour) }
	require.NoError(t, store.Save("abc", msgs("one", "two")))

	conv, err := store.Load("abc")
	require.NoError(t, err)
	assert.Equal(t, first, conv.CreatedAt)
	assert.Equal(t, first.Add(time.Hour), conv.UpdatedAt)
}

func TestSaveUsesULIDTime(t *testing.T) {
	store := NewStore(t.TempDir())
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	id := strings.ToLower(ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String())

	require.NoError(t, store.Save(id, msgs("hi")))
	conv, err := store.Load(id)
	require.NoError(t, err)
	assert.Equal(t, at, conv.CreatedAt)
}

func TestSaveRejectsBadIDs(t *testing.T) {
	store := NewStore(t.TempDir())
	assert.Error(t, store.Save("", msgs("x")))
	assert.Error(t, store.Save("../escape", msgs("x")))
}

func TestListNewestFirst(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		at := base.Add(time.Duration(i) * time.Minute)
		store.now = func() time.Time { return at }
		require.NoError(t, store.Save(id, msgs("message "+id)))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	convs, err := store.List()
	require.NoError(t, err)
	require.Len(t, convs, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{convs[0].ID, convs[1].ID, convs[2].ID})
}

func TestListMissingDir(t *testing.T) {
	convs, err := NewStore(filepath.Join(t.TempDir(), "nope")).List()
	require.NoError(t, err)
	assert.Empty(t, convs)
}

func TestTitleFor(t *testing.T) {
	assert.Equal(t, "Untitled", titleFor(nil))
	assert.Equal(t, "Untitled", titleFor([]model.Message{{Role: "assistant", Content: "hi"}}))
	long := strings.Repeat("word ", 20)
	title := titleFor([]model.Message{{Role: "user", Content: long}})
	assert.True(t, strings.HasSuffix(title, "…"))
	assert.LessOrEqual(t, runewidth.StringWidth(title), titleLength)

	wide := titleFor([]model.Message{{Role: "user", Content: strings.Repeat("株価", 30)}})
	assert.True(t, strings.HasSuffix(wide, "…"))
	assert.LessOrEqual(t, runewidth.StringWidth(wide), titleLength)
	assert.Less(t, len([]rune(wide)), titleLength)
}
