// Package conversation persists chat transcripts as JSON files and lets the
// user pick one to resume.
package conversation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/interpreter/pkg/model"
)

const titleLength = 48

// Conversation is one saved transcript.
type Conversation struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Messages  []model.Message `json:"messages"`
}

// Store reads and writes conversations under a directory.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore returns a store rooted at dir. The directory is created lazily.
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: time.Now}
}

// Dir returns the storage directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save writes messages under id, keeping the original creation time.
func (s *Store) Save(id string, messages []model.Message) error {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("invalid conversation id %q", id)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create conversations dir: %w", err)
	}

	now := s.now().UTC()
	conv := Conversation{
		ID:        id,
		Title:     titleFor(messages),
		CreatedAt: now,
		UpdatedAt: now,
		Messages:  messages,
	}
	if existing, err := s.Load(id); err == nil {
		conv.CreatedAt = existing.CreatedAt
	} else if parsed, perr := ulid.ParseStrict(strings.ToUpper(id)); perr == nil {
		conv.CreatedAt = ulid.Time(parsed.Time()).UTC()
	}

	data, err := json.MarshalIndent(conv, "", "  ")
	if err != nil {
		return fmt.Errorf("encode conversation: %w", err)
	}
	tmp := s.path(id) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write conversation: %w", err)
	}
	if err := os.Rename(tmp, s.path(id)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write conversation: %w", err)
	}
	return nil
}

// Load reads one conversation.
func (s *Store) Load(id string) (*Conversation, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, err
	}
	var conv Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("decode conversation %s: %w", id, err)
	}
	if conv.ID == "" {
		conv.ID = id
	}
	return &conv, nil
}

// List returns every readable conversation, most recently updated first.
// A missing directory is an empty list.
func (s *Store) List() ([]Conversation, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read conversations dir: %w", err)
	}

	var out []Conversation
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		conv, err := s.Load(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		out = append(out, *conv)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// titleFor derives a title from the first user message, cut to fit
// titleLength terminal columns.
func titleFor(messages []model.Message) string {
	for _, m := range messages {
		if m.Role != "user" {
			continue
		}
		title := strings.Join(strings.Fields(m.Content), " ")
		if title == "" {
			continue
		}
		return runewidth.Truncate(title, titleLength, "…")
	}
	return "Untitled"
}
