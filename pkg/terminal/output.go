// Package terminal renders launcher and chat output: markdown through
// glamour, status lines through lipgloss, and line-oriented prompts read
// from an injectable input.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Writer provides styled terminal output and simple line input.
type Writer struct {
	out      io.Writer
	in       *bufio.Reader
	renderer *glamour.TermRenderer
	plain    bool
	mu       sync.Mutex
	readMu   sync.Mutex

	errorStyle   lipgloss.Style
	warnStyle    lipgloss.Style
	successStyle lipgloss.Style
	infoStyle    lipgloss.Style
	dimStyle     lipgloss.Style
	boldStyle    lipgloss.Style
	keyStyle     lipgloss.Style
}

// New creates a Writer bound to stdin and stdout.
func New() *Writer {
	return NewWithIO(os.Stdin, os.Stdout)
}

// NewWithOutput creates a Writer that writes to out and never reads input.
func NewWithOutput(out io.Writer) *Writer {
	return NewWithIO(strings.NewReader(""), out)
}

// NewWithIO creates a Writer reading answers from in and writing to out.
// Output is plain (no colour, raw markdown) when NO_COLOR is set or out is
// not a terminal.
func NewWithIO(in io.Reader, out io.Writer) *Writer {
	plain := isPlain(out)

	lr := lipgloss.NewRenderer(out)
	if plain {
		lr.SetColorProfile(termenv.Ascii)
	}

	w := &Writer{
		out:   out,
		in:    bufio.NewReader(in),
		plain: plain,

		errorStyle: lr.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#D00000", Dark: "#FF5555"}).
			Bold(true),
		warnStyle: lr.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFAA00"}),
		successStyle: lr.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#008000", Dark: "#55FF55"}),
		infoStyle: lr.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"}),
		dimStyle: lr.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}),
		boldStyle: lr.NewStyle().Bold(true),
		keyStyle: lr.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"}).
			Bold(true),
	}

	if !plain {
		w.renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(terminalWidth(out)),
		)
	}
	return w
}

func isPlain(out io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	f, ok := out.(*os.File)
	if !ok {
		return true
	}
	return !term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the wrap width for out, defaulting to 100.
func terminalWidth(out io.Writer) int {
	if f, ok := out.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return min(width, 120)
		}
	}
	return 100
}

// Plain reports whether styling is disabled.
func (w *Writer) Plain() bool { return w.plain }

// Print writes formatted text.
func (w *Writer) Print(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, format, args...)
}

// Write implements io.Writer so the terminal can back plain writers.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Write(p)
}

// Println writes formatted text with a newline.
func (w *Writer) Println(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Newline prints a blank line.
func (w *Writer) Newline() {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out)
}

// Markdown renders a markdown message. Rendering failures fall back to the
// raw text and are reported.
func (w *Writer) Markdown(md string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.renderer == nil {
		fmt.Fprintln(w.out, md)
		return nil
	}

	rendered, err := w.renderer.Render(md)
	if err != nil {
		fmt.Fprintln(w.out, md)
		return err
	}
	fmt.Fprint(w.out, rendered)
	return nil
}

// DisplayMarkdown is Markdown without the error, for callers that treat
// rendering as best effort.
func (w *Writer) DisplayMarkdown(md string) {
	_ = w.Markdown(md)
}

// Error prints an error message.
func (w *Writer) Error(format string, args ...any) {
	w.styled(w.errorStyle, "error: "+fmt.Sprintf(format, args...))
}

// Warn prints a warning message.
func (w *Writer) Warn(format string, args ...any) {
	w.styled(w.warnStyle, "warning: "+fmt.Sprintf(format, args...))
}

// Success prints a success message.
func (w *Writer) Success(format string, args ...any) {
	w.styled(w.successStyle, "✓ "+fmt.Sprintf(format, args...))
}

// Info prints an informational message.
func (w *Writer) Info(format string, args ...any) {
	w.styled(w.infoStyle, fmt.Sprintf(format, args...))
}

// Dim prints secondary text.
func (w *Writer) Dim(format string, args ...any) {
	w.styled(w.dimStyle, fmt.Sprintf(format, args...))
}

func (w *Writer) styled(style lipgloss.Style, msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out, style.Render(msg))
}

// ErrNoInput is returned when the input stream is exhausted.
var ErrNoInput = errors.New("no input")

// ReadLine prints prompt and reads one line without its trailing newline.
// A final unterminated line is returned; an empty exhausted stream yields
// ErrNoInput. Output stays usable while a read is blocked.
func (w *Writer) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		w.Print("%s", prompt)
	}
	w.readMu.Lock()
	defer w.readMu.Unlock()
	line, err := w.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", ErrNoInput
			}
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadLineContext is ReadLine that gives up when ctx is done. The
// abandoned read keeps the input lock until a line arrives.
func (w *Writer) ReadLineContext(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if prompt != "" {
		w.Print("%s", prompt)
	}
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := w.ReadLine("")
		ch <- result{line, err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

// Confirm asks a yes/no question. An empty or unreadable answer yields
// defaultYes.
func (w *Writer) Confirm(prompt string, defaultYes bool) bool {
	ok, _ := w.ConfirmContext(context.Background(), prompt, defaultYes)
	return ok
}

// ConfirmContext is Confirm that returns ctx.Err() when ctx is done before
// an answer arrives.
func (w *Writer) ConfirmContext(ctx context.Context, prompt string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}
	input, err := w.ReadLineContext(ctx, fmt.Sprintf("%s [%s]: ", prompt, hint))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		return defaultYes, nil
	}
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return defaultYes, nil
	}
	return input == "y" || input == "yes", nil
}

// MenuItem represents a menu option.
type MenuItem struct {
	Key         string // shortcut typed by the user
	Label       string
	Description string
	Disabled    bool
}

// Menu prints the items and returns the key the user picked, or "" when
// the answer matches no enabled item. Items without a key are numbered.
func (w *Writer) Menu(title string, items []MenuItem) string {
	choice, _ := w.MenuContext(context.Background(), title, items)
	return choice
}

// MenuContext is Menu that returns ctx.Err() when ctx is done before a
// choice is read.
func (w *Writer) MenuContext(ctx context.Context, title string, items []MenuItem) (string, error) {
	w.mu.Lock()
	fmt.Fprintln(w.out)
	fmt.Fprintln(w.out, w.boldStyle.Render(title))
	fmt.Fprintln(w.out)
	for i := range items {
		if items[i].Key == "" {
			items[i].Key = strconv.Itoa(i + 1)
		}
		item := items[i]
		if item.Disabled {
			line := fmt.Sprintf("  [%s] %s", item.Key, item.Label)
			if item.Description != "" {
				line += " - " + item.Description
			}
			fmt.Fprintln(w.out, w.dimStyle.Render(line))
			continue
		}
		line := fmt.Sprintf("  %s %s", w.keyStyle.Render("["+item.Key+"]"), item.Label)
		if item.Description != "" {
			line += w.dimStyle.Render(" - " + item.Description)
		}
		fmt.Fprintln(w.out, line)
	}
	fmt.Fprintln(w.out)
	w.mu.Unlock()

	input, err := w.ReadLineContext(ctx, w.dimStyle.Render("Enter choice: "))
	if err != nil {
		return "", ctx.Err()
	}
	input = strings.TrimSpace(strings.ToLower(input))
	for _, item := range items {
		if !item.Disabled && strings.ToLower(item.Key) == input {
			return item.Key, nil
		}
	}
	return "", nil
}
