package terminal

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// SpinnerFrames are the default animation frames.
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a status line while the chat waits on the model.
type Spinner struct {
	out      io.Writer
	message  string
	frames   []string
	interval time.Duration
	style    lipgloss.Style
	animated bool

	mu      sync.Mutex
	current int
	started time.Time
	done    chan struct{}
	stop    sync.Once
	wg      sync.WaitGroup
}

// Spinner returns a spinner drawing on the writer's output. In plain mode
// the spinner prints the message once and never animates.
func (w *Writer) Spinner(message string) *Spinner {
	return &Spinner{
		out:      w.out,
		message:  message,
		frames:   SpinnerFrames,
		interval: 80 * time.Millisecond,
		style:    w.infoStyle,
		animated: !w.plain,
		done:     make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.started = time.Now()
	s.mu.Unlock()

	if !s.animated {
		fmt.Fprintln(s.out, s.message)
		return
	}
	s.wg.Add(1)
	go s.run()
}

func (s *Spinner) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			frame := s.frames[s.current%len(s.frames)]
			s.current++
			elapsed := time.Since(s.started).Round(time.Second)
			s.mu.Unlock()
			fmt.Fprintf(s.out, "\r%s %s (%s)", s.style.Render(frame), s.message, elapsed)
		}
	}
}

// Elapsed returns the time since Start.
func (s *Spinner) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started.IsZero() {
		return 0
	}
	return time.Since(s.started)
}

// Stop halts the animation and clears the line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		close(s.done)
		s.wg.Wait()
		if s.animated {
			fmt.Fprint(s.out, "\r\033[K")
		}
	})
}
