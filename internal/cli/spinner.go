package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// spinnerInterval is the delay between animation frames.
const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a progress line while a chart is computed. Small charts
// finish before the first frame, so nothing is drawn for them.
type Spinner struct {
	w       io.Writer
	message string

	ctx    context.Context
	cancel context.CancelFunc
	exited chan struct{}

	mu      sync.Mutex
	started bool
}

// newSpinner creates a spinner that draws to w and stops on its own when
// ctx is done.
func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		message: message,
		ctx:     sctx,
		cancel:  cancel,
		exited:  make(chan struct{}),
	}
}

// Start begins the animation. Calling Start twice has no effect.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.exited)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	drawn := false
	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			if drawn {
				fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
			}
			return
		case <-ticker.C:
			icon := styleSpinner.Render(spinnerFrames[frame%len(spinnerFrames)])
			fmt.Fprintf(s.w, "\r%s %s", icon, StyleDim.Render(s.message))
			drawn = true
		}
	}
}

// Stop ends the animation, erases the line, and waits for the drawing
// goroutine to exit. It may be called any number of times.
func (s *Spinner) Stop() {
	s.cancel()
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if started {
		<-s.exited
	}
}
