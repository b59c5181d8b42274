package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	bspinner "github.com/charmbracelet/bubbles/spinner"
)

// spinnerStyle supplies the frames and frame rate of the status spinner.
var spinnerStyle = bspinner.MiniDot

// spinner animates a status line on w until stopped or ctx is cancelled.
type spinner struct {
	w       io.Writer
	message string
	stop    context.CancelFunc
	stopped chan struct{}
	once    sync.Once
}

// startSpinner begins animating message on stderr.
func startSpinner(ctx context.Context, message string) *spinner {
	return startSpinnerOn(ctx, os.Stderr, message)
}

func startSpinnerOn(ctx context.Context, w io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{w: w, message: message, stop: cancel, stopped: make(chan struct{})}

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerStyle.FPS)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
				return
			case <-ticker.C:
				frame := spinnerStyle.Frames[i%len(spinnerStyle.Frames)]
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
			}
		}
	}()
	return s
}

// Stop ends the animation and clears the line. It is safe to call twice.
func (s *spinner) Stop() {
	s.once.Do(func() {
		s.stop()
		<-s.stopped
	})
}

// withSpinner runs fn while a spinner shows message.
func withSpinner(ctx context.Context, message string, fn func() error) error {
	s := startSpinner(ctx, message)
	defer s.Stop()
	return fn()
}
