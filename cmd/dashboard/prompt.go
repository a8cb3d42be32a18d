package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"metrics-dashboard/internal/dashboard"

	"github.com/schollz/progressbar/v3"
)

type promptConfirmer struct {
	in        io.Reader
	out       io.Writer
	assumeYes *bool
}

func (p *promptConfirmer) Confirm(ctx context.Context, prompt string) bool {
	if p.assumeYes != nil && *p.assumeYes {
		return true
	}

	fmt.Fprintf(p.out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

type stderrNotifier struct {
	out io.Writer
}

func (n *stderrNotifier) Alert(msg string) {
	fmt.Fprintf(n.out, "Error: %s\n", msg)
}

// spinner shows a progress spinner while the list is loading.
type spinner struct {
	out io.Writer

	mu   sync.Mutex
	bar  *progressbar.ProgressBar
	done chan struct{}
	wg   sync.WaitGroup
}

// newSpinner returns nil unless out is a terminal.
func newSpinner(out io.Writer) *spinner {
	f, ok := out.(*os.File)
	if !ok {
		return nil
	}
	info, err := f.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice == 0 {
		return nil
	}
	return &spinner{out: out}
}

func (s *spinner) OnStateChange(state dashboard.FetchState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch state {
	case dashboard.Loading:
		if s.bar != nil {
			return
		}
		s.bar = progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(s.out),
			progressbar.OptionSetDescription("Loading models..."),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
		)
		s.done = make(chan struct{})
		s.wg.Add(1)
		go s.spin(s.bar, s.done)
	case dashboard.Idle:
		if s.bar == nil {
			return
		}
		close(s.done)
		s.wg.Wait()
		_ = s.bar.Finish()
		s.bar = nil
	}
}

func (s *spinner) spin(bar *progressbar.ProgressBar, done chan struct{}) {
	defer s.wg.Done()
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			_ = bar.Add(1)
		}
	}
}
