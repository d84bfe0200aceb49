package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const barWidth = 30

// Bar renders a position within a paged listing, e.g. page 2 of 5.
type Bar struct {
	total   int
	current int
	width   int
}

// New creates a new bar for a listing of total pages
func New(total int) *Bar {
	if total < 1 {
		total = 1
	}
	return &Bar{total: total, current: 1, width: barWidth}
}

// Set moves the bar to page current, clamped to the listing.
func (b *Bar) Set(current int) {
	switch {
	case current < 1:
		b.current = 1
	case current > b.total:
		b.current = b.total
	default:
		b.current = current
	}
}

// String renders the bar, e.g. "[██████░░░░░░] page 2/5".
func (b *Bar) String() string {
	filled := b.width * b.current / b.total

	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < b.width; i++ {
		if i < filled {
			sb.WriteString("█")
		} else {
			sb.WriteString("░")
		}
	}
	fmt.Fprintf(&sb, "] page %d/%d", b.current, b.total)
	return sb.String()
}

// Spinner prints elapsed time for a pending request until stopped.
type Spinner struct {
	w       io.Writer
	label   string
	start   time.Time
	stop    chan struct{}
	stopped sync.Once
	done    chan struct{}
}

// Start begins printing label with the elapsed time to w every interval.
func Start(w io.Writer, label string, interval time.Duration) *Spinner {
	s := &Spinner{
		w:     w,
		label: label,
		start: time.Now(),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fmt.Fprintf(s.w, "\r%s %s   ", s.label, formatDuration(time.Since(s.start)))
			case <-s.stop:
				return
			}
		}
	}()
	return s
}

// Stop ends the spinner, clears its line and returns the elapsed time.
func (s *Spinner) Stop() time.Duration {
	s.stopped.Do(func() {
		close(s.stop)
		<-s.done
		fmt.Fprint(s.w, "\r\033[K")
	})
	return time.Since(s.start)
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
