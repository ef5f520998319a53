// lcd/lcd.go
package lcd

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"buttoncode-go/ao"
	"buttoncode-go/x/mathx"
)

// Message is the LCD's inbox unit: positioned text, not the generic
// event type. The queue is typed accordingly.
type Message struct {
	Row  uint8
	Col  uint8
	Text string
}

// Display is the narrow "print at position" capability the consumer
// drives. Init may fail until the panel answers. Coordinates follow
// the HD44780 model: column first, then row.
type Display interface {
	Init() error
	Clear()
	SetCursor(col, row uint8)
	Print(text string)
}

// Config is per-instance and immutable after New.
type Config struct {
	Display Display
	Cols    uint8
	Rows    uint8
	Name    string
	Depth   int           // inbox capacity
	Retry   time.Duration // backoff between failed Init attempts
	Clock   clock.Clock   // nil => wall clock
	Banner  []string      // one entry per row, shown once after init
}

const (
	defaultCols  = 16
	defaultRows  = 2
	defaultRetry = 2 * time.Second
)

// LCD is an active object owning all access to one character display.
// Messages posted before the hardware answers wait in the bounded
// inbox (and drop once it is full).
type LCD struct {
	cfg   Config
	clk   clock.Clock
	ao    *ao.Object[Message]
	ready atomic.Bool
}

func New(cfg Config) *LCD {
	if cfg.Cols == 0 {
		cfg.Cols = defaultCols
	}
	if cfg.Rows == 0 {
		cfg.Rows = defaultRows
	}
	if cfg.Name == "" {
		cfg.Name = "lcd"
	}
	if cfg.Retry <= 0 {
		cfg.Retry = defaultRetry
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	return &LCD{
		cfg: cfg,
		clk: cfg.Clock,
		ao:  ao.New[Message](ao.Config{Name: cfg.Name, Depth: cfg.Depth}),
	}
}

// Start brings the display up (retrying until it answers), shows the
// banner, then attaches the consumer loop. Call exactly once.
func (l *LCD) Start(ctx context.Context) {
	go func() {
		for {
			err := l.cfg.Display.Init()
			if err == nil {
				break
			}
			println("[lcd]", l.cfg.Name, "init failed:", err.Error())
			t := l.clk.Timer(l.cfg.Retry)
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-t.C:
			}
		}

		l.cfg.Display.Clear()
		for i, line := range l.cfg.Banner {
			if i >= int(l.cfg.Rows) {
				break
			}
			l.cfg.Display.SetCursor(0, uint8(i))
			l.cfg.Display.Print(l.fit(line, 0))
		}
		l.ready.Store(true)
		l.ao.Start(ctx, l.handleMessage)
	}()
}

// Ready reports whether the display answered Init.
func (l *LCD) Ready() bool { return l.ready.Load() }

// Post enqueues a message; false means dropped.
func (l *LCD) Post(m Message) bool { return l.ao.Post(m) }

// PostFromISR enqueues from interrupt context; never blocks.
func (l *LCD) PostFromISR(m Message) bool { return l.ao.PostFromISR(m) }

// Print builds and posts in one call.
func (l *LCD) Print(row, col uint8, text string) bool {
	return l.Post(Message{Row: row, Col: col, Text: text})
}

// Drops reports messages discarded at the inbox.
func (l *LCD) Drops() uint32 { return l.ao.Drops() }

func (l *LCD) handleMessage(m Message) {
	row := mathx.Clamp(m.Row, 0, l.cfg.Rows-1)
	col := mathx.Clamp(m.Col, 0, l.cfg.Cols-1)
	l.cfg.Display.SetCursor(col, row)
	l.cfg.Display.Print(l.fit(m.Text, col))
}

// fit truncates text to what remains of the row from col.
func (l *LCD) fit(text string, col uint8) string {
	max := int(l.cfg.Cols) - int(col)
	if len(text) > max {
		return text[:max]
	}
	return text
}
