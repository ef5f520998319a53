// cmd/simdemo/main.go
//
// Host demo: a simulated button, LED and LCD wired through the bus,
// driven from an interactive shell. Gestures are injected as edges on
// the simulated line, so the full debounce + classification path runs
// exactly as it would on hardware.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"buttoncode-go/board"
	"buttoncode-go/bus"
	"buttoncode-go/button"
	"buttoncode-go/errcode"
	"buttoncode-go/event"
	"buttoncode-go/lcd"
	"buttoncode-go/led"
	"buttoncode-go/registry"
	"buttoncode-go/relay"
	"buttoncode-go/shell"
)

const buttonLine = 13

// termDisplay renders "print at position" onto stdout.
type termDisplay struct {
	col, row uint8
}

func (d *termDisplay) Init() error              { return nil }
func (d *termDisplay) Clear()                   { fmt.Println("[lcd] clear") }
func (d *termDisplay) SetCursor(col, row uint8) { d.col, d.row = col, row }
func (d *termDisplay) Print(text string)        { fmt.Printf("[lcd %d,%d] %s\n", d.row, d.col, text) }

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := bus.NewBus(16)

	btnPin := board.NewSimPin(true) // active-low line resting high
	ledPin := board.NewSimOut(false)

	ledAO := led.New(led.Config{Pin: ledPin, ActiveHigh: true, Name: "main"})
	ledAO.Start(ctx)

	lcdAO := lcd.New(lcd.Config{Display: &termDisplay{}, Banner: []string{"System Ready", "sim board"}})
	lcdAO.Start(ctx)

	btn := button.New(button.Config{
		Line:      buttonLine,
		Pin:       btnPin,
		ActiveLow: true,
		Handler:   relay.NewPublisher(b.NewConnection("button"), "user"),
	})
	btn.Start(ctx)

	lines := registry.New()
	lines.Register(buttonLine, btn)
	if err := btnPin.SetIRQ(board.EdgeBoth, func() { lines.Dispatch(buttonLine) }); err != nil {
		println("[demo] irq setup failed:", err.Error())
		os.Exit(1)
	}

	conn := b.NewConnection("demo")
	ledCmd := bus.T("io", "led", "main", "cmd")
	relay.NewBridge(conn, ledCmd, ledAO).Run(ctx)

	// Map cooked events to LED commands and an LCD status line.
	go func() {
		sub := conn.Subscribe(relay.EventTopic("user"))
		mapper := b.NewConnection("mapper")
		for {
			select {
			case <-ctx.Done():
				return
			case m := <-sub.Channel():
				tag := m.Topic.At(4)
				fmt.Println("[button]", tag)
				lcdAO.Print(1, 0, tag+"          ")
				var sig event.Signal
				switch tag {
				case "single_click":
					sig = event.SigLedToggle
				case "double_click":
					sig = event.SigLedOn
				case "long_press":
					sig = event.SigLedOff
				default:
					continue
				}
				mapper.Publish(mapper.NewMessage(ledCmd, event.Event{Signal: sig}, false))
			}
		}
	}()

	press := func(d time.Duration) {
		btnPin.Trigger(false)
		time.Sleep(d)
		btnPin.Trigger(true)
	}

	sh := shell.New(os.Stdin, os.Stdout, "> ")
	sh.Register(shell.Command{Name: "press", Help: "press <ms>: hold the button for <ms>", Run: func(args []string) error {
		if len(args) != 1 {
			return errcode.InvalidParams
		}
		ms, err := strconv.Atoi(args[0])
		if err != nil || ms <= 0 {
			return errcode.InvalidParams
		}
		press(time.Duration(ms) * time.Millisecond)
		return nil
	}})
	sh.Register(shell.Command{Name: "tap", Help: "one short press", Run: func([]string) error {
		press(50 * time.Millisecond)
		return nil
	}})
	sh.Register(shell.Command{Name: "dbl", Help: "two taps inside the double-click window", Run: func([]string) error {
		press(50 * time.Millisecond)
		time.Sleep(120 * time.Millisecond)
		press(50 * time.Millisecond)
		return nil
	}})
	sh.Register(shell.Command{Name: "hold", Help: "press past the long-press threshold", Run: func([]string) error {
		press(1200 * time.Millisecond)
		return nil
	}})
	sh.Register(shell.Command{Name: "led", Help: "led on|off|toggle", Run: func(args []string) error {
		if len(args) != 1 {
			return errcode.InvalidParams
		}
		var sig event.Signal
		switch args[0] {
		case "on":
			sig = event.SigLedOn
		case "off":
			sig = event.SigLedOff
		case "toggle":
			sig = event.SigLedToggle
		default:
			return errcode.InvalidParams
		}
		conn.Publish(conn.NewMessage(ledCmd, event.Event{Signal: sig}, false))
		return nil
	}})
	sh.Register(shell.Command{Name: "lcd", Help: "lcd <row> <col> <text>", Run: func(args []string) error {
		if len(args) != 3 {
			return errcode.InvalidParams
		}
		row, err1 := strconv.Atoi(args[0])
		col, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			return errcode.InvalidParams
		}
		lcdAO.Print(uint8(row), uint8(col), args[2])
		return nil
	}})
	sh.Register(shell.Command{Name: "stat", Help: "drop counters and LED state", Run: func([]string) error {
		fmt.Printf("button drops=%d led drops=%d lcd drops=%d led_on=%v\n",
			btn.Drops(), ledAO.Drops(), lcdAO.Drops(), ledAO.On())
		return nil
	}})

	if err := sh.Run(ctx); err != nil {
		println("[demo] shell:", err.Error())
	}
}
