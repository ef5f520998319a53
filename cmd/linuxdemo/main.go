// cmd/linuxdemo/main.go
//go:build linux && !(rp2040 || rp2350)

// Real-hardware demo for Linux SBCs: one button and one LED on the
// gpiochip character device. Cooked events are printed and mapped to
// the LED (single click toggles, double click on, long press off).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"buttoncode-go/board"
	"buttoncode-go/button"
	"buttoncode-go/event"
	"buttoncode-go/led"
	"buttoncode-go/registry"
)

func main() {
	var (
		chip      = flag.String("chip", "gpiochip0", "gpiochip device name")
		btnOffset = flag.Int("button", 26, "button line offset (active low)")
		ledOffset = flag.Int("led", 16, "LED line offset (active high)")
	)
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	btnPin, err := board.NewGPIOLine(*chip, *btnOffset)
	if err != nil {
		println("[linuxdemo] button line:", err.Error())
		os.Exit(1)
	}
	defer btnPin.Close()

	ledPin, err := board.NewGPIOOut(*chip, *ledOffset, false)
	if err != nil {
		println("[linuxdemo] led line:", err.Error())
		os.Exit(1)
	}
	defer ledPin.Close()

	ledAO := led.New(led.Config{Pin: ledPin, ActiveHigh: true})
	ledAO.Start(ctx)

	line := uint8(*btnOffset % registry.MaxLines)
	btn := button.New(button.Config{
		Line:      line,
		Pin:       btnPin,
		ActiveLow: true,
		Handler: button.HandlerFunc(func(line uint8, sig event.Signal, param uint32) {
			fmt.Printf("[button %d] %v param=%d\n", line, sig, param)
			switch sig {
			case event.SigButtonSingleClick:
				ledAO.Post(event.Event{Signal: event.SigLedToggle})
			case event.SigButtonDoubleClick:
				ledAO.Post(event.Event{Signal: event.SigLedOn})
			case event.SigButtonLongPress:
				ledAO.Post(event.Event{Signal: event.SigLedOff})
			}
		}),
	})
	btn.Start(ctx)

	lines := registry.New()
	lines.Register(line, btn)
	if err := btnPin.SetIRQ(board.EdgeBoth, func() { lines.Dispatch(line) }); err != nil {
		println("[linuxdemo] irq setup failed:", err.Error())
		os.Exit(1)
	}

	println("[linuxdemo] running, ctrl-c to exit")
	<-ctx.Done()
}
