// cmd/pico-demo/main.go
//go:build rp2040 || rp2350

// On-target demo for the Pico: a pull-up button on GP26, the onboard
// LED and a 16x2 HD44780 on I2C0, with a command shell on UART0.
// Single click toggles the LED, double click turns it on, long press
// turns it off; each gesture is echoed to the display.
package main

import (
	"context"
	"fmt"
	"machine"
	"strconv"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"buttoncode-go/board"
	"buttoncode-go/button"
	"buttoncode-go/errcode"
	"buttoncode-go/event"
	"buttoncode-go/lcd"
	"buttoncode-go/led"
	"buttoncode-go/registry"
	"buttoncode-go/shell"
)

const (
	buttonPin  = machine.GP26
	buttonLine = 0
	lcdAddr    = 0x27
)

// serialIO adapts a uartx port to the reader/writer the shell wants.
type serialIO struct{ u *uartx.UART }

func (s *serialIO) Read(p []byte) (int, error)  { return s.u.RecvSomeContext(context.Background(), p) }
func (s *serialIO) Write(p []byte) (int, error) { return s.u.Write(p) }

func main() {
	ctx := context.Background()

	console := uartx.UART0
	_ = console.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	serial := &serialIO{u: console}

	machine.I2C0.Configure(machine.I2CConfig{
		SDA:       machine.GP4,
		SCL:       machine.GP5,
		Frequency: 100e3,
	})

	ledAO := led.New(led.Config{
		Pin:        board.NewMachineOut(machine.LED, false),
		ActiveHigh: true,
		Name:       "onboard",
	})
	ledAO.Start(ctx)

	lcdAO := lcd.New(lcd.Config{
		Display: lcd.NewHD44780(machine.I2C0, lcdAddr, 16, 2),
		Banner:  []string{"System Ready", "pico demo"},
	})
	lcdAO.Start(ctx)

	btnPin := board.NewMachineIn(buttonPin)
	btn := button.New(button.Config{
		Line:      buttonLine,
		Pin:       btnPin,
		ActiveLow: true,
		Handler: button.HandlerFunc(func(line uint8, sig event.Signal, param uint32) {
			fmt.Fprintf(serial, "[button %d] %v param=%d\r\n", line, sig, param)
			switch sig {
			case event.SigButtonSingleClick:
				ledAO.Post(event.Event{Signal: event.SigLedToggle})
			case event.SigButtonDoubleClick:
				ledAO.Post(event.Event{Signal: event.SigLedOn})
			case event.SigButtonLongPress:
				ledAO.Post(event.Event{Signal: event.SigLedOff})
			}
			lcdAO.Print(1, 0, pad(sig.String(), 16))
		}),
	})
	btn.Start(ctx)

	lines := registry.New()
	lines.Register(buttonLine, btn)
	if err := btnPin.SetIRQ(board.EdgeBoth, func() { lines.Dispatch(buttonLine) }); err != nil {
		println("[pico] irq setup failed:", err.Error())
		for {
			time.Sleep(time.Second)
		}
	}

	sh := shell.New(serial, serial, "> ")
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
		ledAO.Post(event.Event{Signal: sig})
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
		fmt.Fprintf(serial, "button drops=%d led drops=%d lcd drops=%d led_on=%v\r\n",
			btn.Drops(), ledAO.Drops(), lcdAO.Drops(), ledAO.On())
		return nil
	}})

	if err := sh.Run(ctx); err != nil {
		println("[pico] shell:", err.Error())
	}
	for {
		time.Sleep(time.Second)
	}
}

func pad(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}
