// lcd/hd44780.go
package lcd

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/hd44780i2c"

	"buttoncode-go/errcode"
)

// HD44780 binds the Display contract to an HD44780 character panel
// behind a PCF8574 I2C backpack, the same part the reference hardware
// carries. The bus is whatever drivers.I2C implementation the platform
// provides.
type HD44780 struct {
	dev  hd44780i2c.Device
	cols uint8
	rows uint8
}

func NewHD44780(bus drivers.I2C, addr uint8, cols, rows uint8) *HD44780 {
	return &HD44780{
		dev:  hd44780i2c.New(bus, addr),
		cols: cols,
		rows: rows,
	}
}

func (d *HD44780) Init() error {
	err := d.dev.Configure(hd44780i2c.Config{
		Width:  d.cols,
		Height: d.rows,
	})
	if err != nil {
		return &errcode.E{C: errcode.DisplayDown, Op: "lcd.Init", Err: err}
	}
	return nil
}

func (d *HD44780) Clear() { d.dev.ClearDisplay() }

func (d *HD44780) SetCursor(col, row uint8) { d.dev.SetCursor(col, row) }

func (d *HD44780) Print(text string) { d.dev.Print([]byte(text)) }

var _ Display = (*HD44780)(nil)
