// Package tinygo implements astar.Bus on top of tinygo.org/x/drivers,
// so a TinyGo host MCU can drive the A-Star.
package tinygo

import (
	"tinygo.org/x/drivers"
)

// Bus implements astar.Bus with a drivers.I2C (e.g. machine.I2C0).
type Bus struct {
	i2c drivers.I2C
}

// New wraps a configured drivers.I2C.
func New(i2c drivers.I2C) *Bus {
	return &Bus{i2c: i2c}
}

// SendByte implements astar.Bus.
func (b *Bus) SendByte(addr uint16, v byte) error {
	w := [1]byte{v}
	return b.i2c.Tx(addr, w[:], nil)
}

// ReceiveByte implements astar.Bus.
func (b *Bus) ReceiveByte(addr uint16) (byte, error) {
	var r [1]byte
	if err := b.i2c.Tx(addr, nil, r[:]); err != nil {
		return 0, err
	}
	return r[0], nil
}

// WriteBlockData implements astar.Bus.
func (b *Bus) WriteBlockData(addr uint16, reg byte, data []byte) error {
	w := make([]byte, len(data)+1)
	w[0] = reg
	copy(w[1:], data)
	return b.i2c.Tx(addr, w, nil)
}
