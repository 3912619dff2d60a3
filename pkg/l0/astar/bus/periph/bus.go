// Package periph implements astar.Bus with periph.io I2C buses.
package periph

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// DefaultBusName is the I2C bus of the Raspberry Pi header.
const DefaultBusName = "1"

// Bus implements astar.Bus. Each operation is a single I2C transaction.
type Bus struct {
	bus i2c.Bus
}

// New wraps an opened i2c.Bus.
func New(bus i2c.Bus) *Bus {
	return &Bus{bus: bus}
}

// Open initializes the host drivers and opens the named bus,
// e.g. "1" for /dev/i2c-1. An empty name opens the first bus found.
func Open(name string) (*Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", name, err)
	}
	return New(bus), nil
}

// String returns the name of the bus.
func (b *Bus) String() string {
	return b.bus.String()
}

// SendByte implements astar.Bus.
func (b *Bus) SendByte(addr uint16, v byte) error {
	return b.bus.Tx(addr, []byte{v}, nil)
}

// ReceiveByte implements astar.Bus.
func (b *Bus) ReceiveByte(addr uint16) (byte, error) {
	var r [1]byte
	if err := b.bus.Tx(addr, nil, r[:]); err != nil {
		return 0, err
	}
	return r[0], nil
}

// WriteBlockData implements astar.Bus.
func (b *Bus) WriteBlockData(addr uint16, reg byte, data []byte) error {
	w := make([]byte, len(data)+1)
	w[0] = reg
	copy(w[1:], data)
	return b.bus.Tx(addr, w, nil)
}

// Close implements io.Closer.
func (b *Bus) Close() error {
	if closer, ok := b.bus.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
