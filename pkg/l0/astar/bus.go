package astar

import "time"

// DeviceAddress is the I2C address the A-Star firmware listens on.
const DeviceAddress uint16 = 20

// SettleDelay is the pause between selecting a register and reading it.
// It is a protocol requirement of the firmware, not a tunable.
const SettleDelay = 200 * time.Microsecond

// Bus is the I2C (SMBus) transport used by the Engine.
type Bus interface {
	// SendByte writes a single byte to the device.
	SendByte(addr uint16, b byte) error
	// ReceiveByte reads a single byte from the device.
	ReceiveByte(addr uint16) (byte, error)
	// WriteBlockData writes data to the device starting at register reg.
	WriteBlockData(addr uint16, reg byte, data []byte) error
}
