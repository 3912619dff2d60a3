// Package astar provides L0 register access to the A-Star 32U4 firmware.
package astar

// The A-Star firmware (as shipped on the Romi 32U4 control board) exposes
// a small register file on the I2C bus at DeviceAddress. Every logical
// endpoint (LEDs, motors, buzzer, buttons, battery, analog inputs and
// encoders) lives at a fixed offset of that register file with a fixed
// little-endian layout.
//
// A write is a single block write starting at the register offset.
// A read selects the register with a single-byte write and then reads the
// bytes back one at a time. The AVR TWI module can't handle a quick
// write->read transition: the STOP interrupt occasionally happens after the
// next START and the module stays disabled until it is serviced. Therefore
// SettleDelay must pass between the select and the first read.
//
// Faults never escape as panics. Each transaction reports a Result, and the
// Engine keeps the last-operation flag and the cumulative error counter.
//
// Producer: A-Star firmware
// Consumer: L1 controller
