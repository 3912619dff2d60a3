// Package sim simulates the A-Star firmware on a host-side I2C bus.
package sim

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robotalks/astar.go/pkg/l0/astar"
)

// RegisterFileSize is the size of the simulated register file.
const RegisterFileSize = 64

// DefaultBatteryMillivolts is the battery reading after reset.
const DefaultBatteryMillivolts = 7400

// CountsPerSecond is the encoder rate per unit of motor speed.
const CountsPerSecond = 4.0

var (
	// ErrNoDevice is returned for transactions to other addresses.
	ErrNoDevice = errors.New("no device at address")
	// ErrInjected is returned by injected faults.
	ErrInjected = errors.New("injected fault")
	// ErrOutOfRange is returned for writes past the register file.
	ErrOutOfRange = errors.New("register out of range")
)

// OpKind is the kind of a bus operation.
type OpKind int

// Bus operations.
const (
	OpSend OpKind = iota
	OpReceive
	OpWrite
)

// AnyRegister matches all registers in fault injection.
const AnyRegister = -1

// Op is a recorded bus operation.
type Op struct {
	Kind OpKind
	Addr uint16
	// Reg is the selected register for OpSend/OpReceive and the start
	// register for OpWrite.
	Reg  byte
	Data []byte
}

type fault struct {
	kind OpKind
	reg  int
}

// Device implements astar.Bus with the register file of the firmware.
// A single-byte write selects a register, every byte read returns the
// next register and a block write stores data from a register on.
type Device struct {
	Addr uint16

	lock     sync.Mutex
	regs     [RegisterFileSize]byte
	ptr      int
	faults   map[fault]bool
	ops      []Op
	encoders [2]float64
}

// New creates a Device at astar.DeviceAddress.
func New() *Device {
	d := &Device{Addr: astar.DeviceAddress, faults: make(map[fault]bool)}
	d.SetBatteryMillivolts(DefaultBatteryMillivolts)
	return d
}

// SendByte implements astar.Bus.
func (d *Device) SendByte(addr uint16, b byte) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.ops = append(d.ops, Op{Kind: OpSend, Addr: addr, Reg: b})
	if err := d.check(OpSend, addr, b); err != nil {
		return err
	}
	d.ptr = int(b)
	return nil
}

// ReceiveByte implements astar.Bus.
func (d *Device) ReceiveByte(addr uint16) (byte, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	reg := byte(d.ptr % RegisterFileSize)
	d.ops = append(d.ops, Op{Kind: OpReceive, Addr: addr, Reg: reg})
	if err := d.check(OpReceive, addr, reg); err != nil {
		return 0, err
	}
	d.ptr++
	return d.regs[reg], nil
}

// WriteBlockData implements astar.Bus.
func (d *Device) WriteBlockData(addr uint16, reg byte, data []byte) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.ops = append(d.ops, Op{Kind: OpWrite, Addr: addr, Reg: reg, Data: append([]byte(nil), data...)})
	if err := d.check(OpWrite, addr, reg); err != nil {
		return err
	}
	if int(reg)+len(data) > RegisterFileSize {
		return ErrOutOfRange
	}
	copy(d.regs[reg:], data)
	d.ptr = int(reg) + len(data)
	return nil
}

// Fail injects a fault for an operation on a register.
// For OpReceive the register is the byte being read.
func (d *Device) Fail(kind OpKind, reg int) {
	d.lock.Lock()
	d.faults[fault{kind: kind, reg: reg}] = true
	d.lock.Unlock()
}

// Heal removes all injected faults.
func (d *Device) Heal() {
	d.lock.Lock()
	d.faults = make(map[fault]bool)
	d.lock.Unlock()
}

// Ops returns the recorded operations.
func (d *Device) Ops() []Op {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]Op(nil), d.ops...)
}

// ResetOps clears the recorded operations.
func (d *Device) ResetOps() {
	d.lock.Lock()
	d.ops = nil
	d.lock.Unlock()
}

// SetButtons sets the state of buttons A, B and C.
func (d *Device) SetButtons(a, b, c bool) {
	d.store(astar.RegButtons, a, b, c)
}

// SetBatteryMillivolts sets the battery voltage.
func (d *Device) SetBatteryMillivolts(mv uint16) {
	d.store(astar.RegBattery, mv)
}

// SetAnalog sets the analog readings.
func (d *Device) SetAnalog(values [6]uint16) {
	d.store(astar.RegAnalog, values[0], values[1], values[2], values[3], values[4], values[5])
}

// SetEncoders sets the encoder counts.
func (d *Device) SetEncoders(left, right int16) {
	d.lock.Lock()
	d.encoders = [2]float64{float64(left), float64(right)}
	d.lock.Unlock()
	d.store(astar.RegEncoders, left, right)
}

// Leds returns the red, yellow and green LED values.
func (d *Device) Leds() (leds [3]uint8) {
	values := d.load(astar.RegLeds)
	for i := range leds {
		leds[i] = values[i].(uint8)
	}
	return
}

// Motors returns the left and right motor speeds.
func (d *Device) Motors() (motors [2]int16) {
	values := d.load(astar.RegMotors)
	for i := range motors {
		motors[i] = values[i].(int16)
	}
	return
}

// Notes returns the last notes written and clears the play tag as the
// firmware does when it starts playing. ok is false if nothing new was
// requested.
func (d *Device) Notes() (notes string, ok bool) {
	reg := astar.RegNotes
	d.lock.Lock()
	data := append([]byte(nil), d.regs[reg.Address:int(reg.Address)+reg.Size()]...)
	if data[0] != 0 {
		d.regs[reg.Address] = 0
	}
	d.lock.Unlock()

	values, err := reg.Layout.Unpack(data)
	if err != nil {
		panic(err)
	}
	if values[0].(uint8) == 0 {
		return "", false
	}
	return string(bytes.TrimRight(values[1].([]byte), "\x00")), true
}

// Step advances the encoders according to the motor speeds.
func (d *Device) Step(dt time.Duration) {
	motors := d.Motors()
	d.lock.Lock()
	for i, speed := range motors {
		d.encoders[i] += float64(speed) * CountsPerSecond * dt.Seconds()
	}
	left, right := int16(int64(d.encoders[0])), int16(int64(d.encoders[1]))
	d.lock.Unlock()
	d.store(astar.RegEncoders, left, right)
}

// Run steps the simulation until the context is canceled.
func (d *Device) Run(ctx context.Context) error {
	const interval = 10 * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.Step(interval)
		}
	}
}

func (d *Device) check(kind OpKind, addr uint16, reg byte) error {
	if addr != d.Addr {
		return ErrNoDevice
	}
	if d.faults[fault{kind: kind, reg: int(reg)}] || d.faults[fault{kind: kind, reg: AnyRegister}] {
		return ErrInjected
	}
	return nil
}

func (d *Device) store(reg *astar.Register, values ...interface{}) {
	data, err := reg.Layout.Pack(values...)
	if err != nil {
		panic(err)
	}
	d.lock.Lock()
	copy(d.regs[reg.Address:], data)
	d.lock.Unlock()
}

func (d *Device) load(reg *astar.Register) []interface{} {
	d.lock.Lock()
	data := append([]byte(nil), d.regs[reg.Address:int(reg.Address)+reg.Size()]...)
	d.lock.Unlock()
	values, err := reg.Layout.Unpack(data)
	if err != nil {
		panic(err)
	}
	return values
}
