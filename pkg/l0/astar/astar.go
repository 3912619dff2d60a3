package astar

import "errors"

// AStar provides typed endpoints of the A-Star firmware.
// Reads return the register sentinel together with the error when the
// transaction fails, so callers not checking errors proceed with zeros.
type AStar struct {
	engine *Engine
}

// New creates an AStar which owns the bus.
func New(bus Bus) *AStar {
	return NewWithEngine(NewEngine(bus))
}

// NewWithEngine wraps an existing Engine.
func NewWithEngine(engine *Engine) *AStar {
	return &AStar{engine: engine}
}

// LastOperationFailed reports whether the most recent transaction failed.
func (a *AStar) LastOperationFailed() bool {
	return a.engine.LastOperationFailed()
}

// CumulativeErrors returns the number of failed steps since creation.
func (a *AStar) CumulativeErrors() uint64 {
	return a.engine.CumulativeErrors()
}

// Close closes the bus.
func (a *AStar) Close() error {
	return a.engine.Close()
}

// Read reads a register. On failure, the values are replaced by the
// register sentinel.
func (a *AStar) Read(reg *Register) Result {
	res := a.engine.Read(reg.Address, reg.Size(), reg.Layout)
	if res.Err != nil {
		res.Values = reg.sentinel()
	}
	return res
}

// Write writes values to a register.
func (a *AStar) Write(reg *Register, values ...interface{}) error {
	return a.engine.Write(reg.Address, reg.Layout, values...).Err
}

// Leds sets the red, yellow and green LEDs. Nonzero means on.
func (a *AStar) Leds(red, yellow, green uint8) error {
	return a.Write(RegLeds, red, yellow, green)
}

// PlayNotes plays a sequence in the buzzer notation of the firmware,
// e.g. "l16ceg>c". It must be ASCII and at most NotesLen long, the rest
// is dropped.
func (a *AStar) PlayNotes(notes string) error {
	return a.Write(RegNotes, NotesTag, notes)
}

// Motors sets the left and right motor speeds.
// The firmware accepts -300 to 300, this is not enforced here.
func (a *AStar) Motors(left, right int16) error {
	return a.Write(RegMotors, left, right)
}

// ReadButtons reads the A, B and C buttons.
func (a *AStar) ReadButtons() (buttons [3]bool, err error) {
	res := a.Read(RegButtons)
	for i := range buttons {
		buttons[i] = res.Values[i].(bool)
	}
	return buttons, res.Err
}

// ReadBatteryMillivolts reads the battery voltage in millivolts.
func (a *AStar) ReadBatteryMillivolts() (uint16, error) {
	res := a.Read(RegBattery)
	return res.Values[0].(uint16), res.Err
}

// ReadAnalog reads the six analog inputs.
func (a *AStar) ReadAnalog() (analog [6]uint16, err error) {
	res := a.Read(RegAnalog)
	for i := range analog {
		analog[i] = res.Values[i].(uint16)
	}
	return analog, res.Err
}

// ReadEncoders reads the left and right encoder counts.
func (a *AStar) ReadEncoders() (encoders [2]int16, err error) {
	res := a.Read(RegEncoders)
	for i := range encoders {
		encoders[i] = res.Values[i].(int16)
	}
	return encoders, res.Err
}

// Snapshot is a reading of all input registers.
type Snapshot struct {
	Buttons           [3]bool
	BatteryMillivolts uint16
	Analog            [6]uint16
	Encoders          [2]int16
}

// Snapshot reads all input registers. Failed registers keep their
// sentinels and the errors are joined.
func (a *AStar) Snapshot() (s Snapshot, err error) {
	var errs [4]error
	s.Buttons, errs[0] = a.ReadButtons()
	s.BatteryMillivolts, errs[1] = a.ReadBatteryMillivolts()
	s.Analog, errs[2] = a.ReadAnalog()
	s.Encoders, errs[3] = a.ReadEncoders()
	return s, errors.Join(errs[:]...)
}

// ProbeRead8 reads 8 raw bytes starting at register 0.
func (a *AStar) ProbeRead8() ([]byte, error) {
	return a.probeRead(8)
}

// ProbeRead32 reads 32 raw bytes starting at register 0.
func (a *AStar) ProbeRead32() ([]byte, error) {
	return a.probeRead(32)
}

// ProbeWrite8 writes 8 zero bytes starting at register 0 and waits
// SettleDelay. This turns off the LEDs and stops the motors.
func (a *AStar) ProbeWrite8() error {
	return a.engine.WriteSettle(0, Layout{Bytes(8)}, make([]byte, 8)).Err
}

func (a *AStar) probeRead(n int) ([]byte, error) {
	res := a.engine.Read(0, n, Layout{Bytes(n)})
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Values[0].([]byte), nil
}
