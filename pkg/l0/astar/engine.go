package astar

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/golang/glog"
)

// Result is the result of a single transaction.
type Result struct {
	Values []interface{}
	Err    error
}

// Failed indicates the transaction failed.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Engine performs read/write transactions against the firmware register
// file and tracks the error state.
// A transaction is a critical section, so an Engine may be shared by
// multiple goroutines.
type Engine struct {
	// Addr is the device address, DeviceAddress by default.
	Addr uint16

	bus   Bus
	sleep func(time.Duration)

	lock       sync.Mutex
	closed     bool
	lastFailed bool
	errors     uint64
}

// NewEngine creates an Engine owning the bus.
func NewEngine(bus Bus) *Engine {
	return &Engine{
		Addr:  DeviceAddress,
		bus:   bus,
		sleep: time.Sleep,
	}
}

// LastOperationFailed reports whether the most recent transaction failed.
func (e *Engine) LastOperationFailed() bool {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.lastFailed
}

// CumulativeErrors returns the number of failed steps since creation.
func (e *Engine) CumulativeErrors() uint64 {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.errors
}

// Read selects register address, waits SettleDelay and reads size bytes
// which are decoded using layout.
// A failed select is recorded but the read is still attempted.
// A failed read skips decoding and returns no values.
func (e *Engine) Read(address byte, size int, layout Layout) Result {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.lastFailed = false
	if e.closed {
		return Result{Err: e.fail(address, PhaseSelect, ErrClosed)}
	}

	var errs []error
	if err := e.bus.SendByte(e.Addr, address); err != nil {
		errs = append(errs, e.fail(address, PhaseSelect, err))
	}

	e.sleep(SettleDelay)

	data := make([]byte, size)
	for i := range data {
		b, err := e.bus.ReceiveByte(e.Addr)
		if err != nil {
			errs = append(errs, e.fail(address, PhaseRead, err))
			return Result{Err: errors.Join(errs...)}
		}
		data[i] = b
	}

	values, err := layout.Unpack(data)
	if err != nil {
		errs = append(errs, e.fail(address, PhaseDecode, err))
		return Result{Err: errors.Join(errs...)}
	}
	return Result{Values: values, Err: errors.Join(errs...)}
}

// Write encodes values using layout and writes them as a block starting
// at register address.
func (e *Engine) Write(address byte, layout Layout, values ...interface{}) Result {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.write(address, layout, values...)
}

// WriteSettle is Write followed by SettleDelay, within the same
// transaction so no other transaction starts before the delay ends.
func (e *Engine) WriteSettle(address byte, layout Layout, values ...interface{}) Result {
	e.lock.Lock()
	defer e.lock.Unlock()
	res := e.write(address, layout, values...)
	e.sleep(SettleDelay)
	return res
}

func (e *Engine) write(address byte, layout Layout, values ...interface{}) Result {
	e.lastFailed = false
	if e.closed {
		return Result{Err: e.fail(address, PhaseWrite, ErrClosed)}
	}

	data, err := layout.Pack(values...)
	if err != nil {
		return Result{Err: e.fail(address, PhaseEncode, err)}
	}
	if err = e.bus.WriteBlockData(e.Addr, address, data); err != nil {
		return Result{Err: e.fail(address, PhaseWrite, err)}
	}
	return Result{}
}

// Close closes the bus if it's closable. It waits for the transaction
// in progress, later transactions fail with ErrClosed.
func (e *Engine) Close() error {
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	if closer, ok := e.bus.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// fail must be called with lock held.
func (e *Engine) fail(address byte, phase Phase, err error) error {
	e.errors++
	e.lastFailed = true
	if glog.V(2) {
		glog.Infof("astar: register %d %s failed (errors=%d): %v", address, phase, e.errors, err)
	}
	return &TransactionError{Register: address, Phase: phase, Err: err}
}
