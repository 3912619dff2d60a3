// Package romi exposes an A-Star on a Romi chassis as an L1 controller.
package romi

import (
	"fmt"
	"reflect"

	"github.com/golang/glog"

	fx "github.com/robotalks/astar.go/pkg/framework"
	"github.com/robotalks/astar.go/pkg/l0/astar"
	"github.com/robotalks/astar.go/pkg/l0/astar/bus/sim"
	"github.com/robotalks/astar.go/pkg/l1"
	l1msgs "github.com/robotalks/astar.go/pkg/l1/msgs"
	"github.com/robotalks/astar.go/pkg/romi/msgs"
)

// ControllerType is the L1 controller type.
const ControllerType = "romi"

// Controller senses the A-Star every loop iteration, executes
// commands from L2 and publishes sensor changes as events.
type Controller struct {
	AStar     *astar.AStar
	Registrar l1.Registrar
	MaxSpeed  int16
	// Sim is stepped with the loop if not nil.
	Sim *sim.Device

	sensors   *msgs.Sensors
	published *msgs.Sensors
}

// NewController creates a Controller.
func NewController(a *astar.AStar, reg l1.Registrar) *Controller {
	return &Controller{AStar: a, Registrar: reg, MaxSpeed: DefaultMaxSpeed}
}

// AddToLoop implements LoopAdder. The motors are stopped and the bus is
// released once the loop has finished its last iteration.
func (c *Controller) AddToLoop(loop *fx.Loop) {
	if c.Sim != nil {
		loop.AddRunnable(fx.NamedRun("sim", c.Sim))
	}
	loop.AddController(fx.PrLvSense, fx.ControlFunc(c.sense))
	loop.AddController(fx.PrLvControl, c)
	loop.AddController(fx.PrLvPostProc, fx.ControlFunc(c.notifySensors))
	loop.OnStop(c.shutdown)
}

func (c *Controller) shutdown() {
	if err := c.AStar.Motors(0, 0); err != nil {
		glog.Errorf("stop motors: %v", err)
	}
	if err := c.AStar.Close(); err != nil {
		glog.Errorf("close bus: %v", err)
	}
}

// Control implements Controller.
func (c *Controller) Control(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		cmd, ok := mctx.CurrentMessage().(*l1.CommandMsg)
		if !ok {
			return
		}
		reply, ok := c.execute(cmd.Command.Msg())
		if !ok {
			return
		}
		mctx.MessageTaken()
		if err := cmd.Command.Done(reply); err != nil {
			glog.Warningf("reply %s: %v", reflect.Indirect(reflect.ValueOf(reply)).Type().Name(), err)
		}
	}))
	return nil
}

func (c *Controller) execute(msg fx.Message) (fx.Message, bool) {
	switch m := msg.(type) {
	case *msgs.LedsSet:
		return result(c.AStar.Leds(ledValue(m.Red), ledValue(m.Yellow), ledValue(m.Green))), true
	case *msgs.MotorsSet:
		return result(c.AStar.Motors(c.clampSpeed(m.Left), c.clampSpeed(m.Right))), true
	case *msgs.NotesPlay:
		return result(c.AStar.PlayNotes(m.Notes)), true
	case *msgs.SensorsQuery:
		if c.sensors == nil {
			c.sensors = c.readSensors()
		}
		return &msgs.SensorsReply{Sensors: c.sensors}, true
	case *msgs.BusStatsQuery:
		return &msgs.BusStats{
			CumulativeErrors:    c.AStar.CumulativeErrors(),
			LastOperationFailed: c.AStar.LastOperationFailed(),
		}, true
	case *msgs.ProbeRead:
		var data []byte
		var err error
		switch m.Size {
		case 0, 8:
			data, err = c.AStar.ProbeRead8()
		case 32:
			data, err = c.AStar.ProbeRead32()
		default:
			err = fmt.Errorf("probe size must be 8 or 32, got %d", m.Size)
		}
		if err != nil {
			return l1msgs.NewCommandErr(err), true
		}
		return &msgs.ProbeData{Data: data}, true
	}
	return nil, false
}

func result(err error) fx.Message {
	if err != nil {
		return l1msgs.NewCommandErr(err)
	}
	return l1msgs.NewCommandOK()
}

func ledValue(v uint32) uint8 {
	if v > 0xff {
		return 0xff
	}
	return uint8(v)
}

func (c *Controller) clampSpeed(speed int32) int16 {
	limit := int32(c.MaxSpeed)
	switch {
	case speed > limit:
		return int16(limit)
	case speed < -limit:
		return int16(-limit)
	}
	return int16(speed)
}

func (c *Controller) readSensors() *msgs.Sensors {
	s, err := c.AStar.Snapshot()
	sensors := &msgs.Sensors{
		Buttons:           s.Buttons[:],
		BatteryMillivolts: uint32(s.BatteryMillivolts),
		Analog:            make([]uint32, len(s.Analog)),
		Encoders:          []int32{int32(s.Encoders[0]), int32(s.Encoders[1])},
		Failed:            err != nil,
	}
	for n, v := range s.Analog {
		sensors.Analog[n] = uint32(v)
	}
	if err != nil {
		if c.sensors == nil || !c.sensors.Failed {
			glog.Warningf("sensing failed: %v", err)
		} else {
			glog.V(2).Infof("sensing failed: %v", err)
		}
	}
	return sensors
}

func (c *Controller) sense(cc fx.ControlContext) error {
	c.sensors = c.readSensors()
	return nil
}

func (c *Controller) notifySensors(cc fx.ControlContext) error {
	if c.sensors == nil || (c.published != nil && sameSensors(c.sensors, c.published)) {
		return nil
	}
	c.published = c.sensors
	return c.Registrar.SendEvent(cc.Context(), c.sensors)
}

func sameSensors(a, b *msgs.Sensors) bool {
	return a.Failed == b.Failed &&
		a.BatteryMillivolts == b.BatteryMillivolts &&
		reflect.DeepEqual(a.Buttons, b.Buttons) &&
		reflect.DeepEqual(a.Analog, b.Analog) &&
		reflect.DeepEqual(a.Encoders, b.Encoders)
}
