package romi

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/astar.go/pkg/framework"
	"github.com/robotalks/astar.go/pkg/l0/astar"
	"github.com/robotalks/astar.go/pkg/l0/astar/bus/sim"
	"github.com/robotalks/astar.go/pkg/l1"
	l1msgs "github.com/robotalks/astar.go/pkg/l1/msgs"
	"github.com/robotalks/astar.go/pkg/romi/msgs"
)

// gatedBus holds the first select until released.
type gatedBus struct {
	*sim.Device
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (b *gatedBus) SendByte(addr uint16, v byte) error {
	b.once.Do(func() {
		close(b.entered)
		<-b.release
	})
	return b.Device.SendByte(addr, v)
}

type nopRegistrar struct{}

func (nopRegistrar) SendEvent(context.Context, fx.Message) error { return nil }

type recordedCommand struct {
	msg     fx.Message
	replyCh chan fx.Message
}

func (c *recordedCommand) Msg() fx.Message { return c.msg }

func (c *recordedCommand) Done(reply fx.Message) error {
	c.replyCh <- reply
	return nil
}

func TestControllerStopsMotorsAfterInflightCommand(t *testing.T) {
	dev := sim.New()
	bus := &gatedBus{Device: dev, entered: make(chan struct{}), release: make(chan struct{})}
	ctl := NewController(astar.New(bus), nopRegistrar{})

	loop := fx.NewLoop().Add(ctl)
	loop.Interval = time.Hour
	cmd := &recordedCommand{
		msg:     &msgs.MotorsSet{Left: 100, Right: 100},
		replyCh: make(chan fx.Message, 1),
	}
	loop.PostMessage(&l1.CommandMsg{Command: cmd})
	loop.TriggerNext()

	ctx, cancel := context.WithCancel(context.Background())
	doneCh := make(chan error, 1)
	go func() { doneCh <- loop.Run(ctx) }()

	// sensing of the first iteration holds the bus, the command is
	// executed after the loop is canceled.
	<-bus.entered
	cancel()
	close(bus.release)

	select {
	case err := <-doneCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("loop not stopped")
	}
	require.IsType(t, &l1msgs.CommandOK{}, <-cmd.replyCh)
	require.Equal(t, [2]int16{}, dev.Motors())

	ops := dev.Ops()
	last := ops[len(ops)-1]
	require.Equal(t, sim.OpWrite, last.Kind)
	require.Equal(t, astar.RegMotors.Address, last.Reg)

	require.ErrorIs(t, ctl.AStar.Motors(100, 100), astar.ErrClosed)
	require.Equal(t, [2]int16{}, dev.Motors())
}
