package romi

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/astar.go/pkg/framework"
	"github.com/robotalks/astar.go/pkg/l0/astar"
	"github.com/robotalks/astar.go/pkg/l0/astar/bus/sim"
	"github.com/robotalks/astar.go/pkg/l1"
	"github.com/robotalks/astar.go/pkg/l1/comm"
	"github.com/robotalks/astar.go/pkg/l1/comm/stream"
	l1msgs "github.com/robotalks/astar.go/pkg/l1/msgs"
	"github.com/robotalks/astar.go/pkg/romi/msgs"
)

type controllerTestEnv struct {
	dev    *sim.Device
	ctl    *Controller
	conn   comm.ControllerConn
	events chan *msgs.Sensors
	cancel context.CancelFunc
	done   chan struct{}
}

func newControllerTestEnv(t *testing.T) *controllerTestEnv {
	ctlSide, connSide := net.Pipe()
	env := &controllerTestEnv{
		dev:    sim.New(),
		events: make(chan *msgs.Sensors, 64),
		done:   make(chan struct{}),
	}
	var reg comm.Registrar
	reg.Init(stream.New(ctlSide))
	env.ctl = NewController(astar.New(env.dev), &reg)

	loop := fx.NewLoop().Add(&reg, env.ctl, &comm.UnsupportedCommands{})
	loop.Interval = 10 * time.Millisecond

	env.conn.Init(stream.New(connSide))
	connLoop := fx.NewLoop().Add(&env.conn)
	connLoop.AddController(fx.PrLvControl, fx.ControlFunc(func(cc fx.ControlContext) error {
		cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
			if s, ok := mc.CurrentMessage().(*msgs.Sensors); ok {
				mc.MessageTaken()
				select {
				case env.events <- s:
				default:
				}
			}
		}))
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	env.cancel = cancel
	go func() {
		loop.Run(ctx)
		close(env.done)
	}()
	go connLoop.Run(ctx)
	t.Cleanup(env.stop)
	return env
}

func (e *controllerTestEnv) stop() {
	e.cancel()
	<-e.done
}

func (e *controllerTestEnv) do(t *testing.T, msg fx.Message) (fx.Message, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	reply, err := l1.Do(ctx, &e.conn, msg)
	require.NotErrorIs(t, err, context.DeadlineExceeded)
	return reply, err
}

func (e *controllerTestEnv) waitEvent(t *testing.T, match func(*msgs.Sensors) bool) *msgs.Sensors {
	timeout := time.After(2 * time.Second)
	for {
		select {
		case s := <-e.events:
			if match(s) {
				return s
			}
		case <-timeout:
			t.Fatal("expected sensors event not received")
			return nil
		}
	}
}

func TestControllerCommands(t *testing.T) {
	env := newControllerTestEnv(t)

	testCases := []struct {
		name   string
		msg    fx.Message
		verify func(t *testing.T)
	}{
		{
			"leds",
			&msgs.LedsSet{Red: 1, Green: 1},
			func(t *testing.T) { require.Equal(t, [3]uint8{1, 0, 1}, env.dev.Leds()) },
		},
		{
			"motors",
			&msgs.MotorsSet{Left: 150, Right: -150},
			func(t *testing.T) { require.Equal(t, [2]int16{150, -150}, env.dev.Motors()) },
		},
		{
			"motors clamped",
			&msgs.MotorsSet{Left: 1000, Right: -40000},
			func(t *testing.T) { require.Equal(t, [2]int16{300, -300}, env.dev.Motors()) },
		},
		{
			"notes",
			&msgs.NotesPlay{Notes: "l16ceg"},
			func(t *testing.T) {
				notes, ok := env.dev.Notes()
				require.True(t, ok)
				require.Equal(t, "l16ceg", notes)
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reply, err := env.do(t, tc.msg)
			require.NoError(t, err)
			require.IsType(t, &l1msgs.CommandOK{}, reply)
			tc.verify(t)
		})
	}
}

func TestControllerQueries(t *testing.T) {
	env := newControllerTestEnv(t)
	env.dev.SetButtons(false, true, false)
	env.dev.SetAnalog([6]uint16{1, 2, 3, 4, 5, 6})
	env.dev.SetEncoders(-10, 20)

	require.Eventually(t, func() bool {
		reply, err := env.do(t, &msgs.SensorsQuery{})
		if err != nil {
			return false
		}
		s := reply.(*msgs.SensorsReply).Sensors
		return s != nil && len(s.Buttons) == 3 && s.Buttons[1]
	}, 2*time.Second, 20*time.Millisecond)

	reply, err := env.do(t, &msgs.SensorsQuery{})
	require.NoError(t, err)
	s := reply.(*msgs.SensorsReply).Sensors
	require.Equal(t, []bool{false, true, false}, s.Buttons)
	require.Equal(t, uint32(sim.DefaultBatteryMillivolts), s.BatteryMillivolts)
	require.Equal(t, []uint32{1, 2, 3, 4, 5, 6}, s.Analog)
	require.Equal(t, []int32{-10, 20}, s.Encoders)
	require.False(t, s.Failed)

	reply, err = env.do(t, &msgs.BusStatsQuery{})
	require.NoError(t, err)
	require.Equal(t, &msgs.BusStats{}, reply)

	reply, err = env.do(t, &msgs.ProbeRead{Size: 32})
	require.NoError(t, err)
	require.Len(t, reply.(*msgs.ProbeData).Data, 32)

	_, err = env.do(t, &msgs.ProbeRead{Size: 5})
	require.ErrorContains(t, err, "probe size")
}

func TestControllerBusFailure(t *testing.T) {
	env := newControllerTestEnv(t)
	env.dev.Fail(sim.OpWrite, int(astar.RegMotors.Address))

	_, err := env.do(t, &msgs.MotorsSet{Left: 100, Right: 100})
	require.Error(t, err)
	require.IsType(t, &l1msgs.CommandErr{}, err)
	require.Contains(t, err.Error(), "register 6 write")

	reply, err := env.do(t, &msgs.BusStatsQuery{})
	require.NoError(t, err)
	require.GreaterOrEqual(t, reply.(*msgs.BusStats).CumulativeErrors, uint64(1))

	env.dev.Fail(sim.OpReceive, sim.AnyRegister)
	s := env.waitEvent(t, func(s *msgs.Sensors) bool { return s.Failed })
	require.Zero(t, s.BatteryMillivolts, "sentinel")
}

func TestControllerSensorsEvents(t *testing.T) {
	env := newControllerTestEnv(t)
	env.waitEvent(t, func(s *msgs.Sensors) bool { return !s.Failed })

	env.dev.SetButtons(true, false, false)
	s := env.waitEvent(t, func(s *msgs.Sensors) bool { return len(s.Buttons) == 3 && s.Buttons[0] })
	require.Equal(t, []bool{true, false, false}, s.Buttons)
}

func TestControllerStopsMotors(t *testing.T) {
	env := newControllerTestEnv(t)
	_, err := env.do(t, &msgs.MotorsSet{Left: 100, Right: 100})
	require.NoError(t, err)
	require.Equal(t, [2]int16{100, 100}, env.dev.Motors())
	env.stop()
	require.Equal(t, [2]int16{}, env.dev.Motors())
}

func TestClampSpeed(t *testing.T) {
	ctl := &Controller{MaxSpeed: 300}
	testCases := []struct {
		in  int32
		out int16
	}{
		{0, 0},
		{300, 300},
		{301, 300},
		{-301, -300},
		{-100, -100},
		{1 << 20, 300},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.out, ctl.clampSpeed(tc.in), "%d", tc.in)
	}
	require.Equal(t, uint8(0xff), ledValue(1000))
	require.Equal(t, uint8(1), ledValue(1))
}
