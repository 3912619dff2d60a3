package comm

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/astar.go/pkg/framework"
	"github.com/robotalks/astar.go/pkg/l1"
	"github.com/robotalks/astar.go/pkg/l1/msgs"
)

const (
	testCmdTypeID     = msgs.GroupCustom | 0x0001
	testEventTypeID   = msgs.GroupCustom | msgs.TypeIDKindEvent | 0x0001
	testUnknownTypeID = msgs.GroupCustom | 0x00ff
)

type testCmd struct {
	Val uint32 `protobuf:"varint,1,opt,name=val,proto3" json:"val,omitempty"`
}

func (m *testCmd) NewMessage() fx.Message      { return &testCmd{} }
func (m *testCmd) TypeID() uint32              { return testCmdTypeID }
func (m *testCmd) Serializable() proto.Message { return m }
func (m *testCmd) ProtoMessage()               {}
func (m *testCmd) Reset()                      { *m = testCmd{} }
func (m *testCmd) String() string              { return proto.CompactTextString(m) }

type testEvent struct {
	Val uint32 `protobuf:"varint,1,opt,name=val,proto3" json:"val,omitempty"`
}

func (m *testEvent) NewMessage() fx.Message      { return &testEvent{} }
func (m *testEvent) TypeID() uint32              { return testEventTypeID }
func (m *testEvent) Serializable() proto.Message { return m }
func (m *testEvent) ProtoMessage()               {}
func (m *testEvent) Reset()                      { *m = testEvent{} }
func (m *testEvent) String() string              { return proto.CompactTextString(m) }

// testUnknown is never registered.
type testUnknown struct {
	testCmd
}

func (m *testUnknown) TypeID() uint32              { return testUnknownTypeID }
func (m *testUnknown) Serializable() proto.Message { return &m.testCmd }

func init() {
	msgs.MessageTypes[testCmdTypeID] = (*testCmd)(nil)
	msgs.MessageTypes[testEventTypeID] = (*testEvent)(nil)
}

type chanPackets struct {
	in     <-chan []byte
	out    chan<- []byte
	closed chan struct{}
	once   sync.Once
}

func packetPair() (*chanPackets, *chanPackets) {
	a2b, b2a := make(chan []byte, 16), make(chan []byte, 16)
	return &chanPackets{in: b2a, out: a2b, closed: make(chan struct{})},
		&chanPackets{in: a2b, out: b2a, closed: make(chan struct{})}
}

func (c *chanPackets) ReadPacket() ([]byte, error) {
	select {
	case pkt := <-c.in:
		return pkt, nil
	case <-c.closed:
		return nil, io.EOF
	}
}

func (c *chanPackets) WritePacket(pkt []byte) error {
	select {
	case c.out <- pkt:
		return nil
	case <-c.closed:
		return io.ErrClosedPipe
	}
}

func (c *chanPackets) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

type commTestEnv struct {
	registrar Registrar
	conn      ControllerConn
	events    chan fx.Message
	cancel    context.CancelFunc
}

func newCommTestEnv(t *testing.T) *commTestEnv {
	ctlSide, connSide := packetPair()
	env := &commTestEnv{events: make(chan fx.Message, 4)}
	env.registrar.Init(ctlSide)
	env.conn.Init(connSide)

	ctlLoop := fx.NewLoop().Add(&env.registrar, &UnsupportedCommands{})
	ctlLoop.AddController(fx.PrLvControl, fx.ControlFunc(func(cc fx.ControlContext) error {
		cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
			cmd, ok := mc.CurrentMessage().(*l1.CommandMsg)
			if !ok {
				return
			}
			if m, ok := cmd.Command.Msg().(*testCmd); ok && m.Val == 1 {
				mc.MessageTaken()
				require.NoError(t, cmd.Command.Done(msgs.NewCommandOK()))
				require.ErrorIs(t, cmd.Command.Done(msgs.NewCommandOK()), ErrCommandDone)
			}
		}))
		return nil
	}))

	connLoop := fx.NewLoop().Add(&env.conn)
	connLoop.AddController(fx.PrLvControl, fx.ControlFunc(func(cc fx.ControlContext) error {
		cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
			mc.MessageTaken()
			env.events <- mc.CurrentMessage()
		}))
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	env.cancel = cancel
	go ctlLoop.Run(ctx)
	go connLoop.Run(ctx)
	return env
}

func (e *commTestEnv) do(t *testing.T, msg fx.Message) (fx.Message, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	reply, err := l1.Do(ctx, &e.conn, msg)
	require.NotErrorIs(t, err, context.DeadlineExceeded)
	return reply, err
}

func TestCommands(t *testing.T) {
	env := newCommTestEnv(t)
	defer env.cancel()

	reply, err := env.do(t, &testCmd{Val: 1})
	require.NoError(t, err)
	require.IsType(t, &msgs.CommandOK{}, reply)

	_, err = env.do(t, &testCmd{Val: 2})
	require.EqualError(t, err, msgs.ErrUnsupportedCommand.Error())

	_, err = env.do(t, &testUnknown{testCmd{Val: 1}})
	require.ErrorContains(t, err, "unknown type")

	require.Zero(t, env.conn.Pending())
}

func TestEvents(t *testing.T) {
	env := newCommTestEnv(t)
	defer env.cancel()

	require.NoError(t, env.registrar.SendEvent(context.Background(), &testEvent{Val: 5}))
	select {
	case msg := <-env.events:
		require.Equal(t, uint32(5), msg.(*testEvent).Val)
	case <-time.After(time.Second):
		t.Fatal("event not received")
	}

	err := env.registrar.SendEvent(context.Background(), &testCmd{})
	require.ErrorIs(t, err, ErrNotEvent)
}

func TestPipeSendErrors(t *testing.T) {
	a, _ := packetPair()
	p := NewPipe(a)
	require.ErrorIs(t, p.SendCommandMsg(&testEvent{}, 1), ErrNotCommand)
	require.ErrorIs(t, p.SendEventMsg(&l1.CommandMsg{}), msgs.ErrNotSerializable)
	require.NoError(t, p.Close())
	require.ErrorIs(t, p.SendEventMsg(&testEvent{}), io.ErrClosedPipe)
}

func TestPipeStopsOnCancel(t *testing.T) {
	a, _ := packetPair()
	p := NewPipe(a)
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx) }()
	cancel()
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("pipe not stopped")
	}
}

func TestControllerConnExpiration(t *testing.T) {
	a, _ := packetPair()
	var conn ControllerConn
	conn.Init(a)
	f := conn.DoCommand(&testCmd{Val: 1})
	require.Equal(t, 1, conn.Pending())

	conn.PurgeExpired(time.Now())
	require.Equal(t, 1, conn.Pending(), "not expired yet")

	conn.PurgeExpired(time.Now().Add(2 * DefaultCommandExpiration))
	require.Zero(t, conn.Pending())
	res, ok := <-f.ResultChan()
	require.True(t, ok)
	require.ErrorIs(t, res.Err, context.DeadlineExceeded)
}

func TestRegistrarMux(t *testing.T) {
	a, b := packetPair()
	var r1, r2 Registrar
	r1.Init(a)
	r2.Init(b)
	a.Close()
	var mux RegistrarMux
	mux.Add(&r1, &r2)
	err := mux.SendEvent(context.Background(), &testEvent{})
	require.ErrorIs(t, err, io.ErrClosedPipe)
}
