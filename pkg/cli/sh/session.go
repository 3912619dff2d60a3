package sh

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	fx "github.com/robotalks/astar.go/pkg/framework"
	"github.com/robotalks/astar.go/pkg/l1"
)

// CommandTimeout is the time waiting for the reply of a command.
const CommandTimeout = 2 * time.Second

var errNotConnected = errors.New("not connected")

// Session is an open connection to a controller, with a loop receiving
// its replies and events.
type Session struct {
	Ref  l1.ControllerRef
	Conn l1.ControllerConn

	ctx     context.Context
	cancel  context.CancelFunc
	watch   atomic.Bool
	onEvent func(fx.Message)
}

// OpenSession connects ref using connector and starts the loop.
// Events are passed to onEvent when watching.
func OpenSession(connector l1.Connector, ref l1.ControllerRef, onEvent func(fx.Message)) (*Session, error) {
	s := &Session{Ref: ref, onEvent: onEvent}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	conn, err := connector.Connect(s.ctx, ref)
	if err != nil {
		s.cancel()
		return nil, fmt.Errorf("connect %s: %w", ref, err)
	}
	s.Conn = conn

	loop := fx.NewLoop()
	if adder, ok := conn.(fx.LoopAdder); ok {
		loop.Add(adder)
	}
	loop.AddController(fx.PrLvPostProc, fx.ControlFunc(s.dispatchEvents))
	go loop.Run(s.ctx)
	return s, nil
}

// Close stops the loop and the connection.
func (s *Session) Close() {
	s.cancel()
}

// Watch enables or disables event printing.
func (s *Session) Watch(en bool) {
	s.watch.Store(en)
}

// Watching reports whether events are printed.
func (s *Session) Watching() bool {
	return s.watch.Load()
}

// Do sends a command and waits at most CommandTimeout for the reply.
func (s *Session) Do(msg fx.Message) (fx.Message, error) {
	ctx, cancel := context.WithTimeout(s.ctx, CommandTimeout)
	defer cancel()
	reply, err := l1.Do(ctx, s.Conn, msg)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("%s: no reply in %v", s.Ref, CommandTimeout)
	}
	return reply, err
}

// dispatchEvents drains the events so they don't pile up when not
// watching.
func (s *Session) dispatchEvents(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
		mc.MessageTaken()
		if s.onEvent != nil && s.Watching() {
			s.onEvent(mc.CurrentMessage())
		}
	}))
	return nil
}
