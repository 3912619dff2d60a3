// Package l1 defines how L2 components talk to L1 controllers.
//
// An L1 controller (e.g. astard driving the A-Star board) owns the
// hardware and runs a loop. It is published by a Registrar which turns
// received commands into CommandMsg in the loop. L2 components find
// controllers with a Connector and send commands over a ControllerConn.
package l1

import (
	"context"
	"fmt"
	"strings"

	fx "github.com/robotalks/astar.go/pkg/framework"
)

// ControllerRef identifies a controller as TYPE/ID.
type ControllerRef struct {
	// Type is what the controller drives, e.g. romi.
	Type string
	// ID is unique among controllers of the same type.
	ID string
}

// ParseControllerRef parses TYPE/ID.
func ParseControllerRef(s string) (ControllerRef, error) {
	typ, id, ok := strings.Cut(s, "/")
	ref := ControllerRef{Type: typ, ID: id}
	if !ok || !ref.IsValid() || strings.Contains(id, "/") {
		return ControllerRef{}, fmt.Errorf("invalid controller %q, expect TYPE/ID", s)
	}
	return ref, nil
}

// String returns TYPE/ID.
func (r ControllerRef) String() string {
	return r.Type + "/" + r.ID
}

// IsValid reports whether both Type and ID are present.
func (r ControllerRef) IsValid() bool {
	return r.Type != "" && r.ID != ""
}

// ControllerMeta is published along with a controller for discovery.
type ControllerMeta struct {
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// ControllerInfo is a discovered or published controller.
type ControllerInfo struct {
	Ref  ControllerRef
	Meta ControllerMeta
}

// Registrar is the controller side of the connection.
type Registrar interface {
	// SendEvent publishes an event to connected L2 components.
	SendEvent(context.Context, fx.Message) error
}

// Command is a received command waiting for its reply.
type Command interface {
	Msg() fx.Message
	// Done sends the reply: CommandOK, CommandErr or a reply message.
	// A command is replied only once.
	Done(fx.Message) error
}

// CommandMsg carries a Command in the loop.
type CommandMsg struct {
	Command Command
}

// NewMessage implements Message.
func (m *CommandMsg) NewMessage() fx.Message { return &CommandMsg{} }

// Connector is the L2 side entry.
type Connector interface {
	// Discover lists the published controllers.
	Discover(context.Context) ([]ControllerInfo, error)
	// Connect opens a connection to the controller.
	Connect(context.Context, ControllerRef) (ControllerConn, error)
}

// ControllerConn sends commands to a controller.
type ControllerConn interface {
	DoCommand(fx.Message) CommandFuture
}

// Result is the reply of a command. A CommandErr reply is also set
// as Err.
type Result struct {
	Msg fx.Message
	Err error
}

// CommandFuture delivers exactly one Result.
type CommandFuture interface {
	ResultChan() <-chan Result
}

// Do sends a command and waits for the reply or ctx.
func Do(ctx context.Context, conn ControllerConn, msg fx.Message) (fx.Message, error) {
	select {
	case res := <-conn.DoCommand(msg).ResultChan():
		return res.Msg, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
