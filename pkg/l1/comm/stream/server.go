package stream

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"

	"github.com/golang/glog"

	fx "github.com/robotalks/astar.go/pkg/framework"
	"github.com/robotalks/astar.go/pkg/l1"
	"github.com/robotalks/astar.go/pkg/l1/comm"
)

// ErrNotConnected indicates no peer is connected.
var ErrNotConnected = errors.New("not connected")

// Server accepts L2 connections on a listener and serves one peer at
// a time as a PacketReadWriter. A new connection replaces the current.
type Server struct {
	Listener net.Listener

	lock    sync.Mutex
	cond    *sync.Cond
	current *ReadWriter
	conn    net.Conn
	closed  bool
}

// Listen creates a Server listening on a TCP address.
func Listen(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewServer(ln), nil
}

// NewServer creates a Server with a listener.
func NewServer(ln net.Listener) *Server {
	s := &Server{Listener: ln}
	s.cond = sync.NewCond(&s.lock)
	return s
}

// Run implements Runnable.
func (s *Server) Run(ctx context.Context) error {
	return fx.RunWithContextCloser(ctx, s, func() error {
		for {
			conn, err := s.Listener.Accept()
			if err != nil {
				return err
			}
			glog.Infof("peer %s connected", conn.RemoteAddr())
			s.lock.Lock()
			if s.conn != nil {
				s.conn.Close()
			}
			s.conn, s.current = conn, New(conn)
			s.cond.Broadcast()
			s.lock.Unlock()
		}
	})
}

// ReadPacket implements PacketReader. It blocks until a peer is
// connected, and skips to the next peer when the current one fails.
func (s *Server) ReadPacket() ([]byte, error) {
	for {
		s.lock.Lock()
		for s.current == nil && !s.closed {
			s.cond.Wait()
		}
		if s.closed {
			s.lock.Unlock()
			return nil, io.EOF
		}
		rw := s.current
		s.lock.Unlock()

		pkt, err := rw.ReadPacket()
		if err == nil {
			return pkt, nil
		}
		glog.Infof("peer disconnected: %v", err)
		s.drop(rw)
	}
}

// WritePacket implements PacketWriter.
func (s *Server) WritePacket(pkt []byte) error {
	s.lock.Lock()
	rw := s.current
	s.lock.Unlock()
	if rw == nil {
		return ErrNotConnected
	}
	if err := rw.WritePacket(pkt); err != nil {
		s.drop(rw)
		return err
	}
	return nil
}

// Close implements io.Closer.
func (s *Server) Close() error {
	s.lock.Lock()
	s.closed = true
	if s.conn != nil {
		s.conn.Close()
	}
	s.conn, s.current = nil, nil
	s.cond.Broadcast()
	s.lock.Unlock()
	return s.Listener.Close()
}

func (s *Server) drop(rw *ReadWriter) {
	s.lock.Lock()
	if s.current == rw {
		s.conn.Close()
		s.conn, s.current = nil, nil
	}
	s.lock.Unlock()
}

// Registrar implements l1.Registrar for a directly connected L2 peer.
type Registrar struct {
	comm.Registrar
	Server *Server
}

// NewRegistrar listens on addr for L2 connections.
func NewRegistrar(addr string) (*Registrar, error) {
	s, err := Listen(addr)
	if err != nil {
		return nil, err
	}
	r := &Registrar{Server: s}
	r.Init(s)
	return r, nil
}

// SendEvent implements Registrar. Events are dropped without a peer.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	if err := r.Registrar.SendEvent(ctx, msg); err != nil && !errors.Is(err, ErrNotConnected) {
		return err
	}
	return nil
}

// Connector connects to a Server directly.
type Connector struct {
	Addr string
}

// Discover implements Connector. A direct connection serves exactly
// the controller behind the address, whose ref is unknown.
func (c *Connector) Discover(ctx context.Context) ([]l1.ControllerInfo, error) {
	return nil, nil
}

// Connect implements Connector. The ref is ignored.
func (c *Connector) Connect(ctx context.Context, ref l1.ControllerRef) (l1.ControllerConn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", c.Addr)
	if err != nil {
		return nil, err
	}
	cc := &comm.ControllerConn{}
	cc.Init(New(conn))
	return cc, nil
}
