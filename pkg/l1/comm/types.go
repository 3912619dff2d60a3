// Package comm carries L1 Typed messages over any packet transport.
//
// A Pipe encodes and dispatches messages on a PacketReadWriter. Registrar
// serves the controller side: commands go into the loop and replies come
// back through Command.Done. ControllerConn serves the L2 side: it
// matches replies to commands by sequence and hands out events.
// The transports are in the subpackages: stream for TCP and mqtt for a
// broker.
package comm

// PacketReader returns one whole packet per call. An error ends the Pipe.
type PacketReader interface {
	ReadPacket() ([]byte, error)
}

// PacketWriter sends one whole packet per call. Calls are serialized by
// the Pipe.
type PacketWriter interface {
	WritePacket([]byte) error
}

// PacketReadWriter is a packet transport. If it also implements
// io.Closer, the Pipe closes it when stopped.
type PacketReadWriter interface {
	PacketReader
	PacketWriter
}
