package packet

import "net"

// Pipe returns a connected pair of packet Conns over an in-memory duplex
// link. Used by tests to stand up a fake engine without a network.
func Pipe() (Conn, Conn) {
	c1, c2 := net.Pipe()
	return NewWithConn(c1), NewWithConn(c2)
}
