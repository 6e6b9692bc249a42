package packet

import (
	"io"
	"net"
)

// Conn sends and receives whole packets over some transport. The
// transport's delivery-order properties decide whether the client's
// barrier sync guarantee holds; see client.Conn.Sync.
type Conn interface {
	io.Closer
	Reader
	Writer
	RawConn() net.Conn
}

type connImpl struct {
	raw net.Conn
	io.Closer
	Reader
	Writer
}

// NewWithConn frames packets over a stream connection.
func NewWithConn(conn net.Conn) Conn {
	return &connImpl{
		raw:    conn,
		Closer: conn,
		Reader: NewConnReader(conn),
		Writer: NewConnWriter(conn),
	}
}

func (impl *connImpl) RawConn() net.Conn {
	return impl.raw
}
