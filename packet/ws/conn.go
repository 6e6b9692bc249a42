// Package ws carries packets over a websocket connection, one binary
// websocket message per packet. Websockets deliver messages in order, so
// the client's barrier sync guarantee holds over this transport.
package ws

import (
	"net"

	"github.com/gorilla/websocket"

	"github.com/sndkit/synthlink/packet"
)

type connImpl struct {
	raw    net.Conn
	closer interface{ Close() error }
	packet.Reader
	packet.Writer
}

// NewConn wraps a websocket.Conn as a packet.Conn.
func NewConn(wsconn *websocket.Conn) packet.Conn {
	return &connImpl{
		raw:    wsconn.UnderlyingConn(),
		closer: wsconn,
		Reader: NewReader(wsconn),
		Writer: NewWriter(wsconn),
	}
}

func (c *connImpl) Close() error      { return c.closer.Close() }
func (c *connImpl) RawConn() net.Conn { return c.raw }
