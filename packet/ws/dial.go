package ws

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"

	"github.com/sndkit/synthlink/packet"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// Dial connects to a websocket endpoint and returns it as a packet.Conn.
func Dial(url string) (packet.Conn, error) {
	wsconn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "ws dial %q", url)
	}
	return NewConn(wsconn), nil
}

// Upgrade turns an incoming HTTP request into a packet.Conn. Used by
// engine-side gateways and by tests.
func Upgrade(w http.ResponseWriter, r *http.Request) (packet.Conn, error) {
	wsconn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, errors.Wrap(err, "ws upgrade")
	}
	return NewConn(wsconn), nil
}
