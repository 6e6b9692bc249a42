package ws

import (
	"github.com/gorilla/websocket"

	"github.com/sndkit/synthlink/packet"
)

type wsReader struct {
	wsconn *websocket.Conn
}

func NewReader(wsconn *websocket.Conn) packet.Reader {
	return &wsReader{wsconn: wsconn}
}

// ReadPacket blocks for the next binary websocket message and decodes it.
// Non-binary messages are skipped.
func (r *wsReader) ReadPacket() (*packet.Packet, error) {
	for {
		mt, data, err := r.wsconn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if mt != websocket.BinaryMessage {
			continue
		}
		return packet.Unmarshal(data)
	}
}
