package ws

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/sndkit/synthlink/packet"
)

type wsWriter struct {
	mu     sync.Mutex
	wsconn *websocket.Conn
}

func NewWriter(wsconn *websocket.Conn) packet.Writer {
	return &wsWriter{wsconn: wsconn}
}

func (w *wsWriter) WritePacket(p *packet.Packet) error {
	data, err := packet.Marshal(p)
	if err != nil {
		return err
	}

	// gorilla/websocket allows at most one concurrent writer.
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.wsconn.WriteMessage(websocket.BinaryMessage, data)
}
