package client

import "github.com/sndkit/synthlink/packet"

// notify registers this client for engine notifications and records the
// client id the engine assigned. Runs once, during New.
func (c *Conn) notify() error {
	req := packet.New(packet.NewMessage(packet.AddrNotify, int32(1)))

	clientID, err := SyncWithFail(c, req, packet.AddrNotify, func(m *packet.Message) (int32, bool) {
		if m.Addr != packet.AddrDone {
			return 0, false
		}
		if cmd, ok := m.StringArg(0); !ok || cmd != packet.AddrNotify {
			return 0, false
		}
		id, _ := m.Int32Arg(1)
		return id, true
	})
	if err != nil {
		return err
	}

	c.clientID = clientID
	c.logger.Debug("notify handshake done", "conn", c.id, "client_id", clientID)
	return nil
}
