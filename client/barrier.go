package client

import (
	"github.com/sndkit/synthlink/idalloc"
	"github.com/sndkit/synthlink/packet"
)

// Sync sends req with a barrier marker appended as its last message and
// returns once the engine reports the barrier reached. The marker token
// is drawn from the SyncAllocator and released after the reply, success
// or not.
//
// Provided the transport delivers requests to the engine in the order
// sent and the engine processes a packet's messages in order, every
// effect requested before the marker has been applied server-side by the
// time Sync returns. This guarantee does not hold over a transport
// without in-order delivery.
func (c *Conn) Sync(req *packet.Packet) error {
	token, err := WithAllocator(c, SyncAllocator, func(a idalloc.Allocator[int32]) (int32, error) {
		return a.Alloc()
	})
	if err != nil {
		return err
	}
	defer func() {
		if _, err := WithAllocator(c, SyncAllocator, func(a idalloc.Allocator[int32]) (struct{}, error) {
			return struct{}{}, a.Free(token)
		}); err != nil {
			c.logger.Warn("release sync token", "conn", c.id, "token", token, "error", err)
		}
	}()

	marked := req.Append(packet.NewMessage(packet.AddrSync, token))
	_, err = SyncWith(c, marked, func(m *packet.Message) (struct{}, bool) {
		if m.Addr != packet.AddrSynced {
			return struct{}{}, false
		}
		got, ok := m.Int32Arg(0)
		return struct{}{}, ok && got == token
	})
	return err
}

// UnsafeSync waits for a barrier with no preceding effects. It only
// proves the marker itself was processed in order, not that earlier,
// separately sent requests were; treat it as unreliable even for that
// purpose.
func (c *Conn) UnsafeSync() error {
	return c.Sync(packet.New())
}
