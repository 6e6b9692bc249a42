package client

import "github.com/sndkit/synthlink/packet"

// Listener receives every inbound message. A listener exists to hand the
// message to a waiting caller; one that blocks stalls dispatch for the
// whole connection.
type Listener func(*packet.Message)

// ListenerID identifies one registered listener. Ids increase
// monotonically and are never reused within a connection's lifetime.
type ListenerID uint64

// AddListener registers fn for all inbound messages.
func (c *Conn) AddListener(fn Listener) ListenerID {
	c.listenMu.Lock()
	defer c.listenMu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return id
}

// RemoveListener drops a listener. Removing an unknown id is a no-op.
func (c *Conn) RemoveListener(id ListenerID) {
	c.listenMu.Lock()
	defer c.listenMu.Unlock()
	delete(c.listeners, id)
}
