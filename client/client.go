// Package client implements the connection core: a mirror of
// server-relevant state holding the named id allocators, a listener
// registry fanning inbound messages to waiters, and the barrier sync
// protocol built on both.
package client

import (
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/sndkit/synthlink/packet"
)

var (
	ErrConnClosed        = errors.New("connection closed")
	ErrAllocatorNotFound = errors.New("allocator not found")
	ErrNilState          = errors.New("nil state")
)

// Conn is one client connection to the engine. It owns the transport, the
// State installed at construction, and the listener registry; a single
// background goroutine drains inbound packets and fans each message to
// every registered listener.
//
// State and listener registry sit behind separate locks so protocol
// traffic is never serialized behind allocation traffic.
type Conn struct {
	pc packet.Conn

	id       string
	clientID int32
	logger   *slog.Logger

	stateMu sync.Mutex
	state   *State

	listenMu  sync.Mutex
	listeners map[ListenerID]Listener
	nextID    ListenerID

	done      chan struct{}
	onceClose sync.Once
}

// New wraps pc, starts the inbound dispatch loop and performs the notify
// handshake. It returns once the engine has acknowledged the handshake;
// an engine that never replies blocks New until pc fails or is closed.
func New(state *State, pc packet.Conn) (*Conn, error) {
	if state == nil {
		return nil, ErrNilState
	}

	c := &Conn{
		pc:        pc,
		id:        uuid.NewString(),
		logger:    slog.Default(),
		state:     state,
		listeners: make(map[ListenerID]Listener),
		done:      make(chan struct{}),
	}
	go c.readLoop()

	if err := c.notify(); err != nil {
		c.Close()
		return nil, errors.Wrap(err, "notify handshake")
	}
	return c, nil
}

func (c *Conn) SetLogger(l *slog.Logger) {
	if l != nil {
		c.logger = l
	}
}

// ID is a per-connection identifier used in log fields.
func (c *Conn) ID() string { return c.id }

// ClientID is the id the engine assigned during the notify handshake.
func (c *Conn) ClientID() int32 { return c.clientID }

// Send writes one packet to the engine. Safe for concurrent use.
func (c *Conn) Send(p *packet.Packet) error {
	select {
	case <-c.done:
		return ErrConnClosed
	default:
	}
	return c.pc.WritePacket(p)
}

// Close releases the transport and unblocks every waiter with
// ErrConnClosed. Idempotent; any further use of the Conn is undefined.
func (c *Conn) Close() error {
	c.onceClose.Do(func() {
		close(c.done)
		if err := c.pc.Close(); err != nil {
			c.logger.Warn("close transport", "conn", c.id, "error", err)
		}
	})
	return nil
}

// Done is closed when the connection shuts down.
func (c *Conn) Done() <-chan struct{} { return c.done }

// readLoop is the single inbound dispatch path: one packet at a time,
// every message fanned to the listeners before the next read.
func (c *Conn) readLoop() {
	for {
		p, err := c.pc.ReadPacket()
		if err != nil {
			select {
			case <-c.done:
			default:
				c.logger.Warn("read loop stopped", "conn", c.id, "error", err)
			}
			c.Close()
			return
		}
		for _, msg := range p.Messages {
			c.fanout(msg)
		}
	}
}

// fanout invokes every currently registered listener with msg,
// synchronously and in unspecified order. The registry lock is held only
// to snapshot the listeners, never across their invocation.
func (c *Conn) fanout(msg *packet.Message) {
	c.listenMu.Lock()
	snapshot := make([]Listener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		snapshot = append(snapshot, fn)
	}
	c.listenMu.Unlock()

	for _, fn := range snapshot {
		fn(msg)
	}
}
