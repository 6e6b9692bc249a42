package client

import (
	"fmt"

	"github.com/sndkit/synthlink/packet"
)

// Matcher inspects one inbound message and, on a match, extracts the
// value a waiter is blocked on.
type Matcher[T any] func(*packet.Message) (T, bool)

// CommandError is the engine's /fail reply to a named command.
type CommandError struct {
	Cmd    string
	Reason string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("engine rejected %s: %s", e.Cmd, e.Reason)
}

// SyncWith sends req and blocks until an inbound message satisfies match,
// returning the extracted value. Exactly one fulfillment is consumed; the
// waiter is deregistered on every exit path. There is no timeout: an
// unresponsive engine blocks the caller until the connection closes, at
// which point ErrConnClosed is returned.
func SyncWith[T any](c *Conn, req *packet.Packet, match Matcher[T]) (T, error) {
	var zero T

	cell := make(chan T, 1)
	id := c.AddListener(func(m *packet.Message) {
		if v, ok := match(m); ok {
			select {
			case cell <- v:
			default: // already fulfilled
			}
		}
	})
	defer c.RemoveListener(id)

	if err := c.Send(req); err != nil {
		return zero, err
	}

	select {
	case v := <-cell:
		return v, nil
	case <-c.done:
		return zero, ErrConnClosed
	}
}

// result pairs a reply value with the failure the engine reported
// instead, so one wait cell carries either outcome.
type result[T any] struct {
	val T
	err error
}

// SyncWithFail behaves like SyncWith but also watches for the engine's
// /fail reply to cmd, surfacing it as a *CommandError rather than
// blocking forever on a request the engine rejected.
func SyncWithFail[T any](c *Conn, req *packet.Packet, cmd string, match Matcher[T]) (T, error) {
	res, err := SyncWith(c, req, func(m *packet.Message) (result[T], bool) {
		if v, ok := match(m); ok {
			return result[T]{val: v}, true
		}
		if m.Addr == packet.AddrFail {
			if got, ok := m.StringArg(0); ok && got == cmd {
				reason, _ := m.StringArg(1)
				return result[T]{err: &CommandError{Cmd: cmd, Reason: reason}}, true
			}
		}
		return result[T]{}, false
	})
	if err != nil {
		var zero T
		return zero, err
	}
	if res.err != nil {
		var zero T
		return zero, res.err
	}
	return res.val, nil
}

// SyncWithAll sends req and collects one value per matcher. Arrivals are
// buffered, so no notification is lost even if several land before the
// caller drains them. Results come back in arrival order, which is
// unrelated to the order of matchers.
func SyncWithAll[T any](c *Conn, req *packet.Packet, matchers []Matcher[T]) ([]T, error) {
	n := len(matchers)
	queue := make(chan T, n)

	ids := make([]ListenerID, 0, n)
	for _, match := range matchers {
		match := match
		fulfilled := false
		ids = append(ids, c.AddListener(func(m *packet.Message) {
			// Dispatch is single-threaded, so the flag needs no lock.
			if fulfilled {
				return
			}
			if v, ok := match(m); ok {
				fulfilled = true
				queue <- v
			}
		}))
	}
	defer func() {
		for _, id := range ids {
			c.RemoveListener(id)
		}
	}()

	if err := c.Send(req); err != nil {
		return nil, err
	}

	out := make([]T, 0, n)
	for len(out) < n {
		select {
		case v := <-queue:
			out = append(out, v)
		case <-c.done:
			return nil, ErrConnClosed
		}
	}
	return out, nil
}
