// Package packet models the command messages exchanged with the synthesis
// engine and their wire framing over stream and websocket transports.
package packet

import "fmt"

// Engine command and reply addresses used by the client core.
const (
	AddrNotify      = "/notify"
	AddrDone        = "/done"
	AddrFail        = "/fail"
	AddrSync        = "/sync"
	AddrSynced      = "/synced"
	AddrStatus      = "/status"
	AddrStatusReply = "/status.reply"
)

// Message is one engine command: an address pattern plus typed arguments.
// Supported argument types are int32, float32, string and []byte.
type Message struct {
	Addr string
	Args []any
}

func NewMessage(addr string, args ...any) *Message {
	return &Message{Addr: addr, Args: args}
}

// Int32Arg returns argument i as an int32.
func (m *Message) Int32Arg(i int) (int32, bool) {
	if i < 0 || i >= len(m.Args) {
		return 0, false
	}
	v, ok := m.Args[i].(int32)
	return v, ok
}

// Float32Arg returns argument i as a float32.
func (m *Message) Float32Arg(i int) (float32, bool) {
	if i < 0 || i >= len(m.Args) {
		return 0, false
	}
	v, ok := m.Args[i].(float32)
	return v, ok
}

// StringArg returns argument i as a string.
func (m *Message) StringArg(i int) (string, bool) {
	if i < 0 || i >= len(m.Args) {
		return "", false
	}
	v, ok := m.Args[i].(string)
	return v, ok
}

func (m *Message) String() string {
	return fmt.Sprintf("%s%v", m.Addr, m.Args)
}

// Packet is an ordered batch of messages sent to the engine as one unit.
// A single command is a one-element packet; the engine processes a
// packet's messages in order.
type Packet struct {
	Messages []*Message
}

func New(msgs ...*Message) *Packet {
	return &Packet{Messages: msgs}
}

// Append returns a new Packet with msg as its last element. The receiver
// is left untouched, so a shared request can be augmented safely.
func (p *Packet) Append(msg *Message) *Packet {
	msgs := make([]*Message, 0, len(p.Messages)+1)
	msgs = append(msgs, p.Messages...)
	msgs = append(msgs, msg)
	return &Packet{Messages: msgs}
}
