// Package synthlink is the client-side resource-management and
// synchronization core for a network-addressable synthesis engine: id
// allocators for the engine's numeric resource spaces and a connection
// layer with one-shot/multi-shot waiters and a barrier sync protocol.
package synthlink

import (
	"net"

	"github.com/sndkit/synthlink/client"
	"github.com/sndkit/synthlink/packet"
)

const Version = "0.1.0"

type Conn = client.Conn
type State = client.State
type Message = packet.Message
type Packet = packet.Packet

// NewState returns a State preloaded with the sync-token allocator.
func NewState() *State { return client.NewState() }

// Dial connects to an engine over a stream transport and performs the
// notify handshake.
func Dial(network, addr string, state *State) (*Conn, error) {
	conn, err := net.Dial(network, addr)
	if err != nil {
		return nil, err
	}
	return client.New(state, packet.NewWithConn(conn))
}
