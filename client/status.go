package client

import "github.com/sndkit/synthlink/packet"

// ServerStatus is a snapshot of the engine's load counters.
type ServerStatus struct {
	ActiveUnits  int32
	ActiveSynths int32
	ActiveGroups int32
	LoadedDefs   int32
	AvgCPU       float32
	PeakCPU      float32
}

// Status queries the engine's counters with a status round trip.
func (c *Conn) Status() (*ServerStatus, error) {
	req := packet.New(packet.NewMessage(packet.AddrStatus))

	return SyncWithFail(c, req, packet.AddrStatus, func(m *packet.Message) (*ServerStatus, bool) {
		if m.Addr != packet.AddrStatusReply {
			return nil, false
		}
		var st ServerStatus
		st.ActiveUnits, _ = m.Int32Arg(0)
		st.ActiveSynths, _ = m.Int32Arg(1)
		st.ActiveGroups, _ = m.Int32Arg(2)
		st.LoadedDefs, _ = m.Int32Arg(3)
		st.AvgCPU, _ = m.Float32Arg(4)
		st.PeakCPU, _ = m.Float32Arg(5)
		return &st, true
	})
}
