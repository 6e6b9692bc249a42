package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sndkit/synthlink/packet"
)

func TestSyncAppendsMarkerLast(t *testing.T) {
	batches := make(chan []string, 1)
	cli, srv := packet.Pipe()
	go func() {
		defer srv.Close()
		for {
			p, err := srv.ReadPacket()
			if err != nil {
				return
			}
			var seen []string
			for _, m := range p.Messages {
				seen = append(seen, m.Addr)
				switch m.Addr {
				case packet.AddrNotify:
					_ = srv.WritePacket(packet.New(
						packet.NewMessage(packet.AddrDone, packet.AddrNotify, int32(1))))
				case packet.AddrSync:
					tok, _ := m.Int32Arg(0)
					select {
					case batches <- seen:
					default:
					}
					_ = srv.WritePacket(packet.New(
						packet.NewMessage(packet.AddrSynced, tok)))
				}
			}
		}
	}()

	c, err := New(NewState(), cli)
	require.NoError(t, err)
	defer c.Close()

	req := packet.New(
		packet.NewMessage("/g_new", int32(1)),
		packet.NewMessage("/n_set", int32(1), "amp", float32(0.5)),
	)
	require.NoError(t, c.Sync(req))

	got := <-batches
	assert.Equal(t, []string{"/g_new", "/n_set", packet.AddrSync}, got)
	assert.Len(t, req.Messages, 2, "caller's request not mutated")
}

func TestSyncReleasesToken(t *testing.T) {
	c := newTestConn(t, nil, nil)

	for i := 0; i < 5; i++ {
		require.NoError(t, c.Sync(packet.New(packet.NewMessage("/g_new", int32(i)))))
	}

	st, err := c.AllocatorStats(SyncAllocator)
	require.NoError(t, err)
	assert.Equal(t, 0, st.NumUsed, "every barrier token returned")
}

func TestSyncTokenHeldUntilReply(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	c := newTestConn(t, nil, func(srv packet.Conn, m *packet.Message) bool {
		if m.Addr != packet.AddrSync {
			return false
		}
		tok, _ := m.Int32Arg(0)
		close(entered)
		<-release
		_ = srv.WritePacket(packet.New(packet.NewMessage(packet.AddrSynced, tok)))
		return true
	})

	done := make(chan error, 1)
	go func() { done <- c.UnsafeSync() }()

	<-entered
	st, err := c.AllocatorStats(SyncAllocator)
	require.NoError(t, err)
	assert.Equal(t, 1, st.NumUsed, "token outstanding while the barrier is pending")

	close(release)
	require.NoError(t, <-done)

	st, err = c.AllocatorStats(SyncAllocator)
	require.NoError(t, err)
	assert.Equal(t, 0, st.NumUsed, "token released only after Sync returned")
}

func TestUnsafeSync(t *testing.T) {
	c := newTestConn(t, nil, nil)
	require.NoError(t, c.UnsafeSync())
}
