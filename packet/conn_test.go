package packet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeRoundTrip(t *testing.T) {
	c1, c2 := Pipe()
	defer c1.Close()
	defer c2.Close()

	want := New(NewMessage("/d_load", "default"), NewMessage(AddrSync, int32(12)))

	errc := make(chan error, 1)
	go func() { errc <- c1.WritePacket(want) }()

	got, err := c2.ReadPacket()
	require.NoError(t, err)
	require.NoError(t, <-errc)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, "/d_load", got.Messages[0].Addr)
	tok, ok := got.Messages[1].Int32Arg(0)
	assert.True(t, ok)
	assert.Equal(t, int32(12), tok)
}

func TestReadAfterClose(t *testing.T) {
	c1, c2 := Pipe()
	c1.Close()

	_, err := c2.ReadPacket()
	assert.Error(t, err)
}
