package packet

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"
)

// MaxPacketSize bounds a single frame so a corrupt length prefix cannot
// force a huge allocation.
const MaxPacketSize = 1 << 20

var ErrPacketTooLarge = errors.New("packet exceeds max size")

type Reader interface {
	ReadPacket() (*Packet, error)
}

type connReader struct {
	r io.Reader
}

// NewConnReader frames packets off a byte stream: u32 length prefix, then
// the marshaled packet.
func NewConnReader(r io.Reader) Reader {
	return &connReader{r: r}
}

func (cr *connReader) ReadPacket() (*Packet, error) {
	var prefix [4]byte
	if _, err := io.ReadFull(cr.r, prefix[:]); err != nil {
		return nil, err
	}
	size := binary.BigEndian.Uint32(prefix[:])
	if size > MaxPacketSize {
		return nil, errors.Wrapf(ErrPacketTooLarge, "%d bytes", size)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(cr.r, payload); err != nil {
		return nil, err
	}
	return Unmarshal(payload)
}
