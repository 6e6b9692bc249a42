package packet

import (
	"encoding/binary"
	"io"
	"sync"
)

type Writer interface {
	WritePacket(*Packet) error
}

type connWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConnWriter frames packets onto a byte stream. Safe for concurrent
// use; each packet is written as a single frame.
func NewConnWriter(w io.Writer) Writer {
	return &connWriter{w: w}
}

func (cw *connWriter) WritePacket(p *Packet) error {
	payload, err := Marshal(p)
	if err != nil {
		return err
	}

	frame := make([]byte, 4, 4+len(payload))
	binary.BigEndian.PutUint32(frame, uint32(len(payload)))
	frame = append(frame, payload...)

	cw.mu.Lock()
	defer cw.mu.Unlock()
	_, err = cw.w.Write(frame)
	return err
}
