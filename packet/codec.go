package packet

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
)

// Wire layout, big endian:
//
//	packet := u16 msgCount, msg*
//	msg    := u16 addrLen, addr bytes, u8 argCount, arg*
//	arg    := tag byte, value
//	value  := 'i' i32 | 'f' f32 | 's' u16 len + bytes | 'b' u32 len + bytes
const (
	tagInt32   = byte('i')
	tagFloat32 = byte('f')
	tagString  = byte('s')
	tagBlob    = byte('b')
)

var (
	ErrUnsupportedArg  = errors.New("unsupported argument type")
	ErrUnknownTag      = errors.New("unknown argument tag")
	ErrTruncatedPacket = errors.New("truncated packet")
	ErrArgTooLarge     = errors.New("argument too large")
	ErrMessageTooLarge = errors.New("message exceeds wire limits")
	ErrTrailingBytes   = errors.New("trailing bytes after packet")
)

// Marshal encodes p into its wire form. Lengths that do not fit their
// wire fields are rejected here; a wrapped count would silently desync
// the peer's decoder.
func Marshal(p *Packet) ([]byte, error) {
	if len(p.Messages) > math.MaxUint16 {
		return nil, errors.Wrapf(ErrMessageTooLarge, "%d messages", len(p.Messages))
	}

	buf := make([]byte, 2, 64)
	binary.BigEndian.PutUint16(buf, uint16(len(p.Messages)))

	for _, m := range p.Messages {
		if len(m.Addr) > math.MaxUint16 {
			return nil, errors.Wrapf(ErrMessageTooLarge, "addr of %d bytes", len(m.Addr))
		}
		if len(m.Args) > math.MaxUint8 {
			return nil, errors.Wrapf(ErrMessageTooLarge, "message %q: %d args", m.Addr, len(m.Args))
		}
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(m.Addr)))
		buf = append(buf, m.Addr...)
		buf = append(buf, byte(len(m.Args)))
		for _, arg := range m.Args {
			var err error
			buf, err = appendArg(buf, arg)
			if err != nil {
				return nil, errors.Wrapf(err, "message %q", m.Addr)
			}
		}
	}
	return buf, nil
}

func appendArg(buf []byte, arg any) ([]byte, error) {
	switch v := arg.(type) {
	case int32:
		buf = append(buf, tagInt32)
		buf = binary.BigEndian.AppendUint32(buf, uint32(v))
	case float32:
		buf = append(buf, tagFloat32)
		buf = binary.BigEndian.AppendUint32(buf, math.Float32bits(v))
	case string:
		if len(v) > math.MaxUint16 {
			return nil, errors.Wrapf(ErrArgTooLarge, "string of %d bytes", len(v))
		}
		buf = append(buf, tagString)
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(v)))
		buf = append(buf, v...)
	case []byte:
		if len(v) > MaxPacketSize {
			return nil, errors.Wrapf(ErrArgTooLarge, "blob of %d bytes", len(v))
		}
		buf = append(buf, tagBlob)
		buf = binary.BigEndian.AppendUint32(buf, uint32(len(v)))
		buf = append(buf, v...)
	default:
		return nil, errors.Wrapf(ErrUnsupportedArg, "%T", arg)
	}
	return buf, nil
}

// Unmarshal decodes one packet from data.
func Unmarshal(data []byte) (*Packet, error) {
	d := decoder{data: data}

	count := d.uint16()
	msgs := make([]*Message, 0, count)
	for i := 0; i < int(count); i++ {
		addr := d.str(int(d.uint16()))
		argc := d.byte()
		args := make([]any, 0, argc)
		for j := 0; j < int(argc); j++ {
			switch tag := d.byte(); tag {
			case tagInt32:
				args = append(args, int32(d.uint32()))
			case tagFloat32:
				args = append(args, math.Float32frombits(d.uint32()))
			case tagString:
				args = append(args, d.str(int(d.uint16())))
			case tagBlob:
				args = append(args, d.bytes(int(d.uint32())))
			default:
				if d.err == nil {
					return nil, errors.Wrapf(ErrUnknownTag, "0x%02x", tag)
				}
			}
			if d.err != nil {
				return nil, d.err
			}
		}
		if d.err != nil {
			return nil, d.err
		}
		msgs = append(msgs, &Message{Addr: addr, Args: args})
	}
	if d.err != nil {
		return nil, d.err
	}
	if d.pos != len(d.data) {
		return nil, errors.Wrapf(ErrTrailingBytes, "%d of %d bytes consumed", d.pos, len(d.data))
	}
	return &Packet{Messages: msgs}, nil
}

// decoder is a cursor over the wire bytes; the first short read sticks in
// err and turns the remaining reads into no-ops.
type decoder struct {
	data []byte
	pos  int
	err  error
}

func (d *decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || d.pos+n > len(d.data) {
		d.err = ErrTruncatedPacket
		return nil
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b
}

func (d *decoder) byte() byte {
	b := d.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (d *decoder) uint16() uint16 {
	b := d.take(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (d *decoder) uint32() uint32 {
	b := d.take(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (d *decoder) str(n int) string {
	return string(d.take(n))
}

func (d *decoder) bytes(n int) []byte {
	b := d.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}
