// Package frame implements the 20-byte descriptor that precedes every
// payload on the wire, multiplexing control messages and per-stream data
// chunks onto a single stream socket.
package frame

import (
	"encoding/binary"
	"io"

	pulseerrors "github.com/alxayo/pulse-go/internal/errors"
)

// ControlChannel is the descriptor Channel value reserved for control
// messages (as opposed to stream data frames).
const ControlChannel uint32 = 0xFFFFFFFF

// DescriptorSize is the fixed on-wire size of a Descriptor.
const DescriptorSize = 20

// Descriptor is the fixed header that precedes every frame's payload.
type Descriptor struct {
	Length  uint32
	Channel uint32
	Offset  uint64
	// Flags is treated as opaque: bit 0x40000000 means SHM-release and
	// 0xC0000000 means SHM-revoke in the reference, but a target that does
	// not implement SHM transport has no behavior keyed off it.
	Flags uint32
}

// IsControl reports whether this descriptor introduces a control message
// rather than stream data.
func (d Descriptor) IsControl() bool { return d.Channel == ControlChannel }

// ReadDescriptor reads a 20-byte descriptor from r in network byte order.
func ReadDescriptor(r io.Reader) (Descriptor, error) {
	var buf [DescriptorSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Descriptor{}, pulseerrors.NewFrameDecodeError("read_descriptor", err)
	}
	return Descriptor{
		Length:  binary.BigEndian.Uint32(buf[0:4]),
		Channel: binary.BigEndian.Uint32(buf[4:8]),
		Offset:  binary.BigEndian.Uint64(buf[8:16]),
		Flags:   binary.BigEndian.Uint32(buf[16:20]),
	}, nil
}

// EncodeDescriptor writes d to w in network byte order.
func EncodeDescriptor(w io.Writer, d Descriptor) error {
	var buf [DescriptorSize]byte
	binary.BigEndian.PutUint32(buf[0:4], d.Length)
	binary.BigEndian.PutUint32(buf[4:8], d.Channel)
	binary.BigEndian.PutUint64(buf[8:16], d.Offset)
	binary.BigEndian.PutUint32(buf[16:20], d.Flags)
	if _, err := w.Write(buf[:]); err != nil {
		return pulseerrors.NewFrameDecodeError("encode_descriptor", err)
	}
	return nil
}
