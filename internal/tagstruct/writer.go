package tagstruct

import (
	"encoding/binary"
	"io"

	pulseerrors "github.com/alxayo/pulse-go/internal/errors"
)

// Writer encodes a tagstruct value stream to dst. Every Write* method emits
// the tag byte first, then the payload, mirroring the reader's contract.
type Writer struct {
	dst     io.Writer
	version uint16
}

// NewWriter wraps dst for encoding at the given negotiated protocol version.
func NewWriter(dst io.Writer, version uint16) *Writer {
	return &Writer{dst: dst, version: version}
}

// Version returns the protocol version this Writer was constructed with.
func (w *Writer) Version() uint16 { return w.version }

func (w *Writer) writeRaw(op string, b []byte) error {
	if _, err := w.dst.Write(b); err != nil {
		return pulseerrors.NewTagDecodeError(op, err)
	}
	return nil
}

// WriteU8 writes a tagged single byte.
func (w *Writer) WriteU8(v uint8) error {
	return w.writeRaw("write_u8", []byte{byte(TagU8), v})
}

// WriteU32 writes a tagged 32-bit unsigned integer in network byte order.
func (w *Writer) WriteU32(v uint32) error {
	var buf [5]byte
	buf[0] = byte(TagU32)
	binary.BigEndian.PutUint32(buf[1:], v)
	return w.writeRaw("write_u32", buf[:])
}

// WriteU64 writes a tagged 64-bit unsigned integer in network byte order.
func (w *Writer) WriteU64(v uint64) error {
	var buf [9]byte
	buf[0] = byte(TagU64)
	binary.BigEndian.PutUint64(buf[1:], v)
	return w.writeRaw("write_u64", buf[:])
}

// WriteI64 writes a tagged 64-bit signed integer in network byte order.
func (w *Writer) WriteI64(v int64) error {
	var buf [9]byte
	buf[0] = byte(TagS64)
	binary.BigEndian.PutUint64(buf[1:], uint64(v))
	return w.writeRaw("write_i64", buf[:])
}

// WriteBool writes a boolean as the tag byte alone.
func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.writeRaw("write_bool", []byte{byte(TagBoolTrue)})
	}
	return w.writeRaw("write_bool", []byte{byte(TagBoolFalse)})
}
