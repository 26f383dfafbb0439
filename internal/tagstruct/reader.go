package tagstruct

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	pulseerrors "github.com/alxayo/pulse-go/internal/errors"
)

// Reader decodes a tagstruct-encoded value stream. It is constructed once per
// frame payload; the caller has already enforced the descriptor's length
// boundary before handing the payload to a Reader (§4.A failure model).
type Reader struct {
	src     *bufio.Reader
	version uint16
}

// NewReader wraps src for decoding at the given negotiated protocol version.
// version is threaded explicitly into every composite reader that needs it;
// there is no package-global version state.
func NewReader(src io.Reader, version uint16) *Reader {
	br, ok := src.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(src)
	}
	return &Reader{src: br, version: version}
}

// Version returns the protocol version this Reader was constructed with.
func (r *Reader) Version() uint16 { return r.version }

// ReadTag consumes one byte and returns it as a Tag, or *errors.TagDecodeError
// if the byte does not belong to the closed tag set.
func (r *Reader) ReadTag() (Tag, error) {
	b, err := r.src.ReadByte()
	if err != nil {
		return 0, pulseerrors.NewTagDecodeError("read_tag", err)
	}
	t := Tag(b)
	if !t.valid() {
		return 0, pulseerrors.NewTagDecodeError("read_tag", fmt.Errorf("invalid tag 0x%02x", b))
	}
	return t, nil
}

func (r *Reader) expectTag(op string, want Tag) error {
	got, err := r.ReadTag()
	if err != nil {
		return err
	}
	if got != want {
		return pulseerrors.NewTagDecodeError(op, fmt.Errorf("expected tag %q, got %q", want, got))
	}
	return nil
}

func (r *Reader) readRawByte(op string) (byte, error) {
	b, err := r.src.ReadByte()
	if err != nil {
		return 0, pulseerrors.NewTagDecodeError(op, err)
	}
	return b, nil
}

func (r *Reader) readRawFull(op string, buf []byte) error {
	if _, err := io.ReadFull(r.src, buf); err != nil {
		return pulseerrors.NewTagDecodeError(op, err)
	}
	return nil
}

// ReadU8 reads a tagged single byte (tag TagU8).
func (r *Reader) ReadU8() (uint8, error) {
	if err := r.expectTag("read_u8", TagU8); err != nil {
		return 0, err
	}
	return r.readRawByte("read_u8.value")
}

// ReadU32 reads a tagged 32-bit unsigned integer in network byte order.
func (r *Reader) ReadU32() (uint32, error) {
	if err := r.expectTag("read_u32", TagU32); err != nil {
		return 0, err
	}
	var buf [4]byte
	if err := r.readRawFull("read_u32.value", buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}

// ReadU64 reads a tagged 64-bit unsigned integer in network byte order.
func (r *Reader) ReadU64() (uint64, error) {
	if err := r.expectTag("read_u64", TagU64); err != nil {
		return 0, err
	}
	var buf [8]byte
	if err := r.readRawFull("read_u64.value", buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

// ReadI64 reads a tagged 64-bit signed integer in network byte order.
func (r *Reader) ReadI64() (int64, error) {
	if err := r.expectTag("read_i64", TagS64); err != nil {
		return 0, err
	}
	var buf [8]byte
	if err := r.readRawFull("read_i64.value", buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

// ReadBool reads a boolean, which is encoded purely as the tag byte (no
// payload): TagBoolTrue or TagBoolFalse.
func (r *Reader) ReadBool() (bool, error) {
	t, err := r.ReadTag()
	if err != nil {
		return false, err
	}
	switch t {
	case TagBoolTrue:
		return true, nil
	case TagBoolFalse:
		return false, nil
	default:
		return false, pulseerrors.NewTagDecodeError("read_bool", fmt.Errorf("expected boolean, got %q", t))
	}
}

// HasDataLeft reports whether any buffered bytes remain, without consuming
// them. List replies rely on this to know when to stop decoding items.
func (r *Reader) HasDataLeft() (bool, error) {
	_, err := r.src.Peek(1)
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, pulseerrors.NewTagDecodeError("has_data_left", err)
	}
	return true, nil
}

// peekTag looks at the next tag byte without consuming it. Nothing in the
// package calls it at present; the proplist reader detects its terminator
// through ReadString returning a nil string instead.
func (r *Reader) peekTag() (Tag, error) {
	b, err := r.src.Peek(1)
	if err != nil {
		return 0, pulseerrors.NewTagDecodeError("peek_tag", err)
	}
	return Tag(b[0]), nil
}
