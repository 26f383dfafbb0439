package tagstruct

import (
	"encoding/binary"

	pulseerrors "github.com/alxayo/pulse-go/internal/errors"
)

// ReadArbitrary reads a length-prefixed byte blob: TagArbitrary, a u32
// length, then that many bytes.
func (r *Reader) ReadArbitrary() ([]byte, error) {
	if err := r.expectTag("read_arbitrary", TagArbitrary); err != nil {
		return nil, err
	}
	var lbuf [4]byte
	if err := r.readRawFull("read_arbitrary.length", lbuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lbuf[:])
	buf := make([]byte, n)
	if err := r.readRawFull("read_arbitrary.body", buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteArbitrary writes b as TagArbitrary, its length as u32, then the bytes.
func (w *Writer) WriteArbitrary(b []byte) error {
	buf := make([]byte, 0, 5+len(b))
	buf = append(buf, byte(TagArbitrary))
	var lbuf [4]byte
	binary.BigEndian.PutUint32(lbuf[:], uint32(len(b)))
	buf = append(buf, lbuf[:]...)
	buf = append(buf, b...)
	return w.writeRaw("write_arbitrary", buf)
}
