package tagstruct

import (
	"fmt"

	pulseerrors "github.com/alxayo/pulse-go/internal/errors"
)

// ReadString accepts either TagString followed by a NUL-terminated byte run,
// or TagStringNull alone. It returns (nil, nil) for the null case. Strings
// are not required to be UTF-8, so the NUL terminator is stripped but the
// remaining bytes are returned as-is.
func (r *Reader) ReadString() ([]byte, error) {
	t, err := r.ReadTag()
	if err != nil {
		return nil, err
	}
	switch t {
	case TagStringNull:
		return nil, nil
	case TagString:
		raw, err := r.src.ReadBytes(0x00)
		if err != nil {
			return nil, pulseerrors.NewTagDecodeError("read_string.body", err)
		}
		return raw[:len(raw)-1], nil
	default:
		return nil, pulseerrors.NewTagDecodeError("read_string", fmt.Errorf("expected string or null string, got %q", t))
	}
}

// ReadStringNonNull is ReadString but rejects the null-string form.
func (r *Reader) ReadStringNonNull() (string, error) {
	b, err := r.ReadString()
	if err != nil {
		return "", err
	}
	if b == nil {
		return "", pulseerrors.NewTagDecodeError("read_string_non_null", fmt.Errorf("expected string, got null string"))
	}
	return string(b), nil
}

// WriteString writes s as TagString followed by a NUL terminator. Passing
// nil writes the null-string tag instead (equivalent to WriteNullString).
func (w *Writer) WriteString(s []byte) error {
	if s == nil {
		return w.WriteNullString()
	}
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, byte(TagString))
	buf = append(buf, s...)
	buf = append(buf, 0x00)
	return w.writeRaw("write_string", buf)
}

// WriteNullString writes the null-string tag alone.
func (w *Writer) WriteNullString() error {
	return w.writeRaw("write_null_string", []byte{byte(TagStringNull)})
}
