package tagstruct

import (
	"fmt"

	pulseerrors "github.com/alxayo/pulse-go/internal/errors"
)

// ReadEnum reads a u32 and validates it against valid using isValid, failing
// with *errors.TagDecodeError (InvalidEnum) if out of range. name is used
// only for the error message.
func (r *Reader) ReadEnum(name string, isValid func(uint32) bool) (uint32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	if !isValid(v) {
		return 0, pulseerrors.NewTagDecodeError("read_enum", fmt.Errorf("invalid %s value %d", name, v))
	}
	return v, nil
}

// WriteEnum writes v as a plain tagged u32; validation is the caller's
// responsibility since the writer side always holds a well-typed Go value.
func (w *Writer) WriteEnum(v uint32) error {
	return w.WriteU32(v)
}
