package tagstruct

// InvalidIndex is the sentinel u32 value meaning "absent" wherever an index
// field is optional.
const InvalidIndex uint32 = 0xFFFFFFFF

// ReadIndex reads a u32 and maps InvalidIndex to "absent" (nil).
func (r *Reader) ReadIndex() (*uint32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if v == InvalidIndex {
		return nil, nil
	}
	return &v, nil
}

// WriteIndex writes idx, or InvalidIndex if idx is nil.
func (w *Writer) WriteIndex(idx *uint32) error {
	if idx == nil {
		return w.WriteU32(InvalidIndex)
	}
	return w.WriteU32(*idx)
}
