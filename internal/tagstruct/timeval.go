package tagstruct

import "encoding/binary"

// Timeval is a Unix-epoch-relative timestamp with microsecond precision, as
// carried by the wire (secs: u32, usecs: u32) rather than a language-native
// time type, since the wire format predates the nanosecond range.
type Timeval struct {
	Secs  uint32
	Usecs uint32
}

// ReadTimeval reads a tagged {secs, usecs} pair.
func (r *Reader) ReadTimeval() (Timeval, error) {
	if err := r.expectTag("read_timeval", TagTimeval); err != nil {
		return Timeval{}, err
	}
	var buf [8]byte
	if err := r.readRawFull("read_timeval.value", buf[:]); err != nil {
		return Timeval{}, err
	}
	return Timeval{
		Secs:  binary.BigEndian.Uint32(buf[0:4]),
		Usecs: binary.BigEndian.Uint32(buf[4:8]),
	}, nil
}

// WriteTimeval writes a tagged {secs, usecs} pair.
func (w *Writer) WriteTimeval(t Timeval) error {
	var buf [9]byte
	buf[0] = byte(TagTimeval)
	binary.BigEndian.PutUint32(buf[1:5], t.Secs)
	binary.BigEndian.PutUint32(buf[5:9], t.Usecs)
	return w.writeRaw("write_timeval", buf[:])
}
