package frame

import "io"

// WriteControlMessage writes a control-message frame: a descriptor with
// Channel = ControlChannel followed by payload. payload must already be a
// fully serialized command tagstruct (tag, seq, body) — building that is
// the command catalog's job (component C); this package only owns framing.
func WriteControlMessage(w io.Writer, payload []byte) (int, error) {
	d := Descriptor{Length: uint32(len(payload)), Channel: ControlChannel}
	if err := EncodeDescriptor(w, d); err != nil {
		return 0, err
	}
	if len(payload) == 0 {
		return DescriptorSize, nil
	}
	n, err := w.Write(payload)
	if err != nil {
		return DescriptorSize + n, err
	}
	return DescriptorSize + n, nil
}

// WriteMemblock writes a stream-data frame: a descriptor with the given
// stream channel (which must not be ControlChannel) and offset, followed by
// the raw audio bytes in data.
func WriteMemblock(w io.Writer, channel uint32, data []byte, offset uint64) (int, error) {
	d := Descriptor{Length: uint32(len(data)), Channel: channel, Offset: offset}
	if err := EncodeDescriptor(w, d); err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	if err != nil {
		return DescriptorSize + n, err
	}
	return DescriptorSize + n, nil
}
