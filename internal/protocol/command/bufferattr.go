package command

import "github.com/alxayo/pulse-go/internal/tagstruct"

// BufferAttrUseServerDefault, used on request fields, tells the server to
// pick the value itself.
const BufferAttrUseServerDefault uint32 = 0xFFFFFFFF

// BufferAttr controls how much audio the server buffers for a stream.
// TargetLength/PreBuffering/MinimumRequestLength apply to playback streams;
// FragmentSize applies to record streams; MaxLength applies to both.
type BufferAttr struct {
	MaxLength            uint32
	TargetLength         uint32
	PreBuffering         uint32
	MinimumRequestLength uint32
	FragmentSize         uint32
}

// readPlaybackBufferAttr reads the four playback-oriented fields (max_length,
// target_length, pre_buffering, minimum_request_length); FragmentSize is
// read separately by record-stream call sites since the two stream kinds
// never share a single BufferAttr layout on the wire.
func readPlaybackBufferAttr(r *tagstruct.Reader) (BufferAttr, error) {
	var b BufferAttr
	var err error
	if b.MaxLength, err = r.ReadU32(); err != nil {
		return BufferAttr{}, err
	}
	if b.TargetLength, err = r.ReadU32(); err != nil {
		return BufferAttr{}, err
	}
	if b.PreBuffering, err = r.ReadU32(); err != nil {
		return BufferAttr{}, err
	}
	if b.MinimumRequestLength, err = r.ReadU32(); err != nil {
		return BufferAttr{}, err
	}
	return b, nil
}

func writePlaybackBufferAttr(w *tagstruct.Writer, b BufferAttr) error {
	if err := w.WriteU32(b.MaxLength); err != nil {
		return err
	}
	if err := w.WriteU32(b.TargetLength); err != nil {
		return err
	}
	if err := w.WriteU32(b.PreBuffering); err != nil {
		return err
	}
	return w.WriteU32(b.MinimumRequestLength)
}

func readRecordBufferAttr(r *tagstruct.Reader) (BufferAttr, error) {
	var b BufferAttr
	var err error
	if b.MaxLength, err = r.ReadU32(); err != nil {
		return BufferAttr{}, err
	}
	if b.FragmentSize, err = r.ReadU32(); err != nil {
		return BufferAttr{}, err
	}
	return b, nil
}

func writeRecordBufferAttr(w *tagstruct.Writer, b BufferAttr) error {
	if err := w.WriteU32(b.MaxLength); err != nil {
		return err
	}
	return w.WriteU32(b.FragmentSize)
}

// mutedChannelVolume is the placeholder sent on the wire for
// CreatePlaybackStream/CreateRecordStream when the caller leaves the
// stream's initial volume unset: a fully-muted volume for every channel.
func mutedChannelVolume(channels uint8) tagstruct.ChannelVolume {
	volumes := make([]tagstruct.Volume, channels)
	for i := range volumes {
		volumes[i] = tagstruct.VolumeMuted
	}
	return tagstruct.ChannelVolume{Volumes: volumes}
}
