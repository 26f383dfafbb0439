package command

import "github.com/alxayo/pulse-go/internal/tagstruct"

// CreatePlaybackStream requests a new playback stream on the sink named
// SinkName, or the default sink if SinkName is nil and SinkIndex is nil.
// The stream's display name travels in Props under tagstruct.PropMediaName,
// not as a dedicated wire field — the reference protocol has none.
//
// The field ladder below follows the reference protocol's version-gated
// growth exactly: the v13 body (sample_spec through props) is always sent,
// then each later protocol revision appends more fields, gated on the
// negotiated version in Encode/DecodeCreatePlaybackStream.
type CreatePlaybackStream struct {
	SampleSpec tagstruct.SampleSpec
	ChannelMap tagstruct.ChannelMap
	SinkIndex  *uint32
	SinkName   []byte
	BufferAttr BufferAttr
	Corked     bool
	SyncID     uint32

	// Volume is the zero value when the caller leaves the stream's initial
	// volume unset (the server picks a default). Below version 14 there is
	// no way to signal "unset" on the wire, so an unset Volume is sent as a
	// muted placeholder and treated as explicit by any peer below that
	// version.
	Volume tagstruct.ChannelVolume

	NoRemapChannels bool
	NoRemixChannels bool
	FixFormat       bool
	FixRate         bool
	FixChannels     bool
	NoMove          bool
	VariableRate    bool

	// StartMuted is nil when the caller does not care whether the stream
	// starts muted (the server decides). Below version 15 there is no
	// explicit-flag field, so a nil StartMuted is sent as false and, on
	// decode, treated as an explicit false.
	StartMuted    *bool
	AdjustLatency bool
	Props         *tagstruct.PropList

	EarlyRequests bool // version >= 14

	NoInhibitAutoSuspend bool // version >= 15
	FailOnSuspend        bool // version >= 15

	RelativeVolume bool // version >= 17

	Passthrough bool // version >= 18

	Formats []tagstruct.FormatInfo // version >= 21
}

func (CreatePlaybackStream) Tag() Tag { return TagCreatePlaybackStream }

func (c CreatePlaybackStream) Encode(w *tagstruct.Writer, version uint16) error {
	if err := w.WriteSampleSpec(c.SampleSpec); err != nil {
		return err
	}
	if err := w.WriteChannelMap(c.ChannelMap); err != nil {
		return err
	}
	if err := w.WriteIndex(c.SinkIndex); err != nil {
		return err
	}
	if err := w.WriteString(c.SinkName); err != nil {
		return err
	}
	if err := w.WriteU32(c.BufferAttr.MaxLength); err != nil {
		return err
	}
	if err := w.WriteBool(c.Corked); err != nil {
		return err
	}
	if err := w.WriteU32(c.BufferAttr.TargetLength); err != nil {
		return err
	}
	if err := w.WriteU32(c.BufferAttr.PreBuffering); err != nil {
		return err
	}
	if err := w.WriteU32(c.BufferAttr.MinimumRequestLength); err != nil {
		return err
	}
	if err := w.WriteU32(c.SyncID); err != nil {
		return err
	}
	volumeExplicit := len(c.Volume.Volumes) > 0
	volume := c.Volume
	if !volumeExplicit {
		volume = mutedChannelVolume(c.SampleSpec.Channels)
	}
	if err := w.WriteChannelVolume(volume); err != nil {
		return err
	}
	if err := w.WriteBool(c.NoRemapChannels); err != nil {
		return err
	}
	if err := w.WriteBool(c.NoRemixChannels); err != nil {
		return err
	}
	if err := w.WriteBool(c.FixFormat); err != nil {
		return err
	}
	if err := w.WriteBool(c.FixRate); err != nil {
		return err
	}
	if err := w.WriteBool(c.FixChannels); err != nil {
		return err
	}
	if err := w.WriteBool(c.NoMove); err != nil {
		return err
	}
	if err := w.WriteBool(c.VariableRate); err != nil {
		return err
	}
	startMuted := c.StartMuted != nil && *c.StartMuted
	if err := w.WriteBool(startMuted); err != nil {
		return err
	}
	if err := w.WriteBool(c.AdjustLatency); err != nil {
		return err
	}
	props := c.Props
	if props == nil {
		props = tagstruct.NewPropList()
	}
	if err := w.WritePropList(props); err != nil {
		return err
	}

	if version < 14 {
		return nil
	}
	if err := w.WriteBool(volumeExplicit); err != nil {
		return err
	}
	if err := w.WriteBool(c.EarlyRequests); err != nil {
		return err
	}

	if version < 15 {
		return nil
	}
	if err := w.WriteBool(c.StartMuted != nil); err != nil {
		return err
	}
	if err := w.WriteBool(c.NoInhibitAutoSuspend); err != nil {
		return err
	}
	if err := w.WriteBool(c.FailOnSuspend); err != nil {
		return err
	}

	if version < 17 {
		return nil
	}
	if err := w.WriteBool(c.RelativeVolume); err != nil {
		return err
	}

	if version < 18 {
		return nil
	}
	if err := w.WriteBool(c.Passthrough); err != nil {
		return err
	}

	if version < 21 {
		return nil
	}
	if err := w.WriteU8(uint8(len(c.Formats))); err != nil {
		return err
	}
	for _, f := range c.Formats {
		if err := w.WriteFormatInfo(f); err != nil {
			return err
		}
	}
	return nil
}

func DecodeCreatePlaybackStream(r *tagstruct.Reader, version uint16) (CreatePlaybackStream, error) {
	var c CreatePlaybackStream
	var err error
	if c.SampleSpec, err = r.ReadSampleSpec(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.ChannelMap, err = r.ReadChannelMap(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.SinkIndex, err = r.ReadIndex(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.SinkName, err = r.ReadString(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.BufferAttr.MaxLength, err = r.ReadU32(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.Corked, err = r.ReadBool(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.BufferAttr.TargetLength, err = r.ReadU32(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.BufferAttr.PreBuffering, err = r.ReadU32(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.BufferAttr.MinimumRequestLength, err = r.ReadU32(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.SyncID, err = r.ReadU32(); err != nil {
		return CreatePlaybackStream{}, err
	}
	volume, err := r.ReadChannelVolume()
	if err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.NoRemapChannels, err = r.ReadBool(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.NoRemixChannels, err = r.ReadBool(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.FixFormat, err = r.ReadBool(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.FixRate, err = r.ReadBool(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.FixChannels, err = r.ReadBool(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.NoMove, err = r.ReadBool(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.VariableRate, err = r.ReadBool(); err != nil {
		return CreatePlaybackStream{}, err
	}
	startMuted, err := r.ReadBool()
	if err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.AdjustLatency, err = r.ReadBool(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if c.Props, err = r.ReadPropList(); err != nil {
		return CreatePlaybackStream{}, err
	}

	volumeExplicit := true
	startMutedExplicit := version < 15
	if version >= 14 {
		if volumeExplicit, err = r.ReadBool(); err != nil {
			return CreatePlaybackStream{}, err
		}
		if c.EarlyRequests, err = r.ReadBool(); err != nil {
			return CreatePlaybackStream{}, err
		}
	}
	if volumeExplicit {
		c.Volume = volume
	}
	if version >= 15 {
		if startMutedExplicit, err = r.ReadBool(); err != nil {
			return CreatePlaybackStream{}, err
		}
		if c.NoInhibitAutoSuspend, err = r.ReadBool(); err != nil {
			return CreatePlaybackStream{}, err
		}
		if c.FailOnSuspend, err = r.ReadBool(); err != nil {
			return CreatePlaybackStream{}, err
		}
	}
	if startMutedExplicit {
		sm := startMuted
		c.StartMuted = &sm
	}
	if version < 17 {
		return c, nil
	}
	if c.RelativeVolume, err = r.ReadBool(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if version < 18 {
		return c, nil
	}
	if c.Passthrough, err = r.ReadBool(); err != nil {
		return CreatePlaybackStream{}, err
	}
	if version < 21 {
		return c, nil
	}
	count, err := r.ReadU8()
	if err != nil {
		return CreatePlaybackStream{}, err
	}
	if count > 0 {
		c.Formats = make([]tagstruct.FormatInfo, count)
	}
	for i := range c.Formats {
		if c.Formats[i], err = r.ReadFormatInfo(); err != nil {
			return CreatePlaybackStream{}, err
		}
	}
	return c, nil
}

// CreatePlaybackStreamReply carries the server-assigned channel (the frame
// multiplexing key for this stream's data frames), its server-side index
// (used by Delete/Cork/Flush/etc.), and the buffer attributes and format
// actually negotiated — which may differ from what was requested.
type CreatePlaybackStreamReply struct {
	Channel        uint32
	StreamIndex    uint32
	RequestedBytes uint32
	BufferAttr     BufferAttr
	SampleSpec     tagstruct.SampleSpec
	ChannelMap     tagstruct.ChannelMap
}

func (c *CreatePlaybackStreamReply) Decode(r *tagstruct.Reader, _ uint16) error {
	var err error
	if c.Channel, err = r.ReadU32(); err != nil {
		return err
	}
	if c.StreamIndex, err = r.ReadU32(); err != nil {
		return err
	}
	if c.RequestedBytes, err = r.ReadU32(); err != nil {
		return err
	}
	if c.BufferAttr, err = readPlaybackBufferAttr(r); err != nil {
		return err
	}
	if c.SampleSpec, err = r.ReadSampleSpec(); err != nil {
		return err
	}
	if c.ChannelMap, err = r.ReadChannelMap(); err != nil {
		return err
	}
	return nil
}

func (c CreatePlaybackStreamReply) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteU32(c.Channel); err != nil {
		return err
	}
	if err := w.WriteU32(c.StreamIndex); err != nil {
		return err
	}
	if err := w.WriteU32(c.RequestedBytes); err != nil {
		return err
	}
	if err := writePlaybackBufferAttr(w, c.BufferAttr); err != nil {
		return err
	}
	if err := w.WriteSampleSpec(c.SampleSpec); err != nil {
		return err
	}
	return w.WriteChannelMap(c.ChannelMap)
}

// DeletePlaybackStream, CorkPlaybackStream, FlushPlaybackStream, and
// DrainPlaybackStream all share the same request shape: a server-side
// stream index (and, for Cork, a corked flag). None of them carry a typed
// reply body beyond the generic empty Reply acknowledgement.

type DeletePlaybackStream struct{ StreamIndex uint32 }

func (DeletePlaybackStream) Tag() Tag { return TagDeletePlaybackStream }
func (c DeletePlaybackStream) Encode(w *tagstruct.Writer, _ uint16) error {
	return w.WriteU32(c.StreamIndex)
}

type CorkPlaybackStream struct {
	StreamIndex uint32
	Corked      bool
}

func (CorkPlaybackStream) Tag() Tag { return TagCorkPlaybackStream }
func (c CorkPlaybackStream) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteU32(c.StreamIndex); err != nil {
		return err
	}
	return w.WriteBool(c.Corked)
}

type FlushPlaybackStream struct{ StreamIndex uint32 }

func (FlushPlaybackStream) Tag() Tag { return TagFlushPlaybackStream }
func (c FlushPlaybackStream) Encode(w *tagstruct.Writer, _ uint16) error {
	return w.WriteU32(c.StreamIndex)
}

type DrainPlaybackStream struct{ StreamIndex uint32 }

func (DrainPlaybackStream) Tag() Tag { return TagDrainPlaybackStream }
func (c DrainPlaybackStream) Encode(w *tagstruct.Writer, _ uint16) error {
	return w.WriteU32(c.StreamIndex)
}

// SetPlaybackStreamBufferAttr renegotiates buffering mid-stream.
type SetPlaybackStreamBufferAttr struct {
	StreamIndex uint32
	BufferAttr  BufferAttr
}

func (SetPlaybackStreamBufferAttr) Tag() Tag { return TagSetPlaybackStreamBufferAttr }
func (c SetPlaybackStreamBufferAttr) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteU32(c.StreamIndex); err != nil {
		return err
	}
	return writePlaybackBufferAttr(w, c.BufferAttr)
}

// SetPlaybackStreamBufferAttrReply echoes back the buffer attributes and
// latency the server actually settled on.
type SetPlaybackStreamBufferAttrReply struct {
	BufferAttr     BufferAttr
	ConfiguredLatency uint64
}

func (r *SetPlaybackStreamBufferAttrReply) Decode(ts *tagstruct.Reader, _ uint16) error {
	var err error
	if r.BufferAttr, err = readPlaybackBufferAttr(ts); err != nil {
		return err
	}
	usec, err := ts.ReadUsec()
	if err != nil {
		return err
	}
	r.ConfiguredLatency = uint64(usec)
	return nil
}

func (r SetPlaybackStreamBufferAttrReply) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := writePlaybackBufferAttr(w, r.BufferAttr); err != nil {
		return err
	}
	return w.WriteUsec(tagstruct.Usec(r.ConfiguredLatency))
}
