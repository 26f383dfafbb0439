package command

import "github.com/alxayo/pulse-go/internal/tagstruct"

// CreateRecordStream is CreatePlaybackStream's mirror image: it binds to a
// source instead of a sink and negotiates a FragmentSize rather than
// playback's target/prebuf/minreq triple (see bufferattr.go). Unlike
// playback, the record stream's cvolume/start-muted fields are not on the
// wire at all below version 22 — the reference protocol introduced stream
// volume control for record streams much later than for playback streams,
// so a pre-22 server never even sees this client's default volume.
type CreateRecordStream struct {
	SampleSpec  tagstruct.SampleSpec
	ChannelMap  tagstruct.ChannelMap
	SourceIndex *uint32
	SourceName  []byte
	BufferAttr  BufferAttr
	Corked      bool

	NoRemapChannels bool
	NoRemixChannels bool
	FixFormat       bool
	FixRate         bool
	FixChannels     bool
	NoMove          bool
	VariableRate    bool
	PeakDetect      bool
	AdjustLatency   bool
	Props           *tagstruct.PropList
	DirectOnInput   bool

	EarlyRequests bool // version >= 14

	NoInhibitAutoSuspend bool // version >= 15
	FailOnSuspend        bool // version >= 15

	Formats []tagstruct.FormatInfo // version >= 22

	// Volume/StartMuted are nil unless the caller explicitly set a value;
	// neither is sent on the wire below version 22 (see type doc above).
	Volume         tagstruct.ChannelVolume
	StartMuted     *bool
	RelativeVolume bool // version >= 22
	Passthrough    bool // version >= 22
}

func (CreateRecordStream) Tag() Tag { return TagCreateRecordStream }

func (c CreateRecordStream) Encode(w *tagstruct.Writer, version uint16) error {
	if err := w.WriteSampleSpec(c.SampleSpec); err != nil {
		return err
	}
	if err := w.WriteChannelMap(c.ChannelMap); err != nil {
		return err
	}
	if err := w.WriteIndex(c.SourceIndex); err != nil {
		return err
	}
	if err := w.WriteString(c.SourceName); err != nil {
		return err
	}
	if err := w.WriteU32(c.BufferAttr.MaxLength); err != nil {
		return err
	}
	if err := w.WriteBool(c.Corked); err != nil {
		return err
	}
	if err := w.WriteU32(c.BufferAttr.FragmentSize); err != nil {
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
	if err := w.WriteBool(c.PeakDetect); err != nil {
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
	if err := w.WriteBool(c.DirectOnInput); err != nil {
		return err
	}

	if version < 14 {
		return nil
	}
	if err := w.WriteBool(c.EarlyRequests); err != nil {
		return err
	}

	if version < 15 {
		return nil
	}
	if err := w.WriteBool(c.NoInhibitAutoSuspend); err != nil {
		return err
	}
	if err := w.WriteBool(c.FailOnSuspend); err != nil {
		return err
	}

	if version < 22 {
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
	volumeExplicit := len(c.Volume.Volumes) > 0
	volume := c.Volume
	if !volumeExplicit {
		volume = mutedChannelVolume(c.SampleSpec.Channels)
	}
	if err := w.WriteChannelVolume(volume); err != nil {
		return err
	}
	startMuted := c.StartMuted != nil && *c.StartMuted
	if err := w.WriteBool(startMuted); err != nil {
		return err
	}
	if err := w.WriteBool(volumeExplicit); err != nil {
		return err
	}
	if err := w.WriteBool(c.StartMuted != nil); err != nil {
		return err
	}
	if err := w.WriteBool(c.RelativeVolume); err != nil {
		return err
	}
	return w.WriteBool(c.Passthrough)
}

func DecodeCreateRecordStream(r *tagstruct.Reader, version uint16) (CreateRecordStream, error) {
	var c CreateRecordStream
	var err error
	if c.SampleSpec, err = r.ReadSampleSpec(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.ChannelMap, err = r.ReadChannelMap(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.SourceIndex, err = r.ReadIndex(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.SourceName, err = r.ReadString(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.BufferAttr.MaxLength, err = r.ReadU32(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.Corked, err = r.ReadBool(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.BufferAttr.FragmentSize, err = r.ReadU32(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.NoRemapChannels, err = r.ReadBool(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.NoRemixChannels, err = r.ReadBool(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.FixFormat, err = r.ReadBool(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.FixRate, err = r.ReadBool(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.FixChannels, err = r.ReadBool(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.NoMove, err = r.ReadBool(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.VariableRate, err = r.ReadBool(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.PeakDetect, err = r.ReadBool(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.AdjustLatency, err = r.ReadBool(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.Props, err = r.ReadPropList(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.DirectOnInput, err = r.ReadBool(); err != nil {
		return CreateRecordStream{}, err
	}

	if version < 14 {
		return c, nil
	}
	if c.EarlyRequests, err = r.ReadBool(); err != nil {
		return CreateRecordStream{}, err
	}

	if version < 15 {
		return c, nil
	}
	if c.NoInhibitAutoSuspend, err = r.ReadBool(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.FailOnSuspend, err = r.ReadBool(); err != nil {
		return CreateRecordStream{}, err
	}

	if version < 22 {
		return c, nil
	}
	count, err := r.ReadU8()
	if err != nil {
		return CreateRecordStream{}, err
	}
	c.Formats = make([]tagstruct.FormatInfo, count)
	for i := range c.Formats {
		if c.Formats[i], err = r.ReadFormatInfo(); err != nil {
			return CreateRecordStream{}, err
		}
	}
	volume, err := r.ReadChannelVolume()
	if err != nil {
		return CreateRecordStream{}, err
	}
	startMuted, err := r.ReadBool()
	if err != nil {
		return CreateRecordStream{}, err
	}
	volumeExplicit, err := r.ReadBool()
	if err != nil {
		return CreateRecordStream{}, err
	}
	startMutedExplicit, err := r.ReadBool()
	if err != nil {
		return CreateRecordStream{}, err
	}
	if volumeExplicit {
		c.Volume = volume
	}
	if startMutedExplicit {
		sm := startMuted
		c.StartMuted = &sm
	}
	if c.RelativeVolume, err = r.ReadBool(); err != nil {
		return CreateRecordStream{}, err
	}
	if c.Passthrough, err = r.ReadBool(); err != nil {
		return CreateRecordStream{}, err
	}
	return c, nil
}

// CreateRecordStreamReply mirrors CreatePlaybackStreamReply.
type CreateRecordStreamReply struct {
	Channel     uint32
	StreamIndex uint32
	BufferAttr  BufferAttr
	SampleSpec  tagstruct.SampleSpec
	ChannelMap  tagstruct.ChannelMap
}

func (c *CreateRecordStreamReply) Decode(r *tagstruct.Reader, _ uint16) error {
	var err error
	if c.Channel, err = r.ReadU32(); err != nil {
		return err
	}
	if c.StreamIndex, err = r.ReadU32(); err != nil {
		return err
	}
	if c.BufferAttr, err = readRecordBufferAttr(r); err != nil {
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

func (c CreateRecordStreamReply) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteU32(c.Channel); err != nil {
		return err
	}
	if err := w.WriteU32(c.StreamIndex); err != nil {
		return err
	}
	if err := writeRecordBufferAttr(w, c.BufferAttr); err != nil {
		return err
	}
	if err := w.WriteSampleSpec(c.SampleSpec); err != nil {
		return err
	}
	return w.WriteChannelMap(c.ChannelMap)
}

type DeleteRecordStream struct{ StreamIndex uint32 }

func (DeleteRecordStream) Tag() Tag { return TagDeleteRecordStream }
func (c DeleteRecordStream) Encode(w *tagstruct.Writer, _ uint16) error {
	return w.WriteU32(c.StreamIndex)
}

type CorkRecordStream struct {
	StreamIndex uint32
	Corked      bool
}

func (CorkRecordStream) Tag() Tag { return TagCorkRecordStream }
func (c CorkRecordStream) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteU32(c.StreamIndex); err != nil {
		return err
	}
	return w.WriteBool(c.Corked)
}

type FlushRecordStream struct{ StreamIndex uint32 }

func (FlushRecordStream) Tag() Tag { return TagFlushRecordStream }
func (c FlushRecordStream) Encode(w *tagstruct.Writer, _ uint16) error {
	return w.WriteU32(c.StreamIndex)
}
