package command

import "github.com/alxayo/pulse-go/internal/tagstruct"

// CreateUploadStream asks the server to allocate a named sample-cache entry
// of Length bytes that the client fills by writing data frames on the
// channel returned in the reply (the same framing the playback/record
// streams use — see internal/frame), then finalizes with
// FinishUploadStream.
type CreateUploadStream struct {
	Name       string
	SampleSpec tagstruct.SampleSpec
	ChannelMap tagstruct.ChannelMap
	Length     uint32
	Props      *tagstruct.PropList
}

func (CreateUploadStream) Tag() Tag { return TagCreateUploadStream }
func (c CreateUploadStream) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteString([]byte(c.Name)); err != nil {
		return err
	}
	if err := w.WriteSampleSpec(c.SampleSpec); err != nil {
		return err
	}
	if err := w.WriteChannelMap(c.ChannelMap); err != nil {
		return err
	}
	if err := w.WriteU32(c.Length); err != nil {
		return err
	}
	return w.WritePropList(c.Props)
}

func DecodeCreateUploadStream(r *tagstruct.Reader, _ uint16) (CreateUploadStream, error) {
	var c CreateUploadStream
	var err error
	if c.Name, err = r.ReadStringNonNull(); err != nil {
		return CreateUploadStream{}, err
	}
	if c.SampleSpec, err = r.ReadSampleSpec(); err != nil {
		return CreateUploadStream{}, err
	}
	if c.ChannelMap, err = r.ReadChannelMap(); err != nil {
		return CreateUploadStream{}, err
	}
	if c.Length, err = r.ReadU32(); err != nil {
		return CreateUploadStream{}, err
	}
	if c.Props, err = r.ReadPropList(); err != nil {
		return CreateUploadStream{}, err
	}
	return c, nil
}

// CreateUploadStreamReply carries the channel the client writes Length
// bytes of sample data to, and the server-side stream index used by
// FinishUploadStream/DeleteUploadStream.
type CreateUploadStreamReply struct {
	Channel     uint32
	StreamIndex uint32
}

func (r *CreateUploadStreamReply) Decode(ts *tagstruct.Reader, _ uint16) error {
	var err error
	if r.Channel, err = ts.ReadU32(); err != nil {
		return err
	}
	if r.StreamIndex, err = ts.ReadU32(); err != nil {
		return err
	}
	return nil
}

func (r CreateUploadStreamReply) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteU32(r.Channel); err != nil {
		return err
	}
	return w.WriteU32(r.StreamIndex)
}

// FinishUploadStream tells the server the client has written all Length
// bytes and the sample-cache entry should be committed under its name.
type FinishUploadStream struct{ StreamIndex uint32 }

func (FinishUploadStream) Tag() Tag { return TagFinishUploadStream }
func (c FinishUploadStream) Encode(w *tagstruct.Writer, _ uint16) error {
	return w.WriteU32(c.StreamIndex)
}

// DeleteUploadStream aborts an in-progress upload before FinishUploadStream.
type DeleteUploadStream struct{ StreamIndex uint32 }

func (DeleteUploadStream) Tag() Tag { return TagDeleteUploadStream }
func (c DeleteUploadStream) Encode(w *tagstruct.Writer, _ uint16) error {
	return w.WriteU32(c.StreamIndex)
}

// PlaySample plays a previously uploaded sample on a sink.
type PlaySample struct {
	SinkIndex  *uint32
	SinkName   []byte
	SampleName string
	Volume     tagstruct.Volume
	Props      *tagstruct.PropList
}

func (PlaySample) Tag() Tag { return TagPlaySample }
func (c PlaySample) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteIndex(c.SinkIndex); err != nil {
		return err
	}
	if err := w.WriteString(c.SinkName); err != nil {
		return err
	}
	if err := w.WriteString([]byte(c.SampleName)); err != nil {
		return err
	}
	if err := w.WriteVolume(c.Volume); err != nil {
		return err
	}
	return w.WritePropList(c.Props)
}

type PlaySampleReply struct{ SinkInputIndex uint32 }

func (r *PlaySampleReply) Decode(ts *tagstruct.Reader, _ uint16) error {
	idx, err := ts.ReadU32()
	if err != nil {
		return err
	}
	r.SinkInputIndex = idx
	return nil
}

func (r PlaySampleReply) Encode(w *tagstruct.Writer, _ uint16) error {
	return w.WriteU32(r.SinkInputIndex)
}

// RemoveSample deletes a named sample-cache entry.
type RemoveSample struct{ Name string }

func (RemoveSample) Tag() Tag { return TagRemoveSample }
func (c RemoveSample) Encode(w *tagstruct.Writer, _ uint16) error {
	return w.WriteString([]byte(c.Name))
}

// SampleInfo describes one cached sample, as reported by GetSampleInfo(List).
type SampleInfo struct {
	Index      uint32
	Name       string
	Volume     tagstruct.ChannelVolume
	SampleSpec tagstruct.SampleSpec
	ChannelMap tagstruct.ChannelMap
	Duration   uint64
	Bytes      uint32
	Lazy       bool
	Filename   []byte
	Props      *tagstruct.PropList
}

func decodeSampleInfo(r *tagstruct.Reader, _ uint16) (SampleInfo, error) {
	var s SampleInfo
	var err error
	if s.Index, err = r.ReadU32(); err != nil {
		return SampleInfo{}, err
	}
	if s.Name, err = r.ReadStringNonNull(); err != nil {
		return SampleInfo{}, err
	}
	if s.Volume, err = r.ReadChannelVolume(); err != nil {
		return SampleInfo{}, err
	}
	duration, err := r.ReadUsec()
	if err != nil {
		return SampleInfo{}, err
	}
	s.Duration = uint64(duration)
	if s.SampleSpec, err = r.ReadSampleSpec(); err != nil {
		return SampleInfo{}, err
	}
	if s.ChannelMap, err = r.ReadChannelMap(); err != nil {
		return SampleInfo{}, err
	}
	if s.Bytes, err = r.ReadU32(); err != nil {
		return SampleInfo{}, err
	}
	if s.Lazy, err = r.ReadBool(); err != nil {
		return SampleInfo{}, err
	}
	if s.Filename, err = r.ReadString(); err != nil {
		return SampleInfo{}, err
	}
	if s.Props, err = r.ReadPropList(); err != nil {
		return SampleInfo{}, err
	}
	return s, nil
}

func (s *SampleInfo) Decode(r *tagstruct.Reader, version uint16) error {
	got, err := decodeSampleInfo(r, version)
	if err != nil {
		return err
	}
	*s = got
	return nil
}

func (s SampleInfo) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteU32(s.Index); err != nil {
		return err
	}
	if err := w.WriteString([]byte(s.Name)); err != nil {
		return err
	}
	if err := w.WriteChannelVolume(s.Volume); err != nil {
		return err
	}
	if err := w.WriteUsec(tagstruct.Usec(s.Duration)); err != nil {
		return err
	}
	if err := w.WriteSampleSpec(s.SampleSpec); err != nil {
		return err
	}
	if err := w.WriteChannelMap(s.ChannelMap); err != nil {
		return err
	}
	if err := w.WriteU32(s.Bytes); err != nil {
		return err
	}
	if err := w.WriteBool(s.Lazy); err != nil {
		return err
	}
	if err := w.WriteString(s.Filename); err != nil {
		return err
	}
	return w.WritePropList(s.Props)
}

type GetSampleInfo struct {
	Index *uint32
	Name  []byte
}

func (GetSampleInfo) Tag() Tag { return TagGetSampleInfo }
func (c GetSampleInfo) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteIndex(c.Index); err != nil {
		return err
	}
	return w.WriteString(c.Name)
}

type GetSampleInfoList struct{}

func (GetSampleInfoList) Tag() Tag                               { return TagGetSampleInfoList }
func (GetSampleInfoList) Encode(*tagstruct.Writer, uint16) error { return nil }

type SampleInfoList struct {
	Samples []SampleInfo
}

func (l *SampleInfoList) Decode(r *tagstruct.Reader, version uint16) error {
	samples, err := DecodeList(r, version, decodeSampleInfo)
	if err != nil {
		return err
	}
	l.Samples = samples
	return nil
}

func (l SampleInfoList) Encode(w *tagstruct.Writer, version uint16) error {
	for _, s := range l.Samples {
		if err := s.Encode(w, version); err != nil {
			return err
		}
	}
	return nil
}
