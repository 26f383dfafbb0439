package command

import "github.com/alxayo/pulse-go/internal/tagstruct"

// SinkState describes whether a sink currently has active playback.
type SinkState uint32

const (
	SinkStateRunning   SinkState = 0
	SinkStateIdle      SinkState = 1
	SinkStateSuspended SinkState = 2
)

// SinkFlags describes a sink's hardware/software capabilities.
type SinkFlags uint32

const (
	SinkFlagHWVolumeCtrl  SinkFlags = 0x0001
	SinkFlagLatency       SinkFlags = 0x0002
	SinkFlagHardware      SinkFlags = 0x0004
	SinkFlagNetwork       SinkFlags = 0x0008
	SinkFlagHWMuteCtrl    SinkFlags = 0x0010
	SinkFlagDecibelVolume SinkFlags = 0x0020
	SinkFlagFlatVolume    SinkFlags = 0x0040
	SinkFlagDynamicLatency SinkFlags = 0x0080
	SinkFlagSetFormats    SinkFlags = 0x0100
)

// SinkInfo describes one sink (a playback device) known to the server. This
// catalog deliberately does not model the reference protocol's nested
// per-port and per-format list fields (PortInfo / FormatInfo arrays beyond
// a single default); the fields
// that remain cover everything a playback client actually needs to pick a
// sink and negotiate a stream against it.
type SinkInfo struct {
	Index               uint32
	Name                string
	Description         []byte
	SampleSpec          tagstruct.SampleSpec
	ChannelMap          tagstruct.ChannelMap
	OwnerModuleIndex    *uint32
	Volume              tagstruct.ChannelVolume
	Muted               bool
	MonitorSourceIndex  *uint32
	MonitorSourceName   []byte
	Latency             uint64
	Driver              []byte
	Flags               SinkFlags
	Props               *tagstruct.PropList
	ConfiguredLatency   uint64
	BaseVolume          tagstruct.Volume
	State               SinkState
	VolumeSteps         uint32
	CardIndex           *uint32
}

func decodeSinkInfo(r *tagstruct.Reader, version uint16) (SinkInfo, error) {
	var s SinkInfo
	var err error
	if s.Index, err = r.ReadU32(); err != nil {
		return SinkInfo{}, err
	}
	if s.Name, err = r.ReadStringNonNull(); err != nil {
		return SinkInfo{}, err
	}
	if s.Description, err = r.ReadString(); err != nil {
		return SinkInfo{}, err
	}
	if s.SampleSpec, err = r.ReadSampleSpec(); err != nil {
		return SinkInfo{}, err
	}
	if s.ChannelMap, err = r.ReadChannelMap(); err != nil {
		return SinkInfo{}, err
	}
	if s.OwnerModuleIndex, err = r.ReadIndex(); err != nil {
		return SinkInfo{}, err
	}
	if s.Volume, err = r.ReadChannelVolume(); err != nil {
		return SinkInfo{}, err
	}
	if s.Muted, err = r.ReadBool(); err != nil {
		return SinkInfo{}, err
	}
	if s.MonitorSourceIndex, err = r.ReadIndex(); err != nil {
		return SinkInfo{}, err
	}
	if s.MonitorSourceName, err = r.ReadString(); err != nil {
		return SinkInfo{}, err
	}
	latency, err := r.ReadUsec()
	if err != nil {
		return SinkInfo{}, err
	}
	s.Latency = uint64(latency)
	if s.Driver, err = r.ReadString(); err != nil {
		return SinkInfo{}, err
	}
	flags, err := r.ReadU32()
	if err != nil {
		return SinkInfo{}, err
	}
	s.Flags = SinkFlags(flags)
	if s.Props, err = r.ReadPropList(); err != nil {
		return SinkInfo{}, err
	}
	configuredLatency, err := r.ReadUsec()
	if err != nil {
		return SinkInfo{}, err
	}
	s.ConfiguredLatency = uint64(configuredLatency)
	// base_volume/state/n_volume_steps/card_index added at version 15
	// (spec.md §4.A's table); below that, they default to their zero values.
	if version >= 15 {
		if s.BaseVolume, err = r.ReadVolume(); err != nil {
			return SinkInfo{}, err
		}
		state, err := r.ReadU32()
		if err != nil {
			return SinkInfo{}, err
		}
		s.State = SinkState(state)
		if s.VolumeSteps, err = r.ReadU32(); err != nil {
			return SinkInfo{}, err
		}
		if s.CardIndex, err = r.ReadIndex(); err != nil {
			return SinkInfo{}, err
		}
	}
	return s, nil
}

func (s *SinkInfo) Decode(r *tagstruct.Reader, version uint16) error {
	got, err := decodeSinkInfo(r, version)
	if err != nil {
		return err
	}
	*s = got
	return nil
}

func (s SinkInfo) Encode(w *tagstruct.Writer, version uint16) error {
	if err := w.WriteU32(s.Index); err != nil {
		return err
	}
	if err := w.WriteString([]byte(s.Name)); err != nil {
		return err
	}
	if err := w.WriteString(s.Description); err != nil {
		return err
	}
	if err := w.WriteSampleSpec(s.SampleSpec); err != nil {
		return err
	}
	if err := w.WriteChannelMap(s.ChannelMap); err != nil {
		return err
	}
	if err := w.WriteIndex(s.OwnerModuleIndex); err != nil {
		return err
	}
	if err := w.WriteChannelVolume(s.Volume); err != nil {
		return err
	}
	if err := w.WriteBool(s.Muted); err != nil {
		return err
	}
	if err := w.WriteIndex(s.MonitorSourceIndex); err != nil {
		return err
	}
	if err := w.WriteString(s.MonitorSourceName); err != nil {
		return err
	}
	if err := w.WriteUsec(tagstruct.Usec(s.Latency)); err != nil {
		return err
	}
	if err := w.WriteString(s.Driver); err != nil {
		return err
	}
	if err := w.WriteU32(uint32(s.Flags)); err != nil {
		return err
	}
	if err := w.WritePropList(s.Props); err != nil {
		return err
	}
	if err := w.WriteUsec(tagstruct.Usec(s.ConfiguredLatency)); err != nil {
		return err
	}
	if version < 15 {
		return nil
	}
	if err := w.WriteVolume(s.BaseVolume); err != nil {
		return err
	}
	if err := w.WriteU32(uint32(s.State)); err != nil {
		return err
	}
	if err := w.WriteU32(s.VolumeSteps); err != nil {
		return err
	}
	return w.WriteIndex(s.CardIndex)
}

// GetSinkInfo looks up a sink by index or name; exactly one of Index or
// Name should be set (Index takes precedence if both are, matching the
// reference server's lookup order).
type GetSinkInfo struct {
	Index *uint32
	Name  []byte
}

func (GetSinkInfo) Tag() Tag { return TagGetSinkInfo }
func (c GetSinkInfo) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteIndex(c.Index); err != nil {
		return err
	}
	return w.WriteString(c.Name)
}

type GetSinkInfoList struct{}

func (GetSinkInfoList) Tag() Tag                                      { return TagGetSinkInfoList }
func (GetSinkInfoList) Encode(*tagstruct.Writer, uint16) error { return nil }

// SinkInfoList is the reply to GetSinkInfoList.
type SinkInfoList struct {
	Sinks []SinkInfo
}

func (l *SinkInfoList) Decode(r *tagstruct.Reader, version uint16) error {
	sinks, err := DecodeList(r, version, decodeSinkInfo)
	if err != nil {
		return err
	}
	l.Sinks = sinks
	return nil
}

func (l SinkInfoList) Encode(w *tagstruct.Writer, version uint16) error {
	for _, s := range l.Sinks {
		if err := s.Encode(w, version); err != nil {
			return err
		}
	}
	return nil
}
