package command

import "github.com/alxayo/pulse-go/internal/tagstruct"

// SourceState mirrors SinkState for record devices.
type SourceState uint32

const (
	SourceStateRunning   SourceState = 0
	SourceStateIdle      SourceState = 1
	SourceStateSuspended SourceState = 2
)

// SourceFlags mirrors SinkFlags for record devices (a monitor source's
// MONITOR bit has no sink-side equivalent).
type SourceFlags uint32

const (
	SourceFlagHWVolumeCtrl   SourceFlags = 0x0001
	SourceFlagLatency        SourceFlags = 0x0002
	SourceFlagHardware       SourceFlags = 0x0004
	SourceFlagNetwork        SourceFlags = 0x0008
	SourceFlagHWMuteCtrl     SourceFlags = 0x0010
	SourceFlagDecibelVolume  SourceFlags = 0x0020
	SourceFlagFlatVolume     SourceFlags = 0x0040
	SourceFlagDynamicLatency SourceFlags = 0x0080
	SourceFlagMonitor        SourceFlags = 0x0100
)

// SourceInfo describes one source (a record device) known to the server.
// See SinkInfo's doc comment for the same scope note re: nested port/format
// lists.
type SourceInfo struct {
	Index             uint32
	Name              string
	Description       []byte
	SampleSpec        tagstruct.SampleSpec
	ChannelMap        tagstruct.ChannelMap
	OwnerModuleIndex  *uint32
	Volume            tagstruct.ChannelVolume
	Muted             bool
	MonitorOfSinkIndex *uint32
	MonitorOfSinkName []byte
	Latency           uint64
	Driver            []byte
	Flags             SourceFlags
	Props             *tagstruct.PropList
	ConfiguredLatency uint64
	BaseVolume        tagstruct.Volume
	State             SourceState
	VolumeSteps       uint32
	CardIndex         *uint32
}

func decodeSourceInfo(r *tagstruct.Reader, version uint16) (SourceInfo, error) {
	var s SourceInfo
	var err error
	if s.Index, err = r.ReadU32(); err != nil {
		return SourceInfo{}, err
	}
	if s.Name, err = r.ReadStringNonNull(); err != nil {
		return SourceInfo{}, err
	}
	if s.Description, err = r.ReadString(); err != nil {
		return SourceInfo{}, err
	}
	if s.SampleSpec, err = r.ReadSampleSpec(); err != nil {
		return SourceInfo{}, err
	}
	if s.ChannelMap, err = r.ReadChannelMap(); err != nil {
		return SourceInfo{}, err
	}
	if s.OwnerModuleIndex, err = r.ReadIndex(); err != nil {
		return SourceInfo{}, err
	}
	if s.Volume, err = r.ReadChannelVolume(); err != nil {
		return SourceInfo{}, err
	}
	if s.Muted, err = r.ReadBool(); err != nil {
		return SourceInfo{}, err
	}
	if s.MonitorOfSinkIndex, err = r.ReadIndex(); err != nil {
		return SourceInfo{}, err
	}
	if s.MonitorOfSinkName, err = r.ReadString(); err != nil {
		return SourceInfo{}, err
	}
	latency, err := r.ReadUsec()
	if err != nil {
		return SourceInfo{}, err
	}
	s.Latency = uint64(latency)
	if s.Driver, err = r.ReadString(); err != nil {
		return SourceInfo{}, err
	}
	flags, err := r.ReadU32()
	if err != nil {
		return SourceInfo{}, err
	}
	s.Flags = SourceFlags(flags)
	if s.Props, err = r.ReadPropList(); err != nil {
		return SourceInfo{}, err
	}
	configuredLatency, err := r.ReadUsec()
	if err != nil {
		return SourceInfo{}, err
	}
	s.ConfiguredLatency = uint64(configuredLatency)
	// base_volume/state/n_volume_steps/card_index: same version-15 gate as
	// SinkInfo (spec.md §4.A's table groups SourceInfo under "equivalents").
	if version >= 15 {
		if s.BaseVolume, err = r.ReadVolume(); err != nil {
			return SourceInfo{}, err
		}
		state, err := r.ReadU32()
		if err != nil {
			return SourceInfo{}, err
		}
		s.State = SourceState(state)
		if s.VolumeSteps, err = r.ReadU32(); err != nil {
			return SourceInfo{}, err
		}
		if s.CardIndex, err = r.ReadIndex(); err != nil {
			return SourceInfo{}, err
		}
	}
	return s, nil
}

func (s *SourceInfo) Decode(r *tagstruct.Reader, version uint16) error {
	got, err := decodeSourceInfo(r, version)
	if err != nil {
		return err
	}
	*s = got
	return nil
}

func (s SourceInfo) Encode(w *tagstruct.Writer, version uint16) error {
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
	if err := w.WriteIndex(s.MonitorOfSinkIndex); err != nil {
		return err
	}
	if err := w.WriteString(s.MonitorOfSinkName); err != nil {
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

type GetSourceInfo struct {
	Index *uint32
	Name  []byte
}

func (GetSourceInfo) Tag() Tag { return TagGetSourceInfo }
func (c GetSourceInfo) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteIndex(c.Index); err != nil {
		return err
	}
	return w.WriteString(c.Name)
}

type GetSourceInfoList struct{}

func (GetSourceInfoList) Tag() Tag                                      { return TagGetSourceInfoList }
func (GetSourceInfoList) Encode(*tagstruct.Writer, uint16) error { return nil }

// SourceInfoList is the reply to GetSourceInfoList.
type SourceInfoList struct {
	Sources []SourceInfo
}

func (l *SourceInfoList) Decode(r *tagstruct.Reader, version uint16) error {
	sources, err := DecodeList(r, version, decodeSourceInfo)
	if err != nil {
		return err
	}
	l.Sources = sources
	return nil
}

func (l SourceInfoList) Encode(w *tagstruct.Writer, version uint16) error {
	for _, s := range l.Sources {
		if err := s.Encode(w, version); err != nil {
			return err
		}
	}
	return nil
}
