package command

import "github.com/alxayo/pulse-go/internal/tagstruct"

// SetSinkVolume and SetSourceVolume address the target device by index or
// by name (same either/or convention as GetSinkInfo/GetSourceInfo).
type SetSinkVolume struct {
	Index  *uint32
	Name   []byte
	Volume tagstruct.ChannelVolume
}

func (SetSinkVolume) Tag() Tag { return TagSetSinkVolume }
func (c SetSinkVolume) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteIndex(c.Index); err != nil {
		return err
	}
	if err := w.WriteString(c.Name); err != nil {
		return err
	}
	return w.WriteChannelVolume(c.Volume)
}

type SetSourceVolume struct {
	Index  *uint32
	Name   []byte
	Volume tagstruct.ChannelVolume
}

func (SetSourceVolume) Tag() Tag { return TagSetSourceVolume }
func (c SetSourceVolume) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteIndex(c.Index); err != nil {
		return err
	}
	if err := w.WriteString(c.Name); err != nil {
		return err
	}
	return w.WriteChannelVolume(c.Volume)
}

type SetSinkMute struct {
	Index *uint32
	Name  []byte
	Mute  bool
}

func (SetSinkMute) Tag() Tag { return TagSetSinkMute }
func (c SetSinkMute) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteIndex(c.Index); err != nil {
		return err
	}
	if err := w.WriteString(c.Name); err != nil {
		return err
	}
	return w.WriteBool(c.Mute)
}

type SetSourceMute struct {
	Index *uint32
	Name  []byte
	Mute  bool
}

func (SetSourceMute) Tag() Tag { return TagSetSourceMute }
func (c SetSourceMute) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteIndex(c.Index); err != nil {
		return err
	}
	if err := w.WriteString(c.Name); err != nil {
		return err
	}
	return w.WriteBool(c.Mute)
}
