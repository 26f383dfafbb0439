package command

import "github.com/alxayo/pulse-go/internal/tagstruct"

// ModuleInfo describes a loaded server module. Below protocol version 15
// the module exposed a plain AutoUnload bool instead of a property list
// (spec.md §4.A's table); this catalog reads/writes whichever the
// negotiated version calls for and leaves the other field at its zero
// value.
type ModuleInfo struct {
	Index      uint32
	Name       string
	Argument   []byte
	NUsed      uint32
	AutoUnload bool
	Props      *tagstruct.PropList
}

func decodeModuleInfo(r *tagstruct.Reader, version uint16) (ModuleInfo, error) {
	var m ModuleInfo
	var err error
	if m.Index, err = r.ReadU32(); err != nil {
		return ModuleInfo{}, err
	}
	if m.Name, err = r.ReadStringNonNull(); err != nil {
		return ModuleInfo{}, err
	}
	if m.Argument, err = r.ReadString(); err != nil {
		return ModuleInfo{}, err
	}
	if m.NUsed, err = r.ReadU32(); err != nil {
		return ModuleInfo{}, err
	}
	if version < 15 {
		if m.AutoUnload, err = r.ReadBool(); err != nil {
			return ModuleInfo{}, err
		}
		return m, nil
	}
	if m.Props, err = r.ReadPropList(); err != nil {
		return ModuleInfo{}, err
	}
	return m, nil
}

func (m *ModuleInfo) Decode(r *tagstruct.Reader, version uint16) error {
	got, err := decodeModuleInfo(r, version)
	if err != nil {
		return err
	}
	*m = got
	return nil
}

func (m ModuleInfo) Encode(w *tagstruct.Writer, version uint16) error {
	if err := w.WriteU32(m.Index); err != nil {
		return err
	}
	if err := w.WriteString([]byte(m.Name)); err != nil {
		return err
	}
	if err := w.WriteString(m.Argument); err != nil {
		return err
	}
	if err := w.WriteU32(m.NUsed); err != nil {
		return err
	}
	if version < 15 {
		return w.WriteBool(m.AutoUnload)
	}
	return w.WritePropList(m.Props)
}

// GetModuleInfo looks up one module by its server-assigned index.
type GetModuleInfo struct{ Index uint32 }

func (GetModuleInfo) Tag() Tag { return TagGetModuleInfo }
func (c GetModuleInfo) Encode(w *tagstruct.Writer, _ uint16) error { return w.WriteU32(c.Index) }

type GetModuleInfoList struct{}

func (GetModuleInfoList) Tag() Tag                               { return TagGetModuleInfoList }
func (GetModuleInfoList) Encode(*tagstruct.Writer, uint16) error { return nil }

// ModuleInfoList is the reply to GetModuleInfoList.
type ModuleInfoList struct {
	Modules []ModuleInfo
}

func (l *ModuleInfoList) Decode(r *tagstruct.Reader, version uint16) error {
	mods, err := DecodeList(r, version, decodeModuleInfo)
	if err != nil {
		return err
	}
	l.Modules = mods
	return nil
}

func (l ModuleInfoList) Encode(w *tagstruct.Writer, version uint16) error {
	for _, m := range l.Modules {
		if err := m.Encode(w, version); err != nil {
			return err
		}
	}
	return nil
}

// LoadModule asks the server to load a module by name with the given
// argument string. Reply: LoadModuleReply{Index}.
type LoadModule struct {
	Name     string
	Argument []byte
}

func (LoadModule) Tag() Tag { return TagLoadModule }
func (c LoadModule) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteString([]byte(c.Name)); err != nil {
		return err
	}
	return w.WriteString(c.Argument)
}

type LoadModuleReply struct{ Index uint32 }

func (r *LoadModuleReply) Decode(ts *tagstruct.Reader, _ uint16) error {
	idx, err := ts.ReadU32()
	if err != nil {
		return err
	}
	r.Index = idx
	return nil
}

func (r LoadModuleReply) Encode(w *tagstruct.Writer, _ uint16) error { return w.WriteU32(r.Index) }

// UnloadModule asks the server to unload a previously loaded module.
type UnloadModule struct{ Index uint32 }

func (UnloadModule) Tag() Tag                                        { return TagUnloadModule }
func (c UnloadModule) Encode(w *tagstruct.Writer, _ uint16) error { return w.WriteU32(c.Index) }
