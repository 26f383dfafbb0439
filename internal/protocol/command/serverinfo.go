package command

import "github.com/alxayo/pulse-go/internal/tagstruct"

// GetServerInfo takes no parameters.
type GetServerInfo struct{}

func (GetServerInfo) Tag() Tag                                      { return TagGetServerInfo }
func (GetServerInfo) Encode(*tagstruct.Writer, uint16) error { return nil }

// ServerInfo describes the server daemon and its current defaults.
type ServerInfo struct {
	ServerName       []byte
	ServerVersion    []byte
	UserName         []byte
	HostName         []byte
	SampleSpec       tagstruct.SampleSpec
	DefaultSinkName  []byte
	DefaultSourceName []byte
	Cookie           uint32
	ChannelMap       tagstruct.ChannelMap // only populated at version >= 15
}

func (s *ServerInfo) Decode(r *tagstruct.Reader, version uint16) error {
	var err error
	if s.ServerName, err = r.ReadString(); err != nil {
		return err
	}
	if s.ServerVersion, err = r.ReadString(); err != nil {
		return err
	}
	if s.UserName, err = r.ReadString(); err != nil {
		return err
	}
	if s.HostName, err = r.ReadString(); err != nil {
		return err
	}
	if s.SampleSpec, err = r.ReadSampleSpec(); err != nil {
		return err
	}
	if s.DefaultSinkName, err = r.ReadString(); err != nil {
		return err
	}
	if s.DefaultSourceName, err = r.ReadString(); err != nil {
		return err
	}
	if s.Cookie, err = r.ReadU32(); err != nil {
		return err
	}
	if version >= 15 {
		if s.ChannelMap, err = r.ReadChannelMap(); err != nil {
			return err
		}
	}
	return nil
}

func (s ServerInfo) Encode(w *tagstruct.Writer, version uint16) error {
	if err := w.WriteString(s.ServerName); err != nil {
		return err
	}
	if err := w.WriteString(s.ServerVersion); err != nil {
		return err
	}
	if err := w.WriteString(s.UserName); err != nil {
		return err
	}
	if err := w.WriteString(s.HostName); err != nil {
		return err
	}
	if err := w.WriteSampleSpec(s.SampleSpec); err != nil {
		return err
	}
	if err := w.WriteString(s.DefaultSinkName); err != nil {
		return err
	}
	if err := w.WriteString(s.DefaultSourceName); err != nil {
		return err
	}
	if err := w.WriteU32(s.Cookie); err != nil {
		return err
	}
	if version >= 15 {
		return w.WriteChannelMap(s.ChannelMap)
	}
	return nil
}
