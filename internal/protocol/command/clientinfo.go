package command

import "github.com/alxayo/pulse-go/internal/tagstruct"

// GetClientInfo looks up a single client by its server-assigned index.
type GetClientInfo struct {
	Index uint32
}

func (GetClientInfo) Tag() Tag { return TagGetClientInfo }
func (c GetClientInfo) Encode(w *tagstruct.Writer, _ uint16) error {
	return w.WriteU32(c.Index)
}

// GetClientInfoList takes no parameters.
type GetClientInfoList struct{}

func (GetClientInfoList) Tag() Tag                                      { return TagGetClientInfoList }
func (GetClientInfoList) Encode(*tagstruct.Writer, uint16) error { return nil }

// ClientInfo describes a client connected to the server.
type ClientInfo struct {
	Index             uint32
	Name              string
	OwnerModuleIndex  *uint32
	Driver            []byte
	Props             *tagstruct.PropList
}

func decodeClientInfo(r *tagstruct.Reader, _ uint16) (ClientInfo, error) {
	var c ClientInfo
	var err error
	if c.Index, err = r.ReadU32(); err != nil {
		return ClientInfo{}, err
	}
	if c.Name, err = r.ReadStringNonNull(); err != nil {
		return ClientInfo{}, err
	}
	if c.OwnerModuleIndex, err = r.ReadIndex(); err != nil {
		return ClientInfo{}, err
	}
	if c.Driver, err = r.ReadString(); err != nil {
		return ClientInfo{}, err
	}
	if c.Props, err = r.ReadPropList(); err != nil {
		return ClientInfo{}, err
	}
	return c, nil
}

func (c *ClientInfo) Decode(r *tagstruct.Reader, version uint16) error {
	got, err := decodeClientInfo(r, version)
	if err != nil {
		return err
	}
	*c = got
	return nil
}

func (c ClientInfo) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteU32(c.Index); err != nil {
		return err
	}
	if err := w.WriteString([]byte(c.Name)); err != nil {
		return err
	}
	if err := w.WriteIndex(c.OwnerModuleIndex); err != nil {
		return err
	}
	if err := w.WriteString(c.Driver); err != nil {
		return err
	}
	return w.WritePropList(c.Props)
}

// ClientInfoList is the reply to GetClientInfoList: a back-to-back,
// length-delimited-by-frame sequence of ClientInfo values.
type ClientInfoList struct {
	Clients []ClientInfo
}

func (l *ClientInfoList) Decode(r *tagstruct.Reader, version uint16) error {
	clients, err := DecodeList(r, version, decodeClientInfo)
	if err != nil {
		return err
	}
	l.Clients = clients
	return nil
}

func (l ClientInfoList) Encode(w *tagstruct.Writer, version uint16) error {
	for _, c := range l.Clients {
		if err := c.Encode(w, version); err != nil {
			return err
		}
	}
	return nil
}
