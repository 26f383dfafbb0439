package command

import "github.com/alxayo/pulse-go/internal/tagstruct"

// SetClientName updates the client's properties on the server (most
// importantly application.name); it is the second mandatory handshake
// message, sent immediately after a successful Auth.
type SetClientName struct {
	Props *tagstruct.PropList
}

func (SetClientName) Tag() Tag { return TagSetClientName }

func (c SetClientName) Encode(w *tagstruct.Writer, _ uint16) error {
	return w.WritePropList(c.Props)
}

func DecodeSetClientName(r *tagstruct.Reader, _ uint16) (SetClientName, error) {
	props, err := r.ReadPropList()
	if err != nil {
		return SetClientName{}, err
	}
	return SetClientName{Props: props}, nil
}

// SetClientNameReply carries the server-assigned client index, used as the
// owner_module_index-style identity for subsequent ClientInfo lookups.
type SetClientNameReply struct {
	ClientID uint32
}

func (r *SetClientNameReply) Decode(ts *tagstruct.Reader, _ uint16) error {
	id, err := ts.ReadU32()
	if err != nil {
		return err
	}
	r.ClientID = id
	return nil
}

func (r SetClientNameReply) Encode(w *tagstruct.Writer, _ uint16) error {
	return w.WriteU32(r.ClientID)
}
