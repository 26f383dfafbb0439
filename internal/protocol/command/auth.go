package command

import "github.com/alxayo/pulse-go/internal/tagstruct"

const (
	versionMask uint32 = 0x0000ffff
	flagShm     uint32 = 0x80000000
	flagMemfd   uint32 = 0x40000000
)

// Auth is the first message a client sends after connecting: it carries the
// client's highest supported protocol version plus its shared-memory
// transport capabilities, packed into a single u32 alongside the auth
// cookie. This doubles as the protocol version handshake (spec.md §5): the
// negotiated version is min(client, server), learned back from AuthReply.
type Auth struct {
	Version       uint16
	SupportsSHM   bool
	SupportsMemfd bool
	Cookie        []byte
}

func (Auth) Tag() Tag { return TagAuth }

func (a Auth) Encode(w *tagstruct.Writer, _ uint16) error {
	flagsAndVersion := uint32(a.Version) & versionMask
	if a.SupportsSHM {
		flagsAndVersion |= flagShm
	}
	if a.SupportsMemfd {
		flagsAndVersion |= flagMemfd
	}
	if err := w.WriteU32(flagsAndVersion); err != nil {
		return err
	}
	return w.WriteArbitrary(a.Cookie)
}

// DecodeAuth is exposed for test/server-role harnesses; the client's own
// traffic never decodes its own request type.
func DecodeAuth(r *tagstruct.Reader, _ uint16) (Auth, error) {
	flagsAndVersion, err := r.ReadU32()
	if err != nil {
		return Auth{}, err
	}
	cookie, err := r.ReadArbitrary()
	if err != nil {
		return Auth{}, err
	}
	return Auth{
		Version:       uint16(flagsAndVersion & versionMask),
		SupportsSHM:   flagsAndVersion&flagShm != 0,
		SupportsMemfd: flagsAndVersion&flagMemfd != 0,
		Cookie:        cookie,
	}, nil
}

// AuthReply is the server's negotiated response: its own protocol version
// and which shared-memory transports it agreed to use.
type AuthReply struct {
	Version  uint16
	UseMemfd bool
	UseSHM   bool
}

func (r *AuthReply) Decode(ts *tagstruct.Reader, _ uint16) error {
	raw, err := ts.ReadU32()
	if err != nil {
		return err
	}
	r.Version = uint16(raw & versionMask)
	r.UseMemfd = raw&flagMemfd != 0
	r.UseSHM = raw&flagShm != 0
	return nil
}

func (r AuthReply) Encode(w *tagstruct.Writer, _ uint16) error {
	raw := uint32(r.Version)
	if r.UseMemfd {
		raw |= flagMemfd
	}
	if r.UseSHM {
		raw |= flagShm
	}
	return w.WriteU32(raw)
}
