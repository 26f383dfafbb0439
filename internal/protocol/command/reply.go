package command

import (
	pulseerrors "github.com/alxayo/pulse-go/internal/errors"
	"github.com/alxayo/pulse-go/internal/tagstruct"
)

// Reply is implemented by every server->client reply body. Decode consumes
// exactly the reply's fields from r; the tag+seq envelope is read separately
// by ReadEnvelope since it is generic across all replies.
type Reply interface {
	Decode(r *tagstruct.Reader, version uint16) error
}

// ReadEnvelope reads the generic {tag, seq} header shared by every reply and
// notification message. tag is either TagReply (followed by a reply body
// whose shape only the caller — who remembers which request it sent —
// knows), TagError (followed by a single PulseError code, see
// ReadErrorCode), or one of the notification tags (see streamevents.go,
// subscribe.go).
func ReadEnvelope(r *tagstruct.Reader) (tag Tag, seq uint32, err error) {
	raw, err := r.ReadEnum("envelope_tag", func(v uint32) bool { return Tag(v).valid() })
	if err != nil {
		return 0, 0, err
	}
	seq, err = r.ReadU32()
	if err != nil {
		return 0, 0, err
	}
	return Tag(raw), seq, nil
}

// ReadErrorCode reads the single u32 PulseError code that is the entire body
// of an Error envelope.
func ReadErrorCode(r *tagstruct.Reader) (PulseError, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return PulseError(v), nil
}

// AsServerError wraps code as the package-level error taxonomy's ServerError,
// for callers (the correlation engine) that need to resolve a pending
// request's error channel with a plain `error`.
func AsServerError(op string, code PulseError) error {
	return pulseerrors.NewServerError(op, int32(code), code.String())
}

// DecodeList decodes a list-reply's items back to back with no count
// prefix, relying solely on HasDataLeft to know when to stop — the
// PulseAudio wire format's only size delimiter for GetXInfoList-style
// replies is the enclosing frame's descriptor length (see internal/frame).
func DecodeList[T any](r *tagstruct.Reader, version uint16, decodeOne func(*tagstruct.Reader, uint16) (T, error)) ([]T, error) {
	var out []T
	for {
		left, err := r.HasDataLeft()
		if err != nil {
			return nil, err
		}
		if !left {
			return out, nil
		}
		item, err := decodeOne(r, version)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
}
