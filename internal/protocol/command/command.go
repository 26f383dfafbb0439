package command

import (
	"bytes"
	"fmt"

	pulseerrors "github.com/alxayo/pulse-go/internal/errors"
	"github.com/alxayo/pulse-go/internal/tagstruct"
)

// Params is implemented by every client->server request payload. Tag
// identifies the command for the envelope; Encode writes the command body
// (everything after the tag+seq header written by EncodeRequest).
//
// This is the tagged-union "Command" from the reference design collapsed
// into Go's native sum-type idiom: an interface with one concrete struct per
// variant, each carrying its own Tag and Encode, rather than a hand-rolled
// enum-plus-union the way the Rust original does it. Inbound notifications
// are decoded by DecodeNotification's switch on Tag (see dispatcher.go).
type Params interface {
	Tag() Tag
	Encode(w *tagstruct.Writer, version uint16) error
}

// EncodeRequest serializes the tag+seq header and p's body into a single
// control-message payload, ready for frame.WriteControlMessage. Framing
// itself is deliberately not this package's concern — see internal/frame's
// doc comment on WriteControlMessage for the dependency direction.
func EncodeRequest(version uint16, seq uint32, p Params) ([]byte, error) {
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, version)
	if err := w.WriteEnum(uint32(p.Tag())); err != nil {
		return nil, err
	}
	if err := w.WriteU32(seq); err != nil {
		return nil, err
	}
	if err := p.Encode(w, version); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeRequestHeader reads the tag+seq header from a request payload
// received from r without touching the body. Used by test harnesses and any
// future server-role code; the client's own reactor only ever decodes
// envelopes (see reply.go), never request headers, since it has no peers
// sending it requests.
func DecodeRequestHeader(r *tagstruct.Reader) (Tag, uint32, error) {
	raw, err := r.ReadEnum("command_tag", func(v uint32) bool { return Tag(v).valid() })
	if err != nil {
		return 0, 0, err
	}
	seq, err := r.ReadU32()
	if err != nil {
		return 0, 0, err
	}
	return Tag(raw), seq, nil
}

// errUnhandledTag is returned by decode dispatch when a tag is structurally
// valid but this catalog does not implement it. Per spec.md's non-goals,
// the catalog covers a grounded subset of the full command surface — every
// tag decodes, but not every tag's body has a typed struct yet.
func errUnhandledTag(op string, t Tag) error {
	return pulseerrors.NewProtocolError(op, fmt.Errorf("unhandled command tag %s (%d)", t, t))
}
