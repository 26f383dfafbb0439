package frame

import (
	"io"

	"github.com/alxayo/pulse-go/internal/bufpool"
	pulseerrors "github.com/alxayo/pulse-go/internal/errors"
)

// ReadFrame reads one descriptor followed by exactly Length payload bytes
// from r. The returned payload is owned by the caller: release it with
// bufpool.Put when done, unless it was not obtained from the pool (payloads
// above the largest size class are plain allocations and bufpool.Put is then
// a no-op).
//
// This boundary is load-bearing: list-reply decoding (see internal/protocol/
// command) relies on the payload being exactly descriptor.Length bytes, with
// no more and no less, before it ever invokes the tagstruct reader.
func ReadFrame(r io.Reader) (Descriptor, []byte, error) {
	d, err := ReadDescriptor(r)
	if err != nil {
		return Descriptor{}, nil, err
	}
	payload := bufpool.Get(int(d.Length))
	if d.Length > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			bufpool.Put(payload)
			return Descriptor{}, nil, pulseerrors.NewFrameDecodeError("read_frame.payload", err)
		}
	}
	return d, payload, nil
}
