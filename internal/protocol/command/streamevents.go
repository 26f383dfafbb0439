package command

import "github.com/alxayo/pulse-go/internal/tagstruct"

// These are the unsolicited server->client notifications that update
// reactor-owned stream state (see internal/reactor/correlator.go) rather
// than resolving a pending reply. They never carry a seq field of their
// own beyond the shared envelope (see reply.go's ReadEnvelope) and are
// never sent by the client, so only Decode is implemented for most of
// them — Encode exists only where a test harness needs to fabricate one.

// Started signals that server-side playback/recording has actually begun
// for the stream on Channel (distinct from stream creation, which merely
// allocates buffers).
type Started struct{ Channel uint32 }

func DecodeStarted(r *tagstruct.Reader, _ uint16) (Started, error) {
	ch, err := r.ReadU32()
	return Started{Channel: ch}, err
}

// Request asks the client to write Bytes more bytes of playback data for
// Channel; this is the server-driven flow control signal that the reactor's
// playback pull loop waits on (spec.md §4.E).
type Request struct {
	Channel uint32
	Bytes   uint32
}

func DecodeRequest(r *tagstruct.Reader, _ uint16) (Request, error) {
	var req Request
	var err error
	if req.Channel, err = r.ReadU32(); err != nil {
		return Request{}, err
	}
	if req.Bytes, err = r.ReadU32(); err != nil {
		return Request{}, err
	}
	return req, nil
}

func EncodeRequestNotification(w *tagstruct.Writer, req Request) error {
	if err := w.WriteU32(req.Channel); err != nil {
		return err
	}
	return w.WriteU32(req.Bytes)
}

// Overflow indicates the server had to drop record data for Channel because
// the client wasn't reading fast enough.
type Overflow struct{ Channel uint32 }

func DecodeOverflow(r *tagstruct.Reader, _ uint16) (Overflow, error) {
	ch, err := r.ReadU32()
	return Overflow{Channel: ch}, err
}

// underflowOffsetVersion is the protocol version at which Underflow grew its
// Offset field (spec.md §4.A's version-conditional table); readers below
// this version must not consume it.
const underflowOffsetVersion = 23

// Underflow indicates the playback buffer for Channel ran dry; Offset is
// the write index at which the underrun was detected. Below
// underflowOffsetVersion the field does not exist on the wire at all, so
// Offset decodes as its zero value rather than being read.
type Underflow struct {
	Channel uint32
	Offset  uint64
}

func DecodeUnderflow(r *tagstruct.Reader, version uint16) (Underflow, error) {
	var u Underflow
	var err error
	if u.Channel, err = r.ReadU32(); err != nil {
		return Underflow{}, err
	}
	if version < underflowOffsetVersion {
		return u, nil
	}
	offset, err := r.ReadI64()
	if err != nil {
		return Underflow{}, err
	}
	u.Offset = uint64(offset)
	return u, nil
}

// EncodeUnderflow writes a notification frame for tests that fabricate one;
// it mirrors DecodeUnderflow's version gate exactly.
func EncodeUnderflow(w *tagstruct.Writer, version uint16, u Underflow) error {
	if err := w.WriteU32(u.Channel); err != nil {
		return err
	}
	if version < underflowOffsetVersion {
		return nil
	}
	return w.WriteI64(int64(u.Offset))
}

// PlaybackStreamKilled and RecordStreamKilled tell the client the server
// destroyed the stream out from under it (e.g. the sink/source disappeared).
type PlaybackStreamKilled struct{ Channel uint32 }

func DecodePlaybackStreamKilled(r *tagstruct.Reader, _ uint16) (PlaybackStreamKilled, error) {
	ch, err := r.ReadU32()
	return PlaybackStreamKilled{Channel: ch}, err
}

type RecordStreamKilled struct{ Channel uint32 }

func DecodeRecordStreamKilled(r *tagstruct.Reader, _ uint16) (RecordStreamKilled, error) {
	ch, err := r.ReadU32()
	return RecordStreamKilled{Channel: ch}, err
}

// PlaybackStreamMoved and RecordStreamMoved announce the stream was
// reassigned to a different sink/source, with its buffer attributes
// renegotiated for the new device.
type PlaybackStreamMoved struct {
	Channel    uint32
	SinkIndex  uint32
	SinkName   []byte
	BufferAttr BufferAttr
}

func DecodePlaybackStreamMoved(r *tagstruct.Reader, _ uint16) (PlaybackStreamMoved, error) {
	var m PlaybackStreamMoved
	var err error
	if m.Channel, err = r.ReadU32(); err != nil {
		return PlaybackStreamMoved{}, err
	}
	if m.SinkIndex, err = r.ReadU32(); err != nil {
		return PlaybackStreamMoved{}, err
	}
	if m.SinkName, err = r.ReadString(); err != nil {
		return PlaybackStreamMoved{}, err
	}
	if m.BufferAttr, err = readPlaybackBufferAttr(r); err != nil {
		return PlaybackStreamMoved{}, err
	}
	return m, nil
}

type RecordStreamMoved struct {
	Channel      uint32
	SourceIndex  uint32
	SourceName   []byte
	BufferAttr   BufferAttr
}

func DecodeRecordStreamMoved(r *tagstruct.Reader, _ uint16) (RecordStreamMoved, error) {
	var m RecordStreamMoved
	var err error
	if m.Channel, err = r.ReadU32(); err != nil {
		return RecordStreamMoved{}, err
	}
	if m.SourceIndex, err = r.ReadU32(); err != nil {
		return RecordStreamMoved{}, err
	}
	if m.SourceName, err = r.ReadString(); err != nil {
		return RecordStreamMoved{}, err
	}
	if m.BufferAttr, err = readRecordBufferAttr(r); err != nil {
		return RecordStreamMoved{}, err
	}
	return m, nil
}

// PlaybackStreamSuspended and RecordStreamSuspended announce the owning
// device suspended or resumed.
type PlaybackStreamSuspended struct {
	Channel   uint32
	Suspended bool
}

func DecodePlaybackStreamSuspended(r *tagstruct.Reader, _ uint16) (PlaybackStreamSuspended, error) {
	var s PlaybackStreamSuspended
	var err error
	if s.Channel, err = r.ReadU32(); err != nil {
		return PlaybackStreamSuspended{}, err
	}
	if s.Suspended, err = r.ReadBool(); err != nil {
		return PlaybackStreamSuspended{}, err
	}
	return s, nil
}

type RecordStreamSuspended struct {
	Channel   uint32
	Suspended bool
}

func DecodeRecordStreamSuspended(r *tagstruct.Reader, _ uint16) (RecordStreamSuspended, error) {
	var s RecordStreamSuspended
	var err error
	if s.Channel, err = r.ReadU32(); err != nil {
		return RecordStreamSuspended{}, err
	}
	if s.Suspended, err = r.ReadBool(); err != nil {
		return RecordStreamSuspended{}, err
	}
	return s, nil
}

// PlaybackBufferAttrChanged and RecordBufferAttrChanged announce the server
// unilaterally changed a stream's buffering, e.g. in response to a device
// latency change.
type PlaybackBufferAttrChanged struct {
	Channel           uint32
	BufferAttr        BufferAttr
	ConfiguredLatency uint64
}

func DecodePlaybackBufferAttrChanged(r *tagstruct.Reader, _ uint16) (PlaybackBufferAttrChanged, error) {
	var c PlaybackBufferAttrChanged
	var err error
	if c.Channel, err = r.ReadU32(); err != nil {
		return PlaybackBufferAttrChanged{}, err
	}
	if c.BufferAttr, err = readPlaybackBufferAttr(r); err != nil {
		return PlaybackBufferAttrChanged{}, err
	}
	usec, err := r.ReadUsec()
	if err != nil {
		return PlaybackBufferAttrChanged{}, err
	}
	c.ConfiguredLatency = uint64(usec)
	return c, nil
}

type RecordBufferAttrChanged struct {
	Channel    uint32
	BufferAttr BufferAttr
}

func DecodeRecordBufferAttrChanged(r *tagstruct.Reader, _ uint16) (RecordBufferAttrChanged, error) {
	var c RecordBufferAttrChanged
	var err error
	if c.Channel, err = r.ReadU32(); err != nil {
		return RecordBufferAttrChanged{}, err
	}
	if c.BufferAttr, err = readRecordBufferAttr(r); err != nil {
		return RecordBufferAttrChanged{}, err
	}
	return c, nil
}

// ClientEvent, PlaybackStreamEvent, and RecordStreamEvent carry an
// arbitrary named payload (module-defined, e.g. device-reserved /
// device-unreserved events emitted by module-reserve-wrap). Props carries
// whatever data accompanies the event name.
type ClientEvent struct {
	Name  string
	Props *tagstruct.PropList
}

func DecodeClientEvent(r *tagstruct.Reader, _ uint16) (ClientEvent, error) {
	var e ClientEvent
	var err error
	if e.Name, err = r.ReadStringNonNull(); err != nil {
		return ClientEvent{}, err
	}
	if e.Props, err = r.ReadPropList(); err != nil {
		return ClientEvent{}, err
	}
	return e, nil
}

type PlaybackStreamEvent struct {
	Channel uint32
	Name    string
	Props   *tagstruct.PropList
}

func DecodePlaybackStreamEvent(r *tagstruct.Reader, _ uint16) (PlaybackStreamEvent, error) {
	var e PlaybackStreamEvent
	var err error
	if e.Channel, err = r.ReadU32(); err != nil {
		return PlaybackStreamEvent{}, err
	}
	if e.Name, err = r.ReadStringNonNull(); err != nil {
		return PlaybackStreamEvent{}, err
	}
	if e.Props, err = r.ReadPropList(); err != nil {
		return PlaybackStreamEvent{}, err
	}
	return e, nil
}

type RecordStreamEvent struct {
	Channel uint32
	Name    string
	Props   *tagstruct.PropList
}

func DecodeRecordStreamEvent(r *tagstruct.Reader, _ uint16) (RecordStreamEvent, error) {
	var e RecordStreamEvent
	var err error
	if e.Channel, err = r.ReadU32(); err != nil {
		return RecordStreamEvent{}, err
	}
	if e.Name, err = r.ReadStringNonNull(); err != nil {
		return RecordStreamEvent{}, err
	}
	if e.Props, err = r.ReadPropList(); err != nil {
		return RecordStreamEvent{}, err
	}
	return e, nil
}
