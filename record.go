package pulse

import (
	"context"

	"github.com/alxayo/pulse-go/internal/protocol/command"
	"github.com/alxayo/pulse-go/internal/reactor"
	"github.com/alxayo/pulse-go/internal/tagstruct"
)

// RecordStream is a record (server->client) stream: inbound data frames
// tagged with Channel are pushed to Sink as they arrive (spec.md §4.E).
type RecordStream struct {
	client      *Client
	channel     uint32
	streamIndex uint32
	sampleSpec  tagstruct.SampleSpec
	channelMap  tagstruct.ChannelMap
	bufferAttr  command.BufferAttr
}

func (s *RecordStream) SampleSpec() tagstruct.SampleSpec { return s.sampleSpec }
func (s *RecordStream) ChannelMap() tagstruct.ChannelMap { return s.channelMap }
func (s *RecordStream) BufferAttr() command.BufferAttr   { return s.bufferAttr }
func (s *RecordStream) StreamIndex() uint32              { return s.streamIndex }

// CreateRecordStream opens a new record stream against sourceName (empty
// for the default source), pushing inbound audio to sink.
func (c *Client) CreateRecordStream(ctx context.Context, name string, sourceName string, spec tagstruct.SampleSpec, chMap tagstruct.ChannelMap, sink reactor.RecordSink, corked bool) (*RecordStream, error) {
	props := tagstruct.NewPropList()
	props.SetString(tagstruct.PropMediaName, name)
	req := command.CreateRecordStream{
		SampleSpec: spec,
		ChannelMap: chMap,
		Corked:     corked,
		BufferAttr: command.BufferAttr{
			MaxLength:    command.BufferAttrUseServerDefault,
			FragmentSize: command.BufferAttrUseServerDefault,
		},
		Volume: defaultChannelVolume(spec.Channels),
		Props:  props,
	}
	if sourceName != "" {
		req.SourceName = []byte(sourceName)
	}

	var reply command.CreateRecordStreamReply
	if err := c.Command(ctx, req, &reply); err != nil {
		return nil, err
	}

	state := &reactor.RecordStreamState{
		Channel:     reply.Channel,
		StreamIndex: reply.StreamIndex,
		SampleSpec:  reply.SampleSpec,
		ChannelMap:  reply.ChannelMap,
		Sink:        sink,
	}
	c.reactor.Correlator().AddRecordStream(state)

	s := &RecordStream{
		client:      c,
		channel:     reply.Channel,
		streamIndex: reply.StreamIndex,
		sampleSpec:  reply.SampleSpec,
		channelMap:  reply.ChannelMap,
		bufferAttr:  reply.BufferAttr,
	}
	if m := c.reactor.Metrics(); m != nil {
		m.SetRecordStreams(1)
	}
	return s, nil
}

// Cork pauses or resumes recording.
func (s *RecordStream) Cork(ctx context.Context, corked bool) error {
	return s.client.Command(ctx, command.CorkRecordStream{StreamIndex: s.streamIndex, Corked: corked}, nil)
}

// Flush discards any buffered-but-undelivered recorded audio.
func (s *RecordStream) Flush(ctx context.Context) error {
	return s.client.Command(ctx, command.FlushRecordStream{StreamIndex: s.streamIndex}, nil)
}

// OnStarted installs a callback fired once the server's Started notification
// is observed for this stream (the recording has actually begun producing
// data, as opposed to merely being acknowledged).
func (s *RecordStream) OnStarted(fn func()) {
	if st, ok := s.client.reactor.Correlator().RecordStream(s.channel); ok {
		st.OnStarted(fn)
	}
}

// Close schedules a fire-and-forget DeleteRecordStream and stops tracking
// the stream locally (spec.md §4.E "Cancellation").
func (s *RecordStream) Close() {
	s.client.reactor.Correlator().RemoveRecordStream(s.channel)
	s.client.reactor.FireAndForget(command.DeleteRecordStream{StreamIndex: s.streamIndex})
	if m := s.client.reactor.Metrics(); m != nil {
		m.SetRecordStreams(0)
	}
}
