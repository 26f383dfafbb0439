package pulse

import (
	"context"

	"github.com/alxayo/pulse-go/internal/protocol/command"
	"github.com/alxayo/pulse-go/internal/reactor"
	"github.com/alxayo/pulse-go/internal/tagstruct"
)

// PlaybackStream is a playback (client->server) stream: the client's
// reactor pulls from Source whenever the server's flow control grants more
// bytes (spec.md §4.E), and writes them as data frames tagged with Channel.
type PlaybackStream struct {
	client      *Client
	channel     uint32
	streamIndex uint32
	sampleSpec  tagstruct.SampleSpec
	channelMap  tagstruct.ChannelMap
	bufferAttr  command.BufferAttr
}

// SampleSpec, ChannelMap, and BufferAttr report what the server actually
// negotiated for this stream, which may differ from what was requested.
func (s *PlaybackStream) SampleSpec() tagstruct.SampleSpec { return s.sampleSpec }
func (s *PlaybackStream) ChannelMap() tagstruct.ChannelMap { return s.channelMap }
func (s *PlaybackStream) BufferAttr() command.BufferAttr   { return s.bufferAttr }
func (s *PlaybackStream) StreamIndex() uint32              { return s.streamIndex }

// CreatePlaybackStream opens a new playback stream against sinkName (empty
// for the default sink), fed by source. name is the stream's media.name
// property; corked starts the stream paused if true.
func (c *Client) CreatePlaybackStream(ctx context.Context, name string, sinkName string, spec tagstruct.SampleSpec, chMap tagstruct.ChannelMap, source reactor.PlaybackSource, corked bool) (*PlaybackStream, error) {
	props := tagstruct.NewPropList()
	props.SetString(tagstruct.PropMediaName, name)
	req := command.CreatePlaybackStream{
		SampleSpec: spec,
		ChannelMap: chMap,
		Corked:     corked,
		BufferAttr: command.BufferAttr{
			MaxLength:            command.BufferAttrUseServerDefault,
			TargetLength:         command.BufferAttrUseServerDefault,
			PreBuffering:         command.BufferAttrUseServerDefault,
			MinimumRequestLength: command.BufferAttrUseServerDefault,
		},
		Volume: defaultChannelVolume(spec.Channels),
		Props:  props,
	}
	if sinkName != "" {
		req.SinkName = []byte(sinkName)
	}

	var reply command.CreatePlaybackStreamReply
	if err := c.Command(ctx, req, &reply); err != nil {
		return nil, err
	}

	state := &reactor.PlaybackStreamState{
		Channel:     reply.Channel,
		StreamIndex: reply.StreamIndex,
		SampleSpec:  reply.SampleSpec,
		ChannelMap:  reply.ChannelMap,
		Source:      source,
	}
	c.reactor.Correlator().AddPlaybackStream(state)
	state.SeedRequested(reply.RequestedBytes)

	s := &PlaybackStream{
		client:      c,
		channel:     reply.Channel,
		streamIndex: reply.StreamIndex,
		sampleSpec:  reply.SampleSpec,
		channelMap:  reply.ChannelMap,
		bufferAttr:  reply.BufferAttr,
	}
	if m := c.reactor.Metrics(); m != nil {
		m.SetPlaybackStreams(1)
	}
	return s, nil
}

// Cork pauses or resumes playback.
func (s *PlaybackStream) Cork(ctx context.Context, corked bool) error {
	return s.client.Command(ctx, command.CorkPlaybackStream{StreamIndex: s.streamIndex, Corked: corked}, nil)
}

// Flush discards any buffered-but-unplayed audio for this stream.
func (s *PlaybackStream) Flush(ctx context.Context) error {
	return s.client.Command(ctx, command.FlushPlaybackStream{StreamIndex: s.streamIndex}, nil)
}

// Drain blocks until the server has played back everything written so far.
func (s *PlaybackStream) Drain(ctx context.Context) error {
	return s.client.Command(ctx, command.DrainPlaybackStream{StreamIndex: s.streamIndex}, nil)
}

// OnEOF installs a callback fired once the stream's source reports EOF and
// the reactor stops pulling from it.
func (s *PlaybackStream) OnEOF(fn func()) {
	if st, ok := s.client.reactor.Correlator().PlaybackStream(s.channel); ok {
		st.OnEOF(fn)
	}
}

// Done reports whether the source has reported EOF.
func (s *PlaybackStream) Done() bool {
	st, ok := s.client.reactor.Correlator().PlaybackStream(s.channel)
	return ok && st.Done()
}

// Close schedules a fire-and-forget DeletePlaybackStream and stops tracking
// the stream locally (spec.md §4.E "Cancellation"): the server-side
// teardown is best-effort, matching the reference client's stream-drop
// semantics rather than blocking the caller on an acknowledgement.
func (s *PlaybackStream) Close() {
	s.client.reactor.Correlator().RemovePlaybackStream(s.channel)
	s.client.reactor.FireAndForget(command.DeletePlaybackStream{StreamIndex: s.streamIndex})
	if m := s.client.reactor.Metrics(); m != nil {
		m.SetPlaybackStreams(0)
	}
}

func defaultChannelVolume(channels uint8) tagstruct.ChannelVolume {
	if channels == 0 {
		channels = 1
	}
	vols := make([]tagstruct.Volume, channels)
	for i := range vols {
		vols[i] = tagstruct.VolumeNorm
	}
	return tagstruct.ChannelVolume{Volumes: vols}
}
