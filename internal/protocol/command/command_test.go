package command

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alxayo/pulse-go/internal/tagstruct"
)

const testVersion = 32

func TestEncodeRequestHeaderRoundTrip(t *testing.T) {
	auth := Auth{Version: 13, SupportsSHM: true, Cookie: []byte{1, 2, 3, 4}}
	payload, err := EncodeRequest(testVersion, 7, auth)
	require.NoError(t, err)

	r := tagstruct.NewReader(bytes.NewReader(payload), testVersion)
	tag, seq, err := DecodeRequestHeader(r)
	require.NoError(t, err)
	require.Equal(t, TagAuth, tag)
	require.EqualValues(t, 7, seq)

	got, err := DecodeAuth(r, testVersion)
	require.NoError(t, err)
	require.Equal(t, auth, got)
}

func TestAuthPacksVersionAndFlags(t *testing.T) {
	auth := Auth{Version: 32, SupportsSHM: true, SupportsMemfd: true, Cookie: []byte("cookie")}
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, auth.Encode(w, testVersion))

	r := tagstruct.NewReader(&buf, testVersion)
	got, err := DecodeAuth(r, testVersion)
	require.NoError(t, err)
	require.Equal(t, auth, got)
}

func TestAuthReplyRoundTrip(t *testing.T) {
	reply := AuthReply{Version: 32, UseMemfd: true}
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, reply.Encode(w, testVersion))

	var got AuthReply
	r := tagstruct.NewReader(&buf, testVersion)
	require.NoError(t, got.Decode(r, testVersion))
	require.Equal(t, reply, got)
}

func TestSetClientNameRoundTrip(t *testing.T) {
	props := tagstruct.NewPropList()
	props.SetString(tagstruct.PropApplicationName, "pulse-go")
	cmd := SetClientName{Props: props}

	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, cmd.Encode(w, testVersion))

	r := tagstruct.NewReader(&buf, testVersion)
	got, err := DecodeSetClientName(r, testVersion)
	require.NoError(t, err)
	v, ok := got.Props.Get(tagstruct.PropApplicationName)
	require.True(t, ok)
	require.Equal(t, "pulse-go", string(v))
}

func TestServerInfoRoundTripAtModernVersion(t *testing.T) {
	info := ServerInfo{
		ServerName:    []byte("pulseaudio"),
		ServerVersion: []byte("15.0"),
		SampleSpec:    tagstruct.SampleSpec{Format: tagstruct.SampleFormatS16Le, Channels: 2, SampleRate: 44100},
		Cookie:        0xCAFEBABE,
		ChannelMap:    tagstruct.ChannelMap{Positions: []tagstruct.ChannelPosition{tagstruct.ChannelPositionFrontLeft, tagstruct.ChannelPositionFrontRight}},
	}
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, info.Encode(w, testVersion))

	var got ServerInfo
	r := tagstruct.NewReader(&buf, testVersion)
	require.NoError(t, got.Decode(r, testVersion))
	require.Equal(t, info, got)
}

func TestServerInfoOmitsChannelMapBelowVersion15(t *testing.T) {
	info := ServerInfo{Cookie: 1}
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, 14)
	require.NoError(t, info.Encode(w, 14))

	var got ServerInfo
	r := tagstruct.NewReader(&buf, 14)
	require.NoError(t, got.Decode(r, 14))
	require.Nil(t, got.ChannelMap.Positions)
}

func TestClientInfoListRoundTrip(t *testing.T) {
	props := tagstruct.NewPropList()
	list := ClientInfoList{Clients: []ClientInfo{
		{Index: 1, Name: "a", Props: props},
		{Index: 2, Name: "b", Props: props},
	}}
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, list.Encode(w, testVersion))

	var got ClientInfoList
	r := tagstruct.NewReader(&buf, testVersion)
	require.NoError(t, got.Decode(r, testVersion))
	require.Len(t, got.Clients, 2)
	require.Equal(t, "a", got.Clients[0].Name)
	require.Equal(t, "b", got.Clients[1].Name)
}

func TestSinkInfoRoundTrip(t *testing.T) {
	idx := uint32(3)
	sink := SinkInfo{
		Index:      1,
		Name:       "alsa_output.default",
		SampleSpec: tagstruct.SampleSpec{Format: tagstruct.SampleFormatS16Le, Channels: 2, SampleRate: 48000},
		ChannelMap: tagstruct.ChannelMap{Positions: []tagstruct.ChannelPosition{tagstruct.ChannelPositionFrontLeft, tagstruct.ChannelPositionFrontRight}},
		Volume:     tagstruct.ChannelVolume{Volumes: []tagstruct.Volume{tagstruct.VolumeNorm, tagstruct.VolumeNorm}},
		Props:      tagstruct.NewPropList(),
		BaseVolume: tagstruct.VolumeNorm,
		State:      SinkStateRunning,
		CardIndex:  &idx,
	}
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, sink.Encode(w, testVersion))

	var got SinkInfo
	r := tagstruct.NewReader(&buf, testVersion)
	require.NoError(t, got.Decode(r, testVersion))
	require.Equal(t, sink, got)
}

func TestSubscribeAndEventRoundTrip(t *testing.T) {
	sub := Subscribe{Mask: SubscriptionMaskSink | SubscriptionMaskSource}
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, sub.Encode(w, testVersion))

	r := tagstruct.NewReader(&buf, testVersion)
	got, err := DecodeSubscribe(r, testVersion)
	require.NoError(t, err)
	require.Equal(t, sub, got)

	idx := uint32(5)
	event := SubscriptionEvent{Facility: FacilitySink, EventType: EventTypeNew, Index: &idx}
	buf.Reset()
	w = tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, EncodeSubscriptionEvent(w, event))

	r = tagstruct.NewReader(&buf, testVersion)
	gotEvent, err := DecodeSubscriptionEvent(r, testVersion)
	require.NoError(t, err)
	require.Equal(t, event, gotEvent)
}

func TestCreatePlaybackStreamRoundTrip(t *testing.T) {
	sinkIdx := uint32(2)
	req := CreatePlaybackStream{
		SampleSpec: tagstruct.SampleSpec{Format: tagstruct.SampleFormatS16Le, Channels: 2, SampleRate: 44100},
		ChannelMap: tagstruct.ChannelMap{Positions: []tagstruct.ChannelPosition{tagstruct.ChannelPositionFrontLeft, tagstruct.ChannelPositionFrontRight}},
		SinkIndex:  &sinkIdx,
		BufferAttr: BufferAttr{MaxLength: BufferAttrUseServerDefault, TargetLength: BufferAttrUseServerDefault, PreBuffering: BufferAttrUseServerDefault, MinimumRequestLength: BufferAttrUseServerDefault},
		Volume:     tagstruct.ChannelVolume{Volumes: []tagstruct.Volume{tagstruct.VolumeNorm, tagstruct.VolumeNorm}},
		Props:      tagstruct.NewPropList(),
	}
	payload, err := EncodeRequest(testVersion, 1, req)
	require.NoError(t, err)

	r := tagstruct.NewReader(bytes.NewReader(payload), testVersion)
	tag, seq, err := DecodeRequestHeader(r)
	require.NoError(t, err)
	require.Equal(t, TagCreatePlaybackStream, tag)
	require.EqualValues(t, 1, seq)

	got, err := DecodeCreatePlaybackStream(r, testVersion)
	require.NoError(t, err)
	require.Equal(t, req, got)
}

func TestCreatePlaybackStreamReplyRoundTrip(t *testing.T) {
	reply := CreatePlaybackStreamReply{
		Channel:        9,
		StreamIndex:    4,
		RequestedBytes: 8192,
		BufferAttr:     BufferAttr{MaxLength: 65536, TargetLength: 32768, PreBuffering: 16384, MinimumRequestLength: 4096},
		SampleSpec:     tagstruct.SampleSpec{Format: tagstruct.SampleFormatS16Le, Channels: 2, SampleRate: 44100},
		ChannelMap:     tagstruct.ChannelMap{Positions: []tagstruct.ChannelPosition{tagstruct.ChannelPositionFrontLeft, tagstruct.ChannelPositionFrontRight}},
	}
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, reply.Encode(w, testVersion))

	var got CreatePlaybackStreamReply
	r := tagstruct.NewReader(&buf, testVersion)
	require.NoError(t, got.Decode(r, testVersion))
	require.Equal(t, reply, got)
}

func TestEnvelopeReplyAndErrorRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, w.WriteEnum(uint32(TagReply)))
	require.NoError(t, w.WriteU32(42))

	r := tagstruct.NewReader(&buf, testVersion)
	tag, seq, err := ReadEnvelope(r)
	require.NoError(t, err)
	require.Equal(t, TagReply, tag)
	require.EqualValues(t, 42, seq)

	buf.Reset()
	w = tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, w.WriteEnum(uint32(TagError)))
	require.NoError(t, w.WriteU32(42))
	require.NoError(t, w.WriteU32(uint32(ErrNoEntity)))

	r = tagstruct.NewReader(&buf, testVersion)
	tag, seq, err = ReadEnvelope(r)
	require.NoError(t, err)
	require.Equal(t, TagError, tag)
	require.EqualValues(t, 42, seq)
	code, err := ReadErrorCode(r)
	require.NoError(t, err)
	require.Equal(t, ErrNoEntity, code)

	wrapped := AsServerError("get_sink_info", code)
	require.Error(t, wrapped)
	require.Contains(t, wrapped.Error(), "no such entity")
}

func TestDecodeNotificationDispatch(t *testing.T) {
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, w.WriteU32(3))
	require.NoError(t, w.WriteU32(4096))

	r := tagstruct.NewReader(&buf, testVersion)
	got, err := DecodeNotification(r, testVersion, TagRequest)
	require.NoError(t, err)
	require.Equal(t, Request{Channel: 3, Bytes: 4096}, got)
}

func TestDecodeNotificationRejectsUnhandledTag(t *testing.T) {
	var buf bytes.Buffer
	r := tagstruct.NewReader(&buf, testVersion)
	_, err := DecodeNotification(r, testVersion, TagLoadModule)
	require.Error(t, err)
}
