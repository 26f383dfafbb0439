package command

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alxayo/pulse-go/internal/tagstruct"
)

func TestCreateUploadStreamRoundTrip(t *testing.T) {
	c := CreateUploadStream{
		Name:       "doorbell.wav",
		SampleSpec: tagstruct.SampleSpec{Format: tagstruct.SampleFormatS16Le, Channels: 1, SampleRate: 44100},
		ChannelMap: tagstruct.ChannelMap{Positions: []tagstruct.ChannelPosition{tagstruct.ChannelPositionMono}},
		Length:     88200,
		Props:      tagstruct.NewPropList(),
	}
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, c.Encode(w, testVersion))

	r := tagstruct.NewReader(&buf, testVersion)
	got, err := DecodeCreateUploadStream(r, testVersion)
	require.NoError(t, err)
	require.Equal(t, c, got)
}

func TestCreateUploadStreamReplyRoundTrip(t *testing.T) {
	reply := CreateUploadStreamReply{Channel: 5, StreamIndex: 9}
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, reply.Encode(w, testVersion))

	var got CreateUploadStreamReply
	r := tagstruct.NewReader(&buf, testVersion)
	require.NoError(t, got.Decode(r, testVersion))
	require.Equal(t, reply, got)
}

func TestPlaySampleEncodesAndSampleInfoRoundTrip(t *testing.T) {
	sinkIdx := uint32(0)
	ps := PlaySample{SinkIndex: &sinkIdx, SampleName: "doorbell.wav", Volume: tagstruct.VolumeNorm, Props: tagstruct.NewPropList()}
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, ps.Encode(w, testVersion))

	info := SampleInfo{
		Index:      1,
		Name:       "doorbell.wav",
		Volume:     tagstruct.ChannelVolume{Volumes: []tagstruct.Volume{tagstruct.VolumeNorm}},
		SampleSpec: tagstruct.SampleSpec{Format: tagstruct.SampleFormatS16Le, Channels: 1, SampleRate: 44100},
		ChannelMap: tagstruct.ChannelMap{Positions: []tagstruct.ChannelPosition{tagstruct.ChannelPositionMono}},
		Duration:   2_000_000,
		Bytes:      88200,
		Props:      tagstruct.NewPropList(),
	}
	var buf2 bytes.Buffer
	w2 := tagstruct.NewWriter(&buf2, testVersion)
	require.NoError(t, info.Encode(w2, testVersion))

	var got SampleInfo
	r2 := tagstruct.NewReader(&buf2, testVersion)
	require.NoError(t, got.Decode(r2, testVersion))
	require.Equal(t, info, got)
}

func TestSampleInfoListRoundTrip(t *testing.T) {
	list := SampleInfoList{Samples: []SampleInfo{
		{Index: 1, Name: "a.wav", Volume: tagstruct.ChannelVolume{Volumes: []tagstruct.Volume{tagstruct.VolumeNorm}},
			SampleSpec: tagstruct.SampleSpec{Format: tagstruct.SampleFormatS16Le, Channels: 1, SampleRate: 44100},
			ChannelMap: tagstruct.ChannelMap{Positions: []tagstruct.ChannelPosition{tagstruct.ChannelPositionMono}},
			Props:      tagstruct.NewPropList()},
	}}
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, list.Encode(w, testVersion))

	var got SampleInfoList
	r := tagstruct.NewReader(&buf, testVersion)
	require.NoError(t, got.Decode(r, testVersion))
	require.Len(t, got.Samples, 1)
}
