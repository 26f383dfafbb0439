package command

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alxayo/pulse-go/internal/tagstruct"
)

// referencePlaybackStreamBytes independently reproduces the reference
// protocol's TagStructWrite field ladder for PlaybackStreamParams, writing
// each field in isolation rather than delegating to
// CreatePlaybackStream.Encode. This is the point: a bug that makes Encode
// and DecodeCreatePlaybackStream agree with each other (a self-referential
// round trip) would still be caught here, because this helper does not
// share any code path with Encode.
func referencePlaybackStreamBytes(t *testing.T, c CreatePlaybackStream, version uint16) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, version)
	require.NoError(t, w.WriteSampleSpec(c.SampleSpec))
	require.NoError(t, w.WriteChannelMap(c.ChannelMap))
	require.NoError(t, w.WriteIndex(c.SinkIndex))
	require.NoError(t, w.WriteString(c.SinkName))
	require.NoError(t, w.WriteU32(c.BufferAttr.MaxLength))
	require.NoError(t, w.WriteBool(c.Corked))
	require.NoError(t, w.WriteU32(c.BufferAttr.TargetLength))
	require.NoError(t, w.WriteU32(c.BufferAttr.PreBuffering))
	require.NoError(t, w.WriteU32(c.BufferAttr.MinimumRequestLength))
	require.NoError(t, w.WriteU32(c.SyncID))
	require.NoError(t, w.WriteChannelVolume(c.Volume))
	require.NoError(t, w.WriteBool(c.NoRemapChannels))
	require.NoError(t, w.WriteBool(c.NoRemixChannels))
	require.NoError(t, w.WriteBool(c.FixFormat))
	require.NoError(t, w.WriteBool(c.FixRate))
	require.NoError(t, w.WriteBool(c.FixChannels))
	require.NoError(t, w.WriteBool(c.NoMove))
	require.NoError(t, w.WriteBool(c.VariableRate))
	require.NoError(t, w.WriteBool(c.StartMuted != nil && *c.StartMuted))
	require.NoError(t, w.WriteBool(c.AdjustLatency))
	require.NoError(t, w.WritePropList(c.Props))
	if version >= 14 {
		require.NoError(t, w.WriteBool(len(c.Volume.Volumes) > 0))
		require.NoError(t, w.WriteBool(c.EarlyRequests))
	}
	if version >= 15 {
		require.NoError(t, w.WriteBool(c.StartMuted != nil))
		require.NoError(t, w.WriteBool(c.NoInhibitAutoSuspend))
		require.NoError(t, w.WriteBool(c.FailOnSuspend))
	}
	if version >= 17 {
		require.NoError(t, w.WriteBool(c.RelativeVolume))
	}
	if version >= 18 {
		require.NoError(t, w.WriteBool(c.Passthrough))
	}
	if version >= 21 {
		require.NoError(t, w.WriteU8(uint8(len(c.Formats))))
		for _, f := range c.Formats {
			require.NoError(t, w.WriteFormatInfo(f))
		}
	}
	return buf.Bytes()
}

func samplePlaybackStreamParams() CreatePlaybackStream {
	sinkIdx := uint32(2)
	startMuted := true
	props := tagstruct.NewPropList()
	props.SetString(tagstruct.PropMediaName, "golden test tone")
	return CreatePlaybackStream{
		SampleSpec: tagstruct.SampleSpec{Format: tagstruct.SampleFormatS16Le, Channels: 2, SampleRate: 44100},
		ChannelMap: tagstruct.ChannelMap{Positions: []tagstruct.ChannelPosition{tagstruct.ChannelPositionFrontLeft, tagstruct.ChannelPositionFrontRight}},
		SinkIndex:  &sinkIdx,
		Corked:     true,
		SyncID:     7,
		Volume:     tagstruct.ChannelVolume{Volumes: []tagstruct.Volume{tagstruct.VolumeNorm, tagstruct.VolumeNorm}},
		NoRemapChannels: true,
		FixRate:         true,
		NoMove:          true,
		StartMuted:      &startMuted,
		AdjustLatency:   true,
		Props:           props,
		EarlyRequests:   true,
		NoInhibitAutoSuspend: true,
		RelativeVolume:       true,
		Passthrough:          false,
		Formats: []tagstruct.FormatInfo{
			{Encoding: tagstruct.FormatEncodingPCM, Props: tagstruct.NewPropList()},
		},
	}
}

func TestCreatePlaybackStreamEncodeMatchesReferenceLayoutAtLatestVersion(t *testing.T) {
	c := samplePlaybackStreamParams()
	c.BufferAttr = BufferAttr{MaxLength: 65536, TargetLength: 32768, PreBuffering: 16384, MinimumRequestLength: 4096}

	var actual bytes.Buffer
	w := tagstruct.NewWriter(&actual, testVersion)
	require.NoError(t, c.Encode(w, testVersion))

	require.Equal(t, referencePlaybackStreamBytes(t, c, testVersion), actual.Bytes())

	decoded, err := DecodeCreatePlaybackStream(tagstruct.NewReader(&actual, testVersion), testVersion)
	require.NoError(t, err)
	require.Equal(t, c, decoded)
}

func TestCreatePlaybackStreamEncodeMatchesReferenceLayoutAtVersion13(t *testing.T) {
	c := samplePlaybackStreamParams()
	c.BufferAttr = BufferAttr{MaxLength: 65536, TargetLength: 32768, PreBuffering: 16384, MinimumRequestLength: 4096}

	var actual bytes.Buffer
	w := tagstruct.NewWriter(&actual, 13)
	require.NoError(t, c.Encode(w, 13))

	require.Equal(t, referencePlaybackStreamBytes(t, c, 13), actual.Bytes())

	decoded, err := DecodeCreatePlaybackStream(tagstruct.NewReader(&actual, 13), 13)
	require.NoError(t, err)
	// Below version 14 there is no explicit presence flag on the wire, so a
	// set volume and set start_muted round-trip as always-explicit.
	require.Equal(t, c.Volume, decoded.Volume)
	require.NotNil(t, decoded.StartMuted)
	require.True(t, *decoded.StartMuted)
	require.False(t, decoded.EarlyRequests)
	require.Empty(t, decoded.Formats)
}

func TestCreatePlaybackStreamUnsetVolumeIsImplicitBelowVersion14(t *testing.T) {
	c := samplePlaybackStreamParams()
	c.BufferAttr = BufferAttr{MaxLength: 65536, TargetLength: 32768, PreBuffering: 16384, MinimumRequestLength: 4096}
	c.Volume = tagstruct.ChannelVolume{}
	c.StartMuted = nil

	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, 13)
	require.NoError(t, c.Encode(w, 13))

	decoded, err := DecodeCreatePlaybackStream(tagstruct.NewReader(&buf, 13), 13)
	require.NoError(t, err)
	// Below v14 the muted placeholder volume that was written on the wire
	// is indistinguishable from an explicit request, by protocol design.
	require.NotEmpty(t, decoded.Volume.Volumes)
	require.NotNil(t, decoded.StartMuted)
	require.False(t, *decoded.StartMuted)
}

func TestCreatePlaybackStreamVolumeExplicitFlagGatesPresenceAtVersion14(t *testing.T) {
	c := samplePlaybackStreamParams()
	c.BufferAttr = BufferAttr{MaxLength: 65536, TargetLength: 32768, PreBuffering: 16384, MinimumRequestLength: 4096}
	c.Volume = tagstruct.ChannelVolume{}
	c.StartMuted = nil

	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, 14)
	require.NoError(t, c.Encode(w, 14))

	decoded, err := DecodeCreatePlaybackStream(tagstruct.NewReader(&buf, 14), 14)
	require.NoError(t, err)
	require.Empty(t, decoded.Volume.Volumes)
	// start_muted still has no explicit flag below version 15.
	require.NotNil(t, decoded.StartMuted)
	require.False(t, *decoded.StartMuted)
}
