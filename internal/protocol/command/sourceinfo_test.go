package command

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alxayo/pulse-go/internal/tagstruct"
)

func sampleSourceInfo() SourceInfo {
	ownerIdx := uint32(3)
	cardIdx := uint32(1)
	return SourceInfo{
		Index:              0,
		Name:               "alsa_input.pci-0000_00_1f.3.analog-stereo",
		Description:        []byte("Built-in Audio Analog Stereo"),
		SampleSpec:         tagstruct.SampleSpec{Format: tagstruct.SampleFormatS16Le, Channels: 2, SampleRate: 44100},
		ChannelMap:         tagstruct.ChannelMap{Positions: []tagstruct.ChannelPosition{tagstruct.ChannelPositionFrontLeft, tagstruct.ChannelPositionFrontRight}},
		OwnerModuleIndex:   &ownerIdx,
		Volume:             tagstruct.ChannelVolume{Volumes: []tagstruct.Volume{tagstruct.VolumeNorm, tagstruct.VolumeNorm}},
		Driver:             []byte("module-alsa-card.c"),
		Props:              tagstruct.NewPropList(),
		BaseVolume:         tagstruct.VolumeNorm,
		State:              SourceStateRunning,
		VolumeSteps:        65537,
		CardIndex:          &cardIdx,
	}
}

func TestSourceInfoRoundTripAtLatestVersion(t *testing.T) {
	s := sampleSourceInfo()
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, s.Encode(w, testVersion))

	var got SourceInfo
	r := tagstruct.NewReader(&buf, testVersion)
	require.NoError(t, got.Decode(r, testVersion))
	require.Equal(t, s, got)
}

func TestSourceInfoBaseVolumeFieldsGatedBelowVersion15(t *testing.T) {
	s := sampleSourceInfo()
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, 14)
	require.NoError(t, s.Encode(w, 14))

	var got SourceInfo
	r := tagstruct.NewReader(&buf, 14)
	require.NoError(t, got.Decode(r, 14))
	require.Zero(t, got.BaseVolume)
	require.Zero(t, got.State)
	require.Zero(t, got.VolumeSteps)
	require.Nil(t, got.CardIndex)
	left, err := r.HasDataLeft()
	require.NoError(t, err)
	require.False(t, left)
}

func TestSourceInfoListRoundTrip(t *testing.T) {
	list := SourceInfoList{Sources: []SourceInfo{sampleSourceInfo(), sampleSourceInfo()}}
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, list.Encode(w, testVersion))

	var got SourceInfoList
	r := tagstruct.NewReader(&buf, testVersion)
	require.NoError(t, got.Decode(r, testVersion))
	require.Len(t, got.Sources, 2)
}
