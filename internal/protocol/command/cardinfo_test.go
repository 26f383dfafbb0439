package command

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alxayo/pulse-go/internal/tagstruct"
)

func sampleCardInfo() CardInfo {
	ownerIdx := uint32(4)
	return CardInfo{
		Index:            1,
		Name:             "alsa_card.pci-0000_00_1f.3",
		OwnerModuleIndex: &ownerIdx,
		Driver:           []byte("module-alsa-card.c"),
		Profiles: []CardProfileInfo{
			{Name: "output:analog-stereo", Description: []byte("Analog Stereo"), NSinks: 1, NSources: 0, Priority: 6000, Available: 1},
		},
		ActiveProfile: "output:analog-stereo",
		Props:         tagstruct.NewPropList(),
		Ports: []CardPortInfo{
			{
				Name: "analog-output-speaker", Description: []byte("Speaker"), Priority: 10000,
				Available: PortAvailableYes, Direction: 2, Props: tagstruct.NewPropList(),
				Profiles: []string{"output:analog-stereo"}, LatencyOffset: 0,
			},
		},
	}
}

func TestCardInfoRoundTripAtLatestVersion(t *testing.T) {
	c := sampleCardInfo()
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, c.Encode(w, testVersion))

	var got CardInfo
	r := tagstruct.NewReader(&buf, testVersion)
	require.NoError(t, got.Decode(r, testVersion))
	require.Equal(t, c, got)
}

func TestCardPortAvailableGatedBelowVersion24(t *testing.T) {
	c := sampleCardInfo()
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, 20)
	require.NoError(t, c.Encode(w, 20))

	var got CardInfo
	r := tagstruct.NewReader(&buf, 20)
	require.NoError(t, got.Decode(r, 20))
	require.Equal(t, PortAvailableUnknown, got.Ports[0].Available)
	require.Zero(t, got.Ports[0].LatencyOffset)
}

func TestCardProfileAvailableGatedBelowVersion29(t *testing.T) {
	c := sampleCardInfo()
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, 25)
	require.NoError(t, c.Encode(w, 25))

	var got CardInfo
	r := tagstruct.NewReader(&buf, 25)
	require.NoError(t, got.Decode(r, 25))
	require.Zero(t, got.Profiles[0].Available)
}

func TestCardInfoListRoundTrip(t *testing.T) {
	list := CardInfoList{Cards: []CardInfo{sampleCardInfo(), sampleCardInfo()}}
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, list.Encode(w, testVersion))

	var got CardInfoList
	r := tagstruct.NewReader(&buf, testVersion)
	require.NoError(t, got.Decode(r, testVersion))
	require.Len(t, got.Cards, 2)
}

func TestSetCardProfileAndPortLatencyOffsetEncode(t *testing.T) {
	idx := uint32(2)
	p := SetCardProfile{CardIndex: &idx, ProfileName: "output:hdmi-stereo"}
	var buf bytes.Buffer
	w := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, p.Encode(w, testVersion))

	o := SetPortLatencyOffset{CardIndex: &idx, PortName: "analog-output-speaker", LatencyOffset: -500}
	var buf2 bytes.Buffer
	w2 := tagstruct.NewWriter(&buf2, testVersion)
	require.NoError(t, o.Encode(w2, testVersion))
}
