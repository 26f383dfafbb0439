package tagstruct

import (
	"fmt"

	pulseerrors "github.com/alxayo/pulse-go/internal/errors"
)

// ChannelPosition names a speaker position within a ChannelMap.
type ChannelPosition uint8

const (
	ChannelPositionMono ChannelPosition = 0

	ChannelPositionFrontLeft   ChannelPosition = 1
	ChannelPositionFrontRight  ChannelPosition = 2
	ChannelPositionFrontCenter ChannelPosition = 3

	ChannelPositionRearCenter ChannelPosition = 4
	ChannelPositionRearLeft   ChannelPosition = 5
	ChannelPositionRearRight  ChannelPosition = 6

	ChannelPositionLfe ChannelPosition = 7

	ChannelPositionFrontLeftOfCenter  ChannelPosition = 8
	ChannelPositionFrontRightOfCenter ChannelPosition = 9

	ChannelPositionSideLeft  ChannelPosition = 10
	ChannelPositionSideRight ChannelPosition = 11

	ChannelPositionAux0  ChannelPosition = 12
	ChannelPositionAux1  ChannelPosition = 13
	ChannelPositionAux2  ChannelPosition = 14
	ChannelPositionAux3  ChannelPosition = 15
	ChannelPositionAux4  ChannelPosition = 16
	ChannelPositionAux5  ChannelPosition = 17
	ChannelPositionAux6  ChannelPosition = 18
	ChannelPositionAux7  ChannelPosition = 19
	ChannelPositionAux8  ChannelPosition = 20
	ChannelPositionAux9  ChannelPosition = 21
	ChannelPositionAux10 ChannelPosition = 22
	ChannelPositionAux11 ChannelPosition = 23
	ChannelPositionAux12 ChannelPosition = 24
	ChannelPositionAux13 ChannelPosition = 25
	ChannelPositionAux14 ChannelPosition = 26
	ChannelPositionAux15 ChannelPosition = 27
	ChannelPositionAux16 ChannelPosition = 28
	ChannelPositionAux17 ChannelPosition = 29
	ChannelPositionAux18 ChannelPosition = 30
	ChannelPositionAux19 ChannelPosition = 31
	ChannelPositionAux20 ChannelPosition = 32
	ChannelPositionAux21 ChannelPosition = 33
	ChannelPositionAux22 ChannelPosition = 34
	ChannelPositionAux23 ChannelPosition = 35
	ChannelPositionAux24 ChannelPosition = 36
	ChannelPositionAux25 ChannelPosition = 37
	ChannelPositionAux26 ChannelPosition = 38
	ChannelPositionAux27 ChannelPosition = 39
	ChannelPositionAux28 ChannelPosition = 40
	ChannelPositionAux29 ChannelPosition = 41
	ChannelPositionAux30 ChannelPosition = 42
	ChannelPositionAux31 ChannelPosition = 43

	ChannelPositionTopCenter      ChannelPosition = 44
	ChannelPositionTopFrontLeft   ChannelPosition = 45
	ChannelPositionTopFrontRight  ChannelPosition = 46
	ChannelPositionTopFrontCenter ChannelPosition = 47
	ChannelPositionTopRearLeft    ChannelPosition = 48
	ChannelPositionTopRearRight   ChannelPosition = 49
	ChannelPositionTopRearCenter  ChannelPosition = 50
)

func (p ChannelPosition) valid() bool { return p <= ChannelPositionTopRearCenter }

// ChannelMap maps each audio channel in a stream to a speaker position.
// Invariant (enforced by callers, not here): len(Positions) must equal the
// companion SampleSpec's Channels.
type ChannelMap struct {
	Positions []ChannelPosition
}

// ReadChannelMap reads a tagged {channels: u8, positions: [u8; channels]}.
func (r *Reader) ReadChannelMap() (ChannelMap, error) {
	if err := r.expectTag("read_channel_map", TagChannelMap); err != nil {
		return ChannelMap{}, err
	}
	n, err := r.readRawByte("read_channel_map.count")
	if err != nil {
		return ChannelMap{}, err
	}
	if n > MaxChannels {
		return ChannelMap{}, pulseerrors.NewTagDecodeError("read_channel_map.count",
			fmt.Errorf("channel map too large (max %d, got %d)", MaxChannels, n))
	}
	positions := make([]ChannelPosition, n)
	for i := range positions {
		b, err := r.readRawByte("read_channel_map.position")
		if err != nil {
			return ChannelMap{}, err
		}
		pos := ChannelPosition(b)
		if !pos.valid() {
			return ChannelMap{}, pulseerrors.NewTagDecodeError("read_channel_map.position",
				fmt.Errorf("invalid channel position %d", b))
		}
		positions[i] = pos
	}
	return ChannelMap{Positions: positions}, nil
}

// WriteChannelMap writes m as {channels: u8, positions: [u8; channels]}.
func (w *Writer) WriteChannelMap(m ChannelMap) error {
	buf := make([]byte, 0, 2+len(m.Positions))
	buf = append(buf, byte(TagChannelMap), byte(len(m.Positions)))
	for _, p := range m.Positions {
		buf = append(buf, byte(p))
	}
	return w.writeRaw("write_channel_map", buf)
}
