package tagstruct

import (
	"encoding/binary"
	"fmt"
	"math"

	pulseerrors "github.com/alxayo/pulse-go/internal/errors"
)

// Volume is a cubic-scale linear volume value for a single channel.
type Volume uint32

const (
	// VolumeNorm is 100% / 0 dB / no attenuation or amplification.
	VolumeNorm Volume = 0x10000
	// VolumeMuted is 0% / -Inf dB.
	VolumeMuted Volume = 0
	// VolumeMax is the largest representable volume; values above this are
	// clamped on decode.
	VolumeMax Volume = Volume(math.MaxUint32 / 2)
)

func clampVolume(raw uint32) Volume {
	if Volume(raw) > VolumeMax {
		return VolumeMax
	}
	return Volume(raw)
}

// ReadVolume reads a single tagged volume value, clamped to VolumeMax.
func (r *Reader) ReadVolume() (Volume, error) {
	if err := r.expectTag("read_volume", TagVolume); err != nil {
		return 0, err
	}
	var buf [4]byte
	if err := r.readRawFull("read_volume.value", buf[:]); err != nil {
		return 0, err
	}
	return clampVolume(binary.BigEndian.Uint32(buf[:])), nil
}

// WriteVolume writes a single tagged volume value.
func (w *Writer) WriteVolume(v Volume) error {
	var buf [5]byte
	buf[0] = byte(TagVolume)
	binary.BigEndian.PutUint32(buf[1:], uint32(v))
	return w.writeRaw("write_volume", buf[:])
}

// ChannelVolume holds one Volume per channel in a stream.
type ChannelVolume struct {
	Volumes []Volume
}

// ReadChannelVolume reads a tagged {channels: u8, volumes: [u32; channels]}.
func (r *Reader) ReadChannelVolume() (ChannelVolume, error) {
	if err := r.expectTag("read_channel_volume", TagCVolume); err != nil {
		return ChannelVolume{}, err
	}
	n, err := r.readRawByte("read_channel_volume.count")
	if err != nil {
		return ChannelVolume{}, err
	}
	if n == 0 || n > MaxChannels {
		return ChannelVolume{}, pulseerrors.NewTagDecodeError("read_channel_volume.count",
			fmt.Errorf("invalid channel volume count %d, must be 1..%d", n, MaxChannels))
	}
	volumes := make([]Volume, n)
	for i := range volumes {
		var buf [4]byte
		if err := r.readRawFull("read_channel_volume.value", buf[:]); err != nil {
			return ChannelVolume{}, err
		}
		volumes[i] = clampVolume(binary.BigEndian.Uint32(buf[:]))
	}
	return ChannelVolume{Volumes: volumes}, nil
}

// WriteChannelVolume writes v as {channels: u8, volumes: [u32; channels]}.
func (w *Writer) WriteChannelVolume(v ChannelVolume) error {
	buf := make([]byte, 0, 2+4*len(v.Volumes))
	buf = append(buf, byte(TagCVolume), byte(len(v.Volumes)))
	for _, vol := range v.Volumes {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], uint32(vol))
		buf = append(buf, b[:]...)
	}
	return w.writeRaw("write_channel_volume", buf)
}
