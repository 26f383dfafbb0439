package tagstruct

import (
	"encoding/binary"
	"fmt"

	pulseerrors "github.com/alxayo/pulse-go/internal/errors"
)

// SampleFormat identifies how individual samples are encoded.
type SampleFormat uint8

const (
	SampleFormatU8        SampleFormat = 0
	SampleFormatAlaw      SampleFormat = 1
	SampleFormatUlaw      SampleFormat = 2
	SampleFormatS16Le     SampleFormat = 3
	SampleFormatS16Be     SampleFormat = 4
	SampleFormatFloat32Le SampleFormat = 5
	SampleFormatFloat32Be SampleFormat = 6
	SampleFormatS32Le     SampleFormat = 7
	SampleFormatS32Be     SampleFormat = 8
	SampleFormatS24Le     SampleFormat = 9
	SampleFormatS24Be     SampleFormat = 10
	SampleFormatS24In32Le SampleFormat = 11
	SampleFormatS24In32Be SampleFormat = 12
	SampleFormatInvalid   SampleFormat = 0xFF
)

func (f SampleFormat) valid() bool {
	return f <= SampleFormatS24In32Be || f == SampleFormatInvalid
}

// BytesPerSample returns the on-wire size of a single sample in this format.
func (f SampleFormat) BytesPerSample() int {
	switch f {
	case SampleFormatU8, SampleFormatAlaw, SampleFormatUlaw:
		return 1
	case SampleFormatS16Le, SampleFormatS16Be:
		return 2
	case SampleFormatS24Le, SampleFormatS24Be:
		return 3
	case SampleFormatFloat32Le, SampleFormatFloat32Be,
		SampleFormatS32Le, SampleFormatS32Be,
		SampleFormatS24In32Le, SampleFormatS24In32Be:
		return 4
	default:
		return 0
	}
}

// MaxChannels is the largest channel count the protocol permits (PA_CHANNEL_MAX).
const MaxChannels = 32

// MaxSampleRate is the largest sample rate permitted, per spec.md's 1% slack
// over the nominal 48kHz ceiling (matches established server rate-nudging).
const MaxSampleRate = 48000 * 101 / 100

// SampleSpec fully describes the format of a sample stream between two
// endpoints.
type SampleSpec struct {
	Format     SampleFormat
	Channels   uint8
	SampleRate uint32
}

// downgradeForVersion applies the S24->Float32 write downgrade rule: S24
// formats were only added at version 15; below that, writers MUST substitute
// the nearest Float32 variant so old peers can still decode the stream.
func (s SampleSpec) downgradeForVersion(version uint16) SampleSpec {
	if version >= 15 {
		return s
	}
	switch s.Format {
	case SampleFormatS24Le, SampleFormatS24In32Le:
		s.Format = SampleFormatFloat32Le
	case SampleFormatS24Be, SampleFormatS24In32Be:
		s.Format = SampleFormatFloat32Be
	}
	return s
}

// ReadSampleSpec reads a tagged {format: u8, channels: u8, rate: u32} triple.
// Unlike most composites the inner fields carry no per-field tag; only the
// outer TagSampleSpec marks the whole value.
func (r *Reader) ReadSampleSpec() (SampleSpec, error) {
	if err := r.expectTag("read_sample_spec", TagSampleSpec); err != nil {
		return SampleSpec{}, err
	}
	formatByte, err := r.readRawByte("read_sample_spec.format")
	if err != nil {
		return SampleSpec{}, err
	}
	format := SampleFormat(formatByte)
	if !format.valid() {
		return SampleSpec{}, pulseerrors.NewTagDecodeError("read_sample_spec.format",
			fmt.Errorf("invalid sample format %d", formatByte))
	}
	channels, err := r.readRawByte("read_sample_spec.channels")
	if err != nil {
		return SampleSpec{}, err
	}
	var rbuf [4]byte
	if err := r.readRawFull("read_sample_spec.rate", rbuf[:]); err != nil {
		return SampleSpec{}, err
	}
	return SampleSpec{
		Format:     format,
		Channels:   channels,
		SampleRate: binary.BigEndian.Uint32(rbuf[:]),
	}, nil
}

// WriteSampleSpec writes s, downgrading S24 formats when the negotiated
// version predates them.
func (w *Writer) WriteSampleSpec(s SampleSpec) error {
	s = s.downgradeForVersion(w.version)
	var buf [7]byte
	buf[0] = byte(TagSampleSpec)
	buf[1] = byte(s.Format)
	buf[2] = s.Channels
	binary.BigEndian.PutUint32(buf[3:], s.SampleRate)
	return w.writeRaw("write_sample_spec", buf[:])
}
