package tagstruct

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

const maxVersion = 32

func TestPrimitiveRoundTrip(t *testing.T) {
	for _, version := range []uint16{13, 22, maxVersion} {
		var buf bytes.Buffer
		w := NewWriter(&buf, version)
		require.NoError(t, w.WriteU8(7))
		require.NoError(t, w.WriteU32(0xDEADBEEF))
		require.NoError(t, w.WriteU64(0x0102030405060708))
		require.NoError(t, w.WriteI64(-1))
		require.NoError(t, w.WriteBool(true))
		require.NoError(t, w.WriteBool(false))
		require.NoError(t, w.WriteUsec(123456))
		require.NoError(t, w.WriteTimeval(Timeval{Secs: 10, Usecs: 20}))
		require.NoError(t, w.WriteString([]byte("hello")))
		require.NoError(t, w.WriteNullString())
		require.NoError(t, w.WriteArbitrary([]byte{1, 2, 3}))

		r := NewReader(&buf, version)
		u8, err := r.ReadU8()
		require.NoError(t, err)
		require.EqualValues(t, 7, u8)

		u32, err := r.ReadU32()
		require.NoError(t, err)
		require.EqualValues(t, 0xDEADBEEF, u32)

		u64, err := r.ReadU64()
		require.NoError(t, err)
		require.EqualValues(t, 0x0102030405060708, u64)

		i64, err := r.ReadI64()
		require.NoError(t, err)
		require.EqualValues(t, -1, i64)

		b1, err := r.ReadBool()
		require.NoError(t, err)
		require.True(t, b1)

		b2, err := r.ReadBool()
		require.NoError(t, err)
		require.False(t, b2)

		usec, err := r.ReadUsec()
		require.NoError(t, err)
		require.EqualValues(t, 123456, usec)

		tv, err := r.ReadTimeval()
		require.NoError(t, err)
		require.Equal(t, Timeval{Secs: 10, Usecs: 20}, tv)

		s, err := r.ReadString()
		require.NoError(t, err)
		require.Equal(t, []byte("hello"), s)

		n, err := r.ReadString()
		require.NoError(t, err)
		require.Nil(t, n)

		arb, err := r.ReadArbitrary()
		require.NoError(t, err)
		require.Equal(t, []byte{1, 2, 3}, arb)

		left, err := r.HasDataLeft()
		require.NoError(t, err)
		require.False(t, left)
	}
}

func TestReadTagRejectsUnknownByte(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xFE}), maxVersion)
	_, err := r.ReadTag()
	require.Error(t, err)
}

func TestReadU32WrongTagRejected(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, maxVersion)
	require.NoError(t, w.WriteU8(5))
	r := NewReader(&buf, maxVersion)
	_, err := r.ReadU32()
	require.Error(t, err)
}

func TestIndexRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, maxVersion)
	require.NoError(t, w.WriteIndex(nil))
	idx := uint32(42)
	require.NoError(t, w.WriteIndex(&idx))

	r := NewReader(&buf, maxVersion)
	got, err := r.ReadIndex()
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = r.ReadIndex()
	require.NoError(t, err)
	require.NotNil(t, got)
	require.EqualValues(t, 42, *got)
}

func TestSampleSpecRoundTrip(t *testing.T) {
	spec := SampleSpec{Format: SampleFormatS16Le, Channels: 2, SampleRate: 44100}
	var buf bytes.Buffer
	w := NewWriter(&buf, maxVersion)
	require.NoError(t, w.WriteSampleSpec(spec))

	r := NewReader(&buf, maxVersion)
	got, err := r.ReadSampleSpec()
	require.NoError(t, err)
	require.Equal(t, spec, got)
}

// TestSampleSpecS24DowngradeOnWrite covers spec scenario 3: writing S24Le at
// a negotiated version below 15 must downgrade to Float32Le on the wire.
func TestSampleSpecS24DowngradeOnWrite(t *testing.T) {
	spec := SampleSpec{Format: SampleFormatS24Le, Channels: 2, SampleRate: 44100}

	var buf bytes.Buffer
	w := NewWriter(&buf, 14)
	require.NoError(t, w.WriteSampleSpec(spec))
	require.Equal(t, byte(SampleFormatFloat32Le), buf.Bytes()[1])

	r := NewReader(&buf, 14)
	got, err := r.ReadSampleSpec()
	require.NoError(t, err)
	require.Equal(t, SampleFormatFloat32Le, got.Format)

	// At version >= 15 the format round-trips untouched.
	buf.Reset()
	w = NewWriter(&buf, 15)
	require.NoError(t, w.WriteSampleSpec(spec))
	r = NewReader(&buf, 15)
	got, err = r.ReadSampleSpec()
	require.NoError(t, err)
	require.Equal(t, SampleFormatS24Le, got.Format)
}

func TestChannelMapRoundTrip(t *testing.T) {
	m := ChannelMap{Positions: []ChannelPosition{
		ChannelPositionFrontLeft, ChannelPositionFrontRight,
		ChannelPositionRearLeft, ChannelPositionRearRight,
	}}
	var buf bytes.Buffer
	w := NewWriter(&buf, maxVersion)
	require.NoError(t, w.WriteChannelMap(m))

	r := NewReader(&buf, maxVersion)
	got, err := r.ReadChannelMap()
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestChannelVolumeClampsOnDecode(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, maxVersion)
	require.NoError(t, w.WriteChannelVolume(ChannelVolume{Volumes: []Volume{VolumeNorm}}))
	// Corrupt the encoded volume to exceed VolumeMax.
	raw := buf.Bytes()
	raw[2] = 0xFF
	raw[3] = 0xFF
	raw[4] = 0xFF
	raw[5] = 0xFF

	r := NewReader(bytes.NewReader(raw), maxVersion)
	got, err := r.ReadChannelVolume()
	require.NoError(t, err)
	require.Equal(t, VolumeMax, got.Volumes[0])
}

func TestPropListRoundTripPreservesOrder(t *testing.T) {
	p := NewPropList()
	p.SetString(PropApplicationName, "test-client")
	p.Set("custom.binary", []byte{0, 1, 2, 3})

	var buf bytes.Buffer
	w := NewWriter(&buf, maxVersion)
	require.NoError(t, w.WritePropList(p))

	r := NewReader(&buf, maxVersion)
	got, err := r.ReadPropList()
	require.NoError(t, err)
	require.Equal(t, []string{PropApplicationName, "custom.binary"}, got.Keys())
	v, ok := got.Get(PropApplicationName)
	require.True(t, ok)
	require.Equal(t, "test-client", string(v))
}

func TestFormatInfoRoundTrip(t *testing.T) {
	p := NewPropList()
	p.SetString(PropMediaName, "clip.ogg")
	fi := FormatInfo{Encoding: FormatEncodingPCM, Props: p}

	var buf bytes.Buffer
	w := NewWriter(&buf, maxVersion)
	require.NoError(t, w.WriteFormatInfo(fi))

	r := NewReader(&buf, maxVersion)
	got, err := r.ReadFormatInfo()
	require.NoError(t, err)
	require.Equal(t, fi.Encoding, got.Encoding)
	v, ok := got.Props.Get(PropMediaName)
	require.True(t, ok)
	require.Equal(t, "clip.ogg", string(v))
}

// TestListDecodeUnderLengthDelimiter covers spec scenario 2: a list reply's
// items are decoded back to back with no count prefix, relying solely on
// HasDataLeft to know when to stop.
func TestListDecodeUnderLengthDelimiter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, maxVersion)
	require.NoError(t, w.WriteSampleSpec(SampleSpec{Format: SampleFormatS16Le, Channels: 1, SampleRate: 8000}))
	require.NoError(t, w.WriteSampleSpec(SampleSpec{Format: SampleFormatS16Le, Channels: 2, SampleRate: 44100}))

	r := NewReader(&buf, maxVersion)
	var specs []SampleSpec
	for {
		left, err := r.HasDataLeft()
		require.NoError(t, err)
		if !left {
			break
		}
		s, err := r.ReadSampleSpec()
		require.NoError(t, err)
		specs = append(specs, s)
	}
	require.Len(t, specs, 2)
	require.EqualValues(t, 1, specs[0].Channels)
	require.EqualValues(t, 2, specs[1].Channels)
}
