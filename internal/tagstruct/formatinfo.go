package tagstruct

import (
	"fmt"

	pulseerrors "github.com/alxayo/pulse-go/internal/errors"
)

// FormatEncoding identifies how the samples in a FormatInfo are encoded.
type FormatEncoding uint8

const (
	FormatEncodingAny          FormatEncoding = 0
	FormatEncodingPCM          FormatEncoding = 1
	FormatEncodingAC3IEC61937  FormatEncoding = 2
	FormatEncodingEAC3IEC61937 FormatEncoding = 3
	FormatEncodingMPEGIEC61937 FormatEncoding = 4
	FormatEncodingDTSIEC61937  FormatEncoding = 5
	FormatEncodingMPEG2IEC61937 FormatEncoding = 6
)

func (e FormatEncoding) valid() bool { return e <= FormatEncodingMPEG2IEC61937 }

// FormatInfo associates a sample encoding with a property list describing it
// further (e.g. rate, channels, channel map for PCM).
type FormatInfo struct {
	Encoding FormatEncoding
	Props    *PropList
}

// ReadFormatInfo reads a tagged {encoding: tagged-u8, props: proplist}. Note
// that unlike SampleSpec's raw encoding byte, FormatInfo's encoding is
// itself a fully tagged u8 because a nested proplist follows it.
func (r *Reader) ReadFormatInfo() (FormatInfo, error) {
	if err := r.expectTag("read_format_info", TagFormatInfo); err != nil {
		return FormatInfo{}, err
	}
	encByte, err := r.ReadU8()
	if err != nil {
		return FormatInfo{}, err
	}
	enc := FormatEncoding(encByte)
	if !enc.valid() {
		return FormatInfo{}, pulseerrors.NewTagDecodeError("read_format_info.encoding",
			fmt.Errorf("invalid format encoding 0x%02x", encByte))
	}
	props, err := r.ReadPropList()
	if err != nil {
		return FormatInfo{}, err
	}
	return FormatInfo{Encoding: enc, Props: props}, nil
}

// WriteFormatInfo writes f as {encoding: tagged-u8, props: proplist}.
func (w *Writer) WriteFormatInfo(f FormatInfo) error {
	if err := w.writeRaw("write_format_info.tag", []byte{byte(TagFormatInfo)}); err != nil {
		return err
	}
	if err := w.WriteU8(byte(f.Encoding)); err != nil {
		return err
	}
	props := f.Props
	if props == nil {
		props = NewPropList()
	}
	return w.WritePropList(props)
}
