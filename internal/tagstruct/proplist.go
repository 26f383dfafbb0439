package tagstruct

import (
	"fmt"

	pulseerrors "github.com/alxayo/pulse-go/internal/errors"
)

// MaxPropSize is the hard cap on a single property value's size.
const MaxPropSize = 64 * 1024

// Well-known property list keys. Unknown keys are preserved verbatim; this
// set is a convenience, not an exhaustive enumeration.
const (
	PropApplicationName    = "application.name"
	PropApplicationID      = "application.id"
	PropApplicationVersion = "application.version"
	PropApplicationProcessID     = "application.process.id"
	PropApplicationProcessBinary = "application.process.binary"

	PropMediaName = "media.name"
	PropMediaRole = "media.role"

	PropDeviceDescription = "device.description"
	PropDeviceString      = "device.string"
	PropDeviceAPI         = "device.api"
)

// PropList is an ordered (deterministic-iteration) map from non-empty
// key string to byte-blob value. Insertion order is preserved across
// Set/decode so re-encoding a decoded list round-trips byte-for-byte.
type PropList struct {
	keys   []string
	values map[string][]byte
}

// NewPropList returns an empty property list.
func NewPropList() *PropList {
	return &PropList{values: make(map[string][]byte)}
}

// Set assigns value to key, appending key to the iteration order the first
// time it is seen.
func (p *PropList) Set(key string, value []byte) {
	if p.values == nil {
		p.values = make(map[string][]byte)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// SetString is a convenience for the common case of a text property value.
func (p *PropList) SetString(key, value string) { p.Set(key, []byte(value)) }

// Get returns the value for key and whether it is present.
func (p *PropList) Get(key string) ([]byte, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (p *PropList) Keys() []string { return p.keys }

// ReadPropList reads a tagged proplist: the TagPropList tag, then
// (key string, u32 length, arbitrary value) triples, terminated by the
// null-string tag in place of a key.
func (r *Reader) ReadPropList() (*PropList, error) {
	if err := r.expectTag("read_proplist", TagPropList); err != nil {
		return nil, err
	}
	props := NewPropList()
	for {
		key, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		if key == nil {
			return props, nil
		}
		if len(key) == 0 {
			return nil, pulseerrors.NewTagDecodeError("read_proplist.key", fmt.Errorf("proplist key is empty"))
		}
		declaredLen, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		if declaredLen > MaxPropSize {
			return nil, pulseerrors.NewTagDecodeError("read_proplist.length",
				fmt.Errorf("proplist value size %d exceeds hard limit of %d bytes", declaredLen, MaxPropSize))
		}
		value, err := r.ReadArbitrary()
		if err != nil {
			return nil, err
		}
		if uint32(len(value)) != declaredLen {
			return nil, pulseerrors.NewTagDecodeError("read_proplist.length_mismatch",
				fmt.Errorf("proplist expected value size %d does not match actual size %d", declaredLen, len(value)))
		}
		props.Set(string(key), value)
	}
}

// WritePropList writes p as TagPropList followed by (key, length, value)
// triples in insertion order, terminated by the null-string tag.
func (w *Writer) WritePropList(p *PropList) error {
	if err := w.writeRaw("write_proplist.tag", []byte{byte(TagPropList)}); err != nil {
		return err
	}
	for _, key := range p.keys {
		value := p.values[key]
		if err := w.WriteString([]byte(key)); err != nil {
			return err
		}
		if err := w.WriteU32(uint32(len(value))); err != nil {
			return err
		}
		if err := w.WriteArbitrary(value); err != nil {
			return err
		}
	}
	return w.WriteNullString()
}
