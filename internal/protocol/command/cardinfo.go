package command

import "github.com/alxayo/pulse-go/internal/tagstruct"

// PortAvailable mirrors the reference's pa_port_available_t: whether a jack
// is known to be plugged in. Added at protocol version 24; readers below
// that version default to PortAvailableUnknown (spec.md §4.A's table).
type PortAvailable uint32

const (
	PortAvailableUnknown PortAvailable = 0
	PortAvailableNo      PortAvailable = 1
	PortAvailableYes     PortAvailable = 2
)

// CardPortInfo describes one physical port (jack) on a card, as reported
// inside CardInfo.Ports.
type CardPortInfo struct {
	Name          string
	Description   []byte
	Priority      uint32
	Available     PortAvailable
	Direction     uint32 // 1 = input, 2 = output
	Props         *tagstruct.PropList
	Profiles      []string
	LatencyOffset int64
}

func readCardPortInfo(r *tagstruct.Reader, version uint16) (CardPortInfo, error) {
	var p CardPortInfo
	var err error
	if p.Name, err = r.ReadStringNonNull(); err != nil {
		return CardPortInfo{}, err
	}
	if p.Description, err = r.ReadString(); err != nil {
		return CardPortInfo{}, err
	}
	if p.Priority, err = r.ReadU32(); err != nil {
		return CardPortInfo{}, err
	}
	available := uint32(PortAvailableUnknown)
	if version >= 24 {
		if available, err = r.ReadU32(); err != nil {
			return CardPortInfo{}, err
		}
	}
	p.Available = PortAvailable(available)
	if p.Direction, err = r.ReadU32(); err != nil {
		return CardPortInfo{}, err
	}
	if p.Props, err = r.ReadPropList(); err != nil {
		return CardPortInfo{}, err
	}
	n, err := r.ReadU32()
	if err != nil {
		return CardPortInfo{}, err
	}
	p.Profiles = make([]string, n)
	for i := range p.Profiles {
		if p.Profiles[i], err = r.ReadStringNonNull(); err != nil {
			return CardPortInfo{}, err
		}
	}
	if version >= 27 {
		if p.LatencyOffset, err = r.ReadI64(); err != nil {
			return CardPortInfo{}, err
		}
	}
	return p, nil
}

func writeCardPortInfo(w *tagstruct.Writer, version uint16, p CardPortInfo) error {
	if err := w.WriteString([]byte(p.Name)); err != nil {
		return err
	}
	if err := w.WriteString(p.Description); err != nil {
		return err
	}
	if err := w.WriteU32(p.Priority); err != nil {
		return err
	}
	if version >= 24 {
		if err := w.WriteU32(uint32(p.Available)); err != nil {
			return err
		}
	}
	if err := w.WriteU32(p.Direction); err != nil {
		return err
	}
	if err := w.WritePropList(p.Props); err != nil {
		return err
	}
	if err := w.WriteU32(uint32(len(p.Profiles))); err != nil {
		return err
	}
	for _, name := range p.Profiles {
		if err := w.WriteString([]byte(name)); err != nil {
			return err
		}
	}
	if version >= 27 {
		return w.WriteI64(p.LatencyOffset)
	}
	return nil
}

// CardProfileInfo describes one profile a card can be switched into.
type CardProfileInfo struct {
	Name        string
	Description []byte
	NSinks      uint32
	NSources    uint32
	Priority    uint32
	Available   uint32 // added at version 29; 0 below it
}

func readCardProfileInfo(r *tagstruct.Reader, version uint16) (CardProfileInfo, error) {
	var p CardProfileInfo
	var err error
	if p.Name, err = r.ReadStringNonNull(); err != nil {
		return CardProfileInfo{}, err
	}
	if p.Description, err = r.ReadString(); err != nil {
		return CardProfileInfo{}, err
	}
	if p.NSinks, err = r.ReadU32(); err != nil {
		return CardProfileInfo{}, err
	}
	if p.NSources, err = r.ReadU32(); err != nil {
		return CardProfileInfo{}, err
	}
	if p.Priority, err = r.ReadU32(); err != nil {
		return CardProfileInfo{}, err
	}
	if version >= 29 {
		if p.Available, err = r.ReadU32(); err != nil {
			return CardProfileInfo{}, err
		}
	}
	return p, nil
}

func writeCardProfileInfo(w *tagstruct.Writer, version uint16, p CardProfileInfo) error {
	if err := w.WriteString([]byte(p.Name)); err != nil {
		return err
	}
	if err := w.WriteString(p.Description); err != nil {
		return err
	}
	if err := w.WriteU32(p.NSinks); err != nil {
		return err
	}
	if err := w.WriteU32(p.NSources); err != nil {
		return err
	}
	if err := w.WriteU32(p.Priority); err != nil {
		return err
	}
	if version >= 29 {
		return w.WriteU32(p.Available)
	}
	return nil
}

// CardInfo describes one sound card, its available profiles, and its ports.
type CardInfo struct {
	Index           uint32
	Name            string
	OwnerModuleIndex *uint32
	Driver          []byte
	Profiles        []CardProfileInfo
	ActiveProfile   string
	Props           *tagstruct.PropList
	Ports           []CardPortInfo
}

func decodeCardInfo(r *tagstruct.Reader, version uint16) (CardInfo, error) {
	var c CardInfo
	var err error
	if c.Index, err = r.ReadU32(); err != nil {
		return CardInfo{}, err
	}
	if c.Name, err = r.ReadStringNonNull(); err != nil {
		return CardInfo{}, err
	}
	if c.OwnerModuleIndex, err = r.ReadIndex(); err != nil {
		return CardInfo{}, err
	}
	if c.Driver, err = r.ReadString(); err != nil {
		return CardInfo{}, err
	}
	nProfiles, err := r.ReadU32()
	if err != nil {
		return CardInfo{}, err
	}
	c.Profiles = make([]CardProfileInfo, nProfiles)
	for i := range c.Profiles {
		if c.Profiles[i], err = readCardProfileInfo(r, version); err != nil {
			return CardInfo{}, err
		}
	}
	if c.ActiveProfile, err = r.ReadStringNonNull(); err != nil {
		return CardInfo{}, err
	}
	if c.Props, err = r.ReadPropList(); err != nil {
		return CardInfo{}, err
	}
	nPorts, err := r.ReadU32()
	if err != nil {
		return CardInfo{}, err
	}
	c.Ports = make([]CardPortInfo, nPorts)
	for i := range c.Ports {
		if c.Ports[i], err = readCardPortInfo(r, version); err != nil {
			return CardInfo{}, err
		}
	}
	return c, nil
}

func (c *CardInfo) Decode(r *tagstruct.Reader, version uint16) error {
	got, err := decodeCardInfo(r, version)
	if err != nil {
		return err
	}
	*c = got
	return nil
}

func (c CardInfo) Encode(w *tagstruct.Writer, version uint16) error {
	if err := w.WriteU32(c.Index); err != nil {
		return err
	}
	if err := w.WriteString([]byte(c.Name)); err != nil {
		return err
	}
	if err := w.WriteIndex(c.OwnerModuleIndex); err != nil {
		return err
	}
	if err := w.WriteString(c.Driver); err != nil {
		return err
	}
	if err := w.WriteU32(uint32(len(c.Profiles))); err != nil {
		return err
	}
	for _, p := range c.Profiles {
		if err := writeCardProfileInfo(w, version, p); err != nil {
			return err
		}
	}
	if err := w.WriteString([]byte(c.ActiveProfile)); err != nil {
		return err
	}
	if err := w.WritePropList(c.Props); err != nil {
		return err
	}
	if err := w.WriteU32(uint32(len(c.Ports))); err != nil {
		return err
	}
	for _, p := range c.Ports {
		if err := writeCardPortInfo(w, version, p); err != nil {
			return err
		}
	}
	return nil
}

// GetCardInfo looks up a card by index or name.
type GetCardInfo struct {
	Index *uint32
	Name  []byte
}

func (GetCardInfo) Tag() Tag { return TagGetCardInfo }
func (c GetCardInfo) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteIndex(c.Index); err != nil {
		return err
	}
	return w.WriteString(c.Name)
}

type GetCardInfoList struct{}

func (GetCardInfoList) Tag() Tag                               { return TagGetCardInfoList }
func (GetCardInfoList) Encode(*tagstruct.Writer, uint16) error { return nil }

// CardInfoList is the reply to GetCardInfoList.
type CardInfoList struct {
	Cards []CardInfo
}

func (l *CardInfoList) Decode(r *tagstruct.Reader, version uint16) error {
	cards, err := DecodeList(r, version, decodeCardInfo)
	if err != nil {
		return err
	}
	l.Cards = cards
	return nil
}

func (l CardInfoList) Encode(w *tagstruct.Writer, version uint16) error {
	for _, c := range l.Cards {
		if err := c.Encode(w, version); err != nil {
			return err
		}
	}
	return nil
}

// SetCardProfile switches a card to a different profile by name.
type SetCardProfile struct {
	CardIndex   *uint32
	CardName    []byte
	ProfileName string
}

func (SetCardProfile) Tag() Tag { return TagSetCardProfile }
func (c SetCardProfile) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteIndex(c.CardIndex); err != nil {
		return err
	}
	if err := w.WriteString(c.CardName); err != nil {
		return err
	}
	return w.WriteString([]byte(c.ProfileName))
}

// SetPortLatencyOffset adjusts a port's fixed latency compensation.
type SetPortLatencyOffset struct {
	CardIndex     *uint32
	CardName      []byte
	PortName      string
	LatencyOffset int64
}

func (SetPortLatencyOffset) Tag() Tag { return TagSetPortLatencyOffset }
func (c SetPortLatencyOffset) Encode(w *tagstruct.Writer, _ uint16) error {
	if err := w.WriteIndex(c.CardIndex); err != nil {
		return err
	}
	if err := w.WriteString(c.CardName); err != nil {
		return err
	}
	if err := w.WriteString([]byte(c.PortName)); err != nil {
		return err
	}
	return w.WriteI64(c.LatencyOffset)
}
