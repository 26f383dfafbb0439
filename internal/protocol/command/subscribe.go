package command

import (
	"fmt"

	pulseerrors "github.com/alxayo/pulse-go/internal/errors"
	"github.com/alxayo/pulse-go/internal/tagstruct"
)

// SubscriptionMask is a bitmask of the object kinds a client wants change
// notifications for.
type SubscriptionMask uint32

const (
	SubscriptionMaskSink         SubscriptionMask = 0x0001
	SubscriptionMaskSource       SubscriptionMask = 0x0002
	SubscriptionMaskSinkInput    SubscriptionMask = 0x0004
	SubscriptionMaskSourceOutput SubscriptionMask = 0x0008
	SubscriptionMaskModule       SubscriptionMask = 0x0010
	SubscriptionMaskClient       SubscriptionMask = 0x0020
	SubscriptionMaskSampleCache  SubscriptionMask = 0x0040
	SubscriptionMaskServer       SubscriptionMask = 0x0080
	SubscriptionMaskCard         SubscriptionMask = 0x0200
	SubscriptionMaskAll          SubscriptionMask = 0x02ff
)

// Subscribe registers for change notifications matching Mask; the server
// starts sending SubscribeEvent notifications (see SubscriptionEvent below) once
// this command's reply is received.
type Subscribe struct {
	Mask SubscriptionMask
}

func (Subscribe) Tag() Tag { return TagSubscribe }
func (s Subscribe) Encode(w *tagstruct.Writer, _ uint16) error {
	return w.WriteU32(uint32(s.Mask))
}

func DecodeSubscribe(r *tagstruct.Reader, _ uint16) (Subscribe, error) {
	v, err := r.ReadU32()
	if err != nil {
		return Subscribe{}, err
	}
	return Subscribe{Mask: SubscriptionMask(v)}, nil
}

// SubscriptionEventFacility names what kind of object a SubscribeEvent
// notification is about.
type SubscriptionEventFacility uint32

const (
	FacilitySink         SubscriptionEventFacility = 0
	FacilitySource       SubscriptionEventFacility = 1
	FacilitySinkInput    SubscriptionEventFacility = 2
	FacilitySourceOutput SubscriptionEventFacility = 3
	FacilityModule       SubscriptionEventFacility = 4
	FacilityClient       SubscriptionEventFacility = 5
	FacilitySampleCache  SubscriptionEventFacility = 6
	FacilityServer       SubscriptionEventFacility = 7
	FacilityAutoload     SubscriptionEventFacility = 8
	FacilityCard         SubscriptionEventFacility = 9
)

// SubscriptionEventType names what happened to the object.
type SubscriptionEventType uint32

const (
	EventTypeNew     SubscriptionEventType = 0x00
	EventTypeChanged SubscriptionEventType = 0x20
	EventTypeRemoved SubscriptionEventType = 0x30
)

const (
	facilityMask  uint32 = 0x0F
	eventTypeMask uint32 = 0x30
)

// SubscriptionEvent is the notification delivered for every subscribed
// change once Subscribe's reply has been received.
type SubscriptionEvent struct {
	Facility  SubscriptionEventFacility
	EventType SubscriptionEventType
	Index     *uint32
}

func DecodeSubscriptionEvent(r *tagstruct.Reader, _ uint16) (SubscriptionEvent, error) {
	raw, err := r.ReadU32()
	if err != nil {
		return SubscriptionEvent{}, err
	}
	facility := SubscriptionEventFacility(raw & facilityMask)
	if facility > FacilityCard {
		return SubscriptionEvent{}, pulseerrors.NewTagDecodeError("decode_subscription_event.facility",
			fmt.Errorf("invalid event facility %d", facility))
	}
	eventType := SubscriptionEventType(raw & eventTypeMask)
	switch eventType {
	case EventTypeNew, EventTypeChanged, EventTypeRemoved:
	default:
		return SubscriptionEvent{}, pulseerrors.NewTagDecodeError("decode_subscription_event.type",
			fmt.Errorf("invalid event type %d", eventType))
	}
	index, err := r.ReadIndex()
	if err != nil {
		return SubscriptionEvent{}, err
	}
	return SubscriptionEvent{Facility: facility, EventType: eventType, Index: index}, nil
}

func EncodeSubscriptionEvent(w *tagstruct.Writer, e SubscriptionEvent) error {
	raw := uint32(e.Facility) | uint32(e.EventType)
	if err := w.WriteU32(raw); err != nil {
		return err
	}
	return w.WriteIndex(e.Index)
}
