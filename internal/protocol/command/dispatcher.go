package command

import "github.com/alxayo/pulse-go/internal/tagstruct"

// DecodeNotification decodes the body of an unsolicited server->client
// message identified by tag, returning the concrete typed value as `any`.
// The correlation engine (internal/reactor/correlator.go) type-switches on
// the result to update the right piece of reactor-owned stream state — the
// generalization of the teacher's Dispatcher.Dispatch string-switch onto
// this protocol's Tag enum (see command.go's doc comment).
func DecodeNotification(r *tagstruct.Reader, version uint16, tag Tag) (any, error) {
	switch tag {
	case TagStarted:
		return DecodeStarted(r, version)
	case TagRequest:
		return DecodeRequest(r, version)
	case TagOverflow:
		return DecodeOverflow(r, version)
	case TagUnderflow:
		return DecodeUnderflow(r, version)
	case TagPlaybackStreamKilled:
		return DecodePlaybackStreamKilled(r, version)
	case TagRecordStreamKilled:
		return DecodeRecordStreamKilled(r, version)
	case TagSubscribeEvent:
		return DecodeSubscriptionEvent(r, version)
	case TagPlaybackStreamMoved:
		return DecodePlaybackStreamMoved(r, version)
	case TagRecordStreamMoved:
		return DecodeRecordStreamMoved(r, version)
	case TagPlaybackStreamSuspended:
		return DecodePlaybackStreamSuspended(r, version)
	case TagRecordStreamSuspended:
		return DecodeRecordStreamSuspended(r, version)
	case TagPlaybackBufferAttrChanged:
		return DecodePlaybackBufferAttrChanged(r, version)
	case TagRecordBufferAttrChanged:
		return DecodeRecordBufferAttrChanged(r, version)
	case TagClientEvent:
		return DecodeClientEvent(r, version)
	case TagPlaybackStreamEvent:
		return DecodePlaybackStreamEvent(r, version)
	case TagRecordStreamEvent:
		return DecodeRecordStreamEvent(r, version)
	default:
		return nil, errUnhandledTag("decode_notification", tag)
	}
}
