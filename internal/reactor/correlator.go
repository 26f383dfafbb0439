// Package reactor implements the per-connection correlation engine and
// stream reactor (spec.md §4.D, §4.E): the seq->pending-reply map, the
// channel->stream-state maps, classification of inbound control messages,
// and the single-goroutine event loop that drives playback pull and record
// push.
package reactor

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/alxayo/pulse-go/internal/protocol/command"
	"github.com/alxayo/pulse-go/internal/tagstruct"
)

// replyResult is what a pending reply resolves to: either the reply body's
// remaining bytes (still tagged, ready for a fresh tagstruct.Reader) or an
// error — a decoded ServerError, or a DisconnectedError if the reactor exited
// before a reply arrived.
type replyResult struct {
	payload []byte
	err     error
}

// PlaybackStreamState is the reactor-owned model of one playback stream:
// everything the pull loop (reactor.go, step 4) needs to decide whether to
// call the source again.
type PlaybackStreamState struct {
	Channel        uint32
	StreamIndex    uint32
	SampleSpec     tagstruct.SampleSpec
	ChannelMap     tagstruct.ChannelMap
	Source         PlaybackSource
	requestedBytes atomic.Uint32
	done           atomic.Bool
	onEOF          func()
}

// OnEOF installs the one-shot notifier fired when Source reports EOF.
func (s *PlaybackStreamState) OnEOF(fn func()) { s.onEOF = fn }

// Done reports whether the source has reported EOF.
func (s *PlaybackStreamState) Done() bool { return s.done.Load() }

// RequestedBytes reports the currently outstanding Request total for this
// channel (spec.md §8 property 6).
func (s *PlaybackStreamState) RequestedBytes() uint32 { return s.requestedBytes.Load() }

// SeedRequested adds n to the outstanding requested-bytes total; used once,
// right after stream creation, to account for CreatePlaybackStreamReply's
// RequestedBytes field without waiting for a separate Request notification.
func (s *PlaybackStreamState) SeedRequested(n uint32) { s.requestedBytes.Add(n) }

func (s *PlaybackStreamState) consumeRequested(n uint32) {
	for {
		old := s.requestedBytes.Load()
		next := uint32(0)
		if old > n {
			next = old - n
		}
		if s.requestedBytes.CompareAndSwap(old, next) {
			return
		}
	}
}

// RecordStreamState is the reactor-owned model of one record stream.
type RecordStreamState struct {
	Channel     uint32
	StreamIndex uint32
	SampleSpec  tagstruct.SampleSpec
	ChannelMap  tagstruct.ChannelMap
	Sink        RecordSink
	started     atomic.Bool
	onStarted   func()
}

// OnStarted installs the one-shot notifier fired when the server's Started
// notification is observed for this stream.
func (s *RecordStreamState) OnStarted(fn func()) { s.onStarted = fn }

// Correlator holds the three maps spec.md §4.D names, plus the monotonic seq
// allocator. One Correlator per connection; the reactor goroutine and any
// number of Client-method-calling goroutines share it.
//
// The maps are xsync.Map rather than the teacher's mutex+map
// (internal/rtmp/conn.Connection.chunkStreams) because the access pattern is
// the same "hot concurrent read from the reactor loop, occasional write from
// an application goroutine issuing a new command or stream" shape that
// USA-RedDragon-DMRHub's peer/repeater registries use the same library for.
type Correlator struct {
	nextSeq  atomic.Uint32
	pending  *xsync.Map[uint32, chan replyResult]
	playback *xsync.Map[uint32, *PlaybackStreamState]
	record   *xsync.Map[uint32, *RecordStreamState]
}

// clientSeqFloor is where async-phase seq allocation begins; 0 and 1 are
// reserved for the synchronous Auth/SetClientName handshake (spec.md §3).
const clientSeqFloor = 1024

func NewCorrelator() *Correlator {
	c := &Correlator{
		pending:  xsync.NewMap[uint32, chan replyResult](),
		playback: xsync.NewMap[uint32, *PlaybackStreamState](),
		record:   xsync.NewMap[uint32, *RecordStreamState](),
	}
	c.nextSeq.Store(clientSeqFloor)
	return c
}

// NextSeq allocates the next outgoing command's seq. Never reused on this
// connection (spec.md §8 property 4).
func (c *Correlator) NextSeq() uint32 { return c.nextSeq.Add(1) - 1 }

// register installs a waiter for seq's reply and returns the channel that
// will receive exactly one replyResult. Must be called before the command
// carrying seq is written to the socket.
func (c *Correlator) register(seq uint32) chan replyResult {
	ch := make(chan replyResult, 1)
	c.pending.Store(seq, ch)
	return ch
}

// resolve delivers result to seq's waiter, if any, removing it from the map
// first so a duplicate reply for the same seq (a protocol violation) is
// silently dropped rather than double-delivered (spec.md §8 property 5,
// §4.D "Duplicate seq").
func (c *Correlator) resolve(seq uint32, result replyResult) bool {
	ch, ok := c.pending.LoadAndDelete(seq)
	if !ok {
		return false
	}
	ch <- result
	return true
}

// abortAll resolves every still-pending waiter with a DisconnectedError; used
// when the reactor exits (spec.md §4.E "Cancellation").
func (c *Correlator) abortAll(err error) {
	c.pending.Range(func(seq uint32, ch chan replyResult) bool {
		c.pending.Delete(seq)
		ch <- replyResult{err: err}
		return true
	})
}

// AddPlaybackStream / AddRecordStream register stream state under its
// channel id, for routing notifications (Request, Started, ...) and for the
// reactor's pull/push loop to find it.
func (c *Correlator) AddPlaybackStream(s *PlaybackStreamState) { c.playback.Store(s.Channel, s) }
func (c *Correlator) AddRecordStream(s *RecordStreamState)     { c.record.Store(s.Channel, s) }

func (c *Correlator) RemovePlaybackStream(channel uint32) { c.playback.Delete(channel) }
func (c *Correlator) RemoveRecordStream(channel uint32)   { c.record.Delete(channel) }

func (c *Correlator) PlaybackStream(channel uint32) (*PlaybackStreamState, bool) {
	return c.playback.Load(channel)
}
func (c *Correlator) RecordStream(channel uint32) (*RecordStreamState, bool) {
	return c.record.Load(channel)
}

// RangePlayback visits every playback stream currently tracked; used by the
// reactor's per-cycle pull step (reactor.go).
func (c *Correlator) RangePlayback(fn func(*PlaybackStreamState) bool) {
	c.playback.Range(func(_ uint32, s *PlaybackStreamState) bool { return fn(s) })
}

// dispatchNotification routes a decoded unsolicited server message to the
// stream state it concerns (spec.md §4.D "Classification on inbound control
// message"). Reply/Error envelopes never reach here — the reactor resolves
// those directly via resolve() before falling through to this switch.
func (c *Correlator) dispatchNotification(tag command.Tag, v any) {
	switch n := v.(type) {
	case command.Started:
		if s, ok := c.record.Load(n.Channel); ok {
			if !s.started.Swap(true) && s.onStarted != nil {
				s.onStarted()
			}
		}
	case command.Request:
		if s, ok := c.playback.Load(n.Channel); ok {
			s.requestedBytes.Add(n.Bytes)
		}
	case command.PlaybackStreamKilled:
		c.playback.Delete(n.Channel)
	case command.RecordStreamKilled:
		c.record.Delete(n.Channel)
	default:
		// Overflow/Underflow/Moved/Suspended/BufferAttrChanged/SubscribeEvent/
		// *Event: observable but the correlator's local model does not need
		// to change for them (spec.md §4.D). Application-facing delivery of
		// these, if any, is the reactor's event channel (see reactor.go).
		_ = tag
	}
}
