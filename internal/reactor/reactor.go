package reactor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alxayo/pulse-go/internal/bufpool"
	pulseerrors "github.com/alxayo/pulse-go/internal/errors"
	"github.com/alxayo/pulse-go/internal/frame"
	"github.com/alxayo/pulse-go/internal/metrics"
	"github.com/alxayo/pulse-go/internal/protocol/command"
	"github.com/alxayo/pulse-go/internal/tagstruct"
)

// envelopeHeaderSize is the fixed size, in bytes, of the tag+seq envelope
// every control message payload begins with: two tagged u32 values (tag
// TagU32 + 4 bytes) each, see command.ReadEnvelope and tagstruct's ReadU32.
const envelopeHeaderSize = 10

// pullChunkSize bounds how much a single PollRead call is asked to produce
// per reactor cycle per stream, independent of how large the server's
// outstanding Request actually is; this keeps one very hungry stream from
// starving the others in the same cycle.
const pullChunkSize = 64 * 1024

// outboundFrame is one item written by writeLoop: either a framed control
// message (already tag+seq+body serialized by internal/protocol/command) or
// a raw playback data frame for a given stream channel.
type outboundFrame struct {
	isControl bool
	channel   uint32
	offset    uint64
	payload   []byte
}

type inboundFrame struct {
	desc    frame.Descriptor
	payload []byte
}

// Conn is a single connection's correlation engine plus stream reactor
// (spec.md §4.D, §4.E). Construct with New, then Run in a goroutine (or via
// the returned errgroup) after the synchronous Auth/SetClientName handshake
// has already completed on version.
type Conn struct {
	rw         io.ReadWriter
	closer     io.Closer
	version    uint16
	correlator *Correlator
	metrics    *metrics.Reactor
	log        *slog.Logger

	outgoing chan outboundFrame
	inbound  chan inboundFrame
	wake     chan struct{}
	events   chan any

	closed atomic.Bool
}

// New builds a Conn bound to rw (and closer, for teardown) at the given
// negotiated protocol version. m may be nil to disable metrics.
func New(rw io.ReadWriter, closer io.Closer, version uint16, log *slog.Logger, m *metrics.Reactor) *Conn {
	return &Conn{
		rw:         rw,
		closer:     closer,
		version:    version,
		correlator: NewCorrelator(),
		metrics:    m,
		log:        log,
		outgoing:   make(chan outboundFrame, 64),
		inbound:    make(chan inboundFrame, 64),
		wake:       make(chan struct{}, 1),
		events:     make(chan any, 64),
	}
}

// Correlator exposes the per-connection stream maps so the client package
// can register newly created streams (see CreatePlaybackStream in
// playback.go and CreateRecordStream in record.go) and route Cancellation
// (§4.E).
func (c *Conn) Correlator() *Correlator { return c.correlator }

// Metrics exposes the connection's metrics sink (nil if none was supplied to
// New), for the client package to update stream-count gauges as streams are
// created and destroyed.
func (c *Conn) Metrics() *metrics.Reactor { return c.metrics }

// Version returns the negotiated protocol version this reactor was built
// with.
func (c *Conn) Version() uint16 { return c.version }

// Events delivers observable, non-fatal notifications (Overflow, Underflow,
// *Moved, *Suspended, *BufferAttrChanged, SubscribeEvent, *Event) to the
// application. Delivery is best-effort: a full channel drops the event
// rather than stalling the reactor (spec.md §4.D says the core is not
// required to deliver these beyond updating local state).
func (c *Conn) Events() <-chan any { return c.events }

// Wake nudges the reactor to re-poll playback sources immediately, instead
// of waiting for the next ticker tick or incoming frame. A PlaybackSource
// implementation that was PollPending and became ready should call this.
func (c *Conn) Wake() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// Run drives the reactor until ctx is canceled or a transport/frame error
// occurs. It launches the read and write transport goroutines (the
// generalization of the teacher's conn.Connection.startReadLoop/
// startWriteLoop, joined with golang.org/x/sync/errgroup instead of a bare
// sync.WaitGroup so the first failing goroutine cancels the others) and a
// third goroutine for the cooperative dispatch loop. As soon as the group's
// context is done, the transport is closed so a read blocked on the socket
// returns and Run can exit.
func (c *Conn) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(gctx, func() {
		if c.closer != nil {
			_ = c.closer.Close()
		}
	})
	defer stop()
	g.Go(func() error { return c.readLoop(gctx) })
	g.Go(func() error { return c.writeLoop(gctx) })
	g.Go(func() error { return c.dispatchLoop(gctx) })

	err := g.Wait()
	c.closed.Store(true)
	c.correlator.abortAll(pulseerrors.NewDisconnectedError("reactor", err))
	close(c.events)
	if c.closer != nil {
		_ = c.closer.Close()
	}
	if errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return nil
	}
	return err
}

// Closed reports whether the reactor has exited (spec.md §4.E "Cancellation":
// a weak-reference upgrade failing becomes an explicit closed flag here).
func (c *Conn) Closed() bool { return c.closed.Load() }

func (c *Conn) readLoop(ctx context.Context) error {
	for {
		d, payload, err := frame.ReadFrame(c.rw)
		if err != nil {
			return err
		}
		select {
		case c.inbound <- inboundFrame{desc: d, payload: payload}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Conn) writeLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case item := <-c.outgoing:
			var err error
			if item.isControl {
				_, err = frame.WriteControlMessage(c.rw, item.payload)
			} else {
				_, err = frame.WriteMemblock(c.rw, item.channel, item.payload, item.offset)
				bufpool.Put(item.payload)
			}
			if err != nil {
				return pulseerrors.NewDisconnectedError("write_loop", err)
			}
		}
	}
}

// dispatchLoop is the single cooperative cycle from spec.md §4.E: wait for
// {inbound frame, wake, ticker}; decode/route any buffered inbound frame;
// then pull from every playback stream with outstanding requested bytes.
func (c *Conn) dispatchLoop(ctx context.Context) error {
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fm := <-c.inbound:
			c.handleInbound(fm)
		case <-c.wake:
		case <-ticker.C:
		}
		c.metrics.Cycle()
		c.pullPlaybackStreams()
	}
}

func (c *Conn) handleInbound(fm inboundFrame) {
	defer freeFrame(fm.payload)
	if !fm.desc.IsControl() {
		if s, ok := c.correlator.RecordStream(fm.desc.Channel); ok {
			s.Sink.Write(fm.payload)
			c.metrics.RecordDelivered(len(fm.payload))
		}
		return
	}
	r := tagstruct.NewReader(bytes.NewReader(fm.payload), c.version)
	tag, seq, err := command.ReadEnvelope(r)
	if err != nil {
		c.log.Warn("dropping malformed control frame", "error", err)
		return
	}
	switch tag {
	case command.TagReply:
		c.metrics.ReplyReceived(false)
		body := cloneTail(fm.payload, envelopeHeaderSize)
		if !c.correlator.resolve(seq, replyResult{payload: body}) {
			c.log.Debug("reply for unknown seq dropped", "seq", seq)
		}
	case command.TagError:
		c.metrics.ReplyReceived(true)
		code, err := command.ReadErrorCode(r)
		if err != nil {
			c.log.Warn("malformed error reply", "error", err)
			return
		}
		if !c.correlator.resolve(seq, replyResult{err: command.AsServerError("reactor.reply", code)}) {
			c.log.Debug("error reply for unknown seq dropped", "seq", seq)
		}
	default:
		v, err := command.DecodeNotification(r, c.version, tag)
		if err != nil {
			c.log.Debug("unhandled notification tag", "tag", tag.String(), "error", err)
			return
		}
		c.correlator.dispatchNotification(tag, v)
		if req, ok := v.(command.Request); ok {
			c.metrics.PlaybackRequested(req.Bytes)
		}
		c.publishEvent(v)
	}
}

// publishEvent forwards a decoded notification to the application's Events
// channel, best-effort (spec.md §4.D: the core need not deliver these beyond
// updating local state, but a slow consumer must never stall the reactor —
// mirrors internal/rtmp/media.Stream.BroadcastMessage's non-blocking
// TrySendMessage fan-out).
func (c *Conn) publishEvent(v any) {
	select {
	case c.events <- v:
	default:
		c.log.Debug("events channel full, dropping notification")
	}
}

// pullPlaybackStreams implements spec.md §4.E step 4: for each playback
// stream with requested_bytes > 0 and not done, pull from its source.
func (c *Conn) pullPlaybackStreams() {
	c.correlator.RangePlayback(func(s *PlaybackStreamState) bool {
		if s.done.Load() {
			return true
		}
		want := s.RequestedBytes()
		if want == 0 {
			return true
		}
		if want > pullChunkSize {
			want = pullChunkSize
		}
		buf := bufpool.Get(int(want))
		n, state := s.Source.PollRead(buf)
		if state == PollPending {
			bufpool.Put(buf)
			return true
		}
		if n == 0 {
			bufpool.Put(buf)
			s.done.Store(true)
			if s.onEOF != nil {
				s.onEOF()
			}
			return true
		}
		s.consumeRequested(uint32(n))
		c.metrics.PlaybackSent(n)
		select {
		case c.outgoing <- outboundFrame{channel: s.Channel, payload: buf[:n]}:
		default:
			// Outgoing queue backpressure: retry next cycle. requested_bytes
			// was already decremented optimistically; re-add it so property 6
			// (sent <= requested) still holds once the retry succeeds.
			s.requestedBytes.Add(uint32(n))
			bufpool.Put(buf)
		}
		return true
	})
}

// Call sends p and blocks until its reply arrives, ctx is done, or the
// reactor exits; it decodes the reply body into reply (nil for commands
// with no typed reply beyond the generic ack). This is the generalization of
// the correlation engine described in spec.md §4.D into the single "send
// then await" entry point every typed Client method builds on.
func (c *Conn) Call(ctx context.Context, p command.Params, reply command.Reply) error {
	seq := c.correlator.NextSeq()
	ch := c.correlator.register(seq)
	payload, err := command.EncodeRequest(c.version, seq, p)
	if err != nil {
		c.correlator.resolve(seq, replyResult{})
		return err
	}
	c.metrics.CommandSent()
	select {
	case c.outgoing <- outboundFrame{isControl: true, payload: payload}:
	case <-ctx.Done():
		c.correlator.resolve(seq, replyResult{})
		return ctx.Err()
	}
	select {
	case res := <-ch:
		if res.err != nil {
			return res.err
		}
		if reply == nil {
			return nil
		}
		r := tagstruct.NewReader(bytes.NewReader(res.payload), c.version)
		return reply.Decode(r, c.version)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FireAndForget sends p without waiting for its reply (spec.md §4.E
// "Cancellation": dropping a stream handle schedules a best-effort
// Delete*Stream). Encode failures are logged and dropped, matching the
// fire-and-forget contract.
func (c *Conn) FireAndForget(p command.Params) {
	seq := c.correlator.NextSeq()
	c.correlator.register(seq)
	payload, err := command.EncodeRequest(c.version, seq, p)
	if err != nil {
		c.log.Warn("fire-and-forget encode failed", "command", p.Tag().String(), "error", err)
		return
	}
	select {
	case c.outgoing <- outboundFrame{isControl: true, payload: payload}:
	default:
		c.log.Debug("fire-and-forget dropped, outgoing queue full", "command", p.Tag().String())
	}
}

func cloneTail(b []byte, from int) []byte {
	if from >= len(b) {
		return nil
	}
	out := make([]byte, len(b)-from)
	copy(out, b[from:])
	return out
}

func freeFrame(payload []byte) {
	bufpool.Put(payload)
}
