package reactor

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alxayo/pulse-go/internal/frame"
	"github.com/alxayo/pulse-go/internal/protocol/command"
	"github.com/alxayo/pulse-go/internal/tagstruct"
)

const testVersion = 32

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeNotification frames a server->client notification the way the real
// server would: a control frame whose body is the generic {tag, seq=0xFFFFFFFF}
// envelope followed by the notification's own fields.
func writeNotification(t *testing.T, w io.Writer, tag command.Tag, encode func(*tagstruct.Writer) error) {
	t.Helper()
	var buf bytes.Buffer
	tw := tagstruct.NewWriter(&buf, testVersion)
	require.NoError(t, tw.WriteEnum(uint32(tag)))
	require.NoError(t, tw.WriteU32(0xFFFFFFFF))
	require.NoError(t, encode(tw))
	_, err := frame.WriteControlMessage(w, buf.Bytes())
	require.NoError(t, err)
}

func newPipedConn(t *testing.T) (*Conn, net.Conn) {
	t.Helper()
	clientSide, serverSide := net.Pipe()
	t.Cleanup(func() { serverSide.Close() })
	c := New(clientSide, clientSide, testVersion, discardLogger(), nil)
	return c, serverSide
}

// TestPlaybackStreamRespectsRequestedBytes covers spec scenario 4: the
// reactor must pull from the source only up to the outstanding Request
// credit, and must stop pulling once that credit is exhausted.
func TestPlaybackStreamRespectsRequestedBytes(t *testing.T) {
	c, server := newPipedConn(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runErr := make(chan error, 1)
	go func() { runErr <- c.Run(ctx) }()

	src := NewFixedSource(bytes.Repeat([]byte{0xAB}, 10000))
	state := &PlaybackStreamState{Channel: 1, Source: src}
	c.Correlator().AddPlaybackStream(state)

	writeNotification(t, server, command.TagRequest, func(w *tagstruct.Writer) error {
		return command.EncodeRequestNotification(w, command.Request{Channel: 1, Bytes: 2000})
	})

	d, payload, err := frame.ReadFrame(server)
	require.NoError(t, err)
	require.False(t, d.IsControl())
	require.Equal(t, uint32(1), d.Channel)
	require.LessOrEqual(t, len(payload), 2000)

	require.EqualValues(t, 2000-len(payload), state.RequestedBytes())

	cancel()
	<-runErr
}

// TestPlaybackSourceEOFStopsStreamAndFiresCallback covers spec scenario 5: a
// source reporting EOF (PollRead returning 0, PollReady) must stop being
// pulled and must fire the stream's OnEOF callback exactly once.
func TestPlaybackSourceEOFStopsStreamAndFiresCallback(t *testing.T) {
	c, server := newPipedConn(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runErr := make(chan error, 1)
	go func() { runErr <- c.Run(ctx) }()

	src := NewFixedSource([]byte{1, 2, 3, 4})
	state := &PlaybackStreamState{Channel: 5, Source: src}
	eof := make(chan struct{})
	state.OnEOF(func() { close(eof) })
	c.Correlator().AddPlaybackStream(state)

	writeNotification(t, server, command.TagRequest, func(w *tagstruct.Writer) error {
		return command.EncodeRequestNotification(w, command.Request{Channel: 5, Bytes: 4096})
	})

	d, payload, err := frame.ReadFrame(server)
	require.NoError(t, err)
	require.Equal(t, uint32(5), d.Channel)
	require.Equal(t, []byte{1, 2, 3, 4}, payload)

	select {
	case <-eof:
	case <-time.After(time.Second):
		t.Fatal("OnEOF never fired")
	}
	require.True(t, state.done.Load())

	cancel()
	<-runErr
}

// TestRecordStreamDeliversDataToSink covers push delivery of record data: a
// raw (non-control) data frame addressed to a record stream's channel must
// land in that stream's Sink.
func TestRecordStreamDeliversDataToSink(t *testing.T) {
	c, server := newPipedConn(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runErr := make(chan error, 1)
	go func() { runErr <- c.Run(ctx) }()

	sink := NewRingSink(4096)
	state := &RecordStreamState{Channel: 9, Sink: sink}
	c.Correlator().AddRecordStream(state)

	payload := []byte("hello from the server")
	_, err := frame.WriteMemblock(server, 9, payload, 0)
	require.NoError(t, err)

	buf := make([]byte, len(payload))
	n, closed := sink.Read(buf)
	require.False(t, closed)
	require.Equal(t, payload, buf[:n])

	cancel()
	<-runErr
}

// TestConnCallResolvesReply exercises the request/reply correlation path
// end to end through the dispatch loop, not just the Correlator in
// isolation.
func TestConnCallResolvesReply(t *testing.T) {
	c, server := newPipedConn(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runErr := make(chan error, 1)
	go func() { runErr <- c.Run(ctx) }()

	go func() {
		d, payload, err := frame.ReadFrame(server)
		if err != nil || !d.IsControl() {
			return
		}
		r := tagstruct.NewReader(bytes.NewReader(payload), testVersion)
		_, seq, err := command.DecodeRequestHeader(r)
		if err != nil {
			return
		}
		var buf bytes.Buffer
		tw := tagstruct.NewWriter(&buf, testVersion)
		_ = tw.WriteEnum(uint32(command.TagReply))
		_ = tw.WriteU32(seq)
		_ = command.SetClientNameReply{ClientID: 7}.Encode(tw, testVersion)
		_, _ = frame.WriteControlMessage(server, buf.Bytes())
	}()

	var reply command.SetClientNameReply
	err := c.Call(ctx, command.SetClientName{Props: tagstruct.NewPropList()}, &reply)
	require.NoError(t, err)
	require.EqualValues(t, 7, reply.ClientID)

	cancel()
	<-runErr
}
