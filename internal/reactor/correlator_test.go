package reactor

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alxayo/pulse-go/internal/protocol/command"
)

var errAbort = stderrors.New("abort")

func TestNextSeqNeverReused(t *testing.T) {
	c := NewCorrelator()
	seen := make(map[uint32]bool)
	for i := 0; i < 1000; i++ {
		seq := c.NextSeq()
		require.False(t, seen[seq], "seq %d reused", seq)
		seen[seq] = true
	}
}

func TestNextSeqStartsAboveHandshakeFloor(t *testing.T) {
	c := NewCorrelator()
	require.GreaterOrEqual(t, c.NextSeq(), uint32(clientSeqFloor))
}

func TestResolveDeliversExactlyOnce(t *testing.T) {
	c := NewCorrelator()
	seq := c.NextSeq()
	ch := c.register(seq)

	ok := c.resolve(seq, replyResult{payload: []byte("hello")})
	require.True(t, ok)

	got := <-ch
	require.Equal(t, []byte("hello"), got.payload)

	// A duplicate reply for the same seq (protocol violation) is dropped,
	// not redelivered.
	ok = c.resolve(seq, replyResult{payload: []byte("again")})
	require.False(t, ok)
}

func TestResolveUnknownSeqIsNoop(t *testing.T) {
	c := NewCorrelator()
	require.False(t, c.resolve(999, replyResult{}))
}

func TestAbortAllResolvesEveryPending(t *testing.T) {
	c := NewCorrelator()
	var chans []chan replyResult
	for i := 0; i < 5; i++ {
		seq := c.NextSeq()
		chans = append(chans, c.register(seq))
	}

	c.abortAll(errAbort)

	for _, ch := range chans {
		got := <-ch
		require.ErrorIs(t, got.err, errAbort)
	}
}

func TestPlaybackStreamRequestedBytesAccounting(t *testing.T) {
	s := &PlaybackStreamState{Channel: 7}
	c := NewCorrelator()
	c.AddPlaybackStream(s)

	c.dispatchNotification(command.TagRequest, command.Request{Channel: 7, Bytes: 4096})
	require.EqualValues(t, 4096, s.RequestedBytes())

	s.consumeRequested(1000)
	require.EqualValues(t, 3096, s.RequestedBytes())

	// Consuming more than outstanding clamps at zero rather than
	// underflowing.
	s.consumeRequested(100000)
	require.EqualValues(t, 0, s.RequestedBytes())
}

func TestPlaybackStreamKilledRemovesState(t *testing.T) {
	s := &PlaybackStreamState{Channel: 3}
	c := NewCorrelator()
	c.AddPlaybackStream(s)

	c.dispatchNotification(command.TagPlaybackStreamKilled, command.PlaybackStreamKilled{Channel: 3})
	_, ok := c.PlaybackStream(3)
	require.False(t, ok)
}

func TestRecordStreamStartedFiresOnceAndSetsFlag(t *testing.T) {
	s := &RecordStreamState{Channel: 2}
	c := NewCorrelator()
	c.AddRecordStream(s)

	fired := 0
	s.OnStarted(func() { fired++ })

	c.dispatchNotification(command.TagStarted, command.Started{Channel: 2})
	c.dispatchNotification(command.TagStarted, command.Started{Channel: 2})
	require.Equal(t, 1, fired)
	require.True(t, s.started.Load())
}
