package errors

import (
	"context"
	stdErrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeTimeoutErr struct{}

func (fakeTimeoutErr) Error() string { return "fake timeout" }
func (fakeTimeoutErr) Timeout() bool { return true }

func TestIsProtocolErrorClassification(t *testing.T) {
	root := stdErrors.New("root")
	wrapped := fmt.Errorf("adding context: %w", root)

	fd := NewFrameDecodeError("descriptor.read", wrapped)
	require.True(t, IsProtocolError(fd))
	require.True(t, stdErrors.Is(fd, root))

	var fde *FrameDecodeError
	require.True(t, stdErrors.As(fd, &fde))
	require.Equal(t, "descriptor.read", fde.Op)

	td := NewTagDecodeError("read_tag", nil)
	require.True(t, IsProtocolError(td))

	ve := NewVersionError("negotiate", nil)
	require.True(t, IsProtocolError(ve))

	se := NewServerError("command.reply", 1, "AccessDenied")
	require.True(t, IsProtocolError(se))
	require.Contains(t, se.Error(), "AccessDenied")

	de := NewDisconnectedError("reactor.exit", nil)
	require.True(t, IsProtocolError(de))

	p := NewProtocolError("dispatch", stdErrors.New("bad state"))
	require.True(t, IsProtocolError(p))
}

func TestIsTimeout(t *testing.T) {
	root := fakeTimeoutErr{}
	to := NewTimeoutError("handshake.read", 5*time.Second, root)
	require.True(t, IsTimeout(to))
	require.False(t, IsProtocolError(to))
	require.True(t, IsTimeout(context.DeadlineExceeded))

	var ne error = root
	require.True(t, IsTimeout(ne))
}

func TestUnwrapChains(t *testing.T) {
	base := stdErrors.New("connection reset")
	l1 := fmt.Errorf("read: %w", base)
	l2 := NewFrameDecodeError("frame.read", l1)
	require.True(t, stdErrors.Is(l2, base))

	var pm protocolMarker
	require.True(t, stdErrors.As(l2, &pm))
}

func TestNilSafety(t *testing.T) {
	require.False(t, IsProtocolError(nil))
	require.False(t, IsTimeout(nil))
}

func TestConstructorsWithoutCause(t *testing.T) {
	for _, err := range []error{
		NewProtocolError("op1", nil),
		NewFrameDecodeError("op2", nil),
		NewTagDecodeError("op3", nil),
		NewVersionError("op4", nil),
		NewDisconnectedError("op5", nil),
		NewTimeoutError("op6", 100*time.Millisecond, nil),
	} {
		require.NotNil(t, err)
		require.NotEmpty(t, err.Error())
	}
}

func TestNegativePredicates(t *testing.T) {
	require.False(t, IsProtocolError(stdErrors.New("plain")))
	require.False(t, IsTimeout(stdErrors.New("plain")))
}
