// Package pulse implements a client for the PulseAudio native IPC protocol:
// dial and handshake, the command catalog, and playback/record streams.
package pulse

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	pulseerrors "github.com/alxayo/pulse-go/internal/errors"
	"github.com/alxayo/pulse-go/internal/frame"
	"github.com/alxayo/pulse-go/internal/logger"
	"github.com/alxayo/pulse-go/internal/metrics"
	"github.com/alxayo/pulse-go/internal/protocol/command"
	"github.com/alxayo/pulse-go/internal/reactor"
	"github.com/alxayo/pulse-go/internal/tagstruct"
)

// ProtocolVersionMin/Max bound the versions this client will negotiate
// (spec.md §3's version floor/ceiling for the native protocol).
const (
	ProtocolVersionMin uint16 = 13
	ProtocolVersionMax uint16 = 32
)

// Options configures Dial. Every field is optional; the zero value resolves
// server address and auth cookie the same way the reference command-line
// tools do (spec.md §6).
type Options struct {
	// ServerAddr is a unix socket path. Empty means resolve from
	// $PULSE_SERVER, then $XDG_RUNTIME_DIR/pulse/native.
	ServerAddr string
	// Cookie is the raw auth cookie. Empty means resolve from
	// $PULSE_COOKIE, then $XDG_CONFIG_HOME/pulse/cookie, then
	// $HOME/.config/pulse/cookie, then no cookie at all.
	Cookie []byte
	// ClientName is sent as application.name in the handshake proplist.
	ClientName string
	// Props, if set, is merged into the handshake proplist alongside
	// ClientName (ClientName always wins on key collision).
	Props *tagstruct.PropList
	// DialTimeout bounds the transport connect and the synchronous
	// handshake. Zero means 5s.
	DialTimeout time.Duration
	// Registerer, if non-nil, enables Prometheus metrics for this
	// connection's reactor.
	Registerer prometheus.Registerer
	// Logger overrides the package-global logger for this connection.
	Logger *slog.Logger
}

// Client is a live, authenticated connection to a PulseAudio server. Build
// one with Dial; Close tears it down.
type Client struct {
	conn    net.Conn
	reactor *reactor.Conn
	id      string
	log     *slog.Logger

	runErr chan error
	cancel context.CancelFunc
}

// Dial connects to the server, performs the synchronous Auth/SetClientName
// handshake (spec.md §5 "Handshake synchrony": this runs to completion on
// the calling goroutine, blocking, before any async machinery starts), then
// launches the stream reactor in the background.
func Dial(ctx context.Context, opts Options) (*Client, error) {
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	log := opts.Logger
	if log == nil {
		log = logger.Logger()
	}

	addr, err := resolveServerAddr(opts.ServerAddr)
	if err != nil {
		return nil, err
	}
	cookie, err := resolveCookie(opts.Cookie)
	if err != nil {
		return nil, err
	}

	dialCtx, dialCancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer dialCancel()
	var d net.Dialer
	conn, err := d.DialContext(dialCtx, "unix", addr)
	if err != nil {
		return nil, pulseerrors.NewDisconnectedError("dial", err)
	}

	connID := uuid.NewString()
	log = logger.WithConn(log, connID, addr)

	if deadline, ok := dialCtx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	version, err := handshake(conn, cookie, opts.ClientName, opts.Props)
	_ = conn.SetDeadline(time.Time{})
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	log.Info("handshake complete", "version", version)

	m := metrics.NewReactor(opts.Registerer, connID)
	rc := reactor.New(conn, conn, version, log, m)

	runCtx, cancel := context.WithCancel(context.Background())
	c := &Client{
		conn:    conn,
		reactor: rc,
		id:      connID,
		log:     log,
		runErr:  make(chan error, 1),
		cancel:  cancel,
	}
	go func() {
		c.runErr <- rc.Run(runCtx)
	}()
	return c, nil
}

// handshake performs the blocking Auth/SetClientName exchange and returns
// the negotiated protocol version. It never touches the reactor: seq 0 and
// 1 are reserved for exactly this (see reactor.clientSeqFloor).
func handshake(conn net.Conn, cookie []byte, clientName string, props *tagstruct.PropList) (uint16, error) {
	req := command.Auth{Version: ProtocolVersionMax, Cookie: cookie}
	payload, err := command.EncodeRequest(ProtocolVersionMax, 0, req)
	if err != nil {
		return 0, err
	}
	if err := writeControlFrame(conn, payload); err != nil {
		return 0, err
	}
	var authReply command.AuthReply
	if err := readReplyInto(conn, ProtocolVersionMax, 0, &authReply); err != nil {
		return 0, err
	}
	version := authReply.Version
	if version > ProtocolVersionMax {
		version = ProtocolVersionMax
	}
	if version < ProtocolVersionMin {
		return 0, pulseerrors.NewVersionError("handshake.negotiate",
			fmt.Errorf("server version %d below supported floor %d", version, ProtocolVersionMin))
	}

	if props == nil {
		props = tagstruct.NewPropList()
	}
	if clientName != "" {
		props.SetString(tagstruct.PropApplicationName, clientName)
	}
	setName := command.SetClientName{Props: props}
	payload, err = command.EncodeRequest(version, 1, setName)
	if err != nil {
		return 0, err
	}
	if err := writeControlFrame(conn, payload); err != nil {
		return 0, err
	}
	var nameReply command.SetClientNameReply
	if err := readReplyInto(conn, version, 1, &nameReply); err != nil {
		return 0, err
	}
	return version, nil
}

func writeControlFrame(conn net.Conn, payload []byte) error {
	if _, err := frame.WriteControlMessage(conn, payload); err != nil {
		return pulseerrors.NewDisconnectedError("handshake.write", err)
	}
	return nil
}

// readReplyInto reads one frame expected to be the Reply (or Error) envelope
// for wantSeq, decoding its body into reply. Used only during the
// synchronous pre-reactor handshake.
func readReplyInto(conn net.Conn, version uint16, wantSeq uint32, reply command.Reply) error {
	desc, payload, err := frame.ReadFrame(conn)
	if err != nil {
		return pulseerrors.NewDisconnectedError("handshake.read", err)
	}
	if !desc.IsControl() {
		return pulseerrors.NewProtocolError("handshake.read", fmt.Errorf("expected control frame, got data frame"))
	}
	r := tagstruct.NewReader(bytes.NewReader(payload), version)
	tag, seq, err := command.ReadEnvelope(r)
	if err != nil {
		return err
	}
	if seq != wantSeq {
		return pulseerrors.NewProtocolError("handshake.read", fmt.Errorf("reply seq %d, want %d", seq, wantSeq))
	}
	switch tag {
	case command.TagReply:
		return reply.Decode(r, version)
	case command.TagError:
		code, err := command.ReadErrorCode(r)
		if err != nil {
			return err
		}
		return command.AsServerError("handshake.reply", code)
	default:
		return pulseerrors.NewProtocolError("handshake.read", fmt.Errorf("unexpected tag %s during handshake", tag))
	}
}

// Close tears down the reactor and the underlying transport, then waits for
// Run to return.
func (c *Client) Close() error {
	c.cancel()
	err := <-c.runErr
	return err
}

// Done reports whether the reactor has exited.
func (c *Client) Done() bool { return c.reactor.Closed() }

// Events delivers observable server notifications (Overflow, Underflow,
// device-moved/suspended, subscription events, ...).
func (c *Client) Events() <-chan any { return c.reactor.Events() }

// Command sends p and decodes its reply into reply (nil if the command has
// no typed reply body beyond the generic ack). This is the escape hatch for
// any catalog command without a dedicated wrapper below.
func (c *Client) Command(ctx context.Context, p command.Params, reply command.Reply) error {
	return c.reactor.Call(ctx, p, reply)
}

// GetServerInfo reports the server's identity and defaults.
func (c *Client) GetServerInfo(ctx context.Context) (command.ServerInfo, error) {
	var reply command.ServerInfo
	if err := c.Command(ctx, command.GetServerInfo{}, &reply); err != nil {
		return command.ServerInfo{}, err
	}
	return reply, nil
}

// GetSinkInfoList enumerates every sink (playback device).
func (c *Client) GetSinkInfoList(ctx context.Context) ([]command.SinkInfo, error) {
	var reply command.SinkInfoList
	if err := c.Command(ctx, command.GetSinkInfoList{}, &reply); err != nil {
		return nil, err
	}
	return reply.Sinks, nil
}

// GetSourceInfoList enumerates every source (record device).
func (c *Client) GetSourceInfoList(ctx context.Context) ([]command.SourceInfo, error) {
	var reply command.SourceInfoList
	if err := c.Command(ctx, command.GetSourceInfoList{}, &reply); err != nil {
		return nil, err
	}
	return reply.Sources, nil
}

// GetCardInfoList enumerates every sound card, with its profiles and ports.
func (c *Client) GetCardInfoList(ctx context.Context) ([]command.CardInfo, error) {
	var reply command.CardInfoList
	if err := c.Command(ctx, command.GetCardInfoList{}, &reply); err != nil {
		return nil, err
	}
	return reply.Cards, nil
}

// SetSinkVolume sets a sink's per-channel volume, addressed by index.
func (c *Client) SetSinkVolume(ctx context.Context, index uint32, vol tagstruct.ChannelVolume) error {
	return c.Command(ctx, command.SetSinkVolume{Index: &index, Volume: vol}, nil)
}

// SetSinkMute mutes or unmutes a sink, addressed by index.
func (c *Client) SetSinkMute(ctx context.Context, index uint32, mute bool) error {
	return c.Command(ctx, command.SetSinkMute{Index: &index, Mute: mute}, nil)
}

// Subscribe registers for change notifications matching mask; matching
// events arrive on Events() as command.SubscriptionEvent values.
func (c *Client) Subscribe(ctx context.Context, mask command.SubscriptionMask) error {
	return c.Command(ctx, command.Subscribe{Mask: mask}, nil)
}

// resolveServerAddr implements spec.md §6's server discovery: an explicit
// addr always wins; otherwise $PULSE_SERVER (stripped of a "unix:" prefix,
// the only transport this client speaks), then the well-known socket under
// $XDG_RUNTIME_DIR.
func resolveServerAddr(addr string) (string, error) {
	if addr != "" {
		return addr, nil
	}
	if env := os.Getenv("PULSE_SERVER"); env != "" {
		return trimUnixPrefix(env), nil
	}
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return "", pulseerrors.NewProtocolError("resolve_server_addr",
			fmt.Errorf("no ServerAddr given, $PULSE_SERVER unset, and $XDG_RUNTIME_DIR unset"))
	}
	return filepath.Join(runtimeDir, "pulse", "native"), nil
}

func trimUnixPrefix(s string) string {
	const prefix = "unix:"
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		return s[len(prefix):]
	}
	return s
}

// resolveCookie implements spec.md §6's cookie discovery: an explicit cookie
// always wins; otherwise $PULSE_COOKIE (hex-encoded), then the cookie file
// under $XDG_CONFIG_HOME or $HOME/.config, then no cookie (some servers
// accept unauthenticated local connections).
func resolveCookie(cookie []byte) ([]byte, error) {
	if len(cookie) > 0 {
		return cookie, nil
	}
	if hex := os.Getenv("PULSE_COOKIE"); hex != "" {
		return decodeHexCookie(hex)
	}
	for _, path := range cookiePaths() {
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		}
	}
	return nil, nil
}

func cookiePaths() []string {
	var paths []string
	if cfg := os.Getenv("XDG_CONFIG_HOME"); cfg != "" {
		paths = append(paths, filepath.Join(cfg, "pulse", "cookie"))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", "pulse", "cookie"))
	}
	return paths
}

func decodeHexCookie(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, pulseerrors.NewProtocolError("resolve_cookie", fmt.Errorf("$PULSE_COOKIE has odd length"))
	}
	out := make([]byte, len(s)/2)
	for i := range out {
		hi, ok1 := hexDigit(s[2*i])
		lo, ok2 := hexDigit(s[2*i+1])
		if !ok1 || !ok2 {
			return nil, pulseerrors.NewProtocolError("resolve_cookie", fmt.Errorf("$PULSE_COOKIE is not valid hex"))
		}
		out[i] = hi<<4 | lo
	}
	return out, nil
}

func hexDigit(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}
