// Package client implements the POP3 protocol session: it owns one
// transport connection for its lifetime, issues commands, validates
// the status line of every reply, and frames multi-line responses.
//
// A Client is strictly synchronous. Each written command is
// immediately followed by a blocking read of its reply; the protocol
// forbids pipelining, so there is never more than one command in
// flight. A Client must not be shared between goroutines.
package client

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zostay/go-pop3/transport"
)

// StatusOK is the success marker beginning every positive server
// reply. Anything else, including the "-ERR" failure marker, fails
// validation.
const StatusOK = "+OK"

// Errors returned by Client operations.
var (
	// ErrAlreadyConnected is returned by Connect when the client is
	// already in the connected state.
	ErrAlreadyConnected = errors.New("session is already connected")

	// ErrNotConnected is returned by every operation other than
	// Connect when the client is not in the connected state.
	ErrNotConnected = errors.New("session is not connected")

	// ErrProtocol is returned when a reply line is empty, malformed,
	// or carries the failure marker. The wrapped message preserves
	// what the server actually said.
	ErrProtocol = errors.New("protocol error")

	// ErrNilMessage is returned by retrieval and deletion operations
	// handed a nil message.
	ErrNilMessage = errors.New("message must not be nil")

	// ErrBadListing is returned when a listing line or count cannot be
	// parsed as the expected numeric tokens.
	ErrBadListing = errors.New("malformed listing")
)

// DialFunc opens a transport connection. It exists so tests and tools
// can inject a scripted connection in place of a real socket.
type DialFunc func(host string, port int, useTLS bool) (transport.Conn, error)

// Option configures a Client at construction time.
type Option func(c *Client)

// WithPort sets the server port. Without this option the protocol
// default is used: 110, or 995 when TLS is enabled.
func WithPort(port int) Option {
	return func(c *Client) { c.port = port }
}

// WithTLS makes the client dial an implicit-TLS connection.
func WithTLS() Option {
	return func(c *Client) { c.useTLS = true }
}

// WithLogger attaches a logger. The client logs commands and state
// changes at debug level. Without this option nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithDialer replaces the transport dialer used by Connect. The
// default is transport.Dial.
func WithDialer(dial DialFunc) Option {
	return func(c *Client) { c.dial = dial }
}

// Client is a POP3 session. The zero value is not usable; construct
// one with New. A Client starts disconnected, becomes connected after
// a successful Connect, and returns to disconnected after Disconnect.
type Client struct {
	host   string
	port   int
	useTLS bool
	dial   DialFunc
	logger *slog.Logger

	conn      transport.Conn
	connected bool
}

// New creates a disconnected Client for the given host.
func New(host string, opts ...Option) *Client {
	c := &Client{
		host: host,
		dial: transport.Dial,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connected reports whether the session is in the connected state.
func (c *Client) Connected() bool {
	return c.connected
}

// Connect opens the transport, validates the server greeting, and
// authenticates with USER and PASS. On success the client transitions
// to the connected state.
//
// It fails with ErrAlreadyConnected if the session is already
// connected, with an error matching transport.ErrConnect if the
// connection cannot be opened, and with ErrProtocol if the greeting or
// either authentication reply is not a success. On any failure after
// the transport opened, the transport is closed and the session
// remains disconnected.
func (c *Client) Connect(user, pass string) error {
	if c.connected {
		return ErrAlreadyConnected
	}

	conn, err := c.dial(c.host, c.port, c.useTLS)
	if err != nil {
		return err
	}

	greeting, err := readLine(conn)
	if err == nil {
		err = checkStatus(greeting)
	}
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("reading greeting: %w", err)
	}

	c.conn = conn
	for _, step := range []struct{ name, arg string }{
		{"USER", user},
		{"PASS", pass},
	} {
		if _, err := c.command(step.name, step.arg); err != nil {
			_ = conn.Close()
			c.conn = nil
			return err
		}
	}

	c.connected = true
	if c.logger != nil {
		c.logger.Debug("pop3 session established", "host", c.host, "user", user, "tls", c.useTLS)
	}
	return nil
}

// Disconnect sends QUIT as a courtesy, then unconditionally leaves the
// connected state and closes the transport. A failure of the QUIT
// exchange itself is ignored; local cleanup happens regardless of
// whether the server acknowledged. Only closing the transport can
// produce an error.
//
// It fails with ErrNotConnected if the session is not connected.
func (c *Client) Disconnect() error {
	if !c.connected {
		return ErrNotConnected
	}

	_, _ = c.command("QUIT")

	c.connected = false
	conn := c.conn
	c.conn = nil

	if c.logger != nil {
		c.logger.Debug("pop3 session closed", "host", c.host)
	}
	return conn.Close()
}

// Command sends a single command and reads its one-line reply. The
// command name and arguments are joined with spaces and terminated
// with CRLF. The reply is validated: an empty line or one lacking the
// success marker fails with ErrProtocol. The full reply line is
// returned on success.
//
// It fails with ErrNotConnected if the session is not connected.
func (c *Client) Command(name string, args ...string) (string, error) {
	if !c.connected {
		return "", ErrNotConnected
	}
	return c.command(name, args...)
}

// command is the generic command path used both by Command and by the
// handshake, which runs before the session counts as connected.
func (c *Client) command(name string, args ...string) (string, error) {
	line := name
	for _, arg := range args {
		if arg != "" {
			line += " " + arg
		}
	}

	if c.logger != nil {
		c.logger.Debug("pop3 command", "name", name)
	}

	if err := c.conn.WriteLine(line); err != nil {
		return "", fmt.Errorf("sending %s: %w", name, err)
	}

	reply, err := readLine(c.conn)
	if err != nil {
		return "", fmt.Errorf("reading %s reply: %w", name, err)
	}
	if err := checkStatus(reply); err != nil {
		return "", fmt.Errorf("%s failed: %w", name, err)
	}

	return reply, nil
}

// checkStatus validates a reply status line. An empty line or a line
// that does not begin with the success marker is a protocol error that
// preserves the server's text.
func checkStatus(line string) error {
	if line == "" {
		return fmt.Errorf("%w: empty reply", ErrProtocol)
	}
	if !strings.HasPrefix(line, StatusOK) {
		return fmt.Errorf("%w: %s", ErrProtocol, line)
	}
	return nil
}
