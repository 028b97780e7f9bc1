// Package transport provides the byte-stream collaborator used by the
// POP3 client: a line oriented connection over a socket, optionally
// wrapped in TLS. The backend is chosen when the connection is
// constructed, so the client never needs to know which kind it holds.
//
// The connection deliberately has no timeouts. A stalled ReadLine()
// blocks until the server produces a full line or the stream ends.
// Callers that need deadlines should arrange them on the dialed
// net.Conn before wrapping it.
package transport

import (
	"bufio"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// Default ports used by Dial when no port is given.
const (
	DefaultPort    = 110 // plaintext POP3
	DefaultTLSPort = 995 // implicit TLS POP3
)

// ErrConnect is returned by Dial when the underlying connection cannot
// be opened.
var ErrConnect = errors.New("unable to open connection")

// Conn is a line oriented connection to a POP3 server.
type Conn interface {
	// ReadLine blocks until a complete line (including its terminator)
	// has arrived, then returns the line with the terminator stripped.
	// It returns an error if the stream ends first.
	ReadLine() (string, error)

	// WriteLine writes the given text followed by CRLF.
	WriteLine(line string) error

	// Close releases the connection. It is idempotent.
	Close() error
}

// Dial opens a connection to the given host. A port of 0 selects
// DefaultPort, or DefaultTLSPort when useTLS is set. Failure to open
// the connection is reported as an error matching ErrConnect.
func Dial(host string, port int, useTLS bool) (Conn, error) {
	if port == 0 {
		if useTLS {
			port = DefaultTLSPort
		} else {
			port = DefaultPort
		}
	}

	address := net.JoinHostPort(host, strconv.Itoa(port))

	var (
		nc  net.Conn
		err error
	)
	if useTLS {
		nc, err = tls.Dial("tcp", address, &tls.Config{ServerName: host})
	} else {
		nc, err = net.Dial("tcp", address)
	}
	if err != nil {
		return nil, fmt.Errorf("%w to %s: %v", ErrConnect, address, err)
	}

	return NewConn(nc), nil
}

// NewConn wraps an already-open net.Conn in a line oriented Conn. This
// is how Dial builds its connections, but it is exported so callers
// can supply a connection they opened themselves.
func NewConn(nc net.Conn) Conn {
	return &conn{rwc: nc, r: bufio.NewReader(nc)}
}

// conn is the sole Conn implementation. TLS and plaintext connections
// differ only in the net.Conn they wrap.
type conn struct {
	rwc    net.Conn
	r      *bufio.Reader
	closed bool
}

func (c *conn) ReadLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *conn) WriteLine(line string) error {
	_, err := c.rwc.Write([]byte(line + "\r\n"))
	return err
}

func (c *conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rwc.Close()
}
