// Package scriptconn provides a scripted transport connection for the
// client tests and the replay tool. The connection serves a canned
// sequence of server reply lines and records every line the client
// writes.
package scriptconn

import (
	"io"

	"github.com/zostay/go-pop3/transport"
)

// Conn is a transport.Conn that reads from a script instead of a
// socket. Fields may be inspected and modified freely between
// operations; the zero value is an empty script that reports io.EOF on
// the first read.
type Conn struct {
	// Lines holds the reply lines left to serve, in order.
	Lines []string

	// Written collects every line written to the connection, without
	// line terminators.
	Written []string

	// Closes counts Close calls.
	Closes int

	// ReadErr, when set, is returned by ReadLine once Lines is
	// exhausted. When unset an exhausted script reports io.EOF.
	ReadErr error

	// WriteErr, when set, is returned by every WriteLine call.
	WriteErr error
}

var _ transport.Conn = (*Conn)(nil)

// New returns a Conn that will serve the given reply lines.
func New(lines ...string) *Conn {
	return &Conn{Lines: lines}
}

func (c *Conn) ReadLine() (string, error) {
	if len(c.Lines) == 0 {
		if c.ReadErr != nil {
			return "", c.ReadErr
		}
		return "", io.EOF
	}

	line := c.Lines[0]
	c.Lines = c.Lines[1:]
	return line, nil
}

func (c *Conn) WriteLine(line string) error {
	if c.WriteErr != nil {
		return c.WriteErr
	}
	c.Written = append(c.Written, line)
	return nil
}

func (c *Conn) Close() error {
	c.Closes++
	return nil
}
