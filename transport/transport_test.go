package transport

import (
	"bytes"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pipeConn is a minimal net.Conn over in-memory buffers, enough to
// exercise the line framing without a socket.
type pipeConn struct {
	in     *bytes.Buffer
	out    *bytes.Buffer
	closes int
}

func (p *pipeConn) Read(b []byte) (int, error) {
	if p.in.Len() == 0 {
		return 0, io.EOF
	}
	return p.in.Read(b)
}

func (p *pipeConn) Write(b []byte) (int, error) { return p.out.Write(b) }
func (p *pipeConn) Close() error                { p.closes++; return nil }

func (p *pipeConn) LocalAddr() net.Addr                { return nil }
func (p *pipeConn) RemoteAddr() net.Addr               { return nil }
func (p *pipeConn) SetDeadline(t time.Time) error      { return nil }
func (p *pipeConn) SetReadDeadline(t time.Time) error  { return nil }
func (p *pipeConn) SetWriteDeadline(t time.Time) error { return nil }

func newPipeConn(input string) *pipeConn {
	return &pipeConn{
		in:  bytes.NewBufferString(input),
		out: &bytes.Buffer{},
	}
}

func TestReadLineStripsTerminator(t *testing.T) {
	t.Parallel()

	pc := newPipeConn("+OK ready\r\n+OK second\n")
	c := NewConn(pc)

	line, err := c.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "+OK ready", line)

	// bare LF is tolerated
	line, err = c.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "+OK second", line)
}

func TestReadLineTruncatedStream(t *testing.T) {
	t.Parallel()

	pc := newPipeConn("+OK no terminator")
	c := NewConn(pc)

	_, err := c.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestWriteLineAppendsCRLF(t *testing.T) {
	t.Parallel()

	pc := newPipeConn("")
	c := NewConn(pc)

	require.NoError(t, c.WriteLine("USER alice"))
	require.NoError(t, c.WriteLine("PASS hunter2"))
	assert.Equal(t, "USER alice\r\nPASS hunter2\r\n", pc.out.String())
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	pc := newPipeConn("")
	c := NewConn(pc)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, 1, pc.closes)
}
