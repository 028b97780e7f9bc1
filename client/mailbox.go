package client

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zostay/go-pop3/message"
)

// List asks the server for the mailbox listing and returns one Message
// per entry, in server order. Every returned message carries its
// server-assigned number and declared byte size and has not been
// retrieved.
//
// It fails with ErrNotConnected before Connect, with ErrProtocol on a
// bad reply, and with ErrBadListing when a listing line does not hold
// exactly two numeric tokens.
func (c *Client) List() ([]*message.Message, error) {
	if !c.connected {
		return nil, ErrNotConnected
	}

	if _, err := c.command("LIST"); err != nil {
		return nil, err
	}

	block, err := readBlock(c.conn)
	if err != nil {
		return nil, fmt.Errorf("reading LIST data: %w", err)
	}

	var msgs []*message.Message
	for _, line := range blockLines(block) {
		number, size, err := parseListingLine(line)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, message.New(number, size))
	}

	if c.logger != nil {
		c.logger.Debug("pop3 mailbox listed", "count", len(msgs))
	}
	return msgs, nil
}

// Stat reports the number of messages in the mailbox and their total
// size in bytes without listing them individually.
func (c *Client) Stat() (count, size int, err error) {
	if !c.connected {
		return 0, 0, ErrNotConnected
	}

	reply, err := c.command("STAT")
	if err != nil {
		return 0, 0, err
	}

	// reply is "+OK <count> <size>"
	count, size, err = parseListingLine(strings.TrimSpace(strings.TrimPrefix(reply, StatusOK)))
	if err != nil {
		return 0, 0, err
	}
	return count, size, nil
}

// RetrieveHeader fetches only the header of the given message with
// TOP. The raw header block is recorded on the message and its header
// fields are reparsed. The message's raw text, body, and retrieved
// flag are untouched.
func (c *Client) RetrieveHeader(msg *message.Message) error {
	block, err := c.retrieveBlock(msg, "TOP", "0")
	if err != nil {
		return err
	}
	return msg.SetRawHeader(block)
}

// Retrieve fetches the complete text of the given message with RETR.
// The raw text is recorded on the message, its header fields are
// reparsed from the part before the first blank line, the remainder
// becomes the body, and the message is marked retrieved.
func (c *Client) Retrieve(msg *message.Message) error {
	block, err := c.retrieveBlock(msg, "RETR")
	if err != nil {
		return err
	}
	return msg.SetRawMessage(block)
}

// retrieveBlock runs one numbered command against a message and frames
// its multi-line response.
func (c *Client) retrieveBlock(msg *message.Message, name string, extra ...string) (string, error) {
	if msg == nil {
		return "", ErrNilMessage
	}
	if !c.connected {
		return "", ErrNotConnected
	}

	args := append([]string{strconv.Itoa(msg.Number)}, extra...)
	if _, err := c.command(name, args...); err != nil {
		return "", err
	}

	block, err := readBlock(c.conn)
	if err != nil {
		return "", fmt.Errorf("reading %s data: %w", name, err)
	}
	return block, nil
}

// RetrieveAll fully retrieves each message in turn, in the order
// given. The first failure aborts the remaining messages and is
// returned; messages already processed keep their retrieved state.
func (c *Client) RetrieveAll(msgs []*message.Message) error {
	for _, msg := range msgs {
		if err := c.Retrieve(msg); err != nil {
			return err
		}
	}
	return nil
}

// RetrieveHeaderAll fetches headers for each message in turn, in the
// order given. The first failure aborts the remaining messages and is
// returned; messages already processed keep their parsed headers.
func (c *Client) RetrieveHeaderAll(msgs []*message.Message) error {
	for _, msg := range msgs {
		if err := c.RetrieveHeader(msg); err != nil {
			return err
		}
	}
	return nil
}

// ListAndRetrieve lists the mailbox and fully retrieves every message
// in it.
func (c *Client) ListAndRetrieve() ([]*message.Message, error) {
	msgs, err := c.List()
	if err != nil {
		return nil, err
	}
	if err := c.RetrieveAll(msgs); err != nil {
		return msgs, err
	}
	return msgs, nil
}

// ListAndRetrieveHeaders lists the mailbox and fetches the header of
// every message in it.
func (c *Client) ListAndRetrieveHeaders() ([]*message.Message, error) {
	msgs, err := c.List()
	if err != nil {
		return nil, err
	}
	if err := c.RetrieveHeaderAll(msgs); err != nil {
		return msgs, err
	}
	return msgs, nil
}

// Delete marks the given message for deletion with DELE. The server
// removes marked messages when the session ends with QUIT.
func (c *Client) Delete(msg *message.Message) error {
	if msg == nil {
		return ErrNilMessage
	}
	if !c.connected {
		return ErrNotConnected
	}

	_, err := c.command("DELE", strconv.Itoa(msg.Number))
	return err
}

// Noop sends NOOP, which does nothing beyond confirming the session is
// still alive.
func (c *Client) Noop() error {
	if !c.connected {
		return ErrNotConnected
	}
	_, err := c.command("NOOP")
	return err
}

// Reset sends RSET, unmarking any messages the session has marked for
// deletion.
func (c *Client) Reset() error {
	if !c.connected {
		return ErrNotConnected
	}
	_, err := c.command("RSET")
	return err
}

// blockLines splits a framed block back into its lines, dropping the
// empty remainder after the final CRLF.
func blockLines(block string) []string {
	if block == "" {
		return nil
	}
	lines := strings.Split(block, "\r\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// parseListingLine parses a line holding exactly two numeric tokens, a
// message number and a byte count.
func parseListingLine(line string) (number, size int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadListing, line)
	}

	number, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: message number %q", ErrBadListing, fields[0])
	}
	size, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: byte count %q", ErrBadListing, fields[1])
	}
	return number, size, nil
}
