// Package mbox appends fully retrieved messages to an mbox stream,
// which is how the popfetch command stores what it downloads.
package mbox

import (
	"errors"
	"fmt"
	"io"
	"time"

	mboxlib "github.com/emersion/go-mbox"

	"github.com/zostay/go-pop3/message"
)

// ErrNotRetrieved is returned by Write when a message has not been
// fully retrieved, since without its raw text there is nothing to
// store.
var ErrNotRetrieved = errors.New("message has not been retrieved")

// fallbackSender is used on the mbox from-line when a message has no
// parseable From header. The name is the mbox convention for an
// unknown envelope sender.
const fallbackSender = "MAILER-DAEMON"

// Write appends the given messages to w in mbox format, in the order
// given. The from-line envelope sender and date are taken from each
// message's parsed From and Date headers, falling back to
// MAILER-DAEMON and the current time when those are absent or
// unparseable.
//
// Every message must have been fully retrieved; otherwise Write fails
// with an error matching ErrNotRetrieved and nothing further is
// written.
func Write(w io.Writer, msgs ...*message.Message) error {
	wr := mboxlib.NewWriter(w)

	for _, msg := range msgs {
		if !msg.Retrieved {
			return fmt.Errorf("%w: message %d", ErrNotRetrieved, msg.Number)
		}

		mw, err := wr.CreateMessage(sender(msg), date(msg))
		if err != nil {
			return fmt.Errorf("starting mbox entry for message %d: %w", msg.Number, err)
		}
		if _, err := io.WriteString(mw, msg.RawMessage); err != nil {
			return fmt.Errorf("writing mbox entry for message %d: %w", msg.Number, err)
		}
	}

	return wr.Close()
}

func sender(msg *message.Message) string {
	al, err := msg.FromAddresses()
	if err != nil || len(al) == 0 {
		return fallbackSender
	}
	return al[0].Address()
}

func date(msg *message.Message) time.Time {
	t, err := msg.Time()
	if err != nil {
		return time.Now()
	}
	return t
}
