// Package message provides the record for a single mailbox item. A
// Message is created by listing the mailbox, knowing only its
// server-assigned number and size, and is then enriched in place by a
// header-only retrieval (TOP), a full retrieval (RETR), or both. It is
// owned by exactly one session and never shared across sessions.
package message

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-pop3/message/header"
	"github.com/zostay/go-pop3/message/transfer"
)

// ErrNoBody is returned by BodyData when no body has been captured,
// which is the case until a full retrieval has been performed on the
// message.
var ErrNoBody = errors.New("message body has not been retrieved")

// A weird date format seen in the wild that the usual parsers have
// trouble with.
const unixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"

// Message is the record for one item in a mailbox listing.
//
// Number and Bytes are set when the listing creates the record and
// must not be modified afterward. Number is the 1-based position the
// server assigned the message, unique within one listing and stable
// for the life of the session. Bytes is the size the server declared
// for it.
//
// The remaining fields are filled in by retrieval. RawHeader is set by
// either kind of fetch; RawMessage, Body, and Retrieved only by a full
// fetch. The scalar fields mirror their header fields and hold raw
// field values; use Time, FromAddresses, and ToAddresses for parsed
// forms.
type Message struct {
	Number    int
	Bytes     int
	Retrieved bool

	RawHeader  string
	RawMessage string

	From                    string
	To                      string
	Date                    string
	MessageID               string
	Subject                 string
	ContentTransferEncoding string

	// Body is the raw body text, still in its transfer encoding. It is
	// empty until the message has been fully retrieved.
	Body string

	headers *header.Header

	decoded    []byte
	hasDecoded bool
}

// New creates a Message for a listing entry. It has not been retrieved
// and carries no header or body data yet.
func New(number, size int) *Message {
	return &Message{Number: number, Bytes: size}
}

// SetRawHeader records the raw header block captured by a header-only
// fetch and reparses the message's header fields from it. It never
// touches RawMessage, Body, or Retrieved.
func (m *Message) SetRawHeader(raw string) error {
	h, err := parseHeader(raw)
	if err != nil {
		return err
	}

	m.RawHeader = raw
	m.applyHeader(h)
	return nil
}

// SetRawMessage records the complete raw text captured by a full
// fetch. The text is split at the first blank line: the part before it
// replaces RawHeader and is reparsed into the header fields, and the
// remainder becomes Body. Retrieved is set and any previously decoded
// body is forgotten.
func (m *Message) SetRawMessage(raw string) error {
	head, body := splitRawMessage(raw)

	h, err := parseHeader(head)
	if err != nil {
		return err
	}

	m.RawMessage = raw
	m.RawHeader = head
	m.Body = body
	m.Retrieved = true
	m.decoded = nil
	m.hasDecoded = false
	m.applyHeader(h)
	return nil
}

// HeaderData retrieves the value of the named header field. The match
// is case-insensitive and tolerates a trailing colon on the name. It
// returns header.ErrNoSuchField when the field was never seen, which
// distinguishes an absent field from one present with an empty value.
func (m *Message) HeaderData(name string) (string, error) {
	if m.headers == nil {
		return "", header.ErrNoSuchField
	}
	return m.headers.Get(name)
}

// BodyData returns the body octets with the Content-transfer-encoding
// decoded. The decoded form is cached, so repeated calls do not decode
// again until another full retrieval replaces the body.
//
// It returns ErrNoBody when no body has been captured, which is the
// case for a message that has only had its headers fetched.
func (m *Message) BodyData() ([]byte, error) {
	if !m.Retrieved {
		return nil, ErrNoBody
	}

	if m.hasDecoded {
		return m.decoded, nil
	}

	data, err := transfer.Decode(m.ContentTransferEncoding, []byte(m.Body))
	if err != nil {
		return nil, err
	}

	m.decoded = data
	m.hasDecoded = true
	return data, nil
}

// ParseTime provides the date parsing used by Time and can be applied
// to any date string. It attempts the format specified by RFC 5322
// first and falls back to parsing in many other formats.
func ParseTime(body string) (time.Time, error) {
	t, err := mail.ParseDate(body)
	if err == nil {
		return t, nil
	}

	t, err = dateparse.ParseAny(body)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(unixDateWithEarlyYear, body)
	if err == nil {
		return t, nil
	}

	return t, fmt.Errorf("time string %q cannot be parsed", body)
}

// Time returns the Date header as a time.Time. It returns
// header.ErrNoSuchField if no Date header has been seen and a parse
// error if the value cannot be read as a date in any known format.
func (m *Message) Time() (time.Time, error) {
	if m.Date == "" {
		return time.Time{}, header.ErrNoSuchField
	}
	return ParseTime(m.Date)
}

// FromAddresses returns the From header parsed as an address list. It
// returns header.ErrNoSuchField if no From header has been seen.
func (m *Message) FromAddresses() (addr.AddressList, error) {
	return parseAddresses(m.From)
}

// ToAddresses returns the To header parsed as an address list. It
// returns header.ErrNoSuchField if no To header has been seen.
func (m *Message) ToAddresses() (addr.AddressList, error) {
	return parseAddresses(m.To)
}

func parseAddresses(body string) (addr.AddressList, error) {
	if body == "" {
		return nil, header.ErrNoSuchField
	}
	return addr.ParseEmailAddressList(body)
}

// applyHeader replaces the header lookup map and the scalar fields
// from a freshly parsed header.
func (m *Message) applyHeader(h *header.Header) {
	m.headers = h

	scalars := []struct {
		name string
		into *string
	}{
		{header.From, &m.From},
		{header.To, &m.To},
		{header.Date, &m.Date},
		{header.MessageID, &m.MessageID},
		{header.Subject, &m.Subject},
		{header.ContentTransferEncoding, &m.ContentTransferEncoding},
	}
	for _, s := range scalars {
		v, err := h.Get(s.name)
		if err != nil {
			v = ""
		}
		*s.into = v
	}
}

// parseHeader wraps header.Parse, swallowing the recoverable
// bad-start error so that junk before the first field does not fail a
// retrieval.
func parseHeader(raw string) (*header.Header, error) {
	h, err := header.Parse(raw)

	var badStartErr *header.BadStartError
	if err != nil && !errors.As(err, &badStartErr) {
		return nil, err
	}
	return h, nil
}

// splitRawMessage splits a complete raw message at the first blank
// line. The blank line itself belongs to neither part. A message with
// no blank line is all header.
func splitRawMessage(raw string) (head, body string) {
	if ix := strings.Index(raw, "\r\n\r\n"); ix >= 0 {
		return raw[:ix+2], raw[ix+4:]
	}
	if ix := strings.Index(raw, "\n\n"); ix >= 0 {
		return raw[:ix+1], raw[ix+2:]
	}
	return raw, ""
}
