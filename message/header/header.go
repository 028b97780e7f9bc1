// Package header parses raw message header blocks into a structured,
// case-insensitively keyed form. Folded header values are unfolded per
// RFC 5322 and a duplicated field keeps its last occurrence.
package header

import (
	"errors"
	"strings"
)

// ErrNoSuchField is returned by Get when the operation failed because
// the header named does not exist. A field that is present with an
// empty value does not produce this error.
var ErrNoSuchField = errors.New("no such header field")

// These are the standard RFC 5322 headers the message entity copies
// into its scalar fields.
const (
	Date                    = "Date"
	From                    = "From"
	MessageID               = "Message-id"
	Subject                 = "Subject"
	To                      = "To"
	ContentTransferEncoding = "Content-transfer-encoding"
)

// Header holds the parsed fields of a header block. Use Parse to
// construct one.
type Header struct {
	fields map[string]string
}

// Get retrieves the value of the named field. The match is
// case-insensitive and a trailing colon on the supplied name is
// stripped before lookup, so Get("Subject") and Get("subject:") find
// the same field.
//
// If the named field is not present, it returns an empty string with
// ErrNoSuchField. A present-but-empty field returns an empty string
// and no error.
func (h *Header) Get(name string) (string, error) {
	name = strings.TrimSuffix(name, ":")
	v, found := h.fields[strings.ToLower(name)]
	if !found {
		return "", ErrNoSuchField
	}
	return v, nil
}

// Len returns the number of distinct fields in the header.
func (h *Header) Len() int {
	return len(h.fields)
}

// set stores a field value. Later duplicates overwrite earlier ones.
func (h *Header) set(name, value string) {
	if h.fields == nil {
		h.fields = make(map[string]string)
	}
	h.fields[strings.ToLower(name)] = value
}
