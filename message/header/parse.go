package header

import (
	"strings"
)

// BadStartError is returned when the header block begins with text
// that does not appear to be a header field. The offending text is
// preserved in the error object. The rest of the header is still
// parsed, so this error is recoverable.
type BadStartError struct {
	BadStart string // the text skipped at the start of the header
}

// Error returns the error message.
func (err *BadStartError) Error() string {
	return "header starts with text that does not appear to be a header field"
}

// Parse parses a raw header block of CRLF-terminated lines (bare LF is
// tolerated) into a Header.
//
// A line beginning with a space or tab continues the value of the
// previous field, with a single joining space inserted between the
// pieces (RFC 5322 unfolding). Any other line containing a colon
// starts a new field: the name is everything before the first colon
// and the value is everything after it, trimmed of surrounding
// whitespace. A line that neither starts with whitespace nor contains
// a colon is treated as a continuation too, which does not follow
// RFC 5322 precisely but keeps us liberal in what we accept.
//
// Fields are stored case-insensitively and a later duplicate
// overwrites an earlier one.
//
// If the block opens with continuation or colon-free lines before any
// field has started, those lines are skipped and Parse returns the
// partially recovered Header along with a *BadStartError.
func Parse(raw string) (*Header, error) {
	h := &Header{fields: make(map[string]string)}

	var (
		name  string
		value string
		err   *BadStartError
	)

	flush := func() {
		if name != "" {
			h.set(name, value)
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		cont := line[0] == ' ' || line[0] == '\t'
		if !cont && strings.Contains(line, ":") {
			flush()
			n, v, _ := strings.Cut(line, ":")
			name = n
			value = strings.TrimSpace(v)
			continue
		}

		// Start with a continuation? Weird, uh...
		if name == "" {
			if err != nil {
				err.BadStart += line
			} else {
				err = &BadStartError{line}
			}
			continue
		}

		piece := strings.TrimSpace(line)
		if value == "" {
			value = piece
		} else if piece != "" {
			value += " " + piece
		}
	}
	flush()

	if err != nil {
		return h, err
	}
	return h, nil
}
