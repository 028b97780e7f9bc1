package transfer

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrCorruptBase64 is returned by DecodeBase64 when the body is not
// valid base64 once whitespace has been stripped.
var ErrCorruptBase64 = errors.New("corrupt base64 content")

// DecodeBase64 decodes an RFC 2045 base64 body. Transfer-encoded
// bodies arrive wrapped to short lines, so all embedded whitespace and
// line breaks are stripped before decoding. Input that still fails to
// decode is reported as an error matching ErrCorruptBase64.
func DecodeBase64(body []byte) ([]byte, error) {
	stripped := make([]byte, 0, len(body))
	for _, c := range body {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		}
		stripped = append(stripped, c)
	}

	out := make([]byte, base64.StdEncoding.DecodedLen(len(stripped)))
	n, err := base64.StdEncoding.Decode(out, stripped)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBase64, err)
	}
	return out[:n], nil
}
