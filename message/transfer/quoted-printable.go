package transfer

// DecodeQuotedPrintable decodes an RFC 2045 quoted-printable body.
// An "=XX" sequence becomes the octet named by the two hex digits and
// an "=" immediately followed by a line break is a soft break, which
// is removed. An "=" anywhere else does not name a valid escape, so it
// is passed through as a literal rather than rejected.
//
// Decoding never fails; the error return exists to satisfy Decoder.
func DecodeQuotedPrintable(body []byte) ([]byte, error) {
	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '=' {
			out = append(out, c)
			continue
		}

		// soft break: =\r\n or =\n
		if i+2 < len(body) && body[i+1] == '\r' && body[i+2] == '\n' {
			i += 2
			continue
		}
		if i+1 < len(body) && body[i+1] == '\n' {
			i++
			continue
		}

		if i+2 < len(body) {
			hi, hiOk := unhex(body[i+1])
			lo, loOk := unhex(body[i+2])
			if hiOk && loOk {
				out = append(out, hi<<4|lo)
				i += 2
				continue
			}
		}

		out = append(out, '=')
	}
	return out, nil
}

// unhex converts one hex digit, accepting both cases.
func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}
