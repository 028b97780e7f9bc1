// Package transfer decodes Content-transfer-encodings, which
// interpret the Content-transfer-encoding header to recover the
// original octets of a message body. Only the values quoted-printable
// and base64 actually result in changes to the content. Other settings
// such as binary, 7bit, or 8bit leave the bytes as-is, as does any
// encoding token this package does not recognize.
package transfer

import "strings"

// Recognized Content-transfer-encoding tokens.
const (
	None            = ""                 // bytes will be left as-is
	Bit7            = "7bit"             // bytes will be left as-is
	Bit8            = "8bit"             // bytes will be left as-is
	Binary          = "binary"           // bytes will be left as-is
	QuotedPrintable = "quoted-printable" // RFC 2045 quoted-printable
	Base64          = "base64"           // RFC 2045 base64
)

// Decoder transforms an encoded body into its original octets.
type Decoder func(body []byte) ([]byte, error)

// AsIsDecoder is just a shortcut to a no-op decoder.
func AsIsDecoder(body []byte) ([]byte, error) {
	return body, nil
}

// Decodings defines the supported Content-transfer-encodings and how
// to handle them. It can be modified to change the global handling of
// transfer encodings.
var Decodings = map[string]Decoder{
	None:            AsIsDecoder,
	Bit7:            AsIsDecoder,
	Bit8:            AsIsDecoder,
	Binary:          AsIsDecoder,
	QuotedPrintable: DecodeQuotedPrintable,
	Base64:          DecodeBase64,
}

// Decode decodes the given body according to the named
// Content-transfer-encoding. The encoding token is matched
// case-insensitively with surrounding whitespace ignored. A token with
// no registered decoding returns the bytes unchanged.
func Decode(encoding string, body []byte) ([]byte, error) {
	token := strings.ToLower(strings.TrimSpace(encoding))
	if dec, hasDec := Decodings[token]; hasDec {
		return dec(body)
	}
	return body, nil
}
