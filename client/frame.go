package client

import (
	"strings"

	"github.com/zostay/go-pop3/transport"
)

// terminator is the line that ends a multi-line response. The line
// must contain only the dot.
const terminator = "."

// readLine reads a single reply line verbatim. This is the framing
// used by single-line acknowledgments.
func readLine(conn transport.Conn) (string, error) {
	return conn.ReadLine()
}

// readBlock reads the data lines of a multi-line response, as used by
// LIST, TOP, and RETR. Lines are accumulated until the terminator
// line, which is discarded. The accumulated lines are returned in
// order, each with its CRLF restored.
//
// Leading-dot byte-stuffing is not reversed: a data line arriving as
// ".." is kept verbatim. Only a line that is exactly "." ends the
// block.
func readBlock(conn transport.Conn) (string, error) {
	var block strings.Builder
	for {
		line, err := conn.ReadLine()
		if err != nil {
			return "", err
		}
		if line == terminator {
			return block.String(), nil
		}
		block.WriteString(line)
		block.WriteString("\r\n")
	}
}
