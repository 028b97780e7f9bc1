package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-pop3/client"
	"github.com/zostay/go-pop3/internal/scriptconn"
	"github.com/zostay/go-pop3/transport"
)

var oneCmd = &cobra.Command{
	Use:   "one transcript expected",
	Short: "Replays a transcript through a session and diffs the first captured message",
	Args:  cobra.ExactArgs(2),
	Run:   RunOne,
}

func init() {
	rootCmd.AddCommand(oneCmd)
}

// RunOne drives a real client session against the server half of a
// canned transcript. The transcript file holds one server reply line
// per line: the greeting, the USER and PASS acknowledgments, and then
// the replies to LIST and RETR including their data lines and "."
// terminators. The raw text of the first retrieved message is diffed
// against the expected file.
func RunOne(cmd *cobra.Command, args []string) {
	transcript, err := os.ReadFile(args[0])
	if err != nil {
		panic(err)
	}
	expected, err := os.ReadFile(args[1])
	if err != nil {
		panic(err)
	}

	conn := scriptconn.New(splitTranscript(string(transcript))...)
	c := client.New("replay.invalid",
		client.WithDialer(func(string, int, bool) (transport.Conn, error) {
			return conn, nil
		}),
	)

	if err := c.Connect("replay", "replay"); err != nil {
		panic(err)
	}

	msgs, err := c.ListAndRetrieve()
	if err != nil {
		panic(err)
	}
	if len(msgs) == 0 {
		panic("transcript contains no messages")
	}

	fmt.Printf("transcript = %s\n", args[0])
	fmt.Printf("expected   = %s\n", args[1])

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(expected), msgs[0].RawMessage, false)
	if len(diffs) == 1 && diffs[0].Type == diffmatchpatch.DiffEqual {
		fmt.Println("message matches")
		return
	}

	fmt.Println(dmp.DiffPrettyText(diffs))
	os.Exit(1)
}

// splitTranscript breaks the transcript file into reply lines,
// accepting either CRLF or LF endings and ignoring a trailing empty
// line.
func splitTranscript(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
