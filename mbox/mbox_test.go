package mbox_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	mboxlib "github.com/emersion/go-mbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-pop3/mbox"
	"github.com/zostay/go-pop3/message"
)

const rawOne = "From: alice@example.com\r\n" +
	"Date: Tue, 9 Feb 2021 09:30:00 -0500\r\n" +
	"Subject: first\r\n" +
	"\r\n" +
	"first body\r\n"

const rawTwo = "Subject: second, no sender\r\n" +
	"\r\n" +
	"second body\r\n"

func retrieved(t *testing.T, number int, raw string) *message.Message {
	t.Helper()

	m := message.New(number, len(raw))
	require.NoError(t, m.SetRawMessage(raw))
	return m
}

func TestWrite(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	err := mbox.Write(buf,
		retrieved(t, 1, rawOne),
		retrieved(t, 2, rawTwo),
	)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "From alice@example.com "))
	assert.Contains(t, out, "\nFrom MAILER-DAEMON ")

	// the export must survive a trip through the mbox reader
	r := mboxlib.NewReader(buf)
	subjects := make([]string, 0, 2)
	for {
		mr, err := r.NextMessage()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		raw, err := io.ReadAll(mr)
		require.NoError(t, err)

		m := message.New(0, len(raw))
		require.NoError(t, m.SetRawMessage(string(raw)))
		subjects = append(subjects, m.Subject)
	}
	assert.Equal(t, []string{"first", "second, no sender"}, subjects)
}

func TestWriteUnretrieved(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	err := mbox.Write(buf, message.New(1, 100))
	assert.ErrorIs(t, err, mbox.ErrNotRetrieved)
	assert.Empty(t, buf.String())
}
