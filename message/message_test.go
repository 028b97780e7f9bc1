package message_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-pop3/message"
	"github.com/zostay/go-pop3/message/header"
	"github.com/zostay/go-pop3/message/transfer"
)

const rawHeader = "From: Steven Haryanto <steven@example.com>\r\n" +
	"To: reader@example.net\r\n" +
	"Date: Tue, 9 Feb 2021 09:30:00 -0500\r\n" +
	"Message-Id: <1234@example.com>\r\n" +
	"Subject: a very\r\n" +
	" long subject\r\n" +
	"Content-Transfer-Encoding: quoted-printable\r\n"

const rawMessage = rawHeader + "\r\n" + "Test=20One\r\n"

func TestNewIsUnretrieved(t *testing.T) {
	t.Parallel()

	m := message.New(3, 1586)
	assert.Equal(t, 3, m.Number)
	assert.Equal(t, 1586, m.Bytes)
	assert.False(t, m.Retrieved)
	assert.Empty(t, m.RawHeader)
	assert.Empty(t, m.RawMessage)
}

func TestSetRawHeader(t *testing.T) {
	t.Parallel()

	m := message.New(1, 100)
	require.NoError(t, m.SetRawHeader(rawHeader))

	assert.Equal(t, rawHeader, m.RawHeader)
	assert.Empty(t, m.RawMessage)
	assert.False(t, m.Retrieved)
	assert.Empty(t, m.Body)

	assert.Equal(t, "reader@example.net", m.To)
	assert.Equal(t, "<1234@example.com>", m.MessageID)
	assert.Equal(t, "a very long subject", m.Subject)
	assert.Equal(t, "quoted-printable", m.ContentTransferEncoding)
}

func TestSetRawMessage(t *testing.T) {
	t.Parallel()

	m := message.New(1, 100)
	require.NoError(t, m.SetRawMessage(rawMessage))

	assert.Equal(t, rawMessage, m.RawMessage)
	assert.Equal(t, rawHeader, m.RawHeader)
	assert.True(t, m.Retrieved)
	assert.Equal(t, "Test=20One\r\n", m.Body)
	assert.Equal(t, "a very long subject", m.Subject)
}

func TestSetRawMessageWithoutBlankLine(t *testing.T) {
	t.Parallel()

	m := message.New(1, 100)
	require.NoError(t, m.SetRawMessage("Subject: all header\r\n"))

	assert.True(t, m.Retrieved)
	assert.Equal(t, "Subject: all header\r\n", m.RawHeader)
	assert.Empty(t, m.Body)
}

func TestHeaderData(t *testing.T) {
	t.Parallel()

	m := message.New(1, 100)

	_, err := m.HeaderData("Subject")
	assert.ErrorIs(t, err, header.ErrNoSuchField)

	require.NoError(t, m.SetRawHeader(rawHeader))

	upper, err := m.HeaderData("MESSAGE-ID")
	require.NoError(t, err)
	lower, err := m.HeaderData("message-id:")
	require.NoError(t, err)
	assert.Equal(t, upper, lower)

	_, err = m.HeaderData("X-Never-Seen")
	assert.ErrorIs(t, err, header.ErrNoSuchField)
}

func TestBodyDataRequiresRetrieve(t *testing.T) {
	t.Parallel()

	m := message.New(1, 100)
	_, err := m.BodyData()
	assert.ErrorIs(t, err, message.ErrNoBody)

	// a header-only fetch does not produce a body either
	require.NoError(t, m.SetRawHeader(rawHeader))
	_, err = m.BodyData()
	assert.ErrorIs(t, err, message.ErrNoBody)
}

func TestBodyDataDecodes(t *testing.T) {
	t.Parallel()

	m := message.New(1, 100)
	require.NoError(t, m.SetRawMessage(rawMessage))

	data, err := m.BodyData()
	require.NoError(t, err)
	assert.Equal(t, []byte("Test One\r\n"), data)
}

func TestBodyDataCacheInvalidation(t *testing.T) {
	t.Parallel()

	m := message.New(1, 100)
	require.NoError(t, m.SetRawMessage(rawMessage))

	first, err := m.BodyData()
	require.NoError(t, err)
	assert.Equal(t, []byte("Test One\r\n"), first)

	require.NoError(t, m.SetRawMessage(
		"Content-Transfer-Encoding: base64\r\n\r\nVGVzdA==\r\n"))

	second, err := m.BodyData()
	require.NoError(t, err)
	assert.Equal(t, []byte("Test"), second)
}

func TestBodyDataCorruptEncoding(t *testing.T) {
	t.Parallel()

	m := message.New(1, 100)
	require.NoError(t, m.SetRawMessage(
		"Content-Transfer-Encoding: base64\r\n\r\nnot*base64!\r\n"))

	_, err := m.BodyData()
	assert.ErrorIs(t, err, transfer.ErrCorruptBase64)
}

func TestTime(t *testing.T) {
	t.Parallel()

	m := message.New(1, 100)

	_, err := m.Time()
	assert.ErrorIs(t, err, header.ErrNoSuchField)

	require.NoError(t, m.SetRawHeader(rawHeader))

	ts, err := m.Time()
	require.NoError(t, err)
	want := time.Date(2021, time.February, 9, 9, 30, 0, 0, time.FixedZone("", -5*60*60))
	assert.True(t, want.Equal(ts))
}

func TestAddresses(t *testing.T) {
	t.Parallel()

	m := message.New(1, 100)

	_, err := m.FromAddresses()
	assert.ErrorIs(t, err, header.ErrNoSuchField)

	require.NoError(t, m.SetRawHeader(rawHeader))

	from, err := m.FromAddresses()
	require.NoError(t, err)
	require.Len(t, from, 1)
	assert.Equal(t, "steven@example.com", from[0].Address())

	to, err := m.ToAddresses()
	require.NoError(t, err)
	require.Len(t, to, 1)
	assert.Equal(t, "reader@example.net", to[0].Address())
}
