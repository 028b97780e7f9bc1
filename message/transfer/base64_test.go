package transfer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-pop3/message/transfer"
)

const b64Dec = `1 Timothy 6:10 - For the love of money is a root of all kinds of evils. It is through this craving that some have wandered away from the faith and pierced themselves with many pangs.`
const b64Enc = "MSBUaW1vdGh5IDY6MTAgLSBGb3IgdGhlIGxvdmUgb2YgbW9uZXkgaXMgYSByb290IG9mIGFsbCBr\r\n" +
	"aW5kcyBvZiBldmlscy4gSXQgaXMgdGhyb3VnaCB0aGlzIGNyYXZpbmcgdGhhdCBzb21lIGhhdmUg\r\n" +
	"d2FuZGVyZWQgYXdheSBmcm9tIHRoZSBmYWl0aCBhbmQgcGllcmNlZCB0aGVtc2VsdmVzIHdpdGgg\r\n" +
	"bWFueSBwYW5ncy4=\r\n"

func TestDecodeBase64Wrapped(t *testing.T) {
	t.Parallel()

	// transfer-encoded bodies arrive wrapped to short lines
	out, err := transfer.DecodeBase64([]byte(b64Enc))
	assert.NoError(t, err)
	assert.Equal(t, []byte(b64Dec), out)
}

func TestDecodeBase64Corrupt(t *testing.T) {
	t.Parallel()

	_, err := transfer.DecodeBase64([]byte("not*base64!"))
	assert.ErrorIs(t, err, transfer.ErrCorruptBase64)
}
