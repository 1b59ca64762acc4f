package stomp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeParseRoundTrip(t *testing.T) {
	f := NewFrame(CmdMessage, "subscription", "sub-1", "destination", "/user/42/notifications")
	f.Body = []byte(`{"status":"BORROWED"}`)

	frames, err := Parse(f.Encode())

	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, CmdMessage, frames[0].Command)
	assert.Equal(t, "sub-1", frames[0].Header("subscription"))
	assert.Equal(t, "21", frames[0].Header("content-length"))
	assert.Equal(t, `{"status":"BORROWED"}`, string(frames[0].Body))
}

func TestHeaderEscaping(t *testing.T) {
	f := NewFrame(CmdSend, "note", "a:b\nc\\d")

	encoded := string(f.Encode())
	assert.Contains(t, encoded, "note:a\\cb\\nc\\\\d\n")

	frames, err := Parse([]byte(encoded))
	require.NoError(t, err)
	assert.Equal(t, "a:b\nc\\d", frames[0].Header("note"))
}

func TestConnectHeadersAreNotEscaped(t *testing.T) {
	f := NewFrame(CmdConnect, "Authorization", "Bearer a:b")

	assert.Contains(t, string(f.Encode()), "Authorization:Bearer a:b\n")
}

func TestParseHeartbeatsAndMultipleFrames(t *testing.T) {
	data := []byte("\n\r\nRECEIPT\nreceipt-id:r-1\n\n\x00\nMESSAGE\r\nsubscription:sub-1\r\n\r\nhello\x00\n")

	frames, err := Parse(data)

	require.NoError(t, err)
	require.Len(t, frames, 2)
	assert.Equal(t, "r-1", frames[0].Header("receipt-id"))
	assert.Equal(t, "hello", string(frames[1].Body))

	frames, err = Parse([]byte("\n"))
	require.NoError(t, err)
	assert.Empty(t, frames)
}

func TestParseRepeatedHeaderFirstWins(t *testing.T) {
	frames, err := Parse([]byte("MESSAGE\nfoo:first\nfoo:second\n\n\x00"))

	require.NoError(t, err)
	assert.Equal(t, "first", frames[0].Header("foo"))
}

func TestParseBodyWithNULUsingContentLength(t *testing.T) {
	frames, err := Parse([]byte("MESSAGE\ncontent-length:3\n\na\x00b\x00"))

	require.NoError(t, err)
	assert.Equal(t, []byte("a\x00b"), frames[0].Body)
}

func TestParseMalformed(t *testing.T) {
	cases := map[string]string{
		"no terminator":       "MESSAGE\n\nbody",
		"bad header":          "MESSAGE\nnocolon\n\n\x00",
		"unterminated header": "MESSAGE\nfoo:bar",
		"bad content-length":  "MESSAGE\ncontent-length:10\n\nab\x00",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.ErrorIs(t, err, ErrMalformedFrame)
		})
	}
}
