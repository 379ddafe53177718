package services

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mimeDecoder = mime.WordDecoder

func TestComposeMessage(t *testing.T) {
	attachment := bytes.Repeat([]byte{0x89, 'P', 'N', 'G', 0x00, 0xff}, 40)
	raw, err := composeMessage(outgoingMessage{
		From:           "a@example.com",
		To:             "a@example.com",
		Subject:        "Your Shopping List",
		Body:           "Your shopping list:\n\n- Milk\n- Eggs",
		AttachmentName: "shopping_list.png",
		Attachment:     attachment,
		Date:           time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "1.0", msg.Header.Get("MIME-Version"))
	assert.Equal(t, "a@example.com", msg.Header.Get("From"))
	assert.Equal(t, "a@example.com", msg.Header.Get("To"))
	date, err := msg.Header.Date()
	require.NoError(t, err)
	assert.True(t, date.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)))

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(msg.Body, params["boundary"])

	text, err := mr.NextPart()
	require.NoError(t, err)
	assert.Contains(t, text.Header.Get("Content-Type"), "text/plain")
	// NextPart decodes quoted-printable; line breaks come back as CRLF.
	body, err := io.ReadAll(text)
	require.NoError(t, err)
	assert.Equal(t, "Your shopping list:\n\n- Milk\n- Eggs", strings.ReplaceAll(string(body), "\r\n", "\n"))

	file, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", file.Header.Get("Content-Type"))
	assert.Equal(t, "shopping_list.png", file.FileName())
	encoded, err := io.ReadAll(file)
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSpace(string(encoded)), "\r\n") {
		assert.LessOrEqual(t, len(line), base64LineLength)
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(encoded), "\r\n", ""))
	require.NoError(t, err)
	assert.Equal(t, attachment, decoded)

	_, err = mr.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestComposeMessage_EncodesNonASCIISubject(t *testing.T) {
	raw, err := composeMessage(outgoingMessage{
		From: "a@example.com", To: "a@example.com",
		Subject: "Einkäufe", Body: "x", AttachmentName: "a.png",
		Date: time.Now(),
	})
	require.NoError(t, err)

	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg.Header.Get("Subject"), "=?utf-8?q?"))
	subject, err := new(mimeDecoder).DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Einkäufe", subject)
}

func TestWriteBase64Lines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBase64Lines(&buf, nil))
	assert.Empty(t, buf.String())

	buf.Reset()
	require.NoError(t, writeBase64Lines(&buf, bytes.Repeat([]byte("a"), 57)))
	assert.Equal(t, base64.StdEncoding.EncodeToString(bytes.Repeat([]byte("a"), 57))+"\r\n", buf.String())
}
