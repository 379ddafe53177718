package services

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"time"
)

// base64LineLength is the RFC 2045 maximum encoded line length.
const base64LineLength = 76

// outgoingMessage is a plain-text body plus one binary attachment.
type outgoingMessage struct {
	From           string
	To             string
	Subject        string
	Body           string
	AttachmentName string
	Attachment     []byte
	Date           time.Time
}

// composeMessage builds a multipart/mixed RFC 5322 message.
func composeMessage(m outgoingMessage) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	textPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {`text/plain; charset="utf-8"`},
		"Content-Transfer-Encoding": {"quoted-printable"},
	})
	if err != nil {
		return nil, fmt.Errorf("create text part: %w", err)
	}
	qp := quotedprintable.NewWriter(textPart)
	if _, err := qp.Write([]byte(m.Body)); err != nil {
		return nil, fmt.Errorf("write text part: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("close text part: %w", err)
	}

	attachmentPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {"application/octet-stream"},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {mime.FormatMediaType("attachment", map[string]string{"filename": m.AttachmentName})},
	})
	if err != nil {
		return nil, fmt.Errorf("create attachment part: %w", err)
	}
	if err := writeBase64Lines(attachmentPart, m.Attachment); err != nil {
		return nil, fmt.Errorf("write attachment part: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	var msg bytes.Buffer
	writeHeader(&msg, "MIME-Version", "1.0")
	writeHeader(&msg, "From", m.From)
	writeHeader(&msg, "To", m.To)
	writeHeader(&msg, "Subject", mime.QEncoding.Encode("utf-8", m.Subject))
	writeHeader(&msg, "Date", m.Date.Format(time.RFC1123Z))
	writeHeader(&msg, "Content-Type", mime.FormatMediaType("multipart/mixed", map[string]string{"boundary": mw.Boundary()}))
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	return msg.Bytes(), nil
}

func writeHeader(b *bytes.Buffer, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\r\n")
}

// writeBase64Lines writes data as standard base64 wrapped at 76 columns.
func writeBase64Lines(w interface{ Write([]byte) (int, error) }, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := base64LineLength
		if n > len(encoded) {
			n = len(encoded)
		}
		if _, err := w.Write([]byte(encoded[:n] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}
