package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"inboundlogistics/internal/config"
)

// Attachment is one file carried by a report email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Mailer delivers report emails. Send is the only method so tests and the
// disabled-mail path can stub it.
type Mailer interface {
	Send(to []string, subject, htmlBody string, attachments []Attachment) error
}

// SMTPMailer sends multipart MIME mail over plain SMTP with AUTH.
type SMTPMailer struct {
	Cfg config.MailConfig
}

func (m *SMTPMailer) Send(to []string, subject, htmlBody string, attachments []Attachment) error {
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", m.Cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", w.Boundary())

	bodyHeader := textproto.MIMEHeader{}
	bodyHeader.Set("Content-Type", "text/html; charset=utf-8")
	part, err := w.CreatePart(bodyHeader)
	if err != nil {
		return err
	}
	if _, err := part.Write([]byte(htmlBody)); err != nil {
		return err
	}

	for _, a := range attachments {
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", a.ContentType)
		h.Set("Content-Transfer-Encoding", "base64")
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.Filename))
		part, err := w.CreatePart(h)
		if err != nil {
			return err
		}
		enc := base64.StdEncoding.EncodeToString(a.Data)
		// 76-char lines per RFC 2045.
		for len(enc) > 0 {
			n := 76
			if n > len(enc) {
				n = len(enc)
			}
			if _, err := part.Write([]byte(enc[:n] + "\r\n")); err != nil {
				return err
			}
			enc = enc[n:]
		}
	}

	if err := w.Close(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.Cfg.SMTPHost, m.Cfg.SMTPPort)
	var auth smtp.Auth
	if m.Cfg.Username != "" {
		auth = smtp.PlainAuth("", m.Cfg.Username, m.Cfg.Password, m.Cfg.SMTPHost)
	}
	return smtp.SendMail(addr, auth, m.Cfg.From, to, buf.Bytes())
}
