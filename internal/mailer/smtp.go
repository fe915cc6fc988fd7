package mailer

import (
	"context"
	"encoding/base64"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

var headerReplacer = strings.NewReplacer("\r\n", "", "\r", "", "\n", "", "%0a", "", "%0d", "")

// SMTPSender sends through an SMTP relay, authenticating when a user is set.
type SMTPSender struct {
	addr     string
	host     string
	username string
	password string
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(host string, port int, username, password string) *SMTPSender {
	return &SMTPSender{
		addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		host:     host,
		username: username,
		password: password,
		sendMail: smtp.SendMail,
	}
}

func (s *SMTPSender) Send(_ context.Context, msg Message) error {
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	to := make([]string, len(msg.To))
	for i, addr := range msg.To {
		to[i] = headerReplacer.Replace(addr)
	}
	from := headerReplacer.Replace(msg.From)
	return s.sendMail(s.addr, auth, from, to, compose(from, to, headerReplacer.Replace(msg.Subject), msg.HTML))
}

func compose(from string, to []string, subject, html string) []byte {
	var b strings.Builder
	b.WriteString("To: " + strings.Join(to, ",") + "\r\n")
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
	b.WriteString(base64.StdEncoding.EncodeToString([]byte(html)))
	b.WriteString("\r\n")
	return []byte(b.String())
}
