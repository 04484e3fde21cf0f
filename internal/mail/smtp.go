// Package mail delivers verification codes over SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"time"
)

const subject = "Código de Verificação - Na Pele e na Consciência"

// Options configures a Sender.
type Options struct {
	Server   string
	Port     int
	From     string
	Password string
	// ValidFor is quoted in the message body.
	ValidFor time.Duration
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Sender sends verification codes with PLAIN auth. net/smtp upgrades the
// connection with STARTTLS when the server offers it.
type Sender struct {
	addr     string
	from     string
	auth     smtp.Auth
	validFor time.Duration
	send     sendFunc
}

// NewSender creates a Sender for the given server.
func NewSender(opts Options) *Sender {
	if opts.ValidFor <= 0 {
		opts.ValidFor = 5 * time.Minute
	}
	return &Sender{
		addr:     net.JoinHostPort(opts.Server, strconv.Itoa(opts.Port)),
		from:     opts.From,
		auth:     smtp.PlainAuth("", opts.From, opts.Password, opts.Server),
		validFor: opts.ValidFor,
		send:     smtp.SendMail,
	}
}

// SendVerificationCode mails code to address.
func (s *Sender) SendVerificationCode(ctx context.Context, address, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := s.message(address, code)
	if err := s.send(s.addr, s.auth, s.from, []string{address}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", s.addr, err)
	}
	return nil
}

func (s *Sender) message(to, code string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Olá! Seja bem vindo (a) ao Na Pele e na Consciência\r\n")
	fmt.Fprintf(&b, "Seu código de verificação é: %s\r\n\r\n", code)
	fmt.Fprintf(&b, "Este código é válido por %d minutos.\r\n", int(s.validFor.Minutes()))
	return b.Bytes()
}
