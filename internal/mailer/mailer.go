// Package mailer delivers summaries as plain-text email through an
// authenticated SMTP relay.
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhillyerd/enmime/v2"
	"github.com/sirupsen/logrus"
)

var (
	// ErrMissingCredentials is returned before dialing when the relay host or
	// its credentials are not configured.
	ErrMissingCredentials = errors.New("SMTP_HOST, SMTP_USER and SMTP_PASSWORD must be set")
	// ErrMissingRecipient is returned when neither EMAIL_RECIPIENT nor SMTP_USER is set.
	ErrMissingRecipient = errors.New("email recipient is not configured")
	// ErrMissingSender is returned when EMAIL_SENDER is unset and SMTP_USER
	// is not an email address, as with SES access-key users.
	ErrMissingSender = errors.New("EMAIL_SENDER must be set when SMTP_USER is not an email address")
)

// Config describes the relay and the envelope.
type Config struct {
	Host     string
	Port     int
	Secure   bool // implicit TLS; otherwise STARTTLS when offered
	User     string
	Password string
	From     string // defaults to User
	To       string // comma-separated list
}

// Message is a composed email ready for the DATA command.
type Message struct {
	ID   string
	From string
	To   []string
	Raw  []byte
}

// Mailer sends one message per call over a fresh SMTP session.
type Mailer struct {
	cfg Config
	log logrus.FieldLogger
	now func() time.Time
}

// New returns a Mailer for cfg. Nothing is dialed until Send.
func New(cfg Config, log logrus.FieldLogger) *Mailer {
	return &Mailer{cfg: cfg, log: log, now: time.Now}
}

// Validate checks the relay configuration without connecting.
func (m *Mailer) Validate() error {
	if m.cfg.Host == "" || m.cfg.User == "" || m.cfg.Password == "" {
		return ErrMissingCredentials
	}
	if m.cfg.To == "" {
		return ErrMissingRecipient
	}
	if m.cfg.From == "" {
		if _, err := mail.ParseAddress(m.cfg.User); err != nil {
			return ErrMissingSender
		}
	}
	return nil
}

// Compose builds the "Summary of <fileName>" message.
func (m *Mailer) Compose(fileName, summary string) (Message, error) {
	sender := m.cfg.From
	if sender == "" {
		sender = m.cfg.User
	}
	from, err := mail.ParseAddress(sender)
	if err != nil {
		return Message{}, fmt.Errorf("parse sender %q: %w", sender, err)
	}
	to, err := mail.ParseAddressList(m.cfg.To)
	if err != nil {
		return Message{}, fmt.Errorf("parse recipient %q: %w", m.cfg.To, err)
	}
	toAddrs := make([]mail.Address, 0, len(to))
	rcpts := make([]string, 0, len(to))
	for _, a := range to {
		toAddrs = append(toAddrs, *a)
		rcpts = append(rcpts, a.Address)
	}

	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), domainOf(from.Address))

	root, err := enmime.Builder().
		From(from.Name, from.Address).
		ToAddrs(toAddrs).
		Subject("Summary of "+fileName).
		Date(m.now()).
		Header("Message-ID", id).
		Text([]byte(summary)).
		Build()
	if err != nil {
		return Message{}, fmt.Errorf("build message: %w", err)
	}

	var buf bytes.Buffer
	if err := root.Encode(&buf); err != nil {
		return Message{}, fmt.Errorf("encode message: %w", err)
	}

	return Message{ID: id, From: from.Address, To: rcpts, Raw: buf.Bytes()}, nil
}

// Send delivers the summary and returns the Message-ID. The session is
// authenticated and verified with NOOP before the envelope is sent.
func (m *Mailer) Send(ctx context.Context, fileName, summary string) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}

	msg, err := m.Compose(fileName, summary)
	if err != nil {
		return "", err
	}

	c, err := m.connect(ctx)
	if err != nil {
		return "", err
	}
	defer c.Close()

	if err := c.Noop(); err != nil {
		return "", fmt.Errorf("verify smtp connection: %w", err)
	}
	m.log.WithField("host", m.cfg.Host).Debug("smtp connection verified")

	if err := c.Mail(msg.From); err != nil {
		return "", fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	for _, rcpt := range msg.To {
		if err := c.Rcpt(rcpt); err != nil {
			return "", fmt.Errorf("smtp RCPT TO %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return "", fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err := w.Write(msg.Raw); err != nil {
		return "", fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finish message: %w", err)
	}

	if err := c.Quit(); err != nil {
		m.log.WithError(err).Warn("smtp QUIT failed after delivery")
	}

	m.log.WithFields(logrus.Fields{"message_id": msg.ID, "to": msg.To}).Info("email sent successfully")
	return msg.ID, nil
}

func (m *Mailer) connect(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	tlsConfig := &tls.Config{ServerName: m.cfg.Host}

	var (
		conn net.Conn
		err  error
	)
	dialer := &net.Dialer{}
	if m.cfg.Secure {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsConfig}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("dial smtp %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("smtp handshake: %w", err)
	}

	if !m.cfg.Secure {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(tlsConfig); err != nil {
				c.Close()
				return nil, fmt.Errorf("smtp STARTTLS: %w", err)
			}
		}
	}

	if err := c.Auth(smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)); err != nil {
		c.Close()
		return nil, fmt.Errorf("smtp auth: %w", err)
	}
	return c, nil
}

func domainOf(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 && i < len(addr)-1 {
		return addr[i+1:]
	}
	return "localhost"
}
