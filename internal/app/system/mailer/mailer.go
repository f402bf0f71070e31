// internal/app/system/mailer/mailer.go
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Email is one outbound message. TextBody is required; HTMLBody is optional
// and, when present, is sent as the preferred multipart/alternative part.
type Email struct {
	To       string
	ToName   string // display name for the To header
	Subject  string
	TextBody string
	HTMLBody string
}

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	Timeout  time.Duration
}

// Mailer delivers Email values over SMTP.
type Mailer struct {
	cfg Config
	log *zap.Logger
}

// New creates a Mailer. A zero timeout defaults to 10 seconds.
func New(cfg Config, logger *zap.Logger) *Mailer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Mailer{cfg: cfg, log: logger}
}

// Send delivers e. Port 465 uses implicit TLS; other ports upgrade with
// STARTTLS when the server offers it (local catchers like Mailpit do not).
func (m *Mailer) Send(ctx context.Context, e Email) error {
	if e.To == "" {
		return errors.New("mailer: recipient is empty")
	}
	msg, err := m.buildMessage(e)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	dialer := &net.Dialer{Timeout: m.cfg.Timeout}

	var conn net.Conn
	if m.cfg.Port == 465 {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: m.cfg.Host}}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		m.log.Error("smtp connect failed", zap.String("address", addr), zap.Error(err))
		return fmt.Errorf("smtp connect: %w", err)
	}
	defer conn.Close()

	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(dl)
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if m.cfg.Port != 465 {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
				return fmt.Errorf("smtp starttls: %w", err)
			}
		}
	}

	if m.cfg.Username != "" {
		auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("smtp sender: %w", err)
	}
	if err := client.Rcpt(e.To); err != nil {
		return fmt.Errorf("smtp recipient: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}
	return client.Quit()
}

func (m *Mailer) buildMessage(e Email) ([]byte, error) {
	var buf bytes.Buffer

	from := m.cfg.From
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", m.cfg.FromName), m.cfg.From)
	}

	to := e.To
	if e.ToName != "" {
		to = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", e.ToName), e.To)
	}

	hdr := []string{
		"Message-ID: " + messageID(m.cfg.From),
		"Date: " + time.Now().Format(time.RFC1123Z),
		"From: " + from,
		"To: " + to,
		"Subject: " + mime.QEncoding.Encode("utf-8", e.Subject),
		"MIME-Version: 1.0",
	}

	if e.HTMLBody == "" {
		hdr = append(hdr, `Content-Type: text/plain; charset="utf-8"`)
		buf.WriteString(strings.Join(hdr, "\r\n") + "\r\n\r\n")
		buf.WriteString(e.TextBody)
		return buf.Bytes(), nil
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, part := range []struct{ ctype, content string }{
		{`text/plain; charset="utf-8"`, e.TextBody},
		{`text/html; charset="utf-8"`, e.HTMLBody},
	} {
		pw, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {part.ctype}})
		if err != nil {
			return nil, fmt.Errorf("build message: %w", err)
		}
		if _, err := pw.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("build message: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build message: %w", err)
	}

	hdr = append(hdr, fmt.Sprintf(`Content-Type: multipart/alternative; boundary="%s"`, mw.Boundary()))
	buf.WriteString(strings.Join(hdr, "\r\n") + "\r\n\r\n")
	buf.Write(body.Bytes())
	return buf.Bytes(), nil
}

func messageID(from string) string {
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
