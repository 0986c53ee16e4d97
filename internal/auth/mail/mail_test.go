package mail_test

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/hibritu/hirehub/internal/auth/mail"
	"github.com/stretchr/testify/require"
)

func TestTemplates(t *testing.T) {
	tpl, err := mail.NewTemplates()
	require.NoError(t, err)

	t.Run("otp", func(t *testing.T) {
		msg, err := tpl.OTP("alice@x.com", "Alice", "042917", 30*time.Minute)
		require.NoError(t, err)
		require.Equal(t, "alice@x.com", msg.To)
		require.Contains(t, msg.Subject, "Verification")
		require.Contains(t, msg.HTMLBody, "042917")
		require.Contains(t, msg.HTMLBody, "30 minutes")
		require.Contains(t, msg.HTMLBody, "Hello Alice")
	})

	t.Run("reset", func(t *testing.T) {
		link := "https://auth.example.com/v1/auth/reset-password?token=abc"
		msg, err := tpl.Reset("bob@x.com", "", link, time.Hour)
		require.NoError(t, err)
		require.Contains(t, msg.HTMLBody, `href="`+link+`"`)
		require.Contains(t, msg.HTMLBody, "1 hour")
		require.Contains(t, msg.HTMLBody, "Hello bob@x.com", "falls back to the address")
	})

	t.Run("escapes names", func(t *testing.T) {
		msg, err := tpl.OTP("x@x.com", "<script>", "111111", time.Minute)
		require.NoError(t, err)
		require.NotContains(t, msg.HTMLBody, "<script>")
	})
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	s := mail.LogSender{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	require.NoError(t, s.Send(context.Background(), mail.Message{To: "a@x.com", Subject: "hi", HTMLBody: "code 123456"}))
	require.Contains(t, buf.String(), "123456")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, s.Send(ctx, mail.Message{}))
}

// fakeSMTP accepts one plain-text SMTP conversation and records the DATA.
func fakeSMTP(t *testing.T) (host string, port int, data <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		r := bufio.NewReader(conn)
		reply := func(s string) { _, _ = conn.Write([]byte(s + "\r\n")) }
		reply("220 localhost ESMTP")

		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				reply("250 localhost")
			case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"):
				reply("250 OK")
			case cmd == "DATA":
				reply("354 go ahead")
				var body strings.Builder
				for {
					l, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if l == ".\r\n" {
						break
					}
					body.WriteString(l)
				}
				out <- body.String()
				reply("250 queued")
			case cmd == "QUIT":
				reply("221 bye")
				return
			default:
				reply("502 not implemented")
			}
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return addr.IP.String(), addr.Port, out
}

func TestSMTPSender(t *testing.T) {
	host, port, data := fakeSMTP(t)

	s, err := mail.NewSMTPSender(mail.SMTPConfig{Host: host, Port: port, From: "no-reply@hirehub.test", Timeout: 5 * time.Second})
	require.NoError(t, err)

	err = s.Send(context.Background(), mail.Message{To: "alice@x.com", Subject: "Verify", HTMLBody: "<p>123456</p>"})
	require.NoError(t, err)

	got := <-data
	require.Contains(t, got, "To: alice@x.com")
	require.Contains(t, got, "Content-Type: text/html")
	require.Contains(t, got, "<p>123456</p>")
}

func TestSMTPSenderUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	s, err := mail.NewSMTPSender(mail.SMTPConfig{Host: "127.0.0.1", Port: port, From: "f@x.com", Timeout: time.Second})
	require.NoError(t, err)
	require.ErrorContains(t, s.Send(context.Background(), mail.Message{To: "a@x.com"}), "smtp dial")
}

func TestNewSMTPSenderValidation(t *testing.T) {
	_, err := mail.NewSMTPSender(mail.SMTPConfig{From: "f@x.com"})
	require.Error(t, err)
	_, err = mail.NewSMTPSender(mail.SMTPConfig{Host: "smtp.x.com"})
	require.Error(t, err)
	_, err = mail.NewSMTPSender(mail.SMTPConfig{Host: "smtp.x.com", From: "f@x.com", Port: 2525})
	require.NoError(t, err)
}
