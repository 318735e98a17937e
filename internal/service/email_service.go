package service

import (
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	from string
	send func(m *gomail.Message) error
}

func NewEmailService(host string, port int, user, pass, from string) *EmailService {
	if from == "" {
		from = user
	}
	d := gomail.NewDialer(host, port, user, pass)
	return &EmailService{from: from, send: func(m *gomail.Message) error { return d.DialAndSend(m) }}
}

func (s *EmailService) SendPasswordReset(to, token string) error {
	body, err := buildResetEmail(token)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "FitTrack - Password Reset Code")
	m.SetBody("text/html", body)

	if err := s.send(m); err != nil {
		return fmt.Errorf("smtp error: %w", err)
	}
	return nil
}

var resetEmail = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family:Arial,sans-serif;background:#f4f4f4;padding:20px;">
  <div style="max-width:480px;margin:0 auto;background:#fff;border-radius:8px;padding:32px;">
    <h2 style="color:#333;">FitTrack Password Reset</h2>
    <p>Hi,</p>
    <p>Use the 6-digit code below to reset your password:</p>
    <div style="text-align:center;margin:24px 0;">
      <span style="font-size:36px;font-weight:bold;letter-spacing:8px;color:#1E88E5;">{{.}}</span>
    </div>
    <p>The code is valid for <strong>15 minutes</strong>.</p>
    <p>If you did not request this, you can ignore this email.</p>
    <hr style="border:none;border-top:1px solid #eee;margin:24px 0;">
    <p style="color:#999;font-size:12px;">The FitTrack Team</p>
  </div>
</body>
</html>`))

func buildResetEmail(token string) (string, error) {
	var sb strings.Builder
	if err := resetEmail.Execute(&sb, token); err != nil {
		return "", fmt.Errorf("failed to render reset email: %w", err)
	}
	return sb.String(), nil
}
