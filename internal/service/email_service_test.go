package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestSendPasswordReset(t *testing.T) {
	var sent *gomail.Message
	s := NewEmailService("smtp.example.com", 587, "bot@example.com", "pw", "")
	s.send = func(m *gomail.Message) error {
		sent = m
		return nil
	}

	require.NoError(t, s.SendPasswordReset("ana@example.com", "123456"))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"bot@example.com"}, sent.GetHeader("From"))
	assert.Equal(t, []string{"ana@example.com"}, sent.GetHeader("To"))
	assert.Equal(t, []string{"FitTrack - Password Reset Code"}, sent.GetHeader("Subject"))
}

func TestSendPasswordResetWrapsSMTPError(t *testing.T) {
	s := NewEmailService("smtp.example.com", 587, "bot@example.com", "pw", "noreply@example.com")
	s.send = func(*gomail.Message) error { return errors.New("connection refused") }

	err := s.SendPasswordReset("ana@example.com", "123456")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestBuildResetEmailContainsCode(t *testing.T) {
	body, err := buildResetEmail("042917")
	require.NoError(t, err)
	assert.Contains(t, body, "042917")
	assert.Contains(t, body, "15 minutes")
}
