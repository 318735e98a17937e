package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetTokenRecordFailedAttempt(t *testing.T) {
	db, mock := newMock(t)
	repo := NewResetTokenRepository(db)
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("SET used = (attempts + 1 >= ?), attempts = attempts + 1")).
		WithArgs(int64(5), "ana@example.com", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RecordFailedAttempt(context.Background(), "ana@example.com", now, 5))
}

func TestResetTokenGetValidScansAttempts(t *testing.T) {
	db, mock := newMock(t)
	repo := NewResetTokenRepository(db)
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM password_reset_tokens prt").
		WithArgs("ana@example.com", "123456", now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token", "expires_at", "used", "attempts"}).
			AddRow(4, 2, "123456", now.Add(10*time.Minute), false, 3))

	tok, err := repo.GetValidByEmailAndToken(context.Background(), "ana@example.com", "123456", now)
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.Equal(t, int64(2), tok.UserID)
	assert.Equal(t, 3, tok.Attempts)
}

func TestResetTokenGetValidMiss(t *testing.T) {
	db, mock := newMock(t)
	repo := NewResetTokenRepository(db)

	mock.ExpectQuery("FROM password_reset_tokens prt").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token", "expires_at", "used", "attempts"}))

	tok, err := repo.GetValidByEmailAndToken(context.Background(), "ana@example.com", "000000", time.Now())
	require.NoError(t, err)
	assert.Nil(t, tok)
}
