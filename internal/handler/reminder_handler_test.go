package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

func TestReminderCreateSchedulesNextFire(t *testing.T) {
	goals := &memGoals{rows: map[int64]domain.Goal{}}
	store := &memReminders{}
	h := NewReminderHandler(testBase(), store, goals)

	rec := serve(t, http.MethodPost, "/goals/reminders", "/goals/reminders", h.Create, 3, map[string]any{
		"title": "Morning run", "type": "workout", "frequency": "daily",
		"scheduledTime": map[string]int{"hour": 7, "minute": 30},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got domain.Reminder
	decodeBody(t, rec, &got)
	assert.True(t, got.IsActive)
	require.NotNil(t, got.NextScheduled)
	assert.True(t, got.NextScheduled.Equal(time.Date(2024, 3, 11, 7, 30, 0, 0, time.UTC)))
}

func TestReminderRejectsForeignGoal(t *testing.T) {
	goals := &memGoals{rows: map[int64]domain.Goal{9: {ID: 9, UserID: 99}}}
	store := &memReminders{}
	h := NewReminderHandler(testBase(), store, goals)

	rec := serve(t, http.MethodPost, "/goals/reminders", "/goals/reminders", h.Create, 3, map[string]any{
		"goalId": 9, "title": "Weigh in", "type": "measurement", "frequency": "weekly",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, store.created)
}

func TestReminderToggleMissing(t *testing.T) {
	h := NewReminderHandler(testBase(), &memReminders{}, &memGoals{})

	rec := serve(t, http.MethodPatch, "/goals/reminders/{id}/toggle", "/goals/reminders/4/toggle", h.Toggle, 3, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
