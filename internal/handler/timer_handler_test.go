package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

func TestTimerLifecycle(t *testing.T) {
	store := &memTimers{rows: map[int64]domain.WorkoutTimer{
		1: {ID: 1, UserID: 5, Name: "Push", Status: domain.TimerIdle, Exercises: []domain.TimerExercise{}},
	}}
	h := NewTimerHandler(testBase(), store)

	rec := serve(t, http.MethodPost, "/timers/{id}/start", "/timers/1/start", h.Start, 5, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.WorkoutTimer
	decodeBody(t, rec, &got)
	assert.Equal(t, domain.TimerRunning, got.Status)

	rec = serve(t, http.MethodPost, "/timers/{id}/start", "/timers/1/start", h.Start, 5, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	var body errorBody
	decodeBody(t, rec, &body)
	assert.Equal(t, domain.CodeInvalidState, body.Code)
	assert.Equal(t, 1, store.updates)

	rec = serve(t, http.MethodPost, "/timers/{id}/finish", "/timers/1/finish", h.Finish, 5, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &got)
	assert.Equal(t, domain.TimerCompleted, got.Status)
	assert.Equal(t, int64(0), got.ActualDuration)
}

func TestTimerResumeRequiresPause(t *testing.T) {
	store := &memTimers{rows: map[int64]domain.WorkoutTimer{
		1: {ID: 1, UserID: 5, Status: domain.TimerIdle},
	}}
	h := NewTimerHandler(testBase(), store)

	rec := serve(t, http.MethodPost, "/timers/{id}/resume", "/timers/1/resume", h.Resume, 5, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Zero(t, store.updates)
}

func TestTimerOtherUser(t *testing.T) {
	store := &memTimers{rows: map[int64]domain.WorkoutTimer{
		1: {ID: 1, UserID: 5, Status: domain.TimerIdle},
	}}
	h := NewTimerHandler(testBase(), store)

	rec := serve(t, http.MethodPost, "/timers/{id}/start", "/timers/1/start", h.Start, 6, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
