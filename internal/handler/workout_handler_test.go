package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufkecer/fittrack-backend/internal/domain"
)

func TestWorkoutCreateAppliesDefaults(t *testing.T) {
	store := newMemWorkouts()
	h := NewWorkoutHandler(testBase(), store)

	rec := serve(t, http.MethodPost, "/workouts", "/workouts", h.Create, 7,
		map[string]any{"name": "Leg day", "type": "strength", "duration": 45})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got domain.Workout
	decodeBody(t, rec, &got)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "medium", got.Intensity)
	assert.True(t, got.Date.Equal(fixedNow))
	assert.NotNil(t, got.Exercises)
}

func TestWorkoutCreateRejectsUnknownType(t *testing.T) {
	h := NewWorkoutHandler(testBase(), newMemWorkouts())

	rec := serve(t, http.MethodPost, "/workouts", "/workouts", h.Create, 7,
		map[string]any{"name": "Swim", "type": "swimming"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	decodeBody(t, rec, &body)
	assert.Equal(t, domain.CodeValidation, body.Code)
	assert.Contains(t, string(body.Details), `"field":"type"`)
}

func TestWorkoutOwnerIsolation(t *testing.T) {
	store := newMemWorkouts()
	h := NewWorkoutHandler(testBase(), store)
	id, _ := store.Create(context.Background(), &domain.Workout{UserID: 1, Name: "Run", Type: "cardio"})
	require.Equal(t, int64(1), id)

	rec := serve(t, http.MethodGet, "/workouts/{id}", "/workouts/1", h.Get, 2, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, http.MethodDelete, "/workouts/{id}", "/workouts/1", h.Delete, 2, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Len(t, store.rows, 1)

	rec = serve(t, http.MethodDelete, "/workouts/{id}", "/workouts/1", h.Delete, 1, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, store.rows)
}

func TestWorkoutListEmptyIsArray(t *testing.T) {
	h := NewWorkoutHandler(testBase(), newMemWorkouts())

	rec := serve(t, http.MethodGet, "/workouts", "/workouts", h.List, 3, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestWorkoutRequiresUser(t *testing.T) {
	h := NewWorkoutHandler(testBase(), newMemWorkouts())

	rec := serve(t, http.MethodGet, "/workouts", "/workouts", h.List, 0, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWorkoutBadID(t *testing.T) {
	h := NewWorkoutHandler(testBase(), newMemWorkouts())

	rec := serve(t, http.MethodGet, "/workouts/{id}", "/workouts/abc", h.Get, 1, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
