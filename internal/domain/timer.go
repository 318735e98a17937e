package domain

import (
	"math"
	"time"
)

const (
	TimerIdle      = "idle"
	TimerRunning   = "running"
	TimerPaused    = "paused"
	TimerCompleted = "completed"
)

type TimerSet struct {
	Reps      *int       `json:"reps,omitempty" validate:"omitempty,min=0"`
	Weight    *float64   `json:"weight,omitempty" validate:"omitempty,gte=0"`
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Completed bool       `json:"completed"`
}

type TimerExercise struct {
	Name          string     `json:"name" validate:"required,max=100"`
	Order         int        `json:"order"`
	RestTime      int        `json:"restTime" validate:"min=0"`
	Sets          []TimerSet `json:"sets" validate:"max=50,dive"`
	TotalDuration int64      `json:"totalDuration"`
}

// WorkoutTimer tracks a live workout session. Durations are whole seconds.
type WorkoutTimer struct {
	ID              int64           `json:"id"`
	UserID          int64           `json:"userId"`
	WorkoutID       *int64          `json:"workoutId,omitempty"`
	Name            string          `json:"name"`
	Status          string          `json:"status"`
	StartTime       *time.Time      `json:"startTime,omitempty"`
	EndTime         *time.Time      `json:"endTime,omitempty"`
	PausedAt        *time.Time      `json:"pausedAt,omitempty"`
	TotalPausedTime int64           `json:"totalPausedTime"`
	PlannedDuration int64           `json:"plannedDuration"`
	ActualDuration  int64           `json:"actualDuration"`
	Exercises       []TimerExercise `json:"exercises"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type TimerRequest struct {
	WorkoutID       *int64          `json:"workoutId" validate:"omitempty,gt=0"`
	Name            string          `json:"name" validate:"required,max=100"`
	PlannedDuration int64           `json:"plannedDuration" validate:"min=0"`
	Exercises       []TimerExercise `json:"exercises" validate:"max=50,dive"`
}

type TimerExercisesRequest struct {
	Exercises []TimerExercise `json:"exercises" validate:"max=50,dive"`
}

func (r TimerRequest) ToTimer(userID int64) *WorkoutTimer {
	t := &WorkoutTimer{
		UserID:          userID,
		WorkoutID:       r.WorkoutID,
		Name:            r.Name,
		Status:          TimerIdle,
		PlannedDuration: r.PlannedDuration,
		Exercises:       r.Exercises,
	}
	if t.Exercises == nil {
		t.Exercises = []TimerExercise{}
	}
	return t
}

func (t *WorkoutTimer) Start(now time.Time) error {
	if t.Status != TimerIdle {
		return NewInvalidState("timer already started")
	}
	t.Status = TimerRunning
	t.StartTime = &now
	return nil
}

func (t *WorkoutTimer) Pause(now time.Time) error {
	if t.Status != TimerRunning {
		return NewInvalidState("timer is not running")
	}
	t.Status = TimerPaused
	t.PausedAt = &now
	return nil
}

func (t *WorkoutTimer) Resume(now time.Time) error {
	if t.Status != TimerPaused {
		return NewInvalidState("timer is not paused")
	}
	t.closePause(now)
	t.Status = TimerRunning
	return nil
}

func (t *WorkoutTimer) Finish(now time.Time) error {
	if t.Status != TimerRunning && t.Status != TimerPaused {
		return NewInvalidState("timer is not active")
	}
	if t.Status == TimerPaused {
		t.closePause(now)
	}
	t.Status = TimerCompleted
	t.EndTime = &now
	return nil
}

func (t *WorkoutTimer) closePause(now time.Time) {
	if t.PausedAt != nil {
		t.TotalPausedTime += wholeSeconds(*t.PausedAt, now)
	}
	t.PausedAt = nil
}

// Recompute rolls up ActualDuration and each exercise's TotalDuration.
// ActualDuration is left alone until both ends of the session are known;
// sets missing either timestamp contribute nothing.
func (t *WorkoutTimer) Recompute() {
	if t.StartTime != nil && t.EndTime != nil {
		t.ActualDuration = wholeSeconds(*t.StartTime, *t.EndTime) - t.TotalPausedTime
	}

	for i := range t.Exercises {
		ex := &t.Exercises[i]
		var total int64
		for _, s := range ex.Sets {
			if s.StartTime != nil && s.EndTime != nil {
				total += wholeSeconds(*s.StartTime, *s.EndTime)
			}
		}
		ex.TotalDuration = total
	}
}

func wholeSeconds(from, to time.Time) int64 {
	return int64(math.Floor(to.Sub(from).Seconds()))
}
