package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoalRecompute(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name         string
		start        float64
		current      float64
		target       float64
		wantProgress float64
		wantStatus   string
	}{
		{"gain halfway", 50, 75, 100, 50, GoalActive},
		{"loss halfway", 90, 85, 80, 50, GoalActive},
		{"overshoot clamps", 0, 150, 100, 100, GoalCompleted},
		{"wrong direction clamps", 90, 95, 80, 0, GoalActive},
		{"flat target reached", 10, 10, 10, 100, GoalCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Goal{StartValue: tt.start, CurrentValue: tt.current, TargetValue: tt.target, Status: GoalActive}
			g.Recompute(now)
			assert.InDelta(t, tt.wantProgress, g.Progress, 1e-9)
			assert.Equal(t, tt.wantStatus, g.Status)
			if tt.wantStatus == GoalCompleted {
				assert.Equal(t, now, *g.CompletedAt)
			} else {
				assert.Nil(t, g.CompletedAt)
			}
		})
	}
}

func TestGoalRecompute_PausedGoalNotCompleted(t *testing.T) {
	g := &Goal{StartValue: 0, CurrentValue: 100, TargetValue: 100, Status: GoalPaused}
	g.Recompute(time.Now())
	assert.Equal(t, GoalPaused, g.Status)
	assert.Equal(t, 100.0, g.Progress)
}

func TestGoalRequestApplyDefaults(t *testing.T) {
	now := time.Now()
	g := &Goal{}
	GoalRequest{Title: "Run 10k", Type: "endurance", TargetValue: 10, CurrentValue: 3}.Apply(g, now)
	assert.Equal(t, GoalActive, g.Status)
	assert.Equal(t, 3.0, g.StartValue)
	assert.Equal(t, now, g.StartDate)
}
