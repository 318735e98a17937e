package domain

import (
	"math"
	"time"
)

const (
	GoalActive    = "active"
	GoalCompleted = "completed"
	GoalPaused    = "paused"
	GoalAbandoned = "abandoned"
)

type Goal struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Type         string     `json:"type"`
	TargetValue  float64    `json:"targetValue"`
	CurrentValue float64    `json:"currentValue"`
	StartValue   float64    `json:"startValue"`
	Unit         string     `json:"unit"`
	Progress     float64    `json:"progress"`
	Status       string     `json:"status"`
	StartDate    time.Time  `json:"startDate"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type GoalRequest struct {
	Title        string     `json:"title" validate:"required,max=100"`
	Description  string     `json:"description" validate:"max=500"`
	Type         string     `json:"type" validate:"required,oneof=weight strength endurance body_fat habit custom"`
	TargetValue  float64    `json:"targetValue"`
	CurrentValue float64    `json:"currentValue"`
	StartValue   *float64   `json:"startValue"`
	Unit         string     `json:"unit" validate:"max=20"`
	Status       string     `json:"status" validate:"omitempty,oneof=active completed paused abandoned"`
	StartDate    *time.Time `json:"startDate"`
	Deadline     *time.Time `json:"deadline"`
}

type ProgressRequest struct {
	CurrentValue *float64 `json:"currentValue" validate:"required"`
}

func (r GoalRequest) Apply(g *Goal, now time.Time) {
	g.Title = r.Title
	g.Description = r.Description
	g.Type = r.Type
	g.TargetValue = r.TargetValue
	g.CurrentValue = r.CurrentValue
	if r.StartValue != nil {
		g.StartValue = *r.StartValue
	} else if g.ID == 0 {
		g.StartValue = r.CurrentValue
	}
	g.Unit = r.Unit
	if r.Status != "" {
		g.Status = r.Status
	} else if g.Status == "" {
		g.Status = GoalActive
	}
	if r.StartDate != nil {
		g.StartDate = *r.StartDate
	} else if g.StartDate.IsZero() {
		g.StartDate = now
	}
	g.Deadline = r.Deadline
}

// Recompute derives Progress from start, current and target values and
// completes an active goal once the target is reached. Goals whose target is
// below the start value (weight loss) measure progress downwards.
func (g *Goal) Recompute(now time.Time) {
	span := g.TargetValue - g.StartValue
	switch {
	case span == 0:
		if g.CurrentValue == g.TargetValue {
			g.Progress = 100
		} else {
			g.Progress = 0
		}
	default:
		g.Progress = (g.CurrentValue - g.StartValue) / span * 100
	}
	g.Progress = math.Max(0, math.Min(100, g.Progress))

	if g.Progress >= 100 && g.Status == GoalActive {
		g.Status = GoalCompleted
	}
	if g.Status == GoalCompleted {
		if g.CompletedAt == nil {
			g.CompletedAt = &now
		}
	} else {
		g.CompletedAt = nil
	}
}
