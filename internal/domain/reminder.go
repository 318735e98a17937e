package domain

import "time"

const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyCustom  = "custom"
)

type ClockTime struct {
	Hour   int `json:"hour" validate:"min=0,max=23"`
	Minute int `json:"minute" validate:"min=0,max=59"`
}

// CustomFrequency repeats every Interval days, weeks or months.
type CustomFrequency struct {
	Interval int    `json:"interval" validate:"min=1,max=365"`
	Unit     string `json:"unit" validate:"oneof=days weeks months"`
}

type Reminder struct {
	ID              int64            `json:"id"`
	UserID          int64            `json:"userId"`
	GoalID          *int64           `json:"goalId,omitempty"`
	Title           string           `json:"title"`
	Message         string           `json:"message,omitempty"`
	Type            string           `json:"type"`
	Frequency       string           `json:"frequency"`
	CustomFrequency *CustomFrequency `json:"customFrequency,omitempty"`
	ScheduledTime   ClockTime        `json:"scheduledTime"`
	IsActive        bool             `json:"isActive"`
	NextScheduled   *time.Time       `json:"nextScheduled,omitempty"`
	LastTriggered   *time.Time       `json:"lastTriggered,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type ReminderRequest struct {
	GoalID          *int64           `json:"goalId" validate:"omitempty,gt=0"`
	Title           string           `json:"title" validate:"required,max=100"`
	Message         string           `json:"message" validate:"max=300"`
	Type            string           `json:"type" validate:"required,oneof=workout measurement goal water medication custom"`
	Frequency       string           `json:"frequency" validate:"required,oneof=daily weekly monthly custom"`
	CustomFrequency *CustomFrequency `json:"customFrequency" validate:"required_if=Frequency custom"`
	ScheduledTime   ClockTime        `json:"scheduledTime"`
	IsActive        *bool            `json:"isActive"`
}

func (r ReminderRequest) Apply(rem *Reminder) {
	rem.GoalID = r.GoalID
	rem.Title = r.Title
	rem.Message = r.Message
	rem.Type = r.Type
	rem.Frequency = r.Frequency
	rem.CustomFrequency = r.CustomFrequency
	rem.ScheduledTime = r.ScheduledTime
	if r.IsActive != nil {
		rem.IsActive = *r.IsActive
	} else if rem.ID == 0 {
		rem.IsActive = true
	}
}

// Recompute sets NextScheduled for active reminders. The date is advanced
// from now by the frequency, then the clock is pinned to ScheduledTime with
// seconds zeroed. Monthly steps use AddDate, so Jan 31 rolls into March.
func (r *Reminder) Recompute(now time.Time) {
	if !r.IsActive || r.Frequency == "" {
		return
	}

	next := now
	switch r.Frequency {
	case FrequencyDaily:
		next = now.AddDate(0, 0, 1)
	case FrequencyWeekly:
		next = now.AddDate(0, 0, 7)
	case FrequencyMonthly:
		next = now.AddDate(0, 1, 0)
	case FrequencyCustom:
		if cf := r.CustomFrequency; cf != nil && cf.Interval > 0 {
			switch cf.Unit {
			case "days":
				next = now.AddDate(0, 0, cf.Interval)
			case "weeks":
				next = now.AddDate(0, 0, 7*cf.Interval)
			case "months":
				next = now.AddDate(0, cf.Interval, 0)
			}
		}
	}

	next = time.Date(next.Year(), next.Month(), next.Day(),
		r.ScheduledTime.Hour, r.ScheduledTime.Minute, 0, 0, next.Location())
	r.NextScheduled = &next
}
