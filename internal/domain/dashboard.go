package domain

import "time"

// DashboardStats is a stored daily snapshot. Values are computed by the
// repository from the other modules at snapshot time.
type DashboardStats struct {
	UserID           int64     `json:"userId"`
	Date             time.Time `json:"date"`
	WorkoutsThisWeek int       `json:"workoutsThisWeek"`
	MinutesThisWeek  int       `json:"minutesThisWeek"`
	CaloriesThisWeek int       `json:"caloriesThisWeek"`
	TotalWorkouts    int       `json:"totalWorkouts"`
	ActiveGoals      int       `json:"activeGoals"`
	CompletedGoals   int       `json:"completedGoals"`
	CurrentWeight    *float64  `json:"currentWeight,omitempty"`
	WeightChange30d  *float64  `json:"weightChange30d,omitempty"`
	PhotosCount      int       `json:"photosCount"`
	ActiveReminders  int       `json:"activeReminders"`
	PendingShopping  int       `json:"pendingShoppingItems"`
	TimerSecondsWeek int64     `json:"timerSecondsThisWeek"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// WeekStart returns midnight of the Monday on or before t, in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
