package domain

import "time"

type ExerciseSet struct {
	Reps     *int     `json:"reps,omitempty" validate:"omitempty,min=0,max=1000"`
	Weight   *float64 `json:"weight,omitempty" validate:"omitempty,gte=0"`
	Duration *int     `json:"duration,omitempty" validate:"omitempty,min=0"`
	Distance *float64 `json:"distance,omitempty" validate:"omitempty,gte=0"`
}

type Exercise struct {
	Name     string        `json:"name" validate:"required,max=100"`
	Category string        `json:"category,omitempty" validate:"max=50"`
	Sets     []ExerciseSet `json:"sets" validate:"max=50,dive"`
	Notes    string        `json:"notes,omitempty" validate:"max=300"`
}

type Workout struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Date      time.Time  `json:"date"`
	Duration  int        `json:"duration"` // minutes
	Calories  *int       `json:"calories,omitempty"`
	Intensity string     `json:"intensity"`
	Exercises []Exercise `json:"exercises"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type WorkoutRequest struct {
	Name      string     `json:"name" validate:"required,max=100"`
	Type      string     `json:"type" validate:"required,oneof=strength cardio flexibility hiit sports other"`
	Date      *time.Time `json:"date"`
	Duration  int        `json:"duration" validate:"min=0,max=1440"`
	Calories  *int       `json:"calories" validate:"omitempty,min=0"`
	Intensity string     `json:"intensity" validate:"omitempty,oneof=low medium high"`
	Exercises []Exercise `json:"exercises" validate:"max=50,dive"`
	Notes     string     `json:"notes" validate:"max=1000"`
}

func (r WorkoutRequest) Apply(w *Workout, now time.Time) {
	w.Name = r.Name
	w.Type = r.Type
	if r.Date != nil {
		w.Date = *r.Date
	} else if w.Date.IsZero() {
		w.Date = now
	}
	w.Duration = r.Duration
	w.Calories = r.Calories
	w.Intensity = r.Intensity
	if w.Intensity == "" {
		w.Intensity = "medium"
	}
	w.Exercises = r.Exercises
	if w.Exercises == nil {
		w.Exercises = []Exercise{}
	}
	w.Notes = r.Notes
}

type WorkoutFilter struct {
	Type   string
	Limit  int
	Offset int
}

type WorkoutTypeStats struct {
	Type          string `json:"type"`
	Count         int    `json:"count"`
	TotalMinutes  int    `json:"totalMinutes"`
	TotalCalories int    `json:"totalCalories"`
}

type WorkoutStats struct {
	TotalWorkouts int                `json:"totalWorkouts"`
	TotalMinutes  int                `json:"totalMinutes"`
	TotalCalories int                `json:"totalCalories"`
	ByType        []WorkoutTypeStats `json:"byType"`
}
