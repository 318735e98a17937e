package domain

import "time"

type NotificationSettings struct {
	WorkoutReminders bool `json:"workoutReminders"`
	GoalReminders    bool `json:"goalReminders"`
	MeasurementDays  bool `json:"measurementDays"`
	WeeklyReport     bool `json:"weeklyReport"`
	Email            bool `json:"email"`
	Push             bool `json:"push"`
}

type PrivacySettings struct {
	ProfilePublic bool `json:"profilePublic"`
	ShareProgress bool `json:"shareProgress"`
	ShowPhotos    bool `json:"showPhotos"`
}

type TimerSettings struct {
	DefaultRest    int  `json:"defaultRest" validate:"min=0,max=900"`
	SoundEnabled   bool `json:"soundEnabled"`
	VibrateEnabled bool `json:"vibrateEnabled"`
	CountdownSecs  int  `json:"countdownSecs" validate:"min=0,max=30"`
}

type Settings struct {
	UserID        int64                `json:"userId"`
	Units         string               `json:"units" validate:"oneof=metric imperial"`
	Language      string               `json:"language" validate:"oneof=es en pt fr de"`
	Theme         string               `json:"theme" validate:"oneof=light dark system"`
	WeekStart     string               `json:"weekStart" validate:"oneof=monday sunday"`
	Timezone      string               `json:"timezone" validate:"timezone"`
	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`
	Timer         TimerSettings        `json:"timer"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// DefaultSettings is what a user sees before saving any preference.
func DefaultSettings(userID int64) *Settings {
	return &Settings{
		UserID:    userID,
		Units:     "metric",
		Language:  "es",
		Theme:     "system",
		WeekStart: "monday",
		Timezone:  "UTC",
		Notifications: NotificationSettings{
			WorkoutReminders: true,
			GoalReminders:    true,
			MeasurementDays:  true,
			WeeklyReport:     true,
			Email:            true,
			Push:             true,
		},
		Privacy: PrivacySettings{},
		Timer: TimerSettings{
			DefaultRest:    60,
			SoundEnabled:   true,
			VibrateEnabled: true,
			CountdownSecs:  3,
		},
	}
}
