package domain

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

type BodyMetrics struct {
	Weight *float64 `json:"weight,omitempty"`
	Height *float64 `json:"height,omitempty"` // centimeters
	BMI    *float64 `json:"bmi,omitempty"`
	BMR    *float64 `json:"bmr,omitempty"`
}

// HealthProfile is the single per-user record holding current body metrics.
type HealthProfile struct {
	ID             int64       `json:"id"`
	UserID         int64       `json:"userId"`
	Age            *int        `json:"age,omitempty"`
	Gender         *string     `json:"gender,omitempty"`
	ActivityLevel  string      `json:"activityLevel"`
	TargetWeight   *float64    `json:"targetWeight,omitempty"`
	CurrentMetrics BodyMetrics `json:"currentMetrics"`
	LastUpdated    time.Time   `json:"lastUpdated"`
	CreatedAt      time.Time   `json:"createdAt"`
}

type HealthProfileRequest struct {
	Age           *int     `json:"age" validate:"omitempty,min=1,max=120"`
	Gender        *string  `json:"gender" validate:"omitempty,oneof=male female other"`
	ActivityLevel string   `json:"activityLevel" validate:"omitempty,oneof=sedentary light moderate active very_active"`
	TargetWeight  *float64 `json:"targetWeight" validate:"omitempty,gt=0"`
	Weight        *float64 `json:"weight" validate:"omitempty,gt=0,lt=700"`
	Height        *float64 `json:"height" validate:"omitempty,gt=0,lt=300"`
}

// Apply copies the non-nil request fields onto the profile.
func (r HealthProfileRequest) Apply(p *HealthProfile) {
	if r.Age != nil {
		p.Age = r.Age
	}
	if r.Gender != nil {
		p.Gender = r.Gender
	}
	if r.ActivityLevel != "" {
		p.ActivityLevel = r.ActivityLevel
	}
	if r.TargetWeight != nil {
		p.TargetWeight = r.TargetWeight
	}
	if r.Weight != nil {
		p.CurrentMetrics.Weight = r.Weight
	}
	if r.Height != nil {
		p.CurrentMetrics.Height = r.Height
	}
}

// Recompute refreshes BMI and BMR from the stored inputs and stamps LastUpdated.
// Missing inputs leave the previous derived values in place. BMR is only
// defined for male and female; any other gender keeps the stored value.
func (p *HealthProfile) Recompute(now time.Time) {
	m := &p.CurrentMetrics
	if m.Weight != nil && m.Height != nil {
		bmi := CalculateBMI(*m.Weight, *m.Height)
		m.BMI = &bmi
	}

	if p.Age != nil && p.Gender != nil && m.Weight != nil && m.Height != nil {
		if bmr, ok := CalculateBMR(*p.Gender, *m.Weight, *m.Height, *p.Age); ok {
			m.BMR = &bmr
		}
	}

	p.LastUpdated = now
}

// CalculateBMI takes weight in kilograms and height in centimeters.
func CalculateBMI(weight, heightCM float64) float64 {
	h := heightCM / 100
	return weight / (h * h)
}

// CalculateBMR applies the revised Harris-Benedict equation.
func CalculateBMR(gender string, weight, heightCM float64, age int) (float64, bool) {
	switch gender {
	case GenderMale:
		return 88.362 + 13.397*weight + 4.799*heightCM - 5.677*float64(age), true
	case GenderFemale:
		return 447.593 + 9.247*weight + 3.098*heightCM - 4.330*float64(age), true
	}
	return 0, false
}
