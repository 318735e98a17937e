package domain

import "time"

// Measurement is one dated body measurement entry. All lengths are centimeters.
type Measurement struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	Date       time.Time `json:"date"`
	Weight     *float64  `json:"weight,omitempty"`
	BodyFat    *float64  `json:"bodyFat,omitempty"`
	MuscleMass *float64  `json:"muscleMass,omitempty"`
	Chest      *float64  `json:"chest,omitempty"`
	Waist      *float64  `json:"waist,omitempty"`
	Hips       *float64  `json:"hips,omitempty"`
	Arms       *float64  `json:"arms,omitempty"`
	Thighs     *float64  `json:"thighs,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type MeasurementRequest struct {
	Date       *time.Time `json:"date"`
	Weight     *float64   `json:"weight" validate:"omitempty,gt=0,lt=700"`
	BodyFat    *float64   `json:"bodyFat" validate:"omitempty,gte=0,lte=100"`
	MuscleMass *float64   `json:"muscleMass" validate:"omitempty,gte=0"`
	Chest      *float64   `json:"chest" validate:"omitempty,gt=0"`
	Waist      *float64   `json:"waist" validate:"omitempty,gt=0"`
	Hips       *float64   `json:"hips" validate:"omitempty,gt=0"`
	Arms       *float64   `json:"arms" validate:"omitempty,gt=0"`
	Thighs     *float64   `json:"thighs" validate:"omitempty,gt=0"`
	Notes      string     `json:"notes" validate:"max=500"`
}

func (r MeasurementRequest) ToMeasurement(userID int64, now time.Time) *Measurement {
	m := &Measurement{UserID: userID, Date: now}
	r.Apply(m)
	return m
}

func (r MeasurementRequest) Apply(m *Measurement) {
	if r.Date != nil {
		m.Date = *r.Date
	}
	m.Weight = r.Weight
	m.BodyFat = r.BodyFat
	m.MuscleMass = r.MuscleMass
	m.Chest = r.Chest
	m.Waist = r.Waist
	m.Hips = r.Hips
	m.Arms = r.Arms
	m.Thighs = r.Thighs
	m.Notes = r.Notes
}

type MeasurementFilter struct {
	From *time.Time
	To   *time.Time
}
