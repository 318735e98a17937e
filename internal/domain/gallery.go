package domain

import "time"

type Photo struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	URL       string    `json:"url"`
	Category  string    `json:"category"`
	TakenAt   time.Time `json:"takenAt"`
	Weight    *float64  `json:"weight,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Tags      []string  `json:"tags"`
	IsPrivate bool      `json:"isPrivate"`
	CreatedAt time.Time `json:"createdAt"`
}

type PhotoRequest struct {
	URL       string     `json:"url" validate:"required,url,max=500"`
	Category  string     `json:"category" validate:"omitempty,oneof=front side back progress other"`
	TakenAt   *time.Time `json:"takenAt"`
	Weight    *float64   `json:"weight" validate:"omitempty,gt=0"`
	Notes     string     `json:"notes" validate:"max=500"`
	Tags      []string   `json:"tags" validate:"max=20,dive,max=30"`
	IsPrivate *bool      `json:"isPrivate"`
}

func (r PhotoRequest) Apply(p *Photo, now time.Time) {
	p.URL = r.URL
	p.Category = r.Category
	if p.Category == "" {
		p.Category = "progress"
	}
	if r.TakenAt != nil {
		p.TakenAt = *r.TakenAt
	} else if p.TakenAt.IsZero() {
		p.TakenAt = now
	}
	p.Weight = r.Weight
	p.Notes = r.Notes
	p.Tags = r.Tags
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if r.IsPrivate != nil {
		p.IsPrivate = *r.IsPrivate
	} else if p.ID == 0 {
		p.IsPrivate = true
	}
}

// MeasurementDelta is one before/after pair inside a comparison.
type MeasurementDelta struct {
	Type             string  `json:"type" validate:"required,max=50"`
	BeforeValue      float64 `json:"beforeValue"`
	AfterValue       float64 `json:"afterValue"`
	Unit             string  `json:"unit" validate:"max=10"`
	Difference       float64 `json:"difference"`
	PercentageChange float64 `json:"percentageChange"`
}

type Comparison struct {
	ID            int64              `json:"id"`
	UserID        int64              `json:"userId"`
	Title         string             `json:"title"`
	BeforePhotoID int64              `json:"beforePhotoId"`
	AfterPhotoID  int64              `json:"afterPhotoId"`
	Measurements  []MeasurementDelta `json:"measurements"`
	Notes         string             `json:"notes,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

type ComparisonRequest struct {
	Title         string             `json:"title" validate:"required,max=100"`
	BeforePhotoID int64              `json:"beforePhotoId" validate:"required,gt=0"`
	AfterPhotoID  int64              `json:"afterPhotoId" validate:"required,gt=0,nefield=BeforePhotoID"`
	Measurements  []MeasurementDelta `json:"measurements" validate:"max=30,dive"`
	Notes         string             `json:"notes" validate:"max=1000"`
}

func (r ComparisonRequest) Apply(c *Comparison) {
	c.Title = r.Title
	c.BeforePhotoID = r.BeforePhotoID
	c.AfterPhotoID = r.AfterPhotoID
	c.Measurements = r.Measurements
	c.Notes = r.Notes
}

// Recompute derives Difference and PercentageChange for every entry.
// A zero before value yields a zero percentage.
func (c *Comparison) Recompute() {
	for i := range c.Measurements {
		d := &c.Measurements[i]
		d.Difference = d.AfterValue - d.BeforeValue
		if d.BeforeValue == 0 {
			d.PercentageChange = 0
			continue
		}
		d.PercentageChange = d.Difference / d.BeforeValue * 100
	}
}
