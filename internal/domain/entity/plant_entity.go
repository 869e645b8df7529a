package entity

import "time"

// DefaultWateringFrequency is used when a plant is created without one.
const DefaultWateringFrequency = 7

// Plant is a user-owned plant with its watering schedule.
type Plant struct {
	ID                string     `json:"id"`
	UserID            string     `json:"-"`
	Name              string     `json:"name"`
	Type              string     `json:"type"`
	CareInstructions  string     `json:"careInstructions,omitempty"`
	WateringFrequency int        `json:"wateringFrequency"` // days
	LastWatered       *time.Time `json:"lastWatered,omitempty"`
	NextWatering      *time.Time `json:"nextWatering,omitempty"`
	ImageURL          string     `json:"imageUrl,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// ScheduleNextWatering sets NextWatering from LastWatered and the frequency.
// It leaves NextWatering untouched if either input is missing.
func (p *Plant) ScheduleNextWatering() {
	if p.LastWatered == nil || p.WateringFrequency <= 0 {
		return
	}
	next := p.LastWatered.AddDate(0, 0, p.WateringFrequency)
	p.NextWatering = &next
}
