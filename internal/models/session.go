package models

import "time"

const (
	SessionTypePrivate = "private"
	SessionTypeSemi    = "semi"
	SessionTypeGroup   = "group"
)

// TrainingSession is one scheduled, dated occurrence. Price is per
// participant; sessions generated from one repeat request share a SeriesID.
type TrainingSession struct {
	ID             string    `json:"id"`
	Date           string    `json:"date"`       // YYYY-MM-DD
	StartTime      string    `json:"start_time"` // HH:MM, 24-hour
	EndTime        string    `json:"end_time"`
	Location       string    `json:"location"`
	Type           string    `json:"type"`
	Price          float64   `json:"price"`
	ParticipantIDs []string  `json:"participant_ids"`
	MaxCapacity    int       `json:"max_capacity"`
	SeriesID       *string   `json:"series_id"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
