package models

import "time"

const (
	DayEventRain           = "rain"
	DayEventCoachCancelled = "coach_cancelled"
	DayEventTournament     = "tournament"
	DayEventHoliday        = "holiday"
)

// DayEvent flags a whole calendar day. Rain and coach cancellations change
// how sessions on that date are billed; tournaments and holidays are
// informational.
type DayEvent struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Type      string    `json:"type"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// Term is a named date range used as the bound for "repeat until term end".
type Term struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate string    `json:"start_date"` // YYYY-MM-DD
	EndDate   string    `json:"end_date"`   // YYYY-MM-DD, inclusive
	CreatedAt time.Time `json:"created_at"`
}
