package models

import "time"

// SessionLog is a coach's evaluation of one player in one session. Each
// metric is scored 0-2; Total is the stored sum (0-10).
type SessionLog struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	PlayerID    string    `json:"player_id"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Technique   int       `json:"technique"`
	Footwork    int       `json:"footwork"`
	Consistency int       `json:"consistency"`
	Attitude    int       `json:"attitude"`
	Matchplay   int       `json:"matchplay"`
	Total       int       `json:"total"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}
