package models

import "time"

type Expense struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
