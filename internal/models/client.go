package models

import "time"

const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
	ClientStatusLead     = "lead"
)

// Client is a billing account, typically a parent or guardian. Payments are
// owned exclusively by the client that received them.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Status    string    `json:"status"`
	Notes     *string   `json:"notes"`
	Payments  []Payment `json:"payments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Payment is a ledger entry for money received. Payments are only ever
// created through the ledger, never derived from sessions.
type Payment struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Amount    float64   `json:"amount"`
	Reference *string   `json:"reference"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
