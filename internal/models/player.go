package models

import "time"

// Player is a roster member. A player is linked to at most one client; an
// unlinked player never produces billing for anyone.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ClientID  *string   `json:"client_id"`
	BirthYear *int      `json:"birth_year"`
	Level     *string   `json:"level"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
