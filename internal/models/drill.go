package models

import (
	"encoding/json"
	"time"
)

// Drill is a library entry for the diagram editor. The diagram itself is an
// opaque JSON document produced by the canvas front end; the backend only
// validates that it decodes.
type Drill struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Category    *string         `json:"category"`
	Description *string         `json:"description"`
	Diagram     json.RawMessage `json:"diagram"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
