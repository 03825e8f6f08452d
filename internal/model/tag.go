package model

import "time"

// Tag is a label shared across all users. Names are globally unique;
// a given name maps to exactly one tag identity.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
