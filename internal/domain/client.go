package domain

import "time"

// Client is a person coached by exactly one coach. Clients do not sign in.
type Client struct {
	ID        string    `json:"id"`
	CoachID   string    `json:"coachId"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
