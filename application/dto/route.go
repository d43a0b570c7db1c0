package dto

import "time"

type RouteInput struct {
	Route string `json:"route" binding:"required"`
}

// RouteOutput never echoes the stored route, which may be a token or a
// webhook URL carrying a secret.
type RouteOutput struct {
	Recipient string    `json:"recipient"`
	Mode      string    `json:"mode"`
	UpdatedAt time.Time `json:"updated_at"`
}
