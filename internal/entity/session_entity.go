package entity

import "time"

// Session is the liveness record for one document chat session. All chunk and
// history data is keyed by Id and dies with the session.
type Session struct {
	Id        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
