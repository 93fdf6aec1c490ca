package models

import "time"

// User is an account row. HashedPassword is a bcrypt digest and is never
// serialized to any caller.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}
