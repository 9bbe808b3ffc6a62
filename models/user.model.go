package models

import (
	"time"
)

// Address represents a user's saved postal address
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// User represents a storefront customer
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Avatar       string    `json:"avatar,omitempty"`
	Address      *Address  `json:"address,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	PasswordHash []byte    `json:"-"`
}

// Public strips credential material before the user leaves the process
func (u User) Public() User {
	u.PasswordHash = nil
	if u.Address != nil {
		addr := *u.Address
		u.Address = &addr
	}
	return u
}
