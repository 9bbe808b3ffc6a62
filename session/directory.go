// Package session tracks which customer, if any, is signed in to the
// storefront and keeps that marker in durable storage.
package session

import (
	"fmt"
	"strings"
	"time"

	"go-storefront/models"

	"golang.org/x/crypto/bcrypt"
)

// Demo account credentials.
const (
	DemoEmail    = "user@test.com"
	DemoPassword = "user123"
)

// Directory holds the known customer records. It never changes after
// construction.
type Directory struct {
	users []models.User
}

// NewDirectory builds a directory from users whose PasswordHash is already set.
func NewDirectory(users ...models.User) *Directory {
	d := &Directory{users: make([]models.User, len(users))}
	copy(d.users, users)
	return d
}

// DemoDirectory returns the directory with the single demo customer, hashing
// DemoPassword at the given bcrypt cost.
func DemoDirectory(cost int) (*Directory, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	return NewDirectory(models.User{
		ID:     1,
		Name:   "John Doe",
		Email:  DemoEmail,
		Phone:  "+1 234 567 8900",
		Avatar: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=200&q=80",
		Address: &models.Address{
			Street: "123 Main Street",
			City:   "New York",
			State:  "NY",
			Zip:    "10001",
		},
		CreatedAt:    time.Date(2024, time.January, 15, 10, 0, 0, 0, time.UTC),
		PasswordHash: hash,
	}), nil
}

// User looks up a customer by id.
func (d *Directory) User(id int) (models.User, error) {
	for _, u := range d.users {
		if u.ID == id {
			return u.Public(), nil
		}
	}
	return models.User{}, fmt.Errorf("user %d: %w", id, models.ErrNotFound)
}

// ValidateCredentials returns the matching customer. Blank inputs produce a
// ValidationError; any mismatch produces ErrInvalidCredentials.
func (d *Directory) ValidateCredentials(email, password string) (models.User, error) {
	var missing []string
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return models.User{}, models.NewValidationError("missing credentials", missing...)
	}

	for _, u := range d.users {
		if u.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
			return models.User{}, models.ErrInvalidCredentials
		}
		return u.Public(), nil
	}
	return models.User{}, models.ErrInvalidCredentials
}
