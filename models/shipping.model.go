package models

import (
	"strings"
)

// ShippingAddress is the delivery contact captured at checkout
type ShippingAddress struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// ShippingFields lists the required checkout fields in form order
var ShippingFields = []string{"name", "email", "phone", "address", "city", "state", "zip"}

// Normalize trims surrounding whitespace from every field
func (s ShippingAddress) Normalize() ShippingAddress {
	return ShippingAddress{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Phone:   strings.TrimSpace(s.Phone),
		Address: strings.TrimSpace(s.Address),
		City:    strings.TrimSpace(s.City),
		State:   strings.TrimSpace(s.State),
		Zip:     strings.TrimSpace(s.Zip),
	}
}

// Missing returns the names of blank required fields, in ShippingFields order
func (s ShippingAddress) Missing() []string {
	s = s.Normalize()
	values := map[string]string{
		"name":    s.Name,
		"email":   s.Email,
		"phone":   s.Phone,
		"address": s.Address,
		"city":    s.City,
		"state":   s.State,
		"zip":     s.Zip,
	}
	var missing []string
	for _, field := range ShippingFields {
		if values[field] == "" {
			missing = append(missing, field)
		}
	}
	return missing
}
