// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is an end-user principal: a registered person that can log in,
// maintain profile data and, depending on role, administer the system
// or post storefront reviews.
type User struct {
	ID                    string    `json:"id"`                    // Document identifier, assigned by the store on creation.
	Name                  string    `json:"name,omitempty"`        // Display name. Optional for admin principals.
	Email                 string    `json:"email"`                 // Login identifier, unique among live records.
	PasswordHash          string    `json:"-"`                     // Bcrypt digest. Never serialized across the boundary.
	Age                   int       `json:"age,omitempty"`         // Optional for admin principals.
	City                  string    `json:"city,omitempty"`        // Used for marketing-target queries.
	Interests             string    `json:"interests,omitempty"`   // Comma-separated interest list.
	AllowsReceivingOffers bool      `json:"allowsReceivingOffers"` // Opt-in flag for marketing-target queries.
	Role                  Role      `json:"role,omitempty"`        // admin, user, or empty (none).
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// Scrub clears credential material before the entity crosses the system
// boundary. Password hashes must never appear in any response payload.
func (u *User) Scrub() *User {
	if u == nil {
		return nil
	}
	u.PasswordHash = ""

	return u
}
