package entity

import "time"

// Shop is a merchant principal identified by its CIF business identifier.
// A shop may publish exactly one embedded WebShop storefront.
type Shop struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Bcrypt digest. Never serialized across the boundary.
	CIF          string    `json:"cif"` // Business identifier, unique among live records.
	City         string    `json:"city"`
	Email        string    `json:"email"` // Login identifier, unique among live records.
	Phone        string    `json:"phone"`
	Activity     string    `json:"activity"`
	WebShop      *WebShop  `json:"webShop,omitempty"` // Nil until the shop creates its storefront.
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Scrub clears credential material before the entity crosses the system boundary.
func (s *Shop) Scrub() *Shop {
	if s == nil {
		return nil
	}
	s.PasswordHash = ""

	return s
}

// WebShop is the public-facing storefront owned 1:1 by a Shop. It lives
// embedded in the shop document and is never independently addressable.
//
// Scoring and NumRatings are derived from Reviews and must never drift:
// scoring is the arithmetic mean of all review scores (0 with no reviews)
// and numRatings is the review count. Both are recomputed from the full
// review sequence on every append.
type WebShop struct {
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Texts      []string  `json:"texts"`
	Photos     []string  `json:"photos"`
	Scoring    float64   `json:"scoring"`
	NumRatings int       `json:"numRatings"`
	Reviews    []Review  `json:"reviews"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Review is a single end-user rating of a storefront. Reviews are
// append-only: once created they are never updated or removed.
type Review struct {
	ID        string    `json:"id"`
	Score     int       `json:"score"` // 1 to 5 inclusive.
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
