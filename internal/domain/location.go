package domain

import "time"

// Location is a (city, country) pair, unique and matched case-sensitively.
// A single row may serve as origin for some trips and destination for
// others; there is one location pool, not two.
type Location struct {
	ID        int64
	City      string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
