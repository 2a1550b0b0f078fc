package domain

import "time"

// Manufacturer is a vehicle maker, unique by exact name.
// Rows are created lazily by the first trip that needs them and removed
// by the cascade when the last referencing trip is deleted.
type Manufacturer struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
