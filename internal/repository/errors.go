package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert violates a natural-key
	// uniqueness constraint. Resolvers treat it as "someone else created
	// it" and re-fetch the winning row.
	ErrDuplicate = errors.New("entity already exists")
)
