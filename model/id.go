package model

import "github.com/google/uuid"

// IDGenerator produces opaque, unique entity identifiers.
type IDGenerator func() string

// NewID returns a random UUID string.
func NewID() string { return uuid.NewString() }
