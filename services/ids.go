package services

import (
	"fmt"

	"github.com/google/uuid"
)

// IDSource allocates line-item IDs. The generator takes one explicitly so
// shell generation stays referentially transparent; there is no process
// -global counter.
type IDSource interface {
	NextID() string
}

// SequenceIDs allocates request-scoped sequential IDs with an optional
// prefix, e.g. "L-1", "L-2". The zero value is ready to use.
type SequenceIDs struct {
	Prefix string
	n      int
}

// NextID returns the next sequential ID.
func (s *SequenceIDs) NextID() string {
	s.n++
	if s.Prefix == "" {
		return fmt.Sprintf("%d", s.n)
	}
	return fmt.Sprintf("%s-%d", s.Prefix, s.n)
}

// UUIDs allocates random UUID line IDs for callers that persist shells
// directly.
type UUIDs struct{}

// NextID returns a new random UUID string.
func (UUIDs) NextID() string {
	return uuid.NewString()
}
