package core

import (
	"github.com/google/uuid"
)

// ID represents a generic domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// RunID identifies a single hazardCurve invocation, used for log correlation
// and as the tag stored with each result-cache row. It carries no semantic meaning of its
// own — unlike a SourceSet or Source name, it is never read back out of the
// data model.
type RunID ID

// NewRunID creates a fresh, time-ordered RunID.
func NewRunID() RunID { return RunID(NewID()) }

// String returns the string representation
func (id RunID) String() string { return ID(id).String() }
