package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Falls back to v4 if v7 is not available
	id, err := uuid.NewV7()
	if err != nil {
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

// Domain-specific ID types
type (
	HCPID        ID
	PatientID    ID
	SessionID    ID
	HypothesisID ID
)

// String conversions for domain IDs
func (id HCPID) String() string        { return ID(id).String() }
func (id PatientID) String() string    { return ID(id).String() }
func (id SessionID) String() string    { return ID(id).String() }
func (id HypothesisID) String() string { return ID(id).String() }

// ParseHCPID validates a request-supplied HCP identifier.
func ParseHCPID(s string) (HCPID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("hcp ID cannot be empty")
	}
	return HCPID(s), nil
}
