package domain

import "github.com/google/uuid"

// NewID generates a UUIDv7 string for workbench-owned artifacts such as
// project manifests.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
