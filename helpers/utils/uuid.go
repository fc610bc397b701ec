package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateUUID returns a random UUID v4, used to stamp job and review
// IDs (spec §6 batch API, mirroring the teacher's JobStatus IDs).
func GenerateUUID() string {
	return uuid.NewString()
}

// GenerateShortID returns an 8-hex-character ID for contexts that don't
// need full UUID entropy (e.g. log correlation).
func GenerateShortID() string {
	id := uuid.New()
	return fmt.Sprintf("%x", id[:4])
}
