package services

import (
	"crypto/sha256"
	"fmt"
)

// DeriveCacheKey fingerprints an analysis request. Identical
// (resume text, job description) pairs always map to the same key, so a
// repeated upload is served from cache instead of the model.
func DeriveCacheKey(resumeText, jdText string) string {
	sum := sha256.Sum256([]byte(resumeText + jdText))
	return fmt.Sprintf("%x", sum[:])
}
