package onboarding

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// AssessmentKeyPrefix lets downstream code recognize assessment cache keys
// without parsing them.
const AssessmentKeyPrefix = "assessment:v1:"

// assessmentKeyMessageChars bounds how much of the message participates in
// the key. Near-duplicate long messages collapse to one cache entry, which
// keeps redundant calls to the assessment collaborator down.
const assessmentKeyMessageChars = 50

// AssessmentCacheKey derives a deterministic, collision-resistant cache key
// for one conversational turn. The same four inputs always produce the same
// key; changing any one of them (including the first 50 characters of the
// message) produces a different key.
func AssessmentCacheKey(sessionID string, messageIndex int, stage int, messageText string) string {
	runes := []rune(messageText)
	if len(runes) > assessmentKeyMessageChars {
		runes = runes[:assessmentKeyMessageChars]
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d|%s", sessionID, messageIndex, stage, string(runes))))
	return AssessmentKeyPrefix + hex.EncodeToString(sum[:])
}
