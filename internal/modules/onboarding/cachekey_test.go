package onboarding

import (
	"strings"
	"testing"
)

func TestAssessmentCacheKey(t *testing.T) {
	base := AssessmentCacheKey("sess-1", 3, 2, "We sell handmade furniture to young professionals")

	t.Run("deterministic", func(t *testing.T) {
		again := AssessmentCacheKey("sess-1", 3, 2, "We sell handmade furniture to young professionals")
		if base != again {
			t.Fatalf("same inputs produced different keys: %s vs %s", base, again)
		}
	})

	t.Run("prefixed_and_hex", func(t *testing.T) {
		if !strings.HasPrefix(base, AssessmentKeyPrefix) {
			t.Fatalf("key %q missing prefix %q", base, AssessmentKeyPrefix)
		}
		digest := strings.TrimPrefix(base, AssessmentKeyPrefix)
		if len(digest) != 64 {
			t.Fatalf("digest length %d, want 64 hex chars", len(digest))
		}
	})

	t.Run("each_input_changes_key", func(t *testing.T) {
		variants := []string{
			AssessmentCacheKey("sess-2", 3, 2, "We sell handmade furniture to young professionals"),
			AssessmentCacheKey("sess-1", 4, 2, "We sell handmade furniture to young professionals"),
			AssessmentCacheKey("sess-1", 3, 3, "We sell handmade furniture to young professionals"),
			AssessmentCacheKey("sess-1", 3, 2, "We sell handmade jewelry to young professionals"),
		}
		for i, v := range variants {
			if v == base {
				t.Fatalf("variant %d collided with base key", i)
			}
		}
	})

	t.Run("only_first_50_chars_of_message_matter", func(t *testing.T) {
		head := strings.Repeat("a", 50)
		k1 := AssessmentCacheKey("sess-1", 0, 1, head+" trailing context one")
		k2 := AssessmentCacheKey("sess-1", 0, 1, head+" completely different tail")
		if k1 != k2 {
			t.Fatal("messages identical in the first 50 chars produced different keys")
		}
		k3 := AssessmentCacheKey("sess-1", 0, 1, strings.Repeat("b", 1)+head[1:]+" trailing context one")
		if k3 == k1 {
			t.Fatal("change inside the first 50 chars did not change the key")
		}
	})

	t.Run("short_and_empty_messages", func(t *testing.T) {
		if AssessmentCacheKey("s", 0, 1, "") == AssessmentCacheKey("s", 0, 1, "hi") {
			t.Fatal("empty and non-empty message collided")
		}
	})
}
