package value

import "testing"

// TestLikeUniversalWildcardMatchesAnyString is property 10's first
// clause: '%' matches every string.
func TestLikeUniversalWildcardMatchesAnyString(t *testing.T) {
	for _, s := range []string{"", "a", "hello world", "日本語"} {
		if !Like(s, "%", true) {
			t.Errorf("Like(%q, %%) = false, want true", s)
		}
	}
}

// TestLikeEmptyStringNeverMatchesSingleWildcard is property 10's second
// clause: '' LIKE '_' = false, since '_' requires exactly one rune.
func TestLikeEmptyStringNeverMatchesSingleWildcard(t *testing.T) {
	if Like("", "_", true) {
		t.Error(`Like("", "_") = true, want false`)
	}
}

// TestLikeLiteralSelfMatch is property 10's third clause: a string with
// no wildcard characters always matches itself.
func TestLikeLiteralSelfMatch(t *testing.T) {
	for _, s := range []string{"", "hello", "plain", "123"} {
		if !Like(s, s, true) {
			t.Errorf("Like(%q, %q) = false, want true", s, s)
		}
	}
}

func TestLikePatternSemantics(t *testing.T) {
	tests := []struct {
		text, pattern string
		want          bool
	}{
		{"hello", "h_llo", true},
		{"hello", "h_llo", true},
		{"hllo", "h_llo", false},
		{"hello world", "hello%", true},
		{"hello", "%llo", true},
		{"hello", "%xyz%", false},
		{"", "%", true},
		{"abc", "a%c", true},
		{"ac", "a%c", true},
	}
	for _, tt := range tests {
		if got := Like(tt.text, tt.pattern, true); got != tt.want {
			t.Errorf("Like(%q, %q) = %v, want %v", tt.text, tt.pattern, got, tt.want)
		}
	}
}

func TestLikeCaseInsensitiveFolding(t *testing.T) {
	if Like("HELLO", "hello", true) {
		t.Error("case-sensitive Like should not fold case")
	}
	if !Like("HELLO", "hello", false) {
		t.Error("case-insensitive Like should fold case")
	}
}
