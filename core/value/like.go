package value

import "strings"

// foldLower implements "Unicode simple lowercase" for case-insensitive
// LIKE: strings.ToLower maps each rune on its own through
// unicode.ToLower, with no context-dependent or multi-rune mappings.
func foldLower(s string) string { return strings.ToLower(s) }

// Like implements SQL LIKE: '%' matches any run of characters (including
// none), '_' matches exactly one rune, and there is no escape-character
// support. Matching is done over Unicode scalar values (runes), not
// bytes, so the text and pattern are compared rune-by-rune.
func Like(text, pattern string, caseSensitive bool) bool {
	if !caseSensitive {
		text = foldLower(text)
		pattern = foldLower(pattern)
	}
	return likeMatch([]rune(text), []rune(pattern))
}

// likeMatch is a bottom-up dynamic-programming glob matcher specialized
// to SQL's two wildcards.
func likeMatch(text, pattern []rune) bool {
	// dp[i][j] = text[i:] matches pattern[j:]
	tn, pn := len(text), len(pattern)
	dp := make([][]bool, tn+1)
	for i := range dp {
		dp[i] = make([]bool, pn+1)
	}
	dp[tn][pn] = true
	for j := pn - 1; j >= 0; j-- {
		if pattern[j] == '%' {
			dp[tn][j] = dp[tn][j+1]
		}
	}
	for i := tn - 1; i >= 0; i-- {
		for j := pn - 1; j >= 0; j-- {
			switch pattern[j] {
			case '%':
				dp[i][j] = dp[i][j+1] || dp[i+1][j]
			case '_':
				dp[i][j] = dp[i+1][j+1]
			default:
				dp[i][j] = text[i] == pattern[j] && dp[i+1][j+1]
			}
		}
	}
	return dp[0][0]
}
