package interpreter

import "strings"

// Normalize lowercases an utterance, strips punctuation, and collapses
// internal whitespace. Apostrophes are dropped rather than replaced so
// contractions stay single tokens ("don't" -> "dont"). Matching runs on the
// normalized form only; the original text is preserved on ParsedCommand.
func Normalize(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(raw))
	lastSpace := true
	for _, r := range raw {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastSpace = false
		case r == '\'' || r == '’':
			// drop
		default:
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

func tokenize(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}
