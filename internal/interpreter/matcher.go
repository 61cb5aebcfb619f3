package interpreter

import (
	"github.com/agnivade/levenshtein"
)

// Matcher scores a normalized utterance against the pattern library. It is
// a pure function of (utterance, rules): no shared mutable state, safe for
// concurrent use.
type Matcher struct {
	rules []Rule
}

// NewMatcher builds a matcher over the default pattern library.
func NewMatcher() *Matcher {
	return &Matcher{rules: sortedRules(defaultRules)}
}

// Pattern-hit confidence is 0.60 plus a priority bonus, so every idiom in
// the library clears the default 0.7 threshold and higher-priority idioms
// score strictly higher. Keyword hits stay below any pattern hit:
// multi-keyword tops out at 0.69, a single exact keyword around 0.49, a
// fuzzy-only hit around 0.39. This satisfies the required ordering
// idiom > multi-keyword > single keyword without reproducing any
// particular historical formula.
func patternScore(priority int) float64 {
	return clamp((60 + float64(priority)/4) / 100)
}

func keywordScore(exact, fuzzy, priority int) float64 {
	matched := exact + fuzzy
	if matched == 0 {
		return 0
	}
	var s float64
	switch {
	case matched >= 2:
		extra := matched - 1
		if extra > 3 {
			extra = 3
		}
		s = 50 + 5*float64(extra) + float64(priority)/10
		if s > 69 {
			s = 69
		}
	case exact == 1:
		s = 40 + float64(priority)/10
	default:
		s = 30 + float64(priority)/10
	}
	s -= 4 * float64(fuzzy)
	if s < 25 {
		s = 25
	}
	return clamp(s / 100)
}

// Match returns the best command type for a normalized utterance, or an
// unknown command with zero confidence when nothing in the library bites.
// Rules are walked in priority order and the first pattern hit
// short-circuits everything below it; keywords are consulted only when no
// pattern in the whole library matched.
func (m *Matcher) Match(normalized string) ParsedCommand {
	if normalized == "" {
		return ParsedCommand{Type: CommandUnknown, Confidence: 0}
	}

	for _, rule := range m.rules {
		for _, p := range rule.Patterns {
			if p.MatchString(normalized) {
				return ParsedCommand{
					Type:       rule.Type,
					Confidence: patternScore(rule.Priority),
				}
			}
		}
	}

	tokens := tokenize(normalized)
	best := ParsedCommand{Type: CommandUnknown, Confidence: 0}
	for _, rule := range m.rules {
		exact, fuzzy := countKeywordHits(tokens, rule.Keywords)
		score := keywordScore(exact, fuzzy, rule.Priority)
		if score > best.Confidence {
			best = ParsedCommand{Type: rule.Type, Confidence: score}
		}
		// Ties keep the earlier rule: m.rules is already ordered by
		// priority then type name, so the outcome is deterministic.
	}
	return best
}

// countKeywordHits tallies exact and fuzzy token matches against a rule's
// keyword list. Fuzzy matching tolerates small typos ("publsh") using a
// length-scaled levenshtein limit; keywords shorter than five runes must
// match exactly.
func countKeywordHits(tokens []string, keywords []string) (exact, fuzzy int) {
	for _, kw := range keywords {
		hit, fuzzed := false, false
		for _, tok := range tokens {
			if tok == kw {
				hit, fuzzed = true, false
				break
			}
			if len(kw) >= 5 && levenshtein.ComputeDistance(tok, kw) <= fuzzyLimit(len(kw)) {
				hit, fuzzed = true, true
			}
		}
		if hit {
			if fuzzed {
				fuzzy++
			} else {
				exact++
			}
		}
	}
	return exact, fuzzy
}

func fuzzyLimit(length int) int {
	if length <= 8 {
		return 1
	}
	return 2
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
