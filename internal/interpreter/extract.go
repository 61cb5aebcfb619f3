package interpreter

import (
	"regexp"
	"strings"
)

// Parameter extraction is pure: same normalized input, same output. A
// failed extraction simply omits the field; extractors never error.

var (
	languageRE   = regexp.MustCompile(`\b(?:to|into|in)\s+([a-z]+)\b`)
	imageStyleRE = regexp.MustCompile(`\b([a-z]+)\s+(?:image|picture|photo|pic)\b`)
)

// stopCaptures are words the image-style and language extractors never
// treat as a real value.
var stopCaptures = map[string]bool{
	"a": true, "an": true, "the": true, "my": true, "this": true,
	"that": true, "new": true, "different": true, "another": true,
	"other": true, "it": true,
}

// ExtractParameters pulls the structured values a command type defines out
// of the normalized utterance. Returns nil when the type has no extractable
// fields or none were found, so callers can rely on Params == nil meaning
// "no parameters".
func ExtractParameters(t CommandType, normalized string) *Parameters {
	switch t {
	case CommandChangeTone:
		return extractTone(normalized)
	case CommandTranslate:
		return extractLanguage(normalized)
	case CommandChangeImage:
		return extractImageStyle(normalized)
	}
	return nil
}

// extractTone finds the first tone keyword and an adjacent intensity
// modifier. Comparative forms ("spicier") imply "more"; a bare tone word
// leaves intensity empty.
func extractTone(normalized string) *Parameters {
	tokens := tokenize(normalized)
	for i, tok := range tokens {
		canonical, ok := toneWords[tok]
		if !ok {
			continue
		}
		p := &Parameters{Tone: canonical}
		if tok != canonical {
			p.Intensity = IntensityMore
			return p
		}
		// Look back a short window for a modifier: "more", "a little
		// less", "very professional".
		lo := i - 3
		if lo < 0 {
			lo = 0
		}
		for j := i - 1; j >= lo; j-- {
			switch tokens[j] {
			case "more", "very", "really", "extra":
				p.Intensity = IntensityMore
				return p
			case "less":
				p.Intensity = IntensityLess
				return p
			}
		}
		return p
	}
	return nil
}

// extractLanguage recognizes "to X", "into X", "in X" and lower-cases the
// captured language name. The last marker wins so trailing phrasing like
// "put it in a friendly way in spanish" resolves correctly.
func extractLanguage(normalized string) *Parameters {
	matches := languageRE.FindAllStringSubmatch(normalized, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		lang := strings.ToLower(matches[i][1])
		if stopCaptures[lang] || lang == "to" || lang == "into" {
			continue
		}
		return &Parameters{Language: lang}
	}
	return nil
}

// extractImageStyle captures the descriptive word immediately before
// "image"/"picture"/"photo", skipping articles and other non-style words.
func extractImageStyle(normalized string) *Parameters {
	m := imageStyleRE.FindStringSubmatch(normalized)
	if len(m) < 2 {
		return nil
	}
	style := m[1]
	if stopCaptures[style] {
		return nil
	}
	return &Parameters{ImageStyle: style}
}
