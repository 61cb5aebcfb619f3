package interpreter

import (
	"regexp"
	"sort"
)

// Rule maps a command type to the language that expresses it. Patterns are
// matched against the normalized utterance and represent idiomatic phrasing;
// Keywords are single-token associations used only when no pattern anywhere
// in the library matches. Higher-priority rules are evaluated first, so a
// specific idiom ("start over") short-circuits a generic rule that would
// also bite ("start" under generate).
type Rule struct {
	Type     CommandType
	Patterns []*regexp.Regexp
	Keywords []string
	Priority int
	Examples []string
}

func pat(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// toneWords maps surface tone vocabulary, including comparative forms, to
// the canonical tone. Comparatives imply intensity "more".
var toneWords = map[string]string{
	"spicy":        "spicy",
	"spicier":      "spicy",
	"casual":       "casual",
	"professional": "professional",
	"serious":      "serious",
	"funny":        "funny",
	"funnier":      "funny",
	"friendly":     "friendly",
	"friendlier":   "friendly",
	"formal":       "formal",
	"playful":      "playful",
}

const toneAlt = `(spicy|spicier|casual|professional|serious|funny|funnier|friendly|friendlier|formal|playful)`

// languageNames are the language keywords the matcher recognizes directly.
// The extractor itself accepts any "to X" capture, so translation still
// works for languages outside this list as long as "translate" appears.
var languageNames = []string{
	"spanish", "french", "german", "italian", "portuguese", "japanese",
	"chinese", "korean", "english", "hindi", "arabic", "russian", "dutch",
}

// defaultRules is the static pattern library. Loaded once, read-only, safe
// to share across concurrent parses.
var defaultRules = []Rule{
	{
		Type:     CommandCancel,
		Priority: 90,
		Patterns: pat(
			`\bnever mind\b`,
			`\bforget (it|this|that|about it)\b`,
			`\b(cancel|abort|stop)\b`,
			`\bscrap (it|this|that)\b`,
		),
		Keywords: []string{"cancel", "nevermind", "abort", "quit"},
		Examples: []string{
			"never mind",
			"cancel",
			"forget it",
			"stop",
			"scrap that",
		},
	},
	{
		Type:     CommandRegenerate,
		Priority: 90,
		Patterns: pat(
			`\bstart (over|again|fresh)\b`,
			`\btry again\b`,
			`\b(redo|regenerate)\b`,
			`\bdo it again\b`,
			`\b(i )?dont like (it|this|that)\b`,
			`\bsomething (else|different)\b`,
			`\bnot (quite )?what i (wanted|meant|asked)\b`,
		),
		Keywords: []string{"regenerate", "redo", "retry"},
		Examples: []string{
			"start over",
			"try again",
			"regenerate it",
			"I don't like it",
			"give me something different",
			"do it again",
		},
	},
	{
		Type:     CommandTranslate,
		Priority: 90,
		Patterns: pat(
			`\btranslat(e|ed|ion)\b`,
			`\bsay (it|this|that) in [a-z]+\b`,
			`\b(in|into|to) (`+altWords(languageNames)+`)\b`,
		),
		Keywords: []string{"translate"},
		Examples: []string{
			"translate to Japanese",
			"translate it into Spanish",
			"say it in French",
			"translate this",
		},
	},
	{
		Type:     CommandRemoveEmoji,
		Priority: 85,
		Patterns: pat(
			`\b(remove|delete|drop|strip|lose)\b.*\bemojis?\b`,
			`\b(no|without|fewer|less)\b.*\bemojis?\b`,
			`\b(take out|get rid of)\b.*\bemojis?\b`,
		),
		Examples: []string{
			"remove the emojis",
			"no emojis please",
			"get rid of the emojis",
			"take out the emoji",
		},
	},
	{
		Type:     CommandMakeShorter,
		Priority: 85,
		Patterns: pat(
			`\btoo long\b`,
			`\b(shorter|shorten|condense)\b`,
			`\b(trim|cut) (it|this|that)( down)?\b`,
			`\bmore concise\b`,
		),
		Keywords: []string{"shorter", "shorten", "concise", "condense"},
		Examples: []string{
			"make it shorter",
			"too long",
			"shorten it",
			"more concise please",
			"trim it down",
		},
	},
	{
		Type:     CommandMakeLonger,
		Priority: 85,
		Patterns: pat(
			`\btoo short\b`,
			`\b(longer|lengthen|expand)\b`,
			`\b(more|extra) detail\b`,
			`\bflesh (it|this) out\b`,
		),
		Keywords: []string{"longer", "lengthen", "expand"},
		Examples: []string{
			"make it longer",
			"too short",
			"expand on that",
			"add more detail",
		},
	},
	{
		Type:     CommandPublish,
		Priority: 85,
		Patterns: pat(
			`\b(publish|share|upload)\b`,
			`\bpost (it|this|that|now)\b`,
			`\bpost (on|to) \w+`,
			`^post$`,
			`\bput (it|this) (up|out)\b`,
			`\bgo live\b`,
			`\bship it\b`,
		),
		Keywords: []string{"publish", "post", "share", "upload"},
		Examples: []string{
			"publish it",
			"post this",
			"share it now",
			"publish on X",
			"go live",
		},
	},
	{
		Type:     CommandChangeTone,
		Priority: 80,
		Patterns: pat(
			`\bmake (it|this|that) (sound )?((a (little|bit) )?(more|less) |very |really )?`+toneAlt+`\b`,
			`\b(a (little|bit) )?(more|less|very|really) `+toneAlt+`\b`,
			`\bsound ((more|less) )?`+toneAlt+`\b`,
			`\btone\b`,
			`^`+toneAlt+`( please)?$`,
		),
		Keywords: []string{
			"spicy", "casual", "professional", "serious", "funny",
			"friendly", "formal", "playful", "tone",
		},
		Examples: []string{
			"make it more professional",
			"less serious",
			"make it spicier",
			"change the tone to casual",
			"sound more friendly",
			"tone it down a bit",
		},
	},
	{
		Type:     CommandChangeImage,
		Priority: 80,
		Patterns: pat(
			`\b(change|swap|replace|regenerate|redo)\b.*\b(image|picture|photo)\b`,
			`\b(another|different|new) (image|picture|photo)\b`,
			`\b(image|picture|photo) (instead|please)\b`,
			`\bmake the (image|picture|photo)\b`,
			`\b(use|try|with) a [a-z]+ (image|picture|photo)\b`,
		),
		Keywords: []string{"image", "picture", "photo"},
		Examples: []string{
			"change the image",
			"use a different picture",
			"change to a minimalist image",
			"give me a new photo",
			"swap the picture",
		},
	},
	{
		Type:     CommandRemoveSection,
		Priority: 80,
		Patterns: pat(
			`\b(remove|delete|cut|drop|take out)\b.*\b(section|paragraph|part|intro|conclusion)\b`,
			`\bdont include\b`,
			`\bwithout the (section|paragraph|part|intro|conclusion)\b`,
		),
		Examples: []string{
			"remove the last section",
			"delete that paragraph",
			"don't include the intro",
			"cut the second part",
		},
	},
	{
		Type:     CommandApprove,
		Priority: 80,
		Patterns: pat(
			`\blooks? (good|great|perfect)\b`,
			`\b(approve|approved)\b`,
			`\b(love|like) (it|this|that)\b`,
			`\bthats (it|perfect|great|the one)\b`,
			`\b(im|i am) happy with (it|this|that)\b`,
			`\bgood to go\b`,
			`^(perfect|great)$`,
		),
		Keywords: []string{"approve", "perfect"},
		Examples: []string{
			"looks good",
			"perfect",
			"I love it",
			"approve it",
			"that's great",
			"I'm happy with it",
		},
	},
	{
		Type:     CommandAddEmoji,
		Priority: 75,
		Patterns: pat(
			`\b(add|include|put|insert|use|with|sprinkle)\b.*\bemojis?\b`,
			`\bmore emojis?\b`,
			`\bemojis? please\b`,
		),
		Keywords: []string{"emoji", "emojis"},
		Examples: []string{
			"add emojis",
			"add some emojis",
			"put emojis in it",
			"more emoji",
		},
	},
	{
		Type:     CommandAddSection,
		Priority: 75,
		Patterns: pat(
			`\badd (a|another|one more)? ?(section|paragraph|part)\b`,
			`\b(include|insert) a (section|paragraph|part)\b`,
			`\b(section|paragraph) (about|on|for)\b`,
		),
		Keywords: []string{"section", "paragraph"},
		Examples: []string{
			"add a section about pricing",
			"add another paragraph",
			"include a section on benefits",
		},
	},
	{
		Type:     CommandEdit,
		Priority: 60,
		Patterns: pat(
			`\b(edit|revise|rewrite|reword|tweak|adjust|fix|polish)\b`,
			`\b(change|update|modify) the (wording|text|copy|draft|title|headline|caption|first|second|last)\b`,
		),
		Keywords: []string{"edit", "change", "modify", "update", "revise", "tweak", "fix"},
		Examples: []string{
			"edit the draft",
			"change the wording",
			"fix the second sentence",
			"tweak it a bit",
			"rewrite the intro",
		},
	},
	{
		Type:     CommandGenerate,
		Priority: 55,
		Patterns: pat(
			`\b(create|write|draft|compose|generate|make)( me)?( a| an| some)?( new)? (post|posts|article|caption|content|draft|something|thread)\b`,
			`\bnew post\b`,
			`\bwrite something\b`,
			`\bpost about\b`,
		),
		Keywords: []string{"create", "write", "draft", "compose", "generate", "start"},
		Examples: []string{
			"create a post",
			"write something about coffee",
			"draft a new post",
			"make a post about my trip",
			"generate content",
		},
	},
}

func altWords(words []string) string {
	alt := ""
	for i, w := range words {
		if i > 0 {
			alt += "|"
		}
		alt += regexp.QuoteMeta(w)
	}
	return alt
}

// sortedRules returns the library ordered by priority descending, ties
// broken by type name so evaluation order is deterministic regardless of
// declaration order.
func sortedRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// Examples returns the canonical example phrases for a command type.
func Examples(t CommandType) []string {
	for _, r := range defaultRules {
		if r.Type == t {
			return append([]string(nil), r.Examples...)
		}
	}
	return nil
}
