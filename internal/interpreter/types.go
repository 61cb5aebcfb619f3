// Package interpreter turns free-form utterances from a content-editing
// session into typed, parameterized commands. The matcher is a pure function
// over a static pattern library; the only asynchronous boundary is the
// optional fallback classifier consulted when pattern confidence is weak.
package interpreter

import "context"

// CommandType is the closed set of intents the conversation engine acts on.
type CommandType string

const (
	CommandGenerate      CommandType = "generate"
	CommandEdit          CommandType = "edit"
	CommandRegenerate    CommandType = "regenerate"
	CommandPublish       CommandType = "publish"
	CommandApprove       CommandType = "approve"
	CommandCancel        CommandType = "cancel"
	CommandChangeImage   CommandType = "change_image"
	CommandChangeTone    CommandType = "change_tone"
	CommandAddSection    CommandType = "add_section"
	CommandRemoveSection CommandType = "remove_section"
	CommandMakeLonger    CommandType = "make_longer"
	CommandMakeShorter   CommandType = "make_shorter"
	CommandAddEmoji      CommandType = "add_emoji"
	CommandRemoveEmoji   CommandType = "remove_emoji"
	CommandTranslate     CommandType = "translate"
	CommandUnknown       CommandType = "unknown"
)

// CommandTypes returns every actionable command type, excluding unknown.
// The slice is freshly allocated; callers may reorder it.
func CommandTypes() []CommandType {
	return []CommandType{
		CommandGenerate,
		CommandEdit,
		CommandRegenerate,
		CommandPublish,
		CommandApprove,
		CommandCancel,
		CommandChangeImage,
		CommandChangeTone,
		CommandAddSection,
		CommandRemoveSection,
		CommandMakeLonger,
		CommandMakeShorter,
		CommandAddEmoji,
		CommandRemoveEmoji,
		CommandTranslate,
	}
}

// Valid reports whether t is a member of the closed command set.
func (t CommandType) Valid() bool {
	switch t {
	case CommandGenerate, CommandEdit, CommandRegenerate, CommandPublish,
		CommandApprove, CommandCancel, CommandChangeImage, CommandChangeTone,
		CommandAddSection, CommandRemoveSection, CommandMakeLonger,
		CommandMakeShorter, CommandAddEmoji, CommandRemoveEmoji,
		CommandTranslate, CommandUnknown:
		return true
	}
	return false
}

// Intensity values for tone adjustments.
const (
	IntensityMore = "more"
	IntensityLess = "less"
)

// Parameters carries values extracted from a matched utterance. Only the
// fields that the command type defines are ever populated; an empty string
// means the value was not present in the utterance.
type Parameters struct {
	Tone       string `json:"tone,omitempty"`
	Intensity  string `json:"intensity,omitempty"`
	ImageStyle string `json:"imageStyle,omitempty"`
	Language   string `json:"language,omitempty"`
}

// ParsedCommand is the interpreter's output value. It is created fresh per
// parse call and never mutated afterwards. Params is nil when the command
// type has no extractable fields or none were found.
type ParsedCommand struct {
	Type       CommandType `json:"type"`
	Confidence float64     `json:"confidence"`
	Params     *Parameters `json:"parameters,omitempty"`
	RawText    string      `json:"rawText"`
}

// Classification is the normalized response of a remote fallback classifier.
type Classification struct {
	Type       string            `json:"command"`
	Confidence float64           `json:"confidence"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// Client is the capability consulted when pattern matching is inconclusive.
// Implementations may block on the network; the parser passes its context
// through so callers can bound the call. A nil Client disables fallback
// entirely and the interpreter runs pattern-matching only.
type Client interface {
	Classify(ctx context.Context, utterance string, allowed []CommandType) (Classification, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, utterance string, allowed []CommandType) (Classification, error)

// Classify implements Client.
func (f ClientFunc) Classify(ctx context.Context, utterance string, allowed []CommandType) (Classification, error) {
	return f(ctx, utterance, allowed)
}

// PhraseSource resolves user-taught phrases to command types. Lookup takes
// the normalized utterance and reports whether an exact mapping exists.
// Implementations must be safe for concurrent use.
type PhraseSource interface {
	Lookup(ctx context.Context, normalized string) (CommandType, float64, bool)
}
