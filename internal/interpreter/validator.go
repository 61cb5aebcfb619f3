package interpreter

// State names the phase of the surrounding editing/publishing session. The
// interpreter never owns or mutates it; the conversation engine passes the
// current value in for validation.
type State string

const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateEditing    State = "editing"
	StatePublishing State = "publishing"
)

// mutationTypes are the commands that operate on an existing draft.
var mutationTypes = []CommandType{
	CommandEdit, CommandRegenerate, CommandApprove, CommandCancel,
	CommandChangeImage, CommandChangeTone, CommandAddSection,
	CommandRemoveSection, CommandMakeLonger, CommandMakeShorter,
	CommandAddEmoji, CommandRemoveEmoji, CommandTranslate,
}

// Validator decides whether a command type may execute in a given state.
// It is a pure lookup over a table built at construction; host engines with
// extra states register them via Allow rather than forking the table.
type Validator struct {
	allowed map[State]map[CommandType]bool
	reasons map[State]string
}

// NewValidator builds the default rule table: generate is legal everywhere,
// every draft mutation and publish only while editing.
func NewValidator() *Validator {
	v := &Validator{
		allowed: make(map[State]map[CommandType]bool),
		reasons: map[State]string{
			StateGenerating: "Please wait until the current draft finishes generating.",
			StatePublishing: "Please wait until publishing completes.",
			StateIdle:       "There is no draft to work on yet. Ask me to create one first.",
		},
	}
	v.Allow(StateEditing, mutationTypes...)
	v.Allow(StateEditing, CommandPublish)
	return v
}

// Allow marks the given command types as executable in a state. Generate
// never needs registering; it is legal in every state, known or not.
func (v *Validator) Allow(s State, types ...CommandType) {
	set := v.allowed[s]
	if set == nil {
		set = make(map[CommandType]bool)
		v.allowed[s] = set
	}
	for _, t := range types {
		set[t] = true
	}
}

// SetReason installs the rejection message used for commands blocked in s.
func (v *Validator) SetReason(s State, msg string) {
	v.reasons[s] = msg
}

// CanExecute reports whether a command of type t is legal in state s. Pure,
// no side effects. Unknown commands are never executable.
func (v *Validator) CanExecute(t CommandType, s State) bool {
	if t == CommandUnknown {
		return false
	}
	if t == CommandGenerate {
		return true
	}
	return v.allowed[s][t]
}

// ExecutionError returns an empty string when the command may execute, and
// otherwise a short user-facing message explaining why not.
func (v *Validator) ExecutionError(t CommandType, s State) string {
	if v.CanExecute(t, s) {
		return ""
	}
	if t == CommandUnknown {
		return "I didn't catch that. Try rephrasing your request."
	}
	if msg, ok := v.reasons[s]; ok {
		return msg
	}
	return "That can't be done right now. Please wait and try again."
}
