package interpreter

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConfidenceThreshold gates both fallback invocation and suggestion
// generation.
const DefaultConfidenceThreshold = 0.7

// batchFanout bounds concurrent fallback calls during ParseBatch.
const batchFanout = 8

// Options configures a Parser. The zero value is valid: pattern-matching
// only, default threshold, no learned phrases, nop logger.
type Options struct {
	// Classifier is the optional remote fallback. Nil disables fallback
	// and the parser never waits on the network.
	Classifier Client

	// ConfidenceThreshold below which the fallback is consulted and
	// suggestions are produced. Zero selects the default (0.7); values
	// outside [0,1] are a construction-time error.
	ConfidenceThreshold float64

	// Learned resolves user-taught phrases before generic matching.
	Learned PhraseSource

	// Logger receives debug records for fallback traffic. Nil means nop.
	Logger *zap.Logger
}

// Parser is the single entry point for turning utterances into commands.
// Safe for concurrent use: the pattern library is read-only and every parse
// builds a fresh ParsedCommand.
type Parser struct {
	matcher    *Matcher
	validator  *Validator
	classifier Client
	learned    PhraseSource
	threshold  float64
	logger     *zap.Logger
}

// New builds a Parser. The only failure mode is malformed configuration;
// user input never errors after construction.
func New(opts Options) (*Parser, error) {
	threshold := opts.ConfidenceThreshold
	if threshold == 0 {
		threshold = DefaultConfidenceThreshold
	}
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("confidence threshold %v outside [0,1]", opts.ConfidenceThreshold)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{
		matcher:    NewMatcher(),
		validator:  NewValidator(),
		classifier: opts.Classifier,
		learned:    opts.Learned,
		threshold:  threshold,
		logger:     logger,
	}, nil
}

// Threshold returns the configured confidence threshold.
func (p *Parser) Threshold() float64 { return p.threshold }

// Validator exposes the state rule table so host engines can register
// additional states.
func (p *Parser) Validator() *Validator { return p.validator }

// Parse classifies a single utterance. It never fails: the worst case for
// malformed input is an unknown command with zero confidence. The context
// bounds only the optional fallback call.
func (p *Parser) Parse(ctx context.Context, utterance string) ParsedCommand {
	normalized := Normalize(utterance)
	if normalized == "" {
		return ParsedCommand{Type: CommandUnknown, Confidence: 0, RawText: utterance}
	}

	if p.learned != nil {
		if t, conf, ok := p.learned.Lookup(ctx, normalized); ok && t.Valid() && t != CommandUnknown {
			return ParsedCommand{
				Type:       t,
				Confidence: clamp(conf),
				Params:     ExtractParameters(t, normalized),
				RawText:    utterance,
			}
		}
	}

	cmd := p.matcher.Match(normalized)
	cmd.RawText = utterance
	cmd.Params = ExtractParameters(cmd.Type, normalized)

	if cmd.Confidence < p.threshold && p.classifier != nil {
		cmd = p.fallback(ctx, normalized, cmd)
	}
	return cmd
}

// fallback delegates to the remote classifier and normalizes its answer
// into the closed command set. Any failure, timeout, or useless answer
// degrades to the pattern-matcher result: a classifier outage must never
// block parsing.
func (p *Parser) fallback(ctx context.Context, normalized string, pattern ParsedCommand) ParsedCommand {
	res, err := p.classifier.Classify(ctx, normalized, CommandTypes())
	if err != nil {
		p.logger.Debug("fallback classification failed, keeping pattern result",
			zap.String("utterance", normalized),
			zap.Error(err))
		return pattern
	}

	t := CommandType(res.Type)
	if !t.Valid() {
		t = CommandUnknown
	}
	if t == CommandUnknown {
		return pattern
	}

	cmd := ParsedCommand{
		Type:       t,
		Confidence: clamp(res.Confidence),
		Params:     paramsFromMap(res.Parameters),
		RawText:    pattern.RawText,
	}
	if cmd.Params == nil {
		cmd.Params = ExtractParameters(t, normalized)
	}
	p.logger.Debug("fallback classification accepted",
		zap.String("utterance", normalized),
		zap.String("command", string(t)),
		zap.Float64("confidence", cmd.Confidence))
	return cmd
}

func paramsFromMap(m map[string]string) *Parameters {
	if len(m) == 0 {
		return nil
	}
	p := &Parameters{
		Tone:       m["tone"],
		Intensity:  m["intensity"],
		ImageStyle: m["imageStyle"],
		Language:   m["language"],
	}
	if *p == (Parameters{}) {
		return nil
	}
	return p
}

// ParseBatch parses each utterance independently and returns results in
// input order. With no classifier configured this is a plain sequential
// loop; with one configured the network-bound parses fan out, writing into
// indexed slots so ordering is preserved either way.
func (p *Parser) ParseBatch(ctx context.Context, utterances []string) []ParsedCommand {
	out := make([]ParsedCommand, len(utterances))
	if len(utterances) == 0 {
		return out
	}
	if p.classifier == nil {
		for i, u := range utterances {
			out[i] = p.Parse(ctx, u)
		}
		return out
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchFanout)
	for i, u := range utterances {
		g.Go(func() error {
			out[i] = p.Parse(gctx, u)
			return nil
		})
	}
	// Parse never errors; Wait only synchronizes.
	_ = g.Wait()
	return out
}

// Suggestions returns canonical example phrases the user could have meant.
// Non-empty whenever the command's confidence is below the threshold, empty
// once confidence clears it.
func (p *Parser) Suggestions(cmd ParsedCommand) []string {
	if cmd.Confidence >= p.threshold {
		return nil
	}
	if cmd.Type != CommandUnknown {
		return Examples(cmd.Type)
	}
	spread := []CommandType{
		CommandGenerate, CommandEdit, CommandRegenerate,
		CommandPublish, CommandChangeTone, CommandTranslate,
	}
	out := make([]string, 0, len(spread))
	for _, t := range spread {
		if ex := Examples(t); len(ex) > 0 {
			out = append(out, ex[0])
		}
	}
	return out
}

// CanExecute reports whether cmd may execute in the given session state.
func (p *Parser) CanExecute(cmd ParsedCommand, s State) bool {
	return p.validator.CanExecute(cmd.Type, s)
}

// ExecutionError returns the user-facing rejection for cmd in state s, or
// an empty string when the command is legal.
func (p *Parser) ExecutionError(cmd ParsedCommand, s State) string {
	return p.validator.ExecutionError(cmd.Type, s)
}
