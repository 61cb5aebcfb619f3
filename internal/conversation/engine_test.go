package conversation

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxpost/internal/interpreter"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	p, err := interpreter.New(interpreter.Options{})
	require.NoError(t, err)
	return NewEngine(p, nil)
}

func TestSessionLifecycle(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	id := e.StartSession()

	// Nothing to edit yet.
	reply, err := e.Handle(ctx, id, "make it shorter")
	require.NoError(t, err)
	assert.False(t, reply.Executed)
	assert.NotEmpty(t, reply.Text)

	// Kick off generation.
	reply, err = e.Handle(ctx, id, "create a post about my trip")
	require.NoError(t, err)
	assert.True(t, reply.Executed)

	s, ok := e.Session(id)
	require.True(t, ok)
	assert.Equal(t, interpreter.StateGenerating, s.State)

	// Publishing mid-generation is blocked with a wait message.
	reply, err = e.Handle(ctx, id, "publish it")
	require.NoError(t, err)
	assert.False(t, reply.Executed)
	assert.Contains(t, strings.ToLower(reply.Text), "wait")

	// Draft arrives; edits become legal.
	require.NoError(t, e.CompleteGeneration(id))
	reply, err = e.Handle(ctx, id, "make it more professional")
	require.NoError(t, err)
	assert.True(t, reply.Executed)
	require.NotNil(t, reply.Command.Params)
	assert.Equal(t, "professional", reply.Command.Params.Tone)

	s, _ = e.Session(id)
	assert.Equal(t, interpreter.StateEditing, s.State)

	// Publish and wind down.
	reply, err = e.Handle(ctx, id, "publish it")
	require.NoError(t, err)
	assert.True(t, reply.Executed)
	require.NoError(t, e.CompletePublish(id))

	s, _ = e.Session(id)
	assert.Equal(t, interpreter.StateIdle, s.State)
}

func TestUnknownUtteranceGetsSuggestions(t *testing.T) {
	e := newEngine(t)
	id := e.StartSession()

	reply, err := e.Handle(context.Background(), id, "flibber the jabberwock")
	require.NoError(t, err)
	assert.False(t, reply.Executed)
	assert.Equal(t, interpreter.CommandUnknown, reply.Command.Type)
	assert.NotEmpty(t, reply.Suggestions)
	assert.Contains(t, strings.ToLower(reply.Text), "did you mean")
}

func TestHistoryRecordsBothTurns(t *testing.T) {
	e := newEngine(t)
	id := e.StartSession()

	_, err := e.Handle(context.Background(), id, "create a post")
	require.NoError(t, err)

	s, ok := e.Session(id)
	require.True(t, ok)
	require.Len(t, s.Turns, 2)
	assert.Equal(t, "user", s.Turns[0].Role)
	assert.Equal(t, "create a post", s.Turns[0].Content)
	require.NotNil(t, s.Turns[0].Command)
	assert.Equal(t, interpreter.CommandGenerate, s.Turns[0].Command.Type)
	assert.Equal(t, "assistant", s.Turns[1].Role)
}

func TestUnknownSession(t *testing.T) {
	e := newEngine(t)
	_, err := e.Handle(context.Background(), uuid.New(), "publish it")
	assert.Error(t, err)
	assert.Error(t, e.CompleteGeneration(uuid.New()))
}

func TestCompleteGenerationRequiresGeneratingState(t *testing.T) {
	e := newEngine(t)
	id := e.StartSession()
	assert.Error(t, e.CompleteGeneration(id)) // still idle
}

func TestCancelReturnsToIdle(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	id := e.StartSession()

	_, err := e.Handle(ctx, id, "create a post")
	require.NoError(t, err)
	require.NoError(t, e.CompleteGeneration(id))

	reply, err := e.Handle(ctx, id, "never mind")
	require.NoError(t, err)
	assert.True(t, reply.Executed)

	s, _ := e.Session(id)
	assert.Equal(t, interpreter.StateIdle, s.State)
}
