package bot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzaytsev/gotbot/internal/content"
	"github.com/mzaytsev/gotbot/internal/engine"
)

// scriptedExecutor replays canned step responses and records every request it
// receives. The last response repeats once the script runs out.
type scriptedExecutor struct {
	responses []string
	err       error
	calls     []engine.StepRequest
}

func (s *scriptedExecutor) Think(_ context.Context, req engine.StepRequest) (string, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return "", s.err
	}
	i := len(s.calls) - 1
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

func TestRespond_EarlyTermination(t *testing.T) {
	exec := &scriptedExecutor{responses: []string{
		"thinking about it",
		"done thinking FINAL_ANSWER: 42",
	}}
	b := New(exec, 4)
	sess := NewSession(10)

	answer, err := b.Respond(context.Background(), sess, "what is six times seven?")
	require.NoError(t, err)

	// The marker on call 2 must stop the loop short of the cap
	assert.Equal(t, "42", answer)
	assert.Len(t, exec.calls, 2)

	exchanges := sess.Memory.Exchanges()
	require.Len(t, exchanges, 1)
	assert.Equal(t, "what is six times seven?", exchanges[0].User)
	assert.Equal(t, "42", exchanges[0].Assistant)
}

func TestRespond_IterationCapFallback(t *testing.T) {
	exec := &scriptedExecutor{responses: []string{"still mulling it over"}}
	b := New(exec, 4)
	sess := NewSession(10)

	answer, err := b.Respond(context.Background(), sess, "an unanswerable question")
	require.NoError(t, err)

	// Exactly cap calls, and a non-empty forced answer
	assert.Len(t, exec.calls, 4)
	assert.Equal(t, "still mulling it over", answer)
	assert.Equal(t, 1, sess.Memory.Len())
}

func TestRespond_FallbackIsLastChainSegment(t *testing.T) {
	exec := &scriptedExecutor{responses: []string{"alpha", "beta", "gamma", "delta"}}
	b := New(exec, 4)
	sess := NewSession(10)

	answer, err := b.Respond(context.Background(), sess, "question")
	require.NoError(t, err)

	assert.Equal(t, "delta", answer)
}

func TestRespond_StepFlagsAndChainFeedback(t *testing.T) {
	exec := &scriptedExecutor{responses: []string{"first step", "second step", "FINAL_ANSWER: done"}}
	b := New(exec, 4)
	sess := NewSession(10)

	_, err := b.Respond(context.Background(), sess, "question")
	require.NoError(t, err)

	require.Len(t, exec.calls, 3)
	assert.True(t, exec.calls[0].First)
	assert.False(t, exec.calls[1].First)
	assert.False(t, exec.calls[2].First)

	assert.Equal(t, "", exec.calls[0].CurrentChain)
	assert.Equal(t, "first step", exec.calls[1].CurrentChain)
	assert.Equal(t, "first step\n\nsecond step", exec.calls[2].CurrentChain)
}

func TestRespond_NoCommitOnFailure(t *testing.T) {
	cause := errors.New("rate limited")
	exec := &scriptedExecutor{err: &engine.InvocationError{Err: cause}}
	b := New(exec, 4)
	sess := NewSession(10)

	_, err := b.Respond(context.Background(), sess, "question")

	require.Error(t, err)
	var invocationErr *engine.InvocationError
	assert.ErrorAs(t, err, &invocationErr)
	assert.Equal(t, 0, sess.Memory.Len())
	assert.Len(t, exec.calls, 1)
}

func TestRespond_SessionUsableAfterFailure(t *testing.T) {
	exec := &scriptedExecutor{err: &engine.InvocationError{Err: errors.New("boom")}}
	b := New(exec, 4)
	sess := NewSession(10)

	_, err := b.Respond(context.Background(), sess, "first")
	require.Error(t, err)

	exec.err = nil
	exec.responses = []string{"FINAL_ANSWER: recovered"}

	answer, err := b.Respond(context.Background(), sess, "second")
	require.NoError(t, err)
	assert.Equal(t, "recovered", answer)
	assert.Equal(t, 1, sess.Memory.Len())
}

func TestRespond_ResetIsolation(t *testing.T) {
	exec := &scriptedExecutor{responses: []string{"FINAL_ANSWER: one", "FINAL_ANSWER: two"}}
	b := New(exec, 4)
	sess := NewSession(10)

	_, err := b.Respond(context.Background(), sess, "first question")
	require.NoError(t, err)
	_, err = b.Respond(context.Background(), sess, "second question")
	require.NoError(t, err)

	// The second request starts from a clean thought buffer
	require.Len(t, exec.calls, 2)
	assert.True(t, exec.calls[1].First)
	assert.Equal(t, "", exec.calls[1].CurrentChain)
	assert.Equal(t, []string{"FINAL_ANSWER: two"}, sess.Brain.Steps())
}

func TestRespond_HistoryFlowsIntoNextRequest(t *testing.T) {
	exec := &scriptedExecutor{responses: []string{"FINAL_ANSWER: blue"}}
	b := New(exec, 4)
	sess := NewSession(10)

	_, err := b.Respond(context.Background(), sess, "favorite color?")
	require.NoError(t, err)
	_, err = b.Respond(context.Background(), sess, "why?")
	require.NoError(t, err)

	require.Len(t, exec.calls, 2)
	assert.Equal(t, "", exec.calls[0].History)
	assert.Contains(t, exec.calls[1].History, "User: favorite color?")
	assert.Contains(t, exec.calls[1].History, "Assistant: blue")
}

func TestRespond_MultimodalPlaceholderInHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G'}, 0o644))

	exec := &scriptedExecutor{responses: []string{"FINAL_ANSWER: a nice photo"}}
	b := New(exec, 4)
	sess := NewSession(10)

	_, err := b.Respond(context.Background(), sess, path)
	require.NoError(t, err)

	require.Len(t, exec.calls, 1)
	assert.True(t, exec.calls[0].Content.HasImages())

	exchanges := sess.Memory.Exchanges()
	require.Len(t, exchanges, 1)
	assert.Equal(t, content.MultimodalPlaceholder, exchanges[0].User)
}

func TestRespond_UnsupportedFileFallsBackToText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.tar")
	require.NoError(t, os.WriteFile(path, []byte("not extractable"), 0o644))

	exec := &scriptedExecutor{responses: []string{"FINAL_ANSWER: noted"}}
	b := New(exec, 4)
	sess := NewSession(10)

	answer, err := b.Respond(context.Background(), sess, path)
	require.NoError(t, err)

	assert.Equal(t, "noted", answer)
	// The raw reference is treated as literal text
	require.Len(t, exec.calls, 1)
	assert.Equal(t, path, exec.calls[0].Content.PromptText())
}

func TestNew_DefaultIterationCap(t *testing.T) {
	b := New(&scriptedExecutor{}, 0)
	assert.Equal(t, DefaultMaxIterations, b.maxIterations)
}
