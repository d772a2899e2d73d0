// Package engine executes single chain-of-thought steps against the model
// endpoint and detects the final-answer marker in model output.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/mzaytsev/gotbot/internal/content"
)

// Generation defaults, overridable through configuration.
const (
	DefaultTemperature     = 0.7
	DefaultMaxOutputTokens = 1024
)

// InvocationError reports a failed model endpoint call. The request that
// triggered it is aborted; the call is never retried.
type InvocationError struct {
	Err error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("model invocation failed: %v", e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// StepRequest carries everything one reasoning step needs.
type StepRequest struct {
	Content      content.Content
	History      string
	CurrentChain string
	First        bool
}

// Thinker renders a step prompt and invokes the model endpoint once per step.
type Thinker struct {
	sender          MessageSender
	model           anthropic.Model
	temperature     float64
	maxOutputTokens int64
}

func NewThinker(sender MessageSender, model anthropic.Model, temperature float64, maxOutputTokens int64) *Thinker {
	if temperature <= 0 {
		temperature = DefaultTemperature
	}
	if maxOutputTokens <= 0 {
		maxOutputTokens = DefaultMaxOutputTokens
	}
	return &Thinker{
		sender:          sender,
		model:           model,
		temperature:     temperature,
		maxOutputTokens: maxOutputTokens,
	}
}

// Think performs one chain-of-thought iteration and returns the raw model
// text. Image segments are sent as content blocks alongside the rendered
// prompt rather than substituted into it.
func (t *Thinker) Think(ctx context.Context, req StepRequest) (string, error) {
	prompt, err := renderPrompt(req.First, req.History, req.Content.PromptText(), req.CurrentChain)
	if err != nil {
		return "", err
	}

	blocks := []anthropic.ContentBlockParamUnion{anthropic.NewTextBlock(prompt)}
	for _, seg := range req.Content.Segments {
		if seg.Kind == content.KindImage {
			blocks = append(blocks, anthropic.NewImageBlockBase64(seg.MediaType, seg.Data))
		}
	}

	params := anthropic.MessageNewParams{
		Model:       t.model,
		MaxTokens:   t.maxOutputTokens,
		Temperature: anthropic.Float(t.temperature),
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
	}

	response, err := t.sender.SendMessage(ctx, params)
	if err != nil {
		return "", &InvocationError{Err: err}
	}

	var sb strings.Builder
	for _, block := range response.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
