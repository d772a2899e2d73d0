// Package bot drives the chain-of-thought request lifecycle: it normalizes
// input, loops the step executor until a final answer appears or the
// iteration cap forces one, and commits the exchange to session memory.
package bot

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mzaytsev/gotbot/internal/brain"
	"github.com/mzaytsev/gotbot/internal/content"
	"github.com/mzaytsev/gotbot/internal/engine"
	"github.com/mzaytsev/gotbot/internal/memory"
)

// DefaultMaxIterations caps the number of reasoning steps per request.
const DefaultMaxIterations = 4

// StepExecutor produces one reasoning step for a request.
type StepExecutor interface {
	Think(ctx context.Context, req engine.StepRequest) (string, error)
}

// Session owns the per-conversation state: bounded exchange history for the
// session's lifetime, and the thought buffer for the request in flight.
// Sessions are never shared; each front-end connection gets its own.
type Session struct {
	Memory *memory.ChatMemory
	Brain  *brain.Buffer
}

// NewSession creates an isolated session with the given history capacity.
func NewSession(historySize int) *Session {
	return &Session{
		Memory: memory.NewChatMemory(historySize),
		Brain:  brain.NewBuffer(),
	}
}

// Bot orchestrates chain-of-thought requests.
type Bot struct {
	executor      StepExecutor
	maxIterations int
	tracer        trace.Tracer
}

func New(executor StepExecutor, maxIterations int) *Bot {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	return &Bot{
		executor:      executor,
		maxIterations: maxIterations,
		tracer:        otel.Tracer("gotbot/bot"),
	}
}

// Respond processes one user input and returns the final answer. On success
// exactly one exchange is committed to the session's memory. On failure
// nothing is committed and the session remains usable for the next request.
func (b *Bot) Respond(ctx context.Context, sess *Session, raw string) (string, error) {
	requestID := uuid.New().String()
	ctx, span := b.tracer.Start(ctx, "bot.respond",
		trace.WithAttributes(attribute.String("request.id", requestID)))
	defer span.End()

	cnt, err := content.Normalize(raw)
	if err != nil {
		var extractionErr *content.ExtractionError
		if !errors.As(err, &extractionErr) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "normalization failed")
			return "", err
		}
		// Recoverable: treat the raw reference as literal text
		log.Printf("Content extraction failed, falling back to literal text: %v", err)
		span.AddEvent("content.fallback")
		cnt = content.Text(raw)
	}

	sess.Brain.Reset()
	history := sess.Memory.Formatted()

	var answer string
	for iteration := 1; iteration <= b.maxIterations; iteration++ {
		log.Printf("Request %s: reasoning step %d/%d", requestID, iteration, b.maxIterations)

		stepText, final, err := b.step(ctx, sess, cnt, history, iteration)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "request aborted")
			return "", err
		}

		if final {
			answer = stepText
			span.SetAttributes(attribute.Int("cot.iterations", iteration))
			break
		}

		if iteration == b.maxIterations {
			// Forced termination: never leave the user without a response.
			// Answer with the last segment of the accumulated chain.
			log.Printf("Request %s: iteration cap reached, using last reasoning segment", requestID)
			segments := strings.Split(sess.Brain.Chain(), brain.ChainSeparator)
			answer = segments[len(segments)-1]
			span.SetAttributes(
				attribute.Int("cot.iterations", iteration),
				attribute.Bool("cot.forced", true),
			)
		}
	}

	sess.Memory.Add(cnt.HistoryText(), answer)
	span.SetAttributes(attribute.Int("session.history_len", sess.Memory.Len()))
	return answer, nil
}

// step runs one executor call, records the raw step in the thought buffer,
// and applies final-answer detection. When final is true the returned text is
// the extracted answer; otherwise it is the raw step text.
func (b *Bot) step(ctx context.Context, sess *Session, cnt content.Content, history string, iteration int) (string, bool, error) {
	ctx, span := b.tracer.Start(ctx, "bot.step",
		trace.WithAttributes(attribute.Int("cot.iteration", iteration)))
	defer span.End()

	stepText, err := b.executor.Think(ctx, engine.StepRequest{
		Content:      cnt,
		History:      history,
		CurrentChain: sess.Brain.Chain(),
		First:        iteration == 1,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "step failed")
		return "", false, err
	}

	sess.Brain.AddStep(stepText)

	extracted, final := engine.ExtractFinalAnswer(stepText)
	span.SetAttributes(attribute.Bool("cot.final", final))
	if final {
		return extracted, true, nil
	}
	return stepText, false, nil
}
