// Package brain accumulates the reasoning steps of a single request.
package brain

import "strings"

// ChainSeparator joins reasoning steps into the chain fed back to the model.
const ChainSeparator = "\n\n"

// Buffer is an ordered accumulator of reasoning steps. It lives for the
// duration of one request and is reset before the next.
type Buffer struct {
	steps []string
}

// NewBuffer creates an empty thought buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Reset clears all steps.
func (b *Buffer) Reset() {
	b.steps = b.steps[:0]
}

// AddStep appends one reasoning step. Previously added steps are never
// modified.
func (b *Buffer) AddStep(text string) {
	b.steps = append(b.steps, text)
}

// Chain returns the steps joined in append order. It is always exactly the
// join of Steps with ChainSeparator.
func (b *Buffer) Chain() string {
	return strings.Join(b.steps, ChainSeparator)
}

// Steps returns a copy of the steps in append order.
func (b *Buffer) Steps() []string {
	out := make([]string, len(b.steps))
	copy(out, b.steps)
	return out
}
