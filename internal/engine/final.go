package engine

import "strings"

// FinalAnswerMarker separates reasoning from the final answer in model
// output. Matching is exact and case-sensitive: output that spells the
// marker differently is treated as an intermediate step.
const FinalAnswerMarker = "FINAL_ANSWER:"

// ExtractFinalAnswer scans model output for the final-answer marker. If
// present, it returns the trimmed text after the marker and true. Otherwise
// it returns the full text unchanged and false.
func ExtractFinalAnswer(text string) (string, bool) {
	if _, after, ok := strings.Cut(text, FinalAnswerMarker); ok {
		return strings.TrimSpace(after), true
	}
	return text, false
}
