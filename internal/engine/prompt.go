package engine

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed cot_initial.tmpl
var initialTemplateText string

//go:embed cot_refine.tmpl
var refineTemplateText string

// emptyChainPlaceholder is substituted for the reasoning chain on the first
// step, when no thoughts have been produced yet.
const emptyChainPlaceholder = "(empty - starting fresh)"

var (
	initialTemplate = template.Must(template.New("cot_initial").Parse(initialTemplateText))
	refineTemplate  = template.Must(template.New("cot_refine").Parse(refineTemplateText))
)

type promptData struct {
	History     string
	UserMessage string
	CurrentCoT  string
}

// renderPrompt fills one of the two step templates. The initial and refine
// templates are kept as separate files so their instructions can diverge,
// even though their wording is currently near-identical.
func renderPrompt(first bool, history, userMessage, chain string) (string, error) {
	tmpl := refineTemplate
	if first {
		tmpl = initialTemplate
	}
	if chain == "" {
		chain = emptyChainPlaceholder
	}

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, promptData{
		History:     history,
		UserMessage: userMessage,
		CurrentCoT:  chain,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
