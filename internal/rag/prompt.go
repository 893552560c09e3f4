package rag

import (
	"fmt"
	"strings"
)

// NoContextAnswer is returned when retrieval finds nothing to ground on.
// The generation service is deliberately not called in that case.
const NoContextAnswer = "No relevant context was found in the indexed documents for this question. " +
	"Try ingesting documents first, or rephrase the question."

const promptInstruction = "Use the following context from the user's documents to answer the question. " +
	"If the context does not contain enough information, say so."

// BuildPrompt assembles the grounded prompt: a fixed instruction, each
// retrieved chunk tagged with its source path, then the original question.
func BuildPrompt(question string, sources []Source) string {
	var b strings.Builder
	b.WriteString(promptInstruction)
	b.WriteString("\n\nContext:\n")
	for i, s := range sources {
		if i > 0 {
			b.WriteString("\n\n---\n\n")
		}
		fmt.Fprintf(&b, "[Source: %s]\n%s", s.Path, s.Text)
	}
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	return b.String()
}
