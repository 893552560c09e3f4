// internal/cli/render.go
package localmind

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/localmind/localmind/internal/rag"
	"github.com/localmind/localmind/internal/util"
)

// snippetWidth caps the inline preview of each retrieved chunk.
const snippetWidth = 120

var (
	answerBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1).Width(100)
	sourceHeadStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	sourcePathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	sourceMetaStyle = lipgloss.NewStyle().Faint(true)
)

// renderAnswer formats the generated answer and its citations for the
// terminal.
func renderAnswer(answer rag.Answer) string {
	var b strings.Builder
	b.WriteString(answerBoxStyle.Render(strings.TrimSpace(answer.Text)))
	if len(answer.Sources) > 0 {
		b.WriteString("\n\n")
		b.WriteString(renderSources("Sources", answer.Sources))
	}
	return b.String()
}

// renderSources lists the retrieved chunks, most similar first.
func renderSources(title string, sources []rag.Source) string {
	var b strings.Builder
	b.WriteString(sourceHeadStyle.Render(title))
	for _, src := range sources {
		b.WriteString(fmt.Sprintf("\n  %s %s\n    %s",
			sourcePathStyle.Render(src.Path),
			sourceMetaStyle.Render(fmt.Sprintf("(chunk %d, score %.3f)", src.ChunkIndex, src.Score)),
			sourceMetaStyle.Render(util.Snippet(src.Text, snippetWidth)),
		))
	}
	return b.String()
}
