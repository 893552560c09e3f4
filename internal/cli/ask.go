// internal/cli/ask.go
package localmind

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/localmind/localmind/internal/rag"
)

// askCmd answers a question from the indexed documents.
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about your indexed documents",
	Long: `Embeds the question, retrieves the most similar chunks from the
vector store, and asks the chat model to answer using only that context.
The answer cites the source files the context came from.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(strings.Join(args, " "))
		cfg := GetConfig()
		store := newStore(cfg)

		answer, err := newRetriever(cfg, store).Answer(cmd.Context(), question)
		if err != nil {
			// If retrieval succeeded but generation didn't, the context is
			// still useful. Show it instead of discarding the round trip.
			var genErr *rag.GenerationError
			if errors.As(err, &genErr) && len(genErr.Sources) > 0 {
				color.Red("Answer generation failed: %v", genErr.Err)
				fmt.Println()
				fmt.Println(renderSources("Retrieved context", genErr.Sources))
			}
			return err
		}

		fmt.Println(renderAnswer(answer))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
