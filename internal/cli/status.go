// internal/cli/status.go
package localmind

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// statusCmd summarizes the pipeline configuration and index size.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured services and index size",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		fmt.Printf("Ollama:          %s\n", cfg.OllamaURL)
		fmt.Printf("Qdrant:          %s\n", cfg.QdrantURL)
		fmt.Printf("Embedding model: %s\n", cfg.EmbeddingModel)
		fmt.Printf("Chat model:      %s\n", cfg.ChatModel)
		fmt.Printf("Collection:      %s\n", cfg.Collection)
		fmt.Printf("Chunking:        size %d, overlap %d\n", cfg.ChunkSize, cfg.ChunkOverlap)
		fmt.Printf("Retrieval:       top %d\n", cfg.TopK)

		count, err := newStore(cfg).Count(cmd.Context())
		if err != nil {
			color.Yellow("Indexed chunks:  unavailable (%v)", err)
			return nil
		}
		fmt.Printf("Indexed chunks:  %d\n", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
