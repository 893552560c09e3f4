// internal/cli/show_config.go
package localmind

import (
	"fmt"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showConfigCmd implements the 'show config' command, which displays the
// merged configuration (defaults, file, environment, and flags).
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON config is loaded properly and overriden by environment and flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		file := viper.ConfigFileUsed()
		if file == "" {
			fmt.Println("No config file loaded (using defaults).")
		} else {
			fmt.Printf("Config file: %s\n\n", file)
		}

		cfg := GetConfig()
		if DebugEnabled() {
			pp.Println(cfg)
			return
		}

		fmt.Println("Current configuration:")
		fmt.Printf("  Ollama URL:       %s\n", cfg.OllamaURL)
		fmt.Printf("  Qdrant URL:       %s\n", cfg.QdrantURL)
		fmt.Printf("  Embedding model:  %s\n", cfg.EmbeddingModel)
		fmt.Printf("  Chat model:       %s\n", cfg.ChatModel)
		fmt.Printf("  Collection:       %s\n", cfg.Collection)
		fmt.Printf("  Chunk size:       %d\n", cfg.ChunkSize)
		fmt.Printf("  Chunk overlap:    %d\n", cfg.ChunkOverlap)
		fmt.Printf("  Top K:            %d\n", cfg.TopK)
		fmt.Printf("  Embed batch size: %d\n", cfg.BatchSize())
		fmt.Printf("  Documents dir:    %s\n", cfg.DocumentsPath())
		fmt.Printf("  Request timeout:  %s\n", cfg.RequestTimeout())
		fmt.Printf("  Log file:         %s\n", cfg.LogFilePath())
		fmt.Printf("  Debug:            %v\n", cfg.Debug)
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
