// internal/cli/reset.go
package localmind

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// resetCmd drops the vector store collection.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the indexed collection",
	Long: `Removes the configured collection from the vector store. The source
documents on disk are not touched; re-run ingest to rebuild the index.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if err := newStore(cfg).Drop(cmd.Context()); err != nil {
			return err
		}
		color.Green("Dropped collection %q.", cfg.Collection)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
