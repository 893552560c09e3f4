// internal/cli/ingest.go
package localmind

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/localmind/localmind/internal/extract"
)

// ingestCmd indexes documents into the vector store.
var ingestCmd = &cobra.Command{
	Use:   "ingest [path ...]",
	Short: "Index documents into the vector store",
	Long: `Extracts text from the given files or directories, splits it into
overlapping chunks, embeds each chunk, and stores the vectors. With no
arguments the configured documents directory is ingested. Re-ingesting a
file overwrites its previous chunks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		paths := args
		if len(paths) == 0 {
			paths = []string{cfg.DocumentsPath()}
		}

		files, err := discoverFiles(paths, extract.SupportedExtensions())
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no ingestible files found under %v (supported: %v)", paths, extract.SupportedExtensions())
		}

		store := newStore(cfg)
		report := newIngestor(cfg, store).Ingest(cmd.Context(), files)

		if len(report.Errors) > 0 {
			color.Red("Failed files:")
			failed := make([]string, 0, len(report.Errors))
			for path := range report.Errors {
				failed = append(failed, path)
			}
			sort.Strings(failed)
			for _, path := range failed {
				color.Red("  %s: %s", path, report.Errors[path])
			}
		}

		// Per-file failures are already reported above; they never fail the
		// command. A non-zero exit is reserved for finding nothing to ingest.
		ok := len(files) - len(report.Errors)
		color.Green("Ingested %d chunks from %d of %d files.", report.ChunksAdded, ok, len(files))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
