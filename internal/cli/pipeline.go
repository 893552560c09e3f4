// internal/cli/pipeline.go
package localmind

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/localmind/localmind/internal/appconfig"
	"github.com/localmind/localmind/internal/extract"
	"github.com/localmind/localmind/internal/providers/ollama"
	"github.com/localmind/localmind/internal/rag"
	"github.com/localmind/localmind/internal/vectorstore"
	"github.com/localmind/localmind/internal/vectorstore/qdrant"
)

// newStore connects the configured Qdrant instance. The collection is created
// lazily on first upsert, so this never touches the network.
func newStore(cfg *appconfig.Config) vectorstore.Store {
	return qdrant.NewStorage(qdrant.Config{
		URL:        cfg.QdrantURL,
		APIKey:     cfg.QdrantAPIKey,
		Collection: cfg.Collection,
		Timeout:    cfg.RequestTimeout(),
	})
}

func newIngestor(cfg *appconfig.Config, store vectorstore.Store) *rag.Ingestor {
	return rag.NewIngestor(cfg, extract.NewExtractor(), rag.NewEmbeddingClient(cfg), store)
}

func newRetriever(cfg *appconfig.Config, store vectorstore.Store) *rag.Retriever {
	return rag.NewRetriever(cfg, rag.NewEmbeddingClient(cfg), store, ollama.New(cfg))
}

// discoverFiles expands the given paths into a flat list of ingestible files.
// Directories are walked recursively and filtered by the allowed extensions;
// explicitly named files are passed through as-is so the ingest report can
// name unsupported ones.
func discoverFiles(paths []string, allowed []string) ([]string, error) {
	allowedMap := make(map[string]struct{}, len(allowed))
	for _, ext := range allowed {
		allowedMap[strings.ToLower(ext)] = struct{}{}
	}

	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if _, ok := allowedMap[ext]; !ok {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}
