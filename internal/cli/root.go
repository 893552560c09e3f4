// internal/cli/root.go
package localmind

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/localmind/localmind/internal/appconfig"
	"github.com/localmind/localmind/internal/logging"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:   "localmind",
	Short: "localmind — ask questions about your own documents, fully offline",
	Long: `localmind indexes local documents into a vector store and answers
questions about them using models served by a local Ollama instance.
Nothing leaves your machine.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or defaults)
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// 2) If user did NOT set a flag, copy the config value into the flag so
		//    both pflags and viper reflect the same, final value.
		if !cmd.Flags().Changed("debug") {
			val := viper.GetBool("debug")
			_ = cmd.Flags().Set("debug", strconv.FormatBool(val))
		}

		// 3) Structural check of the merged settings before materializing them.
		if err := appconfig.ValidateSettings(viper.AllSettings()); err != nil {
			return err
		}

		// 4) Materialize the fully merged configuration into currentConfig
		//    (flags > env > config > defaults). This gives other packages a
		//    stable snapshot.
		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		if err := cfg.Validate(); err != nil {
			return err
		}

		if err := logging.Init(cfg.LogFilePath()); err != nil {
			return fmt.Errorf("initialize logging: %w", err)
		}

		currentConfig = &cfg
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Close()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// --config (defaults to your existing path)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	// Bind flags to Viper keys (flags override config)
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	// A .env in the working directory is merged into the environment before
	// viper reads it. Real environment variables still win.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetEnvPrefix("LOCALMIND")
	viper.AutomaticEnv()
	bindEnvKeys()
}

// bindEnvKeys maps viper's camelCase config keys onto the LOCALMIND_* and
// OLLAMA_HOST environment variables.
func bindEnvKeys() {
	for key, envs := range map[string][]string{
		"ollamaURL":      {"LOCALMIND_OLLAMA_URL", "OLLAMA_HOST"},
		"qdrantURL":      {"LOCALMIND_QDRANT_URL"},
		"qdrantAPIKey":   {"LOCALMIND_QDRANT_API_KEY"},
		"embeddingModel": {"LOCALMIND_EMBEDDING_MODEL"},
		"chatModel":      {"LOCALMIND_CHAT_MODEL"},
		"collection":     {"LOCALMIND_COLLECTION"},
		"chunkSize":      {"LOCALMIND_CHUNK_SIZE"},
		"chunkOverlap":   {"LOCALMIND_CHUNK_OVERLAP"},
		"topK":           {"LOCALMIND_TOP_K"},
		"embedBatchSize": {"LOCALMIND_EMBED_BATCH_SIZE"},
		"dataDir":        {"LOCALMIND_DATA_DIR"},
		"documentsDir":   {"LOCALMIND_DOCUMENTS_DIR"},
		"timeout":        {"LOCALMIND_TIMEOUT"},
		"logFile":        {"LOCALMIND_LOG_FILE"},
	} {
		_ = viper.BindEnv(append([]string{key}, envs...)...)
	}
}

// ensureConfigLoaded reads the config and sets safe defaults.
func ensureConfigLoaded() error {
	defaults := appconfig.Defaults()
	viper.SetDefault("ollamaURL", defaults.OllamaURL)
	viper.SetDefault("qdrantURL", defaults.QdrantURL)
	viper.SetDefault("embeddingModel", defaults.EmbeddingModel)
	viper.SetDefault("chatModel", defaults.ChatModel)
	viper.SetDefault("collection", defaults.Collection)
	viper.SetDefault("chunkSize", defaults.ChunkSize)
	viper.SetDefault("chunkOverlap", defaults.ChunkOverlap)
	viper.SetDefault("topK", defaults.TopK)
	viper.SetDefault("embedBatchSize", defaults.EmbedBatchSize)
	viper.SetDefault("dataDir", defaults.DataDir)
	viper.SetDefault("timeout", defaults.TimeoutSeconds)
	viper.SetDefault("debug", false)

	if err := viper.ReadInConfig(); err != nil {
		// No file: fine, we'll use defaults/env/flags. With an explicit
		// SetConfigFile, viper surfaces a plain fs error rather than
		// ConfigFileNotFoundError.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// DebugEnabled reflects the merged Viper state.
func DebugEnabled() bool { return viper.GetBool("debug") }
