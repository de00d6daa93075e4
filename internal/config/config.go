package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends understood by the CLI.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Environment variables read by Load.
const (
	EnvSchema         = "FORMWIZARD_SCHEMA"
	EnvStore          = "FORMWIZARD_STORE"
	EnvStorePath      = "FORMWIZARD_STORE_PATH"
	EnvOutputDir      = "FORMWIZARD_OUTPUT_DIR"
	EnvReportTemplate = "FORMWIZARD_REPORT_TEMPLATE"
	EnvLogLevel       = "FORMWIZARD_LOG_LEVEL"
	EnvSubmitEndpoint = "FORMWIZARD_SUBMIT_ENDPOINT"
	EnvDraftPrefix    = "FORMWIZARD_DRAFT_PREFIX"
)

// Config carries the runtime settings of the CLI.
type Config struct {
	// Schema is a questionnaire file; empty selects the embedded default.
	Schema         string
	Store          string
	StorePath      string
	OutputDir      string
	ReportTemplate string
	LogLevel       string
	SubmitEndpoint string
	DraftPrefix    string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Store:       StoreFile,
		StorePath:   ".formwizard/drafts.json",
		OutputDir:   ".",
		LogLevel:    "warn",
		DraftPrefix: "form_",
	}
}

// Load reads dotenv files (missing files are ignored; values already in the
// environment win) and overlays FORMWIZARD_* variables on Default.
func Load(dotenv ...string) (Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, path := range dotenv {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	cfg := Default()
	cfg.Schema = getEnvWithDefault(EnvSchema, cfg.Schema)
	cfg.Store = strings.ToLower(getEnvWithDefault(EnvStore, cfg.Store))
	cfg.StorePath = getEnvWithDefault(EnvStorePath, cfg.StorePath)
	cfg.OutputDir = getEnvWithDefault(EnvOutputDir, cfg.OutputDir)
	cfg.ReportTemplate = getEnvWithDefault(EnvReportTemplate, cfg.ReportTemplate)
	cfg.LogLevel = getEnvWithDefault(EnvLogLevel, cfg.LogLevel)
	cfg.SubmitEndpoint = getEnvWithDefault(EnvSubmitEndpoint, cfg.SubmitEndpoint)
	cfg.DraftPrefix = getEnvWithDefault(EnvDraftPrefix, cfg.DraftPrefix)
	return cfg, cfg.Validate()
}

// Validate rejects unknown store backends and missing store paths.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StoreFile, StoreSQLite:
		if strings.TrimSpace(c.StorePath) == "" {
			return fmt.Errorf("config: store %q needs %s", c.Store, EnvStorePath)
		}
	default:
		return fmt.Errorf("config: unknown store %q (want memory, file or sqlite)", c.Store)
	}
	return nil
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
