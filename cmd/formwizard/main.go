package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/internal/logging"
)

var (
	// Global flags
	verbose      bool
	envFile      string
	schemaPath   string
	storeKind    string
	storePath    string
	outputDir    string
	templatePath string

	cfg    = config.Default()
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "formwizard",
	Short: "Fill in a multi-section questionnaire from the terminal",
	Long: `formwizard walks through a questionnaire one section at a time,
saving every answer as a draft so an interrupted session resumes where it
stopped. Submitting renders a text report into the output directory.

Run without arguments to start the interactive session.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(envFile)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, &loaded)
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		logger, err = logging.New(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runQuestionnaire,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start or resume the interactive questionnaire",
	RunE:  runQuestionnaire,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the report for the saved draft",
	Long: `Renders the report from the saved draft without submitting it.
Sensitive answers are never saved, so they print as N/A.`,
	RunE: runReport,
}

var payloadCmd = &cobra.Command{
	Use:   "payload",
	Short: "Print the JSON payload of the saved draft",
	RunE:  runPayload,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Erase the saved draft",
	RunE:  runClear,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Validate the questionnaire and summarise its sections",
	RunE:  runSchema,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file to read before the environment")
	rootCmd.PersistentFlags().StringVarP(&schemaPath, "schema", "s", "", "Questionnaire file (default: bundled clinic questionnaire)")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "Draft store: memory, file or sqlite")
	rootCmd.PersistentFlags().StringVar(&storePath, "store-path", "", "Draft store location")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Directory receiving submitted reports")
	rootCmd.PersistentFlags().StringVar(&templatePath, "template", "", "pongo2 template replacing the built-in report layout")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(payloadCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(schemaCmd)
}

func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("schema") {
		c.Schema = schemaPath
	}
	if flags.Changed("store") {
		c.Store = storeKind
	}
	if flags.Changed("store-path") {
		c.StorePath = storePath
	}
	if flags.Changed("output") {
		c.OutputDir = outputDir
	}
	if flags.Changed("template") {
		c.ReportTemplate = templatePath
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
