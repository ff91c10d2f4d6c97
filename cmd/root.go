package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/element-digitizer/element-digitizer/internal/config"
	"github.com/element-digitizer/element-digitizer/internal/output"
	"github.com/element-digitizer/element-digitizer/internal/version"
)

// cfg is the resolved configuration shared by all commands.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "element-digitizer",
	Short: "Capture and annotate desktop UI elements",
	Long: "A tool that captures rectangular screen regions, attaches structured\n" +
		"metadata, and persists schema-versioned JSON+PNG element records for\n" +
		"UI-automation and dataset-building pipelines.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("db", "", "Repository root directory (overrides config)")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: user config dir)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		configPath, _ := rootCmd.PersistentFlags().GetString("config")
		if configPath == "" {
			configPath = config.DefaultPath()
		}
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		if db, _ := rootCmd.PersistentFlags().GetString("db"); db != "" {
			cfg.DatabaseRoot = db
		}

		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		if pretty, _ := rootCmd.PersistentFlags().GetBool("pretty"); pretty {
			output.PrettyOutput = true
		}
		return nil
	}
}
