package cmd

import (
	"github.com/spf13/cobra"

	"github.com/element-digitizer/element-digitizer/internal/output"
	"github.com/element-digitizer/element-digitizer/internal/repo"
)

var showCmd = &cobra.Command{
	Use:   "show <element_id>",
	Short: "Display one element record",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().String("module", "", "Module to look in (default from config)")
}

func runShow(cmd *cobra.Command, args []string) error {
	module, _ := cmd.Flags().GetString("module")
	if module == "" {
		module = cfg.DefaultModule
	}

	repository := repo.New(cfg.DatabaseRoot)
	rec, err := repository.Load(module, args[0])
	if err != nil {
		return err
	}
	return output.Print(rec)
}
