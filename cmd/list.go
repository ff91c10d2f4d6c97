package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/element-digitizer/element-digitizer/internal/output"
	"github.com/element-digitizer/element-digitizer/internal/repo"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted element records",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("module", "", "List only this module (default: all modules)")
}

func moduleReport(repository *repo.Repository, module string) (output.ListReport, error) {
	ids, err := repository.ListIDs(module)
	if err != nil {
		return output.ListReport{}, err
	}
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)
	return output.ListReport{Module: module, Count: len(sorted), IDs: sorted}, nil
}

func runList(cmd *cobra.Command, args []string) error {
	repository := repo.New(cfg.DatabaseRoot)
	module, _ := cmd.Flags().GetString("module")

	if module != "" {
		report, err := moduleReport(repository, module)
		if err != nil {
			return err
		}
		return output.Print(report)
	}

	modules, err := repository.ListModules()
	if err != nil {
		return err
	}
	reports := make([]output.ListReport, 0, len(modules))
	for _, m := range modules {
		report, err := moduleReport(repository, m)
		if err != nil {
			return err
		}
		reports = append(reports, report)
	}
	return output.Print(reports)
}
