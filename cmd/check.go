package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/element-digitizer/element-digitizer/internal/output"
	"github.com/element-digitizer/element-digitizer/internal/repo"
	"github.com/element-digitizer/element-digitizer/internal/schema"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Audit the repository for schema and pairing violations",
	Long: `Validate every persisted record against the UI Element Schema v1.0,
re-run the semantic rules (id pattern, vocabularies, references), and verify
the pairing invariant: every JSON record has its screenshot and every
screenshot has a JSON record.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// buildCheckReport audits every module in the repository.
func buildCheckReport(repository *repo.Repository) (output.CheckReport, error) {
	var report output.CheckReport
	index := repo.NewIndex(repository)
	var validator schema.Validator

	modules, err := repository.ListModules()
	if err != nil {
		return report, err
	}

	recorded := make(map[string]struct{})
	for _, module := range modules {
		ids, err := repository.ListIDs(module)
		if err != nil {
			return report, err
		}
		sorted := make([]string, 0, len(ids))
		for id := range ids {
			sorted = append(sorted, id)
		}
		sort.Strings(sorted)

		for _, id := range sorted {
			report.Checked++
			recorded[id] = struct{}{}
			path := repository.RecordPath(module, id)

			data, err := os.ReadFile(path)
			if err != nil {
				report.Problems = append(report.Problems, output.CheckProblem{Path: path, Reason: err.Error()})
				continue
			}
			if err := schema.ValidateDocument(data); err != nil {
				report.Problems = append(report.Problems, output.CheckProblem{Path: path, Reason: err.Error()})
			}

			rec, err := repository.Load(module, id)
			if err != nil {
				report.Problems = append(report.Problems, output.CheckProblem{Path: path, Reason: err.Error()})
				continue
			}
			issues, err := validator.Audit(rec, index)
			if err != nil {
				return report, err
			}
			for _, issue := range issues {
				report.Problems = append(report.Problems, output.CheckProblem{
					Path:   path,
					Reason: fmt.Sprintf("%s: %s", issue.Field, issue.Reason),
				})
			}

			if _, err := os.Stat(repository.ScreenshotPath(id)); err != nil {
				report.Problems = append(report.Problems, output.CheckProblem{
					Path:   path,
					Reason: "missing paired screenshot",
				})
			}
		}
	}

	screenshots, err := repository.ListScreenshots()
	if err != nil {
		return report, err
	}
	orphans := make([]string, 0)
	for id := range screenshots {
		if _, ok := recorded[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		report.Problems = append(report.Problems, output.CheckProblem{
			Path:   repository.ScreenshotPath(id),
			Reason: "screenshot has no paired JSON record",
		})
	}

	return report, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	repository := repo.New(cfg.DatabaseRoot)
	report, err := buildCheckReport(repository)
	if err != nil {
		return err
	}
	if err := output.Print(report); err != nil {
		return err
	}
	if len(report.Problems) > 0 {
		return fmt.Errorf("%d problem(s) found in %s", len(report.Problems), cfg.DatabaseRoot)
	}
	return nil
}
