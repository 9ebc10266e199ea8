package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-lineitems/pkg/validation"
)

type checkReport struct {
	Source   string             `json:"source"`
	Rows     int                `json:"rows"`
	Valid    bool               `json:"valid"`
	Problems []validation.Issue `json:"problems,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check <source>",
	Short: "Report every problem that would block saving",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, c, err := openForm(cmd, args[0])
		if err != nil {
			return err
		}
		report := checkReport{Source: args[0], Rows: c.Store().Len()}
		for _, problem := range c.Check() {
			report.Problems = append(report.Problems, problem.Issue(app.Config().Locale))
		}
		report.Valid = len(report.Problems) == 0

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
		if !report.Valid {
			return userError("%d problem(s) in %s", len(report.Problems), args[0])
		}
		return nil
	},
}
