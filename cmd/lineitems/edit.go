package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	lineitems "github.com/goliatone/go-lineitems"
	"github.com/goliatone/go-lineitems/pkg/render"
	"github.com/goliatone/go-lineitems/pkg/renderers/tui"
)

var flagSubmission string

var editCmd = &cobra.Command{
	Use:   "edit <source>",
	Short: "Edit a delivery in the terminal and write the submission",
	Long: `Edit a delivery in the terminal. Each save writes the multipart body the
browser form would post to --submission; the content type is printed to
stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		save := func(sub *render.Submission, leave bool) error {
			return writeSubmission(cmd, sub)
		}
		app, c, err := openForm(cmd, args[0], lineitems.WithTUIOptions(tui.WithSaveFunc(save)))
		if err != nil {
			return err
		}
		sub, err := app.TUI().Run(cmd.Context(), c)
		if errors.Is(err, tui.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if sub == nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "nothing saved")
		}
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&flagSubmission, "submission", "submission.multipart", "file receiving the saved form")
}

func writeSubmission(cmd *cobra.Command, sub *render.Submission) error {
	f, err := os.Create(flagSubmission)
	if err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	contentType, err := sub.WriteMultipart(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%s)\n", flagSubmission, contentType)
	return nil
}
