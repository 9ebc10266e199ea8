package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagRenderer string
	flagOutput   string
)

var renderCmd = &cobra.Command{
	Use:   "render <source>",
	Short: "Render the form of a delivery file or URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, c, err := openForm(cmd, args[0])
		if err != nil {
			return err
		}
		out, err := app.Render(cmd.Context(), c, flagRenderer)
		if err != nil {
			return &exitError{code: exitUserError, err: err}
		}
		if flagOutput == "" || flagOutput == "-" {
			_, err = cmd.OutOrStdout().Write(out)
			return err
		}
		if err := os.WriteFile(flagOutput, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", flagOutput)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&flagRenderer, "renderer", "r", "vanilla", "renderer to use (vanilla, tui)")
	renderCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (default stdout)")
}
