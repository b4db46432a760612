package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"docdist/internal/docdist"
)

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "compare FILE1 FILE2",
		Short: "Print the angle between two documents",
		Long: "Compare two text files by the angle between their word-frequency vectors.\n" +
			"Use - to read one of the documents from stdin.",
		Args: documentArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, cfg, err := ctx.pipeline(cmd)
			if err != nil {
				return err
			}
			docs, err := readDocuments(args)
			if err != nil {
				return err
			}

			result, cmpErr := pipeline.Compare(cmd.Context(), docs[0], docs[1])
			if cmpErr != nil && result.RunID == "" {
				return cmpErr
			}
			ctx.recordComparison(cmd, result, cmpErr)

			if jsonOutput {
				if cmpErr != nil {
					return cmpErr
				}
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			writeProfile(out, result.A)
			writeProfile(out, result.B)
			if cmpErr != nil {
				return cmpErr
			}
			fmt.Fprintf(out, "The distance between the documents is: %s (radians)\n",
				formatAngle(result.Angle, cfg.Output.Precision))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the result as JSON")
	return cmd
}

func writeProfile(w io.Writer, p docdist.Profile) {
	fmt.Fprintf(w, "File %s : %d lines, %d words, %d distinct words\n", p.Name, p.Lines, p.Words, p.Distinct)
}
