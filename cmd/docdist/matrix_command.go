package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"docdist/internal/docdist"
)

func newMatrixCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "matrix FILE FILE...",
		Short: "Print pairwise angles for a set of documents",
		Args:  documentArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, cfg, err := ctx.pipeline(cmd)
			if err != nil {
				return err
			}
			docs, err := readDocuments(args)
			if err != nil {
				return err
			}
			m, err := pipeline.CompareAll(cmd.Context(), docs)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, m)
			}

			out := cmd.OutOrStdout()
			for _, line := range renderSectionHeader("Pairwise angles (radians)", shouldColorize(out)) {
				fmt.Fprintln(out, line)
			}
			headers, rows, aligns := matrixTable(m, cfg.Output.Precision)
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the matrix as JSON")
	return cmd
}

// matrixTable lays the matrix out as one row per document. Angle columns are
// numbered to keep the table narrow; the Nearest column names the document.
func matrixTable(m *docdist.Matrix, precision int) ([]string, [][]string, []columnAlignment) {
	n := m.Size()
	headers := []string{"#", "Document", "Words"}
	aligns := []columnAlignment{alignRight, alignLeft, alignRight}
	for j := 0; j < n; j++ {
		headers = append(headers, strconv.Itoa(j+1))
		aligns = append(aligns, alignRight)
	}
	headers = append(headers, "Nearest")
	aligns = append(aligns, alignLeft)

	rows := make([][]string, 0, n)
	for i, profile := range m.Profiles {
		row := []string{strconv.Itoa(i + 1), profile.Name, strconv.Itoa(profile.Words)}
		for j := 0; j < n; j++ {
			cell := m.At(i, j)
			if !cell.Defined() {
				row = append(row, "n/a")
				continue
			}
			row = append(row, formatAngle(cell.Angle, precision))
		}
		if j, angle, ok := m.Nearest(i); ok {
			row = append(row, fmt.Sprintf("%s (%s)", m.Profiles[j].Name, formatAngle(angle, precision)))
		} else {
			row = append(row, "-")
		}
		rows = append(rows, row)
	}
	return headers, rows, aligns
}
