package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"laudoapi/internal/docx"
	"laudoapi/internal/model"
	"laudoapi/internal/report"
)

func newRenderCmd() *cobra.Command {
	var (
		input      string
		output     string
		narrateAll bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a report from an exam JSON file without starting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, input, output, narrateAll)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "exam JSON file, or - for stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the DOCX document to this path")
	cmd.Flags().BoolVar(&narrateAll, "all-nodules", false, "describe every nodule instead of only the first")
	return cmd
}

func runRender(cmd *cobra.Command, input, output string, narrateAll bool) error {
	var (
		data []byte
		err  error
	)
	if input == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(input) //nolint:gosec // operator-provided path
	}
	if err != nil {
		return fmt.Errorf("read exam: %w", err)
	}

	exam, err := model.DecodeExam(data)
	if err != nil {
		return err
	}

	var narrator report.Narrator = report.FirstNoduleNarrator{}
	if narrateAll {
		narrator = report.EachNoduleNarrator{}
	}
	text := report.NewFormatter(narrator).Format(exam)

	if output != "" {
		if err := docx.WriteFile(output, text); err != nil {
			return fmt.Errorf("write document: %w", err)
		}
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), text)
	return err
}
