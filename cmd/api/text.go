package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"laudoapi/internal/docx"
)

func newTextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "text <file.docx>",
		Short: "Print the paragraphs of a generated report document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paragraphs, err := docx.ReadFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range paragraphs {
				if _, err := fmt.Fprintln(out, p); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
