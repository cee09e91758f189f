package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	material "coilgen.GO/service/material"
)

var (
	reportFile   string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "materials:report",
	Short: "Print the coverage report of an existing material CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(reportFile)
		if err != nil {
			return fmt.Errorf("open CSV: %w", err)
		}
		defer f.Close()

		parsed, err := material.ReadCSV(f)
		if err != nil {
			return err
		}
		for _, e := range parsed.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "  [warn] %s\n", e.Error())
		}
		return material.Report(parsed.Materials).Render(cmd.OutOrStdout(), reportFormat)
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportFile, "file", "f", "", "CSV file path (required)")
	reportCmd.MarkFlagRequired("file")
	reportCmd.Flags().StringVar(&reportFormat, "format", material.FormatText, "Report format: text, yaml or json")
	rootCmd.AddCommand(reportCmd)
}
