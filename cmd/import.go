package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"coilgen.GO/config"
	material "coilgen.GO/service/material"
)

var (
	importFile     string
	importConflict string
	importBatch    int
)

var importCmd = &cobra.Command{
	Use:   "materials:import",
	Short: "Import a material CSV into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := material.ValidateConflictMode(importConflict); err != nil {
			return err
		}
		f, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("open CSV: %w", err)
		}
		defer f.Close()
		info, err := f.Stat()
		if err != nil {
			return fmt.Errorf("stat CSV: %w", err)
		}
		if err := material.CheckFileSize(info.Size()); err != nil {
			return err
		}
		log := config.NewLogger()
		defer log.Sync()

		db, err := config.NewDB()
		if err != nil {
			return fmt.Errorf("database connection: %w", err)
		}

		res, err := material.ImportMaterials(db, f, material.ImportOptions{
			FileName:     filepath.Base(importFile),
			ConflictMode: importConflict,
			BatchSize:    importBatch,
			Log:          log,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, e := range res.Errors {
			fmt.Fprintf(out, "  [warn] %s\n", e)
		}
		fmt.Fprintf(out, `
=== Import Report ===
Batch:          %s
CSV rows:       %d
Inserted:       %d
Overwritten:    %d
Skipped:        %d
Failed:         %d
Removed:        %d
Conflict mode:  %s
Total time:     %s
=====================
`, res.BatchNo, res.Total, res.Success, res.Overwritten, res.Skipped, res.Failed, res.Removed,
			importConflict, res.TotalTime.Round(time.Millisecond))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file path (required)")
	importCmd.MarkFlagRequired("file")
	importCmd.Flags().StringVar(&importConflict, "conflict", material.ConflictSkip, "On existing coil id: skip, overwrite or replace_all")
	importCmd.Flags().IntVar(&importBatch, "batch-size", 500, "Batch size for DB operations")
	rootCmd.AddCommand(importCmd)
}
