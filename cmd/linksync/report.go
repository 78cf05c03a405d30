// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/linksync/internal/doccenter"
	"github.com/pdiddy/linksync/internal/report"
	"github.com/pdiddy/linksync/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report [folder]...",
	Short: "Summarize Document Center storage usage",
	Long: `Report measures the size of each named remote folder, sorts them largest
first, and appends Subtotal and overall Total lines. Percentages are relative
to the largest row, so the biggest consumer reads 1.0. Folder names come from
the arguments, or from report.folders in the config file.`,
	Args: cobra.ArbitraryArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("output", "", "report CSV destination (default stdout)")
	viper.BindPFlag("report.output_path", reportCmd.Flags().Lookup("output"))
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := types.ReportConfig{
		HTTPConfig: httpConfig(cmd),
		Folders:    args,
		OutputPath: viper.GetString("report.output_path"),
	}
	if len(cfg.Folders) == 0 {
		cfg.Folders = viper.GetStringSlice("report.folders")
	}
	if len(cfg.Folders) == 0 {
		return fmt.Errorf("no folders named: pass them as arguments or set report.folders")
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	usages := make([]report.FolderUsage, 0, len(cfg.Folders))
	for _, folder := range cfg.Folders {
		folderID, err := resolveFolderID(cmd, client, folder)
		if err != nil {
			return err
		}
		page, err := client.ListDocuments(cmd.Context(), folderID, doccenter.NewQuery().AllPages())
		if err != nil {
			return fmt.Errorf("listing %q: %w", folder, err)
		}
		usages = append(usages, report.FolderUsage{Folder: folder, SizeKB: page.TotalSize()})
	}

	all, err := client.ListAllDocuments(cmd.Context(), doccenter.NewQuery().AllPages())
	if err != nil {
		return fmt.Errorf("listing all documents: %w", err)
	}

	report.SortBySize(usages)
	rows := report.Build(usages, all.TotalSize())

	if cfg.OutputPath == "" {
		return report.Write(os.Stdout, rows)
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", cfg.OutputPath, err)
	}
	if err := report.Write(f, rows); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote report for %d folders to %s.\n", len(usages), cfg.OutputPath)
	return nil
}
