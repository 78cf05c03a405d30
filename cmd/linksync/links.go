// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/linksync/internal/doccenter"
	"github.com/pdiddy/linksync/internal/export"
	"github.com/pdiddy/linksync/internal/scan"
	"github.com/pdiddy/linksync/pkg/types"
)

var linksCmd = &cobra.Command{
	Use:   "links [folder]...",
	Short: "Export document hyperlinks for remote folders",
	Long: `Links lists each named remote folder and writes a CSV of document name to
hyperlink, without uploading anything. Use it to rebuild link files for
documents that are already on the Document Center. Without arguments every
folder in the category map is exported.`,
	Args: cobra.ArbitraryArgs,
	RunE: runLinks,
}

func init() {
	rootCmd.AddCommand(linksCmd)

	linksCmd.Flags().String("output", "links/", "directory for link CSV output")
	linksCmd.Flags().String("categories", "categories.yaml", "category map file")
	viper.BindPFlag("links.output_dir", linksCmd.Flags().Lookup("output"))
	viper.BindPFlag("links.category_map", linksCmd.Flags().Lookup("categories"))
}

func runLinks(cmd *cobra.Command, args []string) error {
	cfg := types.ExportConfig{
		HTTPConfig:      httpConfig(cmd),
		OutputDir:       viper.GetString("links.output_dir"),
		CategoryMapPath: viper.GetString("links.category_map"),
	}

	folders := args
	if len(folders) == 0 {
		categories, err := scan.LoadCategoryMap(cfg.CategoryMapPath)
		if err != nil {
			return err
		}
		for _, c := range categories.Categories {
			folders = append(folders, c.RemoteFolder())
		}
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	for _, folder := range folders {
		folderID, err := resolveFolderID(cmd, client, folder)
		if err != nil {
			return err
		}

		page, err := client.ListDocuments(cmd.Context(), folderID, doccenter.NewQuery().AllPages())
		if err != nil {
			return fmt.Errorf("listing %q: %w", folder, err)
		}

		links := make([]export.WebLink, 0, len(page.Source))
		for name, url := range page.Links() {
			links = append(links, export.WebLink{Field: name, URL: url})
		}
		sort.Slice(links, func(i, j int) bool { return links[i].Field < links[j].Field })

		out := filepath.Join(cfg.OutputDir, csvSlug(folder))
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		if err := export.WriteWebLinks(f, links); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote %d links for %q to %s.\n", len(links), folder, out)
	}
	return nil
}
