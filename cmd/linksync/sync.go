// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/linksync/internal/export"
	"github.com/pdiddy/linksync/internal/ledger"
	"github.com/pdiddy/linksync/internal/scan"
	"github.com/pdiddy/linksync/internal/sync"
	"github.com/pdiddy/linksync/pkg/types"
)

var syncCmd = &cobra.Command{
	Use:   "sync [category]",
	Short: "Upload a category's local documents and export their links",
	Long: `Sync scans the source folder, uploads documents belonging to the named
category to its remote folder, and writes the category's link CSV. Documents
already on the Document Center (or in the ledger) are skipped, so reruns over
an unchanged folder produce the same CSV. Without a category argument every
category in the map is synced in turn.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().String("source", "documents/", "local folder to scan")
	syncCmd.Flags().String("categories", "categories.yaml", "category map file")
	syncCmd.Flags().String("output", "links/", "directory for link CSV output")
	syncCmd.Flags().String("ledger", "", "sqlite sync ledger path (empty disables the ledger)")
	syncCmd.Flags().Bool("publish", false, "upload documents as Published instead of Draft")
	syncCmd.Flags().Duration("delay", defaultDelay, "pause between consecutive uploads")
	syncCmd.Flags().String("unmatched", string(types.UnmatchedReport), "policy for files matching no category: skip or report")

	viper.BindPFlag("sync.source_dir", syncCmd.Flags().Lookup("source"))
	viper.BindPFlag("sync.category_map", syncCmd.Flags().Lookup("categories"))
	viper.BindPFlag("sync.output_dir", syncCmd.Flags().Lookup("output"))
	viper.BindPFlag("sync.ledger", syncCmd.Flags().Lookup("ledger"))
	viper.BindPFlag("sync.publish", syncCmd.Flags().Lookup("publish"))
	viper.BindPFlag("sync.upload_delay", syncCmd.Flags().Lookup("delay"))
	viper.BindPFlag("sync.unmatched", syncCmd.Flags().Lookup("unmatched"))
}

// syncConfig resolves the sync settings: config file values, overridden
// by flags.
func syncConfig(cmd *cobra.Command) types.SyncConfig {
	return types.SyncConfig{
		HTTPConfig:      httpConfig(cmd),
		SourceDir:       viper.GetString("sync.source_dir"),
		OutputDir:       viper.GetString("sync.output_dir"),
		CategoryMapPath: viper.GetString("sync.category_map"),
		LedgerPath:      viper.GetString("sync.ledger"),
		UploadDelay:     viper.GetDuration("sync.upload_delay"),
		Publish:         viper.GetBool("sync.publish"),
		Unmatched:       types.UnmatchedPolicy(viper.GetString("sync.unmatched")),
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg := syncConfig(cmd)
	if !cfg.Unmatched.Valid() {
		return fmt.Errorf("unknown unmatched policy %q (want skip or report)", cfg.Unmatched)
	}

	categories, err := scan.LoadCategoryMap(cfg.CategoryMapPath)
	if err != nil {
		return err
	}

	targets := categories.Categories
	if len(args) == 1 {
		category, ok := categories.Find(args[0])
		if !ok {
			return fmt.Errorf("category %q not in %s", args[0], cfg.CategoryMapPath)
		}
		targets = []scan.Category{category}
	}

	scanned, err := scan.Source(cfg.SourceDir, categories)
	if err != nil {
		return err
	}

	var led *ledger.Store
	if cfg.LedgerPath != "" {
		led, err = ledger.Open(cfg.LedgerPath)
		if err != nil {
			return err
		}
		defer led.Close()
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	failed := 0
	for _, category := range targets {
		matches := matchesFor(scanned, category.Name)
		if len(matches) == 0 {
			fmt.Fprintf(os.Stderr, "No local documents for %q, skipping.\n", category.Name)
			continue
		}

		folder := category.RemoteFolder()
		folderID, err := resolveFolderID(cmd, client, folder)
		if err != nil {
			return err
		}

		fmt.Fprintf(os.Stdout, "Syncing %d documents to %q (folder %d).\n", len(matches), folder, folderID)
		result, err := sync.Run(cmd.Context(), client, matches, scanned.Unmatched, led, sync.Options{
			Folder:    folder,
			FolderID:  folderID,
			Publish:   cfg.Publish,
			Delay:     cfg.UploadDelay,
			Unmatched: cfg.Unmatched,
		}, os.Stdout)
		if err != nil {
			return err
		}
		failed += result.Failed

		out := filepath.Join(cfg.OutputDir, csvSlug(category.Name))
		if err := export.WriteLinksFile(out, result.Records); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Wrote %d links to %s.\n", len(result.Records), out)
	}

	if failed > 0 {
		return fmt.Errorf("%d uploads failed", failed)
	}
	return nil
}

// matchesFor filters the scan down to one category.
func matchesFor(scanned *scan.Result, category string) []scan.Match {
	var out []scan.Match
	for _, m := range scanned.Matches {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out
}
