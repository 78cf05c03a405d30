// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/linksync/internal/doccenter"
	"github.com/pdiddy/linksync/internal/export"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [folder] [parcels.csv]",
	Short: "Join a GIS parcel export against a remote folder's links",
	Long: `Merge reads a GIS layer export, matches each parcel's instrument number
against the document names in the remote folder, and writes one row per
matched parcel with its hyperlink. Parcels without a matching document are
counted and listed, not dropped silently.`,
	Args: cobra.ExactArgs(2),
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().String("output", "parcel_links.csv", "merged CSV destination")
}

func runMerge(cmd *cobra.Command, args []string) error {
	folder, parcelPath := args[0], args[1]
	outPath, _ := cmd.Flags().GetString("output")

	parcels, err := export.ReadParcelsFile(parcelPath)
	if err != nil {
		return err
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	folderID, err := resolveFolderID(cmd, client, folder)
	if err != nil {
		return err
	}
	page, err := client.ListDocuments(cmd.Context(), folderID, doccenter.NewQuery().AllPages())
	if err != nil {
		return fmt.Errorf("listing %q: %w", folder, err)
	}

	merged := export.MergeParcelLinks(parcels, page.Links())

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := export.WriteParcelLinks(f, merged.Links); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Merged %d of %d parcels into %s.\n", len(merged.Links), len(parcels), outPath)
	if len(merged.Unmatched) > 0 {
		fmt.Fprintf(os.Stdout, "Parcels without a matching document: %d\n", len(merged.Unmatched))
		for _, p := range merged.Unmatched {
			fmt.Fprintf(os.Stdout, "  %d %s\n", p.ObjectID, p.Instrument)
		}
	}
	return nil
}
