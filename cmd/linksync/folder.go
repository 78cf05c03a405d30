// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/linksync/internal/doccenter"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Inspect and manage remote folders",
}

var folderCountCmd = &cobra.Command{
	Use:   "count [folder]",
	Short: "Count the documents in a remote folder",
	Args:  cobra.ExactArgs(1),
	RunE:  runFolderCount,
}

var folderInspectCmd = &cobra.Command{
	Use:   "inspect [folder]",
	Short: "List a remote folder's records, archived copies included",
	Args:  cobra.ExactArgs(1),
	RunE:  runFolderInspect,
}

var folderPurgeCmd = &cobra.Command{
	Use:   "purge [folder]",
	Short: "Delete every document in a remote folder",
	Long: `Purge removes all documents from the named remote folder. Published
documents are set to draft first, since the service refuses to delete them
directly. The folder itself is kept. Requires --yes.`,
	Args: cobra.ExactArgs(1),
	RunE: runFolderPurge,
}

func init() {
	rootCmd.AddCommand(folderCmd)
	folderCmd.AddCommand(folderCountCmd, folderInspectCmd, folderPurgeCmd)

	// Sites with archived-folder id collisions can bypass name resolution.
	folderCmd.PersistentFlags().Int("id", 0, "remote folder id, bypassing name lookup")
	folderPurgeCmd.Flags().Bool("yes", false, "confirm deletion")
}

// folderID resolves the target folder: the --id override when given,
// name lookup otherwise.
func folderID(cmd *cobra.Command, client *doccenter.Client, name string) (int, error) {
	if id, _ := cmd.Flags().GetInt("id"); id != 0 {
		return id, nil
	}
	return resolveFolderID(cmd, client, name)
}

func runFolderCount(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	id, err := folderID(cmd, client, args[0])
	if err != nil {
		return err
	}
	page, err := client.ListDocuments(cmd.Context(), id, doccenter.NewQuery().AllPages())
	if err != nil {
		return fmt.Errorf("listing %q: %w", args[0], err)
	}

	count := len(page.Source)
	if page.TotalCount != nil {
		count = *page.TotalCount
	}
	fmt.Fprintf(os.Stdout, "%s: %d documents, %.1f KB\n", args[0], count, page.TotalSize())
	return nil
}

func runFolderInspect(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	page, err := client.ListFolders(cmd.Context(), doccenter.NewQuery().AllPages())
	if err != nil {
		return err
	}

	records := page.Find(args[0])
	if len(records) == 0 {
		return fmt.Errorf("folder %q not found on the Document Center", args[0])
	}
	out, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("rendering folder records: %w", err)
	}
	fmt.Fprint(os.Stdout, string(out))
	return nil
}

func runFolderPurge(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		return fmt.Errorf("refusing to purge %q without --yes", args[0])
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	id, err := folderID(cmd, client, args[0])
	if err != nil {
		return err
	}
	page, err := client.ListDocuments(cmd.Context(), id, doccenter.NewQuery().AllPages())
	if err != nil {
		return fmt.Errorf("listing %q: %w", args[0], err)
	}

	deleted := 0
	for _, doc := range page.Source {
		// Published documents cannot be deleted until set to draft.
		if doc.Status != nil && *doc.Status == doccenter.StatusPublished {
			if err := client.UpdateDocument(cmd.Context(), doc, doccenter.CommandDraft); err != nil {
				return err
			}
		}
		if err := client.DeleteDocument(cmd.Context(), doc); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "deleted: %s\n", doc.Name)
		deleted++
	}
	fmt.Fprintf(os.Stdout, "Deleted %d documents from %q.\n", deleted, args[0])
	return nil
}
