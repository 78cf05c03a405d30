// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the linksync CLI: it syncs local
// documents to the CMS Document Center and records the resulting
// hyperlinks to CSV for the GIS layer link fields.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/linksync/internal/doccenter"
	"github.com/pdiddy/linksync/internal/secrets"
	"github.com/pdiddy/linksync/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout   = 60 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "linksync/0.1"
)

// loadedSecrets holds credentials loaded from the secrets directory at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the linksync CLI.
var rootCmd = &cobra.Command{
	Use:   "linksync",
	Short: "Sync documents to the Document Center and export hyperlinks",
	Long: `linksync pushes local documents into the CMS Document Center and records
the resulting hyperlinks as CSV, ready to merge into GIS layer link fields.

Each operation is a subcommand: sync uploads a folder's documents, links
exports hyperlinks for remote folders, merge joins links into a GIS parcel
export, report summarizes storage usage, and folder inspects the remote side.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env file in the working directory overrides key files.
		godotenv.Load()

		dir := viper.GetString("secrets_dir")
		if dir == "" {
			dir = ".secrets/"
		}
		s, err := secrets.Load(dir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./linksync.yaml or ~/.config/linksync/config.yaml)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("linksync")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "linksync"))
		}
	}

	viper.SetEnvPrefix("LINKSYNC")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// httpConfig resolves the shared HTTP settings from flags and defaults.
func httpConfig(cmd *cobra.Command) types.HTTPConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent}
}

// credentials assembles the Document Center account from environment
// variables and the secrets directory.
func credentials() doccenter.Credentials {
	return doccenter.Credentials{
		APIKey:    secrets.Resolve(loadedSecrets, "api-key", secrets.EnvAPIKey),
		Partition: secrets.Resolve(loadedSecrets, "partition", secrets.EnvPartition),
		Username:  secrets.Resolve(loadedSecrets, "username", secrets.EnvUsername),
		Password:  secrets.Resolve(loadedSecrets, "password", secrets.EnvPassword),
		Host:      secrets.Resolve(loadedSecrets, "host", secrets.EnvHost),
	}
}

// endpoints resolves the API URLs from configuration. Keys map to the
// LINKSYNC_AUTHENTICATE_URL, LINKSYNC_FOLDERS_URL and
// LINKSYNC_DOCUMENTS_URL environment variables.
func endpoints() doccenter.Endpoints {
	return doccenter.Endpoints{
		Authenticate: viper.GetString("authenticate_url"),
		Folders:      viper.GetString("folders_url"),
		Documents:    viper.GetString("documents_url"),
	}
}

// newClient builds an authenticated Document Center client.
func newClient(cmd *cobra.Command) (*doccenter.Client, error) {
	client, err := doccenter.NewClient(credentials(), endpoints(), httpConfig(cmd))
	if err != nil {
		return nil, err
	}
	session, err := client.Authenticate(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("authorizing user: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Authorized user %d.\n", session.UserID)
	return client, nil
}

// resolveFolderID looks up the active folder id for name.
func resolveFolderID(cmd *cobra.Command, client *doccenter.Client, name string) (int, error) {
	page, err := client.ListFolders(cmd.Context(), doccenter.NewQuery().AllPages())
	if err != nil {
		return 0, err
	}
	id, ok := page.ID(name)
	if !ok {
		return 0, fmt.Errorf("folder %q not found on the Document Center", name)
	}
	return id, nil
}

// csvSlug converts a folder name to a link file stem, e.g.
// "Fee in Lieu" -> "fee_in_lieu_links.csv".
func csvSlug(folder string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(folder), "_"))
	return slug + "_links.csv"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
