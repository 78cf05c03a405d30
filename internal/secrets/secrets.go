// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads Document Center credentials from a directory of
// plain-text files. Each file in the directory represents one secret: the
// filename is the key name and the file contents (trimmed) are the value.
//
// Supported key files: api-key, partition, username, password, host.
// Environment variables take precedence over key files, so a .env file
// loaded at startup can override any of them.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Environment variable names recognized for each credential.
const (
	EnvAPIKey    = "LINKSYNC_API_KEY"
	EnvPartition = "LINKSYNC_PARTITION"
	EnvUsername  = "LINKSYNC_USERNAME"
	EnvPassword  = "LINKSYNC_PASSWORD"
	EnvHost      = "LINKSYNC_HOST"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Resolve returns the credential for key, preferring the environment
// variable envVar over the key file value. An empty return means the
// credential is not configured.
func Resolve(secrets map[string]string, key, envVar string) string {
	if v := os.Getenv(envVar); strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return secrets[key]
}
