// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads per-host download tokens from a directory of
// plain-text files. A file named fetch-token-<host> holds the bearer token
// sent only when downloading documents from <host>. Other files in the
// directory are left alone.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets"

// FetchTokenPrefix marks files that carry per-host download tokens.
const FetchTokenPrefix = "fetch-token-"

// Tokens maps a lower-case host to its bearer token.
type Tokens map[string]string

// Hosts returns the hosts that have a token, sorted.
func (t Tokens) Hosts() []string {
	hosts := make([]string, 0, len(t))
	for h := range t {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	return hosts
}

// LoadFetchTokens reads the fetch-token-<host> files in dir. A missing
// directory yields no tokens. Blank and unreadable token files are skipped;
// unreadable ones are logged.
func LoadFetchTokens(dir string, logger *slog.Logger) (Tokens, error) {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Tokens{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	tokens := make(Tokens)
	for _, entry := range entries {
		host, ok := strings.CutPrefix(entry.Name(), FetchTokenPrefix)
		if !ok || host == "" || !entry.Type().IsRegular() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Warn("could not read fetch token", "host", host, "error", err)
			continue
		}
		if tok := strings.TrimSpace(string(data)); tok != "" {
			tokens[strings.ToLower(host)] = tok
		}
	}
	return tokens, nil
}
