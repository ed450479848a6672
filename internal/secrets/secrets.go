// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file holds one secret: the filename is the key and the trimmed
// contents are the value. Only the known keys are read.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/doctor-directory/pkg/types"
)

// DefaultDir is the secrets directory used when none is configured.
const DefaultDir = ".secrets"

// Secret key files.
const (
	AWSAccessKeyID     = "aws-access-key-id"
	AWSSecretAccessKey = "aws-secret-access-key"
	AWSSessionToken    = "aws-session-token"
)

// Keys lists the key files Load looks for.
var Keys = []string{AWSAccessKeyID, AWSSecretAccessKey, AWSSessionToken}

// Load reads the known key files from dir. A missing directory or missing
// files are not errors. Unreadable files are logged and skipped.
func Load(dir string) (map[string]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("secrets path %s is not a directory", dir)
	}

	out := make(map[string]string)
	for _, key := range Keys {
		data, err := os.ReadFile(filepath.Join(dir, key))
		if err != nil {
			if !os.IsNotExist(err) {
				slog.Warn("could not read secret", "key", key, "error", err)
			}
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			out[key] = v
		}
	}
	return out, nil
}

// ApplyS3 fills S3 credentials from loaded secrets. Values already present
// in cfg (from the config file or environment) win.
func ApplyS3(cfg *types.S3Config, loaded map[string]string) {
	if cfg.AccessKeyID == "" {
		cfg.AccessKeyID = loaded[AWSAccessKeyID]
	}
	if cfg.SecretAccessKey == "" {
		cfg.SecretAccessKey = loaded[AWSSecretAccessKey]
	}
	if cfg.SessionToken == "" {
		cfg.SessionToken = loaded[AWSSessionToken]
	}
}
