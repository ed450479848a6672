// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doctor-directory/pkg/types"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		want   map[string]string
		errMsg string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, AWSAccessKeyID, "  AKIAEXAMPLE  \n")
				writeFile(t, dir, AWSSecretAccessKey, "s3cr3t")
				return dir
			},
			want: map[string]string{
				AWSAccessKeyID:     "AKIAEXAMPLE",
				AWSSecretAccessKey: "s3cr3t",
			},
		},
		{
			name: "ignores unknown files and empty values",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "notes.txt", "hello")
				writeFile(t, dir, AWSSessionToken, "   \n")
				return dir
			},
			want: map[string]string{},
		},
		{
			name: "missing directory is empty",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent")
			},
			want: map[string]string{},
		},
		{
			name: "file instead of directory",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "secrets", "x")
				return filepath.Join(dir, "secrets")
			},
			errMsg: "not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t))
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyS3(t *testing.T) {
	loaded := map[string]string{
		AWSAccessKeyID:     "from-file",
		AWSSecretAccessKey: "file-secret",
		AWSSessionToken:    "file-token",
	}
	cfg := types.S3Config{AccessKeyID: "from-env"}
	ApplyS3(&cfg, loaded)

	assert.Equal(t, "from-env", cfg.AccessKeyID)
	assert.Equal(t, "file-secret", cfg.SecretAccessKey)
	assert.Equal(t, "file-token", cfg.SessionToken)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
