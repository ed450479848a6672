// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/doctor-directory/pkg/types"
)

// FileSource reads the doctor list from a local JSON or YAML file,
// optionally gzip-compressed (.json.gz, .yaml.gz).
type FileSource struct {
	Path string
}

// Name returns the source identifier.
func (s *FileSource) Name() string { return "file" }

// Load reads and decodes the file.
func (s *FileSource) Load(ctx context.Context) ([]types.Doctor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s.Path, err)
	}
	defer f.Close()

	return DecodeNamed(s.Path, f)
}
