// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source reads the doctor list from the configured data source.
// Each source performs a single read with no retry and returns the records
// exactly as decoded; shape problems inside a record are tolerated by
// types.Doctor, while a payload that is not a list is an error.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/pgzip"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doctor-directory/pkg/types"
)

// Source reads the full doctor list. Implementations are read-only.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]types.Doctor, error)
}

const catalogPrefix = "sqlite:"

// Open returns the Source for cfg.Source.Location. An empty location selects
// types.DefaultSourceURL.
func Open(ctx context.Context, cfg types.Config) (Source, error) {
	loc := strings.TrimSpace(cfg.Source.Location)
	if loc == "" {
		loc = types.DefaultSourceURL
	}

	switch {
	case strings.HasPrefix(loc, "http://"), strings.HasPrefix(loc, "https://"):
		return NewHTTPSource(loc, cfg.Source), nil
	case strings.HasPrefix(loc, "s3://"):
		bucket, key, err := ParseS3Location(loc)
		if err != nil {
			return nil, err
		}
		return NewS3Source(ctx, bucket, key, cfg.S3)
	case strings.HasPrefix(loc, catalogPrefix):
		p := strings.TrimPrefix(loc, catalogPrefix)
		if p == "" {
			p = cfg.Catalog.Path
		}
		return &CatalogSource{Path: p}, nil
	default:
		return &FileSource{Path: loc}, nil
	}
}

// Format identifies a payload encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat derives the payload format and compression from a file name
// or object key. Unknown extensions are treated as JSON.
func DetectFormat(name string) (Format, bool) {
	name = strings.ToLower(name)
	gz := strings.HasSuffix(name, ".gz")
	if gz {
		name = strings.TrimSuffix(name, ".gz")
	}
	switch path.Ext(name) {
	case ".yaml", ".yml":
		return FormatYAML, gz
	default:
		return FormatJSON, gz
	}
}

// DecodeNamed decodes r according to the format and compression implied by name.
func DecodeNamed(name string, r io.Reader) ([]types.Doctor, error) {
	format, gz := DetectFormat(name)
	if gz {
		zr, err := pgzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream %s: %w", name, err)
		}
		defer zr.Close()
		r = zr
	}
	return Decode(r, format)
}

// Decode reads a list of doctor records from r.
func Decode(r io.Reader, format Format) ([]types.Doctor, error) {
	switch format {
	case FormatYAML:
		var raw []any
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
			if err == io.EOF {
				return nil, nil
			}
			return nil, fmt.Errorf("parsing YAML doctor list: %w", err)
		}
		// Re-encode as JSON so records go through the permissive JSON decoder.
		data, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("converting YAML doctor list: %w", err)
		}
		var doctors []types.Doctor
		if err := json.Unmarshal(data, &doctors); err != nil {
			return nil, fmt.Errorf("parsing YAML doctor list: %w", err)
		}
		return doctors, nil
	case FormatJSON, "":
		var doctors []types.Doctor
		if err := json.NewDecoder(r).Decode(&doctors); err != nil {
			return nil, fmt.Errorf("parsing JSON doctor list: %w", err)
		}
		return doctors, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
