// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultSourceURL is the static doctor list the directory reads when no
// source location is configured.
const DefaultSourceURL = "https://srijandubey.github.io/campus-api-mock/SRM-C1-25.json"

// HTTPConfig holds shared HTTP settings used by sources that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "doctor-directory/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SourceConfig selects and configures the data source.
type SourceConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Location is an http(s) URL, a local file path (.json, .yaml, .yml,
	// optionally .gz), an s3://bucket/key object, or sqlite:path for a
	// catalog snapshot.
	Location string `json:"location" yaml:"location" mapstructure:"location"`

	// MaxRetries is the number of retries on HTTP 429. Zero fetches once.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// S3Config holds settings for s3:// sources.
type S3Config struct {
	// Region defaults to us-east-1.
	Region string `json:"region" yaml:"region" mapstructure:"region"`

	// Endpoint overrides the S3 endpoint (e.g. a MinIO URL).
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" mapstructure:"endpoint"`

	// PathStyle forces path-style addressing.
	PathStyle bool `json:"path_style" yaml:"path_style" mapstructure:"path_style"`

	// Static credentials. When empty the default AWS credential chain is used.
	AccessKeyID     string `json:"-" yaml:"-" mapstructure:"access_key_id"`
	SecretAccessKey string `json:"-" yaml:"-" mapstructure:"secret_access_key"`
	SessionToken    string `json:"-" yaml:"-" mapstructure:"session_token"`
}

// CatalogConfig holds settings for the SQLite snapshot catalog.
type CatalogConfig struct {
	// Path is the database file (default data/directory.db).
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// URLPolicy controls which dimensions are written to the query-parameter
// store when a filter changes.
type URLPolicy string

const (
	// URLPolicyChangedOnly writes the search term and the changed dimension
	// only; the other dimensions are dropped from the query.
	URLPolicyChangedOnly URLPolicy = "changed-only"

	// URLPolicyMerge writes the search term and all current dimensions.
	URLPolicyMerge URLPolicy = "merge"
)

// URLConfig holds query-parameter synchronization settings.
type URLConfig struct {
	Policy URLPolicy `json:"policy" yaml:"policy" mapstructure:"policy"`
}

// ServeConfig holds settings for the HTTP API.
type ServeConfig struct {
	// Addr is the listen address (default :8080).
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// RateLimit caps requests per second per client IP. Zero disables
	// limiting.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default warn).
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// Config groups all settings read from the config file and environment.
type Config struct {
	Source  SourceConfig  `json:"source" yaml:"source" mapstructure:"source"`
	S3      S3Config      `json:"s3" yaml:"s3" mapstructure:"s3"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	URL     URLConfig     `json:"url" yaml:"url" mapstructure:"url"`
	Serve   ServeConfig   `json:"serve" yaml:"serve" mapstructure:"serve"`
	Log     LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
}
