// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"net/http"

	"github.com/pdiddy/doctor-directory/internal/httputil"
	"github.com/pdiddy/doctor-directory/pkg/types"
)

// DefaultUserAgent is sent when the configuration leaves user_agent empty.
const DefaultUserAgent = "doctor-directory/0.1"

// HTTPSource fetches the doctor list with a single parameterless GET.
type HTTPSource struct {
	Client     *http.Client
	URL        string
	UserAgent  string
	MaxRetries int
}

// NewHTTPSource creates an HTTPSource for url using the HTTP settings in cfg.
func NewHTTPSource(url string, cfg types.SourceConfig) *HTTPSource {
	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &HTTPSource{
		Client:     &http.Client{Timeout: cfg.Timeout},
		URL:        url,
		UserAgent:  ua,
		MaxRetries: cfg.MaxRetries,
	}
}

// Name returns the source identifier.
func (s *HTTPSource) Name() string { return "http" }

// Load performs the GET and decodes the JSON array body.
func (s *HTTPSource) Load(ctx context.Context) ([]types.Doctor, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	var doctors []types.Doctor
	if err := httputil.GetJSON(ctx, client, s.URL, s.UserAgent, s.MaxRetries, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}
