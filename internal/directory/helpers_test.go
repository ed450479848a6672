// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package directory

import (
	"context"

	"github.com/pdiddy/doctor-directory/pkg/types"
)

type staticSource []types.Doctor

func (s staticSource) Name() string { return "static" }

func (s staticSource) Load(context.Context) ([]types.Doctor, error) { return s, nil }
