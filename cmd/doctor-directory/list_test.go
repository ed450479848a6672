// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newListTestCmd(t *testing.T, flags map[string][]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	addListFlags(cmd)
	for name, values := range flags {
		for _, v := range values {
			require.NoError(t, cmd.Flags().Set(name, v))
		}
	}
	return cmd
}

func TestListQuery(t *testing.T) {
	tests := []struct {
		name   string
		flags  map[string][]string
		want   string
		errMsg string
	}{
		{
			name: "no flags",
			want: "",
		},
		{
			name:  "seed from URL",
			flags: map[string][]string{"query": {"https://example.com/?sort=fees&specialty=ENT"}},
			want:  "specialty=ENT&sort=fees",
		},
		{
			name: "flags override the seed",
			flags: map[string][]string{
				"query":     {"?mode=In+Clinic&sort=fees&specialty=ENT"},
				"specialty": {"Dentist", "Homeopath"},
				"sort":      {""},
			},
			want: "mode=In+Clinic&specialty=Dentist&specialty=Homeopath",
		},
		{
			name:  "search flag",
			flags: map[string][]string{"search": {"Dr. A"}},
			want:  "search=Dr.+A",
		},
		{
			name:   "unknown mode",
			flags:  map[string][]string{"mode": {"Phone"}},
			errMsg: "unknown mode",
		},
		{
			name:   "unknown sort",
			flags:  map[string][]string{"sort": {"rating"}},
			errMsg: "unknown sort option",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := listQuery(newListTestCmd(t, tt.flags))
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.String())
		})
	}
}

func TestSetupLogger(t *testing.T) {
	assert.NoError(t, setupLogger("debug"))
	assert.NoError(t, setupLogger(""))
	assert.Error(t, setupLogger("loud"))
}
